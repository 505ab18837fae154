package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto is the catalog entry. Only Costo is read by the finance
// calculations, as the fallback when a sold line did not store its own cost.
// EsGranel=true means Precio is per kg and Stock is in kg.
type Producto struct {
	ID          int64            `gorm:"primaryKey"`
	Nombre      string           `gorm:"index;not null"`
	Codigo      *string          `gorm:"index"`
	Categoria   string           `gorm:"not null"`
	Precio      decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Costo       *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Stock       decimal.Decimal  `gorm:"type:decimal(12,3);not null;default:0"`
	StockMinimo decimal.Decimal  `gorm:"type:decimal(12,3);not null;default:0"`
	// Estado: "Activo" | "Inactivo"; empty is treated as "Activo"
	Estado      string `gorm:"type:varchar(20)"`
	EsGranel    bool   `gorm:"not null;default:false"`
	ProveedorID *int64 `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Producto) TableName() string { return "productos" }

// Activo reports whether the product is sellable.
func (p Producto) Activo() bool {
	return p.Estado == "" || p.Estado == "Activo"
}

// StockBajo reports whether stock is at or below the configured minimum.
func (p Producto) StockBajo() bool {
	return p.Stock.LessThanOrEqual(p.StockMinimo)
}
