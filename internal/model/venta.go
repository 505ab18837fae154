package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	VentaPagada    = "pagada"
	VentaPendiente = "pendiente"
)

// Venta is a completed or credit sale.
// Estado: "pagada" | "pendiente"
// Pagado is nil on sales registered before partial payments existed; those
// count as fully paid.
type Venta struct {
	ID        int64            `gorm:"primaryKey"`
	Fecha     time.Time        `gorm:"not null;index"`
	Total     decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Pagado    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Estado    string           `gorm:"type:varchar(20);not null;default:'pagada'"`
	ClienteID *int64           `gorm:"index"`
	CreatedAt time.Time

	Items   []VentaItem `gorm:"foreignKey:VentaID"`
	Cliente *Cliente    `gorm:"foreignKey:ClienteID"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem is a sold line. Costo is captured at sale time; when nil the
// product's current cost is used instead.
type VentaItem struct {
	ID         int64            `gorm:"primaryKey"`
	VentaID    int64            `gorm:"index;not null"`
	ProductoID int64            `gorm:"index;not null"`
	Nombre     string           `gorm:"not null"`
	Precio     decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Cantidad   decimal.Decimal  `gorm:"type:decimal(12,3);not null"`
	Costo      *decimal.Decimal `gorm:"type:decimal(12,2)"`
}

func (VentaItem) TableName() string { return "venta_items" }

// MontoPagado returns the collected amount, defaulting to Total.
func (v Venta) MontoPagado() decimal.Decimal {
	if v.Pagado != nil {
		return *v.Pagado
	}
	return v.Total
}

// Pendiente is the outstanding balance, never negative.
func (v Venta) Pendiente() decimal.Decimal {
	p := v.Total.Sub(v.MontoPagado())
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}
