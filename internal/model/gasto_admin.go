package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GastoAdmin is a flat administrative expense entry.
type GastoAdmin struct {
	ID          int64           `gorm:"primaryKey"`
	Fecha       time.Time       `gorm:"not null;index"`
	Descripcion string          `gorm:"not null"`
	Categoria   string          `gorm:"type:varchar(60);not null;index"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time
}

func (GastoAdmin) TableName() string { return "gastos_admin" }

// CategoriasGasto lists the categories offered when recording an expense.
var CategoriasGasto = []string{
	"Salud",
	"Automotriz",
	"Escuelas",
	"Diversos",
	"Sueldos",
	"Viáticos",
	"Entretenimiento",
	"Servicios básicos de casa",
	"Compras familiares",
	"Gastos de la empresa",
}
