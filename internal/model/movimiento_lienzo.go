package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	LienzoIngreso = "ingreso"
	LienzoGasto   = "gasto"
)

// MovimientoLienzo is an income or expense entry of the Lienzo Charro side
// venture. Only "ingreso" entries feed the unified revenue figure.
type MovimientoLienzo struct {
	ID          int64           `gorm:"primaryKey"`
	Fecha       time.Time       `gorm:"not null;index"`
	Tipo        string          `gorm:"type:varchar(10);not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descripcion *string
	CreatedAt   time.Time
}

func (MovimientoLienzo) TableName() string { return "movimientos_lienzo" }
