package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MetaActiva     = "activa"
	MetaCompletada = "completada"
)

// MetaAhorro is a savings goal. FechaLimite is a calendar date.
type MetaAhorro struct {
	ID          int64           `gorm:"primaryKey"`
	Nombre      string          `gorm:"not null"`
	Meta        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FechaLimite time.Time       `gorm:"type:date;not null"`
	Estado      string          `gorm:"type:varchar(20);not null;default:'activa'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (MetaAhorro) TableName() string { return "metas_ahorro" }

// RegistroAhorroDia records the outcome of one day for a goal.
// Monto > 0 means saved; Monto == 0 means explicitly not saved.
// A day without a row is undecided.
type RegistroAhorroDia struct {
	MetaID    int64           `gorm:"primaryKey;autoIncrement:false"`
	Fecha     time.Time       `gorm:"type:date;primaryKey"`
	Monto     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UpdatedAt time.Time
}

func (RegistroAhorroDia) TableName() string { return "registros_ahorro" }
