package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Nomina is one processed payroll run. Total is the gross amount paid.
type Nomina struct {
	ID        int64           `gorm:"primaryKey"`
	Fecha     time.Time       `gorm:"not null;index"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time

	Items []NominaItem `gorm:"foreignKey:NominaID"`
}

func (Nomina) TableName() string { return "nominas" }

// NominaItem is the pay line of one employee inside a run.
// Semana is the Monday (YYYY-MM-DD) of the paid week.
type NominaItem struct {
	ID                 int64            `gorm:"primaryKey"`
	NominaID           int64            `gorm:"index;not null"`
	EmpleadoID         int64            `gorm:"index;not null"`
	Nombre             string           `gorm:"not null"`
	Monto              decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	DiasTrabajados     *int
	Semana             *string          `gorm:"type:varchar(10);index"`
	AdelantoDescontado *decimal.Decimal `gorm:"type:decimal(12,2)"`
}

func (NominaItem) TableName() string { return "nomina_items" }

// Empleado is a worker paid weekly. Sueldo is the full 7-day wage.
type Empleado struct {
	ID        int64           `gorm:"primaryKey"`
	Nombre    string          `gorm:"not null"`
	Sueldo    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Puesto    *string
	CreatedAt time.Time
}

func (Empleado) TableName() string { return "empleados" }

// Adelanto is a salary advance repaid by withholding MontoPorSemana from the
// payroll runs that follow the week it was granted.
// Estado: "activo" | "liquidado"
type Adelanto struct {
	ID             int64           `gorm:"primaryKey"`
	EmpleadoID     int64           `gorm:"index;not null"`
	Nombre         string          `gorm:"not null"`
	MontoTotal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Semanas        int             `gorm:"not null"`
	MontoPorSemana decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SaldoPendiente decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Fecha          time.Time       `gorm:"not null"`
	Estado         string          `gorm:"type:varchar(20);not null;default:'activo'"`
}

func (Adelanto) TableName() string { return "adelantos" }
