package model

import "time"

type Cliente struct {
	ID        int64  `gorm:"primaryKey"`
	Nombre    string `gorm:"not null"`
	Telefono  *string
	Email     *string
	Direccion *string
	CreatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
