package repository

import (
	"context"
	"time"

	"posmejia/internal/model"

	"gorm.io/gorm"
)

// GastoFilter narrows admin expenses. Nil bounds are open.
type GastoFilter struct {
	Desde     *time.Time
	Hasta     *time.Time
	Categoria string
}

type GastoAdminRepository interface {
	List(ctx context.Context, f GastoFilter) ([]model.GastoAdmin, error)
}

type gastoAdminRepo struct{ db *gorm.DB }

func NewGastoAdminRepository(db *gorm.DB) GastoAdminRepository { return &gastoAdminRepo{db: db} }

func (r *gastoAdminRepo) List(ctx context.Context, f GastoFilter) ([]model.GastoAdmin, error) {
	q := r.db.WithContext(ctx).Model(&model.GastoAdmin{})
	if f.Desde != nil {
		q = q.Where("fecha >= ?", *f.Desde)
	}
	if f.Hasta != nil {
		q = q.Where("fecha <= ?", *f.Hasta)
	}
	if f.Categoria != "" && f.Categoria != "Todos" {
		q = q.Where("categoria = ?", f.Categoria)
	}
	var gastos []model.GastoAdmin
	err := q.Order("fecha DESC").Find(&gastos).Error
	return gastos, err
}
