package repository

import (
	"context"
	"time"

	"posmejia/internal/model"

	"gorm.io/gorm"
)

type LienzoRepository interface {
	ListEnRango(ctx context.Context, desde, hasta time.Time) ([]model.MovimientoLienzo, error)
}

type lienzoRepo struct{ db *gorm.DB }

func NewLienzoRepository(db *gorm.DB) LienzoRepository { return &lienzoRepo{db: db} }

func (r *lienzoRepo) ListEnRango(ctx context.Context, desde, hasta time.Time) ([]model.MovimientoLienzo, error) {
	var movs []model.MovimientoLienzo
	err := r.db.WithContext(ctx).
		Where("fecha BETWEEN ? AND ?", desde, hasta).
		Order("fecha DESC").
		Find(&movs).Error
	return movs, err
}
