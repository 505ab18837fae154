package repository

import (
	"context"
	"time"

	"posmejia/internal/model"

	"gorm.io/gorm"
)

type NominaRepository interface {
	ListEnRango(ctx context.Context, desde, hasta time.Time) ([]model.Nomina, error)
	// ListPorSemana returns runs holding at least one item keyed to semana.
	ListPorSemana(ctx context.Context, semana string) ([]model.Nomina, error)
	ListEmpleados(ctx context.Context) ([]model.Empleado, error)
	ListAdelantos(ctx context.Context, estado string) ([]model.Adelanto, error)
}

type nominaRepo struct{ db *gorm.DB }

func NewNominaRepository(db *gorm.DB) NominaRepository { return &nominaRepo{db: db} }

func (r *nominaRepo) ListEnRango(ctx context.Context, desde, hasta time.Time) ([]model.Nomina, error) {
	var nominas []model.Nomina
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("fecha BETWEEN ? AND ?", desde, hasta).
		Order("fecha DESC").
		Find(&nominas).Error
	return nominas, err
}

func (r *nominaRepo) ListPorSemana(ctx context.Context, semana string) ([]model.Nomina, error) {
	var nominas []model.Nomina
	sub := r.db.Model(&model.NominaItem{}).Select("nomina_id").Where("semana = ?", semana)
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id IN (?)", sub).
		Find(&nominas).Error
	return nominas, err
}

func (r *nominaRepo) ListEmpleados(ctx context.Context) ([]model.Empleado, error) {
	var empleados []model.Empleado
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&empleados).Error
	return empleados, err
}

func (r *nominaRepo) ListAdelantos(ctx context.Context, estado string) ([]model.Adelanto, error) {
	q := r.db.WithContext(ctx).Model(&model.Adelanto{})
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	var adelantos []model.Adelanto
	err := q.Order("fecha DESC").Find(&adelantos).Error
	return adelantos, err
}
