package repository

import (
	"context"
	"time"

	"posmejia/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductoVendidoRow is one aggregated best-seller row.
type ProductoVendidoRow struct {
	ProductoID int64
	Nombre     string
	Cantidad   decimal.Decimal
	Total      decimal.Decimal
}

type VentaRepository interface {
	// ListEnRango returns sales with fecha in [desde, hasta], items preloaded.
	ListEnRango(ctx context.Context, desde, hasta time.Time) ([]model.Venta, error)
	// ListRecientes returns the newest limite sales up to hasta, items preloaded.
	ListRecientes(ctx context.Context, hasta time.Time, limite int) ([]model.Venta, error)
	// TopProductos ranks products by quantity over every sale up to hasta
	// with something paid.
	TopProductos(ctx context.Context, hasta time.Time, limite int) ([]ProductoVendidoRow, error)
	// ListPendientes returns credit sales with a client, client preloaded.
	ListPendientes(ctx context.Context) ([]model.Venta, error)
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) ListEnRango(ctx context.Context, desde, hasta time.Time) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("fecha BETWEEN ? AND ?", desde, hasta).
		Order("fecha DESC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) ListRecientes(ctx context.Context, hasta time.Time, limite int) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("fecha <= ?", hasta).
		Order("fecha DESC, id DESC").
		Limit(limite).
		Find(&ventas).Error
	return ventas, err
}

// TopProductos names each row after the product's most recent sale line.
// Ties go to the product sold most recently.
func (r *ventaRepo) TopProductos(ctx context.Context, hasta time.Time, limite int) ([]ProductoVendidoRow, error) {
	var rows []ProductoVendidoRow
	err := r.db.WithContext(ctx).
		Table("venta_items AS vi").
		Select(`vi.producto_id AS producto_id,
			(array_agg(vi.nombre ORDER BY v.fecha DESC, vi.id DESC))[1] AS nombre,
			SUM(vi.cantidad) AS cantidad,
			SUM(vi.precio * vi.cantidad) AS total`).
		Joins("JOIN ventas AS v ON v.id = vi.venta_id").
		Where("v.fecha <= ?", hasta).
		Where("COALESCE(v.pagado, v.total) > 0").
		Group("vi.producto_id").
		Order("SUM(vi.cantidad) DESC, MAX(v.fecha) DESC").
		Limit(limite).
		Scan(&rows).Error
	return rows, err
}

func (r *ventaRepo) ListPendientes(ctx context.Context) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Cliente").
		Where("estado = ? AND cliente_id IS NOT NULL", model.VentaPendiente).
		Where("total > COALESCE(pagado, total)").
		Order("fecha ASC").
		Find(&ventas).Error
	return ventas, err
}
