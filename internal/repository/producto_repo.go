package repository

import (
	"context"

	"posmejia/internal/model"

	"gorm.io/gorm"
)

type ProductoRepository interface {
	List(ctx context.Context) ([]model.Producto, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) List(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).Order("id ASC").Find(&productos).Error
	return productos, err
}
