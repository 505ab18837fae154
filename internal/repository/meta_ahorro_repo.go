package repository

import (
	"context"
	"time"

	"posmejia/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MetaAhorroRepository interface {
	List(ctx context.Context) ([]model.MetaAhorro, error)
	FindByID(ctx context.Context, id int64) (*model.MetaAhorro, error)
	ListRegistros(ctx context.Context, metaIDs ...int64) ([]model.RegistroAhorroDia, error)
	// UpsertRegistro writes the single record for (meta_id, fecha),
	// replacing the amount when one already exists.
	UpsertRegistro(ctx context.Context, r *model.RegistroAhorroDia) error
}

type metaAhorroRepo struct{ db *gorm.DB }

func NewMetaAhorroRepository(db *gorm.DB) MetaAhorroRepository { return &metaAhorroRepo{db: db} }

func (r *metaAhorroRepo) List(ctx context.Context) ([]model.MetaAhorro, error) {
	var metas []model.MetaAhorro
	err := r.db.WithContext(ctx).Order("fecha_limite ASC, id ASC").Find(&metas).Error
	return metas, err
}

func (r *metaAhorroRepo) FindByID(ctx context.Context, id int64) (*model.MetaAhorro, error) {
	var m model.MetaAhorro
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *metaAhorroRepo) ListRegistros(ctx context.Context, metaIDs ...int64) ([]model.RegistroAhorroDia, error) {
	if len(metaIDs) == 0 {
		return nil, nil
	}
	var regs []model.RegistroAhorroDia
	err := r.db.WithContext(ctx).
		Where("meta_id IN ?", metaIDs).
		Order("fecha ASC").
		Find(&regs).Error
	return regs, err
}

func (r *metaAhorroRepo) UpsertRegistro(ctx context.Context, reg *model.RegistroAhorroDia) error {
	reg.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "meta_id"}, {Name: "fecha"}},
		DoUpdates: clause.AssignmentColumns([]string{"monto", "updated_at"}),
	}).Create(reg).Error
}
