package repository

import (
	"context"
	"hotel-booking/pkg/utils"

	"gorm.io/gorm"
)

const importBatchSize = 500

type ImportRepository interface {
	// Insert bulk-creates a typed slice such as []model.Hotel.
	Insert(ctx context.Context, records interface{}, opts ...utils.DBOption) (int64, error)
}

type importRepository struct {
	db *gorm.DB
}

func NewImportRepository(db *gorm.DB) ImportRepository {
	return &importRepository{db: db}
}

func (r *importRepository) Insert(ctx context.Context, records interface{}, opts ...utils.DBOption) (int64, error) {
	result := utils.ApplyOptions(r.db.WithContext(ctx), opts...).CreateInBatches(records, importBatchSize)
	return result.RowsAffected, result.Error
}
