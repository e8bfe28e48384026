package repository

import (
	"context"
	"hotel-booking/internal/model"
	"hotel-booking/pkg/utils"
	"time"

	"gorm.io/gorm"
)

type TaskRunRepository interface {
	Create(ctx context.Context, run *model.TaskRun, opts ...utils.DBOption) error
	Update(ctx context.Context, run *model.TaskRun, opts ...utils.DBOption) error
	DeleteOlderThan(ctx context.Context, date time.Time, opts ...utils.DBOption) (int64, error)
}

type taskRunRepository struct {
	db *gorm.DB
}

func NewTaskRunRepository(db *gorm.DB) TaskRunRepository {
	return &taskRunRepository{db: db}
}

func (r *taskRunRepository) Create(ctx context.Context, run *model.TaskRun, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(run).Error
}

func (r *taskRunRepository) Update(ctx context.Context, run *model.TaskRun, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Updates(run).Error
}

func (r *taskRunRepository) DeleteOlderThan(ctx context.Context, date time.Time, opts ...utils.DBOption) (int64, error) {
	result := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Where("created_at < ?", date).Delete(&model.TaskRun{})
	return result.RowsAffected, result.Error
}
