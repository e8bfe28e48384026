package model

import (
	"database/sql"
	"time"
)

type TaskRunStatus string

const (
	StatusRunning   TaskRunStatus = "running"
	StatusCompleted TaskRunStatus = "completed"
	StatusFailed    TaskRunStatus = "failed"
)

// TaskRun records one execution of a queued task by a worker.
type TaskRun struct {
	ID           uint          `gorm:"primaryKey"`
	TaskID       string        `gorm:"type:uuid;not null"`
	TaskName     string        `gorm:"type:varchar(255);not null"`
	Status       TaskRunStatus `gorm:"type:varchar(50);not null"`
	StartedAt    time.Time     `gorm:"not null"`
	CompletedAt  sql.NullTime
	Output       sql.NullString `gorm:"type:text"`
	ErrorMessage sql.NullString `gorm:"type:text"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
}

func (TaskRun) TableName() string {
	return "task_runs"
}
