package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
	repo "github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/repositories"
)

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new schedule repository backed by GORM
func NewScheduleRepository(db *gorm.DB) repo.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// Create upserts by name; the `{meetingId}{epochMillis}` name makes repeat
// submissions of the same meeting/time pair idempotent.
func (r *scheduleRepository) Create(ctx context.Context, schedule *entities.Schedule) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).Create(schedule).Error
}

func (r *scheduleRepository) Get(ctx context.Context, groupName, name string) (*entities.Schedule, error) {
	var s entities.Schedule
	err := r.db.WithContext(ctx).
		Where("group_name = ? AND name = ?", groupName, name).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *scheduleRepository) ListGroup(ctx context.Context, groupName string) ([]entities.Schedule, error) {
	var schedules []entities.Schedule
	err := r.db.WithContext(ctx).
		Where("group_name = ?", groupName).
		Order("fire_at ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepository) ListDue(ctx context.Context, groupName string, now time.Time) ([]entities.Schedule, error) {
	var schedules []entities.Schedule
	err := r.db.WithContext(ctx).
		Where("group_name = ? AND state = ? AND fire_at <= ?", groupName, entities.ScheduleStateEnabled, now.UTC()).
		Order("fire_at ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepository) Delete(ctx context.Context, groupName, name string) error {
	return r.db.WithContext(ctx).
		Where("group_name = ? AND name = ?", groupName, name).
		Delete(&entities.Schedule{}).Error
}
