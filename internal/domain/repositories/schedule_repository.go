package repositories

import (
	"context"
	"time"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
)

// ScheduleRepository stores one-shot dial-out schedules
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *entities.Schedule) error
	Get(ctx context.Context, groupName, name string) (*entities.Schedule, error)
	ListGroup(ctx context.Context, groupName string) ([]entities.Schedule, error)
	// ListDue returns ENABLED schedules whose fire time is at or before now.
	ListDue(ctx context.Context, groupName string, now time.Time) ([]entities.Schedule, error)
	Delete(ctx context.Context, groupName, name string) error
}
