package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
	repo "github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/repositories"
)

type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository backed by GORM
func NewMeetingRepository(db *gorm.DB) repo.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create upserts the placeholder row. Re-submitting the same invitation for
// the same time overwrites rather than duplicating.
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "call_id"}, {Name: "scheduled_time"}},
		UpdateAll: true,
	}).Create(meeting).Error
}

func (r *meetingRepository) Get(ctx context.Context, callID, scheduledTime string) (*entities.Meeting, error) {
	var m entities.Meeting
	err := r.db.WithContext(ctx).
		Where("call_id = ? AND scheduled_time = ?", callID, scheduledTime).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *meetingRepository) ListAll(ctx context.Context) ([]entities.Meeting, error) {
	var meetings []entities.Meeting
	if err := r.db.WithContext(ctx).Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *meetingRepository) UpdateAudioURL(ctx context.Context, callID, scheduledTime, url string) error {
	return r.updateColumn(ctx, callID, scheduledTime, "meeting_audio", url)
}

func (r *meetingRepository) UpdateTranscriptURL(ctx context.Context, callID, scheduledTime, url string) error {
	return r.updateColumn(ctx, callID, scheduledTime, "transcript", url)
}

func (r *meetingRepository) UpdateSummaryURL(ctx context.Context, callID, scheduledTime, url string) error {
	return r.updateColumn(ctx, callID, scheduledTime, "summary", url)
}

func (r *meetingRepository) UpdateTitle(ctx context.Context, callID, scheduledTime, title string) error {
	return r.updateColumn(ctx, callID, scheduledTime, "title", title)
}

func (r *meetingRepository) UpdateParticipants(ctx context.Context, callID, scheduledTime string, participants map[string]string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("call_id = ? AND scheduled_time = ?", callID, scheduledTime).
		Update("meeting_participants", datatypes.NewJSONType(participants)).Error
}

func (r *meetingRepository) updateColumn(ctx context.Context, callID, scheduledTime, column, value string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("call_id = ? AND scheduled_time = ?", callID, scheduledTime).
		Update(column, value).Error
}
