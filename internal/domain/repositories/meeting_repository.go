package repositories

import (
	"context"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
)

// MeetingRepository persists meeting rows keyed by (call_id, scheduled_time)
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	Get(ctx context.Context, callID, scheduledTime string) (*entities.Meeting, error)
	// ListAll returns every row; the Past listing is a full scan by design.
	ListAll(ctx context.Context) ([]entities.Meeting, error)
	UpdateAudioURL(ctx context.Context, callID, scheduledTime, url string) error
	UpdateTranscriptURL(ctx context.Context, callID, scheduledTime, url string) error
	UpdateParticipants(ctx context.Context, callID, scheduledTime string, participants map[string]string) error
	UpdateSummaryURL(ctx context.Context, callID, scheduledTime, url string) error
	UpdateTitle(ctx context.Context, callID, scheduledTime, title string) error
}
