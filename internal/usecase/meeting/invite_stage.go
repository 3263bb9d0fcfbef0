package meeting

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/pipeline"
)

// InviteFetcher reads a stored invitation file
type InviteFetcher interface {
	GetText(ctx context.Context, key string) (string, error)
}

// InvitationScheduler schedules the bot for one raw invitation text
type InvitationScheduler interface {
	ScheduleFromInvitation(ctx context.Context, meetingInfo string) error
}

// InviteStage reacts to invitation files dropped straight into the
// meeting-invite prefix and schedules the bot for them at drop time. Copies
// archived by the request path carry the {callId}.{scheduledTime}.txt
// artifact naming and are skipped; anything else under the prefix is a new
// request.
type InviteStage struct {
	store     InviteFetcher
	scheduler InvitationScheduler
	logger    *zap.Logger
}

// NewInviteStage creates the dropped-invitation stage
func NewInviteStage(store InviteFetcher, scheduler InvitationScheduler, logger *zap.Logger) *InviteStage {
	return &InviteStage{store: store, scheduler: scheduler, logger: logger}
}

func (s *InviteStage) Name() string        { return "invite" }
func (s *InviteStage) InputPrefix() string { return pipeline.PrefixMeetingInvite }
func (s *InviteStage) InputSuffix() string { return ".txt" }

// Handle schedules the bot for one dropped invitation file
func (s *InviteStage) Handle(ctx context.Context, key string) error {
	if isArchivedCopy(key) {
		s.logger.Debug("skipping archived invitation copy", zap.String("key", key))
		return nil
	}

	text, err := s.store.GetText(ctx, key)
	if err != nil {
		return errors.ErrStageFailed(s.Name(), err)
	}
	if err := s.scheduler.ScheduleFromInvitation(ctx, text); err != nil {
		return errors.ErrStageFailed(s.Name(), err)
	}

	s.logger.Info("scheduled meeting from dropped invitation", zap.String("key", key))
	return nil
}

// isArchivedCopy reports whether the key is one of our own archived
// invitations, recognizable by the artifact naming with a numeric
// scheduled time.
func isArchivedCopy(key string) bool {
	info, err := pipeline.ParseKey(key)
	if err != nil {
		return false
	}
	_, err = strconv.ParseInt(info.ScheduledTime, 10, 64)
	return err == nil
}
