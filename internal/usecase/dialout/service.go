package dialout

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/infrastructure/external/telephony"
)

// Bridge numbers for the platforms with a fixed PSTN dial-in. Google and
// Teams hand out per-meeting numbers, so those come from the request.
const (
	chimeBridge = "+18555524463"
	webexBridge = "+18446213956"
	zoomBridge  = "+13017158592"
)

// CallPlacer places outbound calls through the voice connector
type CallPlacer interface {
	CreateSipMediaApplicationCall(ctx context.Context, req telephony.CreateCallRequest) (*telephony.CreateCallResponse, error)
}

// Service dials the bot into meetings
type Service struct {
	placer          CallPlacer
	fromPhoneNumber string
	mediaAppID      string
	logger          *zap.Logger
}

// NewService creates a dial-out service
func NewService(placer CallPlacer, fromPhoneNumber, mediaAppID string, logger *zap.Logger) *Service {
	return &Service{
		placer:          placer,
		fromPhoneNumber: fromPhoneNumber,
		mediaAppID:      mediaAppID,
		logger:          logger,
	}
}

// Dial places the outbound call for one meeting. Unsupported platforms are
// skipped with a log line rather than an error so a bad schedule entry cannot
// wedge the dispatcher.
func (s *Service) Dial(ctx context.Context, input entities.DialOutInput) error {
	if input.MeetingID == "" || input.MeetingType == "" || input.ScheduledTime == 0 {
		return errors.ErrInvalidArgument("meetingID, meetingType and scheduledTime are required")
	}

	var toPhoneNumber string
	switch entities.MeetingPlatform(input.MeetingType) {
	case entities.PlatformChime:
		toPhoneNumber = chimeBridge
	case entities.PlatformWebex:
		toPhoneNumber = webexBridge
	case entities.PlatformZoom:
		toPhoneNumber = zoomBridge
	case entities.PlatformGoogle, entities.PlatformTeams:
		toPhoneNumber = input.DialIn
	default:
		s.logger.Info("unsupported meeting platform, skipping dial-out",
			zap.String("meeting_type", input.MeetingType),
			zap.String("meeting_id", input.MeetingID))
		return nil
	}

	if toPhoneNumber == "" {
		return errors.ErrDialOutFailed(input.MeetingType, fmt.Errorf("no dial-in number for meeting %s", input.MeetingID))
	}

	resp, err := s.placer.CreateSipMediaApplicationCall(ctx, telephony.CreateCallRequest{
		FromPhoneNumber:       s.fromPhoneNumber,
		ToPhoneNumber:         toPhoneNumber,
		SipMediaApplicationID: s.mediaAppID,
		ArgumentsMap: map[string]string{
			entities.ArgMeetingType:   input.MeetingType,
			entities.ArgMeetingID:     input.MeetingID,
			entities.ArgScheduledTime: strconv.FormatInt(input.ScheduledTime, 10),
		},
	})
	if err != nil {
		s.logger.Error("dial-out failed",
			zap.String("meeting_id", input.MeetingID),
			zap.String("meeting_type", input.MeetingType),
			zap.Error(err))
		return errors.ErrDialOutFailed(input.MeetingType, err)
	}

	s.logger.Info("call initiated",
		zap.String("meeting_id", input.MeetingID),
		zap.String("meeting_type", input.MeetingType),
		zap.String("transaction_id", resp.TransactionID))
	return nil
}
