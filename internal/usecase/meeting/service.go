package meeting

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/repositories"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/pipeline"
)

// Completer produces a model completion for a prompt
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Dialer places the outbound call for a meeting
type Dialer interface {
	Dial(ctx context.Context, input entities.DialOutInput) error
}

// InviteStore archives the raw invitation text beside the other artifacts
type InviteStore interface {
	PutText(ctx context.Context, key, content string) error
}

// ParsedInvitation is what the model extracts from a pasted invitation
type ParsedInvitation struct {
	MeetingID   string `json:"meetingId"`
	MeetingType string `json:"meetingType"`
	DialIn      string `json:"dialIn"`
}

// ScheduledMeeting is one pending dial-out as returned by the listing
type ScheduledMeeting struct {
	Name               string `json:"name"`
	GroupName          string `json:"groupName"`
	ScheduleExpression string `json:"scheduleExpression"`
	State              string `json:"state"`
	MeetingID          string `json:"meetingID"`
	MeetingType        string `json:"meetingType"`
	ScheduledTime      int64  `json:"scheduledTime"`
}

// PastMeeting is one completed (or placeholder) meeting row reshaped for the
// front-end.
type PastMeeting struct {
	CallID        string `json:"callId"`
	ScheduledTime string `json:"scheduledTime"`
	MeetingType   string `json:"meetingType"`
	Title         string `json:"title,omitempty"`
	Transcript    string `json:"transcript"`
	Summary       string `json:"summary"`
}

var whitespacePattern = regexp.MustCompile(`\s`)

// Accepted layouts for the request's formattedDate, tried in order.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// Service handles meeting requests: parse the invitation, persist the
// placeholder row, then dial now or schedule for later.
type Service struct {
	meetingRepo  repositories.MeetingRepository
	scheduleRepo repositories.ScheduleRepository
	model        Completer
	dialer       Dialer
	invites      InviteStore
	groupName    string
	now          func() time.Time
	logger       *zap.Logger
}

// NewService creates a meeting service
func NewService(meetingRepo repositories.MeetingRepository, scheduleRepo repositories.ScheduleRepository, model Completer, dialer Dialer, invites InviteStore, groupName string, logger *zap.Logger) *Service {
	return &Service{
		meetingRepo:  meetingRepo,
		scheduleRepo: scheduleRepo,
		model:        model,
		dialer:       dialer,
		invites:      invites,
		groupName:    groupName,
		now:          time.Now,
		logger:       logger,
	}
}

// CreateMeeting processes one pasted invitation. The placeholder row is
// written before any dial or schedule attempt so a later pipeline failure
// still leaves a visible record.
func (s *Service) CreateMeeting(ctx context.Context, meetingInfo, formattedDate, localTimeZone string) error {
	requestedDate, err := parseLocalDate(formattedDate, localTimeZone)
	if err != nil {
		return errors.ErrInvalidArgument("could not parse formattedDate: " + err.Error())
	}
	return s.schedule(ctx, meetingInfo, requestedDate)
}

// ScheduleFromInvitation handles an invitation file dropped straight into
// object storage. No requested date travels with the file, so the bot dials
// immediately.
func (s *Service) ScheduleFromInvitation(ctx context.Context, meetingInfo string) error {
	return s.schedule(ctx, meetingInfo, s.now())
}

func (s *Service) schedule(ctx context.Context, meetingInfo string, requestedDate time.Time) error {
	parsed, err := s.parseInvitation(ctx, meetingInfo)
	if err != nil {
		return err
	}
	scheduledTime := requestedDate.UnixMilli()

	// Keep whatever the model answered when it is not a known platform so
	// the row still records what was requested.
	platform, ok := entities.ParsePlatform(parsed.MeetingType)
	if !ok {
		platform = entities.MeetingPlatform(parsed.MeetingType)
	}
	if err := s.meetingRepo.Create(ctx, entities.NewMeeting(parsed.MeetingID, scheduledTime, platform)); err != nil {
		return errors.ErrMeetingWriteFailed(err)
	}

	// Archive the raw invitation beside the rest of the artifact chain. A
	// failed archive is not worth failing the request over.
	inviteKey := fmt.Sprintf("%s/%s.%d.txt", pipeline.PrefixMeetingInvite, parsed.MeetingID, scheduledTime)
	if err := s.invites.PutText(ctx, inviteKey, meetingInfo); err != nil {
		s.logger.Warn("failed to archive invitation", zap.String("key", inviteKey), zap.Error(err))
	}

	input := entities.DialOutInput{
		MeetingID:     parsed.MeetingID,
		MeetingType:   parsed.MeetingType,
		ScheduledTime: scheduledTime,
		DialIn:        parsed.DialIn,
	}

	if !requestedDate.After(s.now()) {
		s.logger.Info("starting summarizer now", zap.String("meeting_id", parsed.MeetingID))
		return s.dialer.Dial(ctx, input)
	}

	s.logger.Info("scheduling summarizer for future",
		zap.String("meeting_id", parsed.MeetingID),
		zap.Time("fire_at", requestedDate))
	schedule, err := entities.NewSchedule(s.groupName, input, requestedDate)
	if err != nil {
		return errors.ErrScheduleCreateFailed("", err)
	}
	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return errors.ErrScheduleCreateFailed(schedule.Name, err)
	}
	return nil
}

// parseInvitation runs the extraction prompt and validates the result
func (s *Service) parseInvitation(ctx context.Context, meetingInfo string) (*ParsedInvitation, error) {
	answer, err := s.model.Complete(ctx, invitationPrompt(meetingInfo), 100)
	if err != nil {
		return nil, errors.ErrModelFailed(err)
	}

	start := strings.Index(answer, "{")
	end := strings.LastIndex(answer, "}")
	if start < 0 || end <= start {
		return nil, errors.ErrMeetingParseFailed()
	}

	var parsed ParsedInvitation
	if err := json.Unmarshal([]byte(answer[start:end+1]), &parsed); err != nil {
		return nil, errors.ErrMeetingParseFailed()
	}
	if parsed.MeetingID == "" || parsed.MeetingType == "" {
		return nil, errors.ErrMeetingParseFailed()
	}

	parsed.MeetingID = whitespacePattern.ReplaceAllString(parsed.MeetingID, "")
	if parsed.DialIn == "N/A" {
		parsed.DialIn = ""
	}
	return &parsed, nil
}

// GetScheduledMeetings lists pending schedules in the dispatcher group. Each
// listed name is re-read individually to pick up the schedule expression;
// the per-name reads are kept even though the listing already holds the data.
func (s *Service) GetScheduledMeetings(ctx context.Context) ([]ScheduledMeeting, error) {
	schedules, err := s.scheduleRepo.ListGroup(ctx, s.groupName)
	if err != nil {
		return nil, errors.ErrScheduleLookupFailed(err)
	}

	out := make([]ScheduledMeeting, 0, len(schedules))
	for _, schedule := range schedules {
		details, err := s.scheduleRepo.Get(ctx, s.groupName, schedule.Name)
		if err != nil {
			return nil, errors.ErrScheduleLookupFailed(err)
		}
		if details == nil {
			continue
		}

		input, err := details.DecodeInput()
		if err != nil {
			s.logger.Warn("schedule has undecodable input", zap.String("name", schedule.Name), zap.Error(err))
			continue
		}

		out = append(out, ScheduledMeeting{
			Name:               schedule.Name,
			GroupName:          schedule.GroupName,
			ScheduleExpression: details.ScheduleExpression,
			State:              schedule.State,
			MeetingID:          input.MeetingID,
			MeetingType:        input.MeetingType,
			ScheduledTime:      input.ScheduledTime,
		})
	}
	return out, nil
}

// GetPastMeetings returns every meeting row reshaped for the front-end
func (s *Service) GetPastMeetings(ctx context.Context) ([]PastMeeting, error) {
	meetings, err := s.meetingRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("list meetings", err)
	}

	out := make([]PastMeeting, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, PastMeeting{
			CallID:        m.CallID,
			ScheduledTime: m.ScheduledTime,
			MeetingType:   string(m.MeetingType),
			Title:         m.Title,
			Transcript:    m.Transcript,
			Summary:       m.Summary,
		})
	}
	return out, nil
}

// UpdateTitle renames a meeting
func (s *Service) UpdateTitle(ctx context.Context, callID, scheduledTime, title string) error {
	existing, err := s.meetingRepo.Get(ctx, callID, scheduledTime)
	if err != nil {
		return errors.ErrDBQueryFailed("get meeting", err)
	}
	if existing == nil {
		return errors.ErrMeetingNotFound(callID, scheduledTime)
	}
	if err := s.meetingRepo.UpdateTitle(ctx, callID, scheduledTime, title); err != nil {
		return errors.ErrMeetingWriteFailed(err)
	}
	return nil
}

// parseLocalDate interprets formattedDate in the caller's time zone
func parseLocalDate(formattedDate, localTimeZone string) (time.Time, error) {
	loc := time.UTC
	if localTimeZone != "" {
		l, err := time.LoadLocation(localTimeZone)
		if err != nil {
			return time.Time{}, err
		}
		loc = l
	}

	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, formattedDate, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
