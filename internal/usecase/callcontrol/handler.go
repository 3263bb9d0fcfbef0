package callcontrol

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
)

const (
	introMessage = "Hi. The meeting summariizer bot will be joining soon"
	startMessage = "I am a summarizer bot. I will be collecting call audio to create a call transcript and summary. To maximize the quality of the transcription and summary, please use a microphone or headset."
)

// Handler turns call lifecycle events into action lists for the telephony
// platform. It is stateless; everything it needs to remember rides in the
// transaction attributes echoed back on every response.
type Handler struct {
	bucket string
	logger *zap.Logger
}

// NewHandler creates a call-control handler recording into the given bucket
func NewHandler(bucket string, logger *zap.Logger) *Handler {
	return &Handler{bucket: bucket, logger: logger}
}

// Handle processes one webhook event and returns the response to execute
func (h *Handler) Handle(event *entities.SIPMediaApplicationEvent) *entities.SIPMediaApplicationResponse {
	h.logger.Info("call control event",
		zap.String("event_type", string(event.InvocationEventType)),
		zap.String("transaction_id", event.CallDetails.TransactionID))

	actions := []entities.Action{}
	attrs := event.CallDetails.TransactionAttributes
	if attrs == nil {
		attrs = map[string]string{}
	}

	switch event.InvocationEventType {
	case entities.EventRinging:
		// nothing to do, wait for the answer

	case entities.EventNewOutboundCall:
		actions, attrs = h.newOutboundCall(event, attrs)

	case entities.EventCallAnswered:
		actions, attrs = h.callAnswered(event, attrs)

	case entities.EventActionSuccessful, entities.EventActionInterrupted, entities.EventActionFailed:
		// logged above, no follow-up actions

	case entities.EventHangup:
		actions, attrs = h.hangup(event, attrs)

	default:
		h.logger.Warn("unknown call control event", zap.String("event_type", string(event.InvocationEventType)))
	}

	return &entities.SIPMediaApplicationResponse{
		SchemaVersion:         entities.SchemaVersion10,
		Actions:               actions,
		TransactionAttributes: attrs,
	}
}

// newOutboundCall copies the call arguments into transaction attributes so
// later events can see them. No actions yet; the answer event drives those.
func (h *Handler) newOutboundCall(event *entities.SIPMediaApplicationEvent, attrs map[string]string) ([]entities.Action, map[string]string) {
	var args map[string]string
	if event.ActionData != nil {
		args = event.ActionData.Parameters.Arguments
	}
	attrs[entities.AttrMeetingID] = args[entities.ArgMeetingID]
	attrs[entities.AttrMeetingType] = args[entities.ArgMeetingType]
	attrs[entities.AttrScheduledTime] = args[entities.ArgScheduledTime]
	return nil, attrs
}

// callAnswered emits the full join-and-record sequence: announce the bot,
// punch in the meeting DTMF digits, read the privacy notice, start recording.
func (h *Handler) callAnswered(event *entities.SIPMediaApplicationEvent, attrs map[string]string) ([]entities.Action, map[string]string) {
	if len(event.CallDetails.Participants) == 0 {
		h.logger.Warn("call answered with no participants")
		return nil, attrs
	}
	callID := event.CallDetails.Participants[0].CallID

	meetingID := attrs[entities.AttrMeetingID]
	meetingDigits := joinDigits(attrs[entities.AttrMeetingType], meetingID)
	prefix := fmt.Sprintf("meeting-mp3/%s.%s", meetingID, attrs[entities.AttrScheduledTime])

	actions := []entities.Action{
		pauseAction(callID, 1000),
		speakAction(callID, introMessage),
		pauseAction(callID, 5000),
		sendDigitsAction(callID, meetingDigits, 300),
		pauseAction(callID, 12000),
		speakAction(callID, startMessage),
		pauseAction(callID, 1000),
		recordAudioAction(callID, h.bucket, prefix),
	}
	return actions, attrs
}

// hangup drops every leg still connected
func (h *Handler) hangup(event *entities.SIPMediaApplicationEvent, attrs map[string]string) ([]entities.Action, map[string]string) {
	var actions []entities.Action
	for _, p := range event.CallDetails.Participants {
		if p.Status == entities.ParticipantConnected {
			actions = append(actions, hangupAction(p.CallID))
		}
	}
	return actions, attrs
}

// joinDigits builds the DTMF string that gets the bot past each platform's
// phone menu. Webex and Zoom prompt again after the meeting id, so commas
// (one pause each) buy time before the closing pound.
func joinDigits(meetingType, meetingID string) string {
	switch entities.MeetingPlatform(meetingType) {
	case entities.PlatformWebex:
		return meetingID + "#,,,,,,,,,,,,,,,#"
	case entities.PlatformZoom:
		return meetingID + "#,,,,,,,,,,,,,,,,,,,,#"
	default:
		return meetingID + "#"
	}
}
