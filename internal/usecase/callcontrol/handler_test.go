package callcontrol

import (
	"testing"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
)

func newTestHandler() *Handler {
	return NewHandler("meeting-recordings", zap.NewNop())
}

func outboundEvent(meetingID, meetingType, scheduledTime string) *entities.SIPMediaApplicationEvent {
	return &entities.SIPMediaApplicationEvent{
		SchemaVersion:       entities.SchemaVersion10,
		InvocationEventType: entities.EventNewOutboundCall,
		CallDetails: entities.CallDetails{
			TransactionID: "tx-1",
		},
		ActionData: &entities.ActionData{
			Parameters: entities.ActionDataParameters{
				Arguments: map[string]string{
					entities.ArgMeetingID:     meetingID,
					entities.ArgMeetingType:   meetingType,
					entities.ArgScheduledTime: scheduledTime,
				},
			},
		},
	}
}

func TestNewOutboundCallStashesArguments(t *testing.T) {
	h := newTestHandler()

	resp := h.Handle(outboundEvent("9991112222", "Zoom", "1718000000000"))

	if len(resp.Actions) != 0 {
		t.Fatalf("expected no actions, got %d", len(resp.Actions))
	}
	if got := resp.TransactionAttributes[entities.AttrMeetingID]; got != "9991112222" {
		t.Errorf("meeting id attribute = %q", got)
	}
	if got := resp.TransactionAttributes[entities.AttrMeetingType]; got != "Zoom" {
		t.Errorf("meeting type attribute = %q", got)
	}
	if got := resp.TransactionAttributes[entities.AttrScheduledTime]; got != "1718000000000" {
		t.Errorf("scheduled time attribute = %q", got)
	}
	if resp.SchemaVersion != entities.SchemaVersion10 {
		t.Errorf("schema version = %q", resp.SchemaVersion)
	}
}

func TestCallAnsweredSequence(t *testing.T) {
	h := newTestHandler()

	event := &entities.SIPMediaApplicationEvent{
		SchemaVersion:       entities.SchemaVersion10,
		InvocationEventType: entities.EventCallAnswered,
		CallDetails: entities.CallDetails{
			TransactionAttributes: map[string]string{
				entities.AttrMeetingID:     "12345",
				entities.AttrMeetingType:   "Chime",
				entities.AttrScheduledTime: "1718000000000",
			},
			Participants: []entities.CallParticipant{
				{CallID: "call-a", Status: entities.ParticipantConnected},
			},
		},
	}

	resp := h.Handle(event)

	wantTypes := []entities.ActionType{
		entities.ActionPause,
		entities.ActionSpeak,
		entities.ActionPause,
		entities.ActionSendDigits,
		entities.ActionPause,
		entities.ActionSpeak,
		entities.ActionPause,
		entities.ActionRecordAudio,
	}
	if len(resp.Actions) != len(wantTypes) {
		t.Fatalf("expected %d actions, got %d", len(wantTypes), len(resp.Actions))
	}
	for i, want := range wantTypes {
		if resp.Actions[i].Type != want {
			t.Errorf("action %d type = %q, want %q", i, resp.Actions[i].Type, want)
		}
	}

	digits := resp.Actions[3].Parameters
	if digits.Digits != "12345#" {
		t.Errorf("digits = %q, want %q", digits.Digits, "12345#")
	}
	if digits.ToneDurationInMilliseconds != 300 {
		t.Errorf("tone duration = %d", digits.ToneDurationInMilliseconds)
	}

	record := resp.Actions[7].Parameters
	if record.DurationInSeconds != 7200 || record.SilenceDurationInSeconds != 30 || record.SilenceThreshold != 100 {
		t.Errorf("record parameters = %+v", record)
	}
	if len(record.RecordingTerminators) != 1 || record.RecordingTerminators[0] != "#" {
		t.Errorf("recording terminators = %v", record.RecordingTerminators)
	}
	if record.RecordingDestination == nil {
		t.Fatal("missing recording destination")
	}
	if record.RecordingDestination.BucketName != "meeting-recordings" {
		t.Errorf("bucket = %q", record.RecordingDestination.BucketName)
	}
	if record.RecordingDestination.Prefix != "meeting-mp3/12345.1718000000000" {
		t.Errorf("prefix = %q", record.RecordingDestination.Prefix)
	}
}

func TestJoinDigitsPerPlatform(t *testing.T) {
	tests := []struct {
		platform string
		want     string
	}{
		{"Webex", "55#,,,,,,,,,,,,,,,#"},
		{"Zoom", "55#,,,,,,,,,,,,,,,,,,,,#"},
		{"Chime", "55#"},
		{"Google", "55#"},
		{"Teams", "55#"},
	}
	for _, tt := range tests {
		if got := joinDigits(tt.platform, "55"); got != tt.want {
			t.Errorf("joinDigits(%s) = %q, want %q", tt.platform, got, tt.want)
		}
	}
}

func TestHangupDropsConnectedLegsOnly(t *testing.T) {
	h := newTestHandler()

	event := &entities.SIPMediaApplicationEvent{
		SchemaVersion:       entities.SchemaVersion10,
		InvocationEventType: entities.EventHangup,
		CallDetails: entities.CallDetails{
			Participants: []entities.CallParticipant{
				{CallID: "call-a", Status: entities.ParticipantConnected},
				{CallID: "call-b", Status: "Disconnected"},
				{CallID: "call-c", Status: entities.ParticipantConnected},
			},
		},
	}

	resp := h.Handle(event)

	if len(resp.Actions) != 2 {
		t.Fatalf("expected 2 hangup actions, got %d", len(resp.Actions))
	}
	for _, a := range resp.Actions {
		if a.Type != entities.ActionHangup {
			t.Errorf("action type = %q", a.Type)
		}
		if a.Parameters.SipResponseCode != "0" {
			t.Errorf("sip response code = %q", a.Parameters.SipResponseCode)
		}
	}
	if resp.Actions[0].Parameters.CallID != "call-a" || resp.Actions[1].Parameters.CallID != "call-c" {
		t.Errorf("hangup call ids = %q, %q", resp.Actions[0].Parameters.CallID, resp.Actions[1].Parameters.CallID)
	}
}

func TestRingingAndActionEventsReturnNoActions(t *testing.T) {
	h := newTestHandler()

	for _, et := range []entities.InvocationEventType{
		entities.EventRinging,
		entities.EventActionSuccessful,
		entities.EventActionInterrupted,
		entities.EventActionFailed,
	} {
		resp := h.Handle(&entities.SIPMediaApplicationEvent{
			SchemaVersion:       entities.SchemaVersion10,
			InvocationEventType: et,
			CallDetails: entities.CallDetails{
				TransactionAttributes: map[string]string{entities.AttrMeetingID: "1"},
			},
		})
		if len(resp.Actions) != 0 {
			t.Errorf("%s: expected no actions, got %d", et, len(resp.Actions))
		}
		if resp.TransactionAttributes[entities.AttrMeetingID] != "1" {
			t.Errorf("%s: attributes not echoed back", et)
		}
	}
}
