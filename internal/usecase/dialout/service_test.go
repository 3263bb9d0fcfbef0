package dialout

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/infrastructure/external/telephony"
)

type fakePlacer struct {
	calls []telephony.CreateCallRequest
	err   error
}

func (f *fakePlacer) CreateSipMediaApplicationCall(_ context.Context, req telephony.CreateCallRequest) (*telephony.CreateCallResponse, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &telephony.CreateCallResponse{TransactionID: "tx-1"}, nil
}

func newTestService(placer *fakePlacer) *Service {
	return NewService(placer, "+15550001111", "sma-app-1", zap.NewNop())
}

func TestDialBridgeNumbers(t *testing.T) {
	tests := []struct {
		platform string
		dialIn   string
		wantTo   string
	}{
		{"Chime", "", "+18555524463"},
		{"Webex", "", "+18446213956"},
		{"Zoom", "", "+13017158592"},
		{"Google", "+15559998888", "+15559998888"},
		{"Teams", "+15557776666", "+15557776666"},
	}

	for _, tt := range tests {
		placer := &fakePlacer{}
		svc := newTestService(placer)

		err := svc.Dial(context.Background(), entities.DialOutInput{
			MeetingID:     "12345",
			MeetingType:   tt.platform,
			ScheduledTime: 1718000000000,
			DialIn:        tt.dialIn,
		})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.platform, err)
		}
		if len(placer.calls) != 1 {
			t.Fatalf("%s: expected 1 call, got %d", tt.platform, len(placer.calls))
		}

		call := placer.calls[0]
		if call.ToPhoneNumber != tt.wantTo {
			t.Errorf("%s: to number = %q, want %q", tt.platform, call.ToPhoneNumber, tt.wantTo)
		}
		if call.FromPhoneNumber != "+15550001111" {
			t.Errorf("%s: from number = %q", tt.platform, call.FromPhoneNumber)
		}
		if call.SipMediaApplicationID != "sma-app-1" {
			t.Errorf("%s: media app id = %q", tt.platform, call.SipMediaApplicationID)
		}
		if got := call.ArgumentsMap[entities.ArgMeetingID]; got != "12345" {
			t.Errorf("%s: meetingID argument = %q", tt.platform, got)
		}
		if got := call.ArgumentsMap[entities.ArgScheduledTime]; got != "1718000000000" {
			t.Errorf("%s: scheduledTime argument = %q", tt.platform, got)
		}
	}
}

func TestDialUnsupportedPlatformSkips(t *testing.T) {
	placer := &fakePlacer{}
	svc := newTestService(placer)

	err := svc.Dial(context.Background(), entities.DialOutInput{
		MeetingID:     "12345",
		MeetingType:   "Skype",
		ScheduledTime: 1718000000000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(placer.calls) != 0 {
		t.Errorf("expected no calls, got %d", len(placer.calls))
	}
}

func TestDialMissingFieldsRejected(t *testing.T) {
	placer := &fakePlacer{}
	svc := newTestService(placer)

	if err := svc.Dial(context.Background(), entities.DialOutInput{MeetingType: "Zoom", ScheduledTime: 1}); err == nil {
		t.Error("expected error for missing meeting id")
	}
	if err := svc.Dial(context.Background(), entities.DialOutInput{MeetingID: "1", ScheduledTime: 1}); err == nil {
		t.Error("expected error for missing meeting type")
	}
	if err := svc.Dial(context.Background(), entities.DialOutInput{MeetingID: "1", MeetingType: "Zoom"}); err == nil {
		t.Error("expected error for missing scheduled time")
	}
	if len(placer.calls) != 0 {
		t.Errorf("expected no calls, got %d", len(placer.calls))
	}
}

func TestDialMissingDialInForTeams(t *testing.T) {
	placer := &fakePlacer{}
	svc := newTestService(placer)

	err := svc.Dial(context.Background(), entities.DialOutInput{
		MeetingID:     "12345",
		MeetingType:   "Teams",
		ScheduledTime: 1718000000000,
	})
	if err == nil {
		t.Fatal("expected error when Teams meeting has no dial-in number")
	}
	if len(placer.calls) != 0 {
		t.Errorf("expected no calls, got %d", len(placer.calls))
	}
}

func TestDialPlacerErrorWrapped(t *testing.T) {
	placer := &fakePlacer{err: errors.New("boom")}
	svc := newTestService(placer)

	err := svc.Dial(context.Background(), entities.DialOutInput{
		MeetingID:     "12345",
		MeetingType:   "Chime",
		ScheduledTime: 1718000000000,
	})
	if err == nil {
		t.Fatal("expected error from placer failure")
	}
}
