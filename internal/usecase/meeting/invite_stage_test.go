package meeting

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"
)

type fakeInvitationScheduler struct {
	received []string
}

func (f *fakeInvitationScheduler) ScheduleFromInvitation(_ context.Context, meetingInfo string) error {
	f.received = append(f.received, meetingInfo)
	return nil
}

func TestInviteStageSkipsArchivedCopies(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"meeting-invite/123456789.1765432100000.txt", 0},
		{"meeting-invite/standup.txt", 1},
		{"meeting-invite/notes.v2.txt", 1},
	}
	for _, tt := range tests {
		store := &fakeInviteStore{objects: map[string]string{tt.key: "invite text"}}
		scheduler := &fakeInvitationScheduler{}
		stage := NewInviteStage(store, scheduler, zap.NewNop())

		if err := stage.Handle(context.Background(), tt.key); err != nil {
			t.Fatalf("key %q: unexpected error: %v", tt.key, err)
		}
		if len(scheduler.received) != tt.want {
			t.Errorf("key %q: scheduled %d times, want %d", tt.key, len(scheduler.received), tt.want)
		}
	}
}

func TestInviteStageDialsDroppedInvitationImmediately(t *testing.T) {
	meetingRepo := newFakeMeetingRepo()
	invites := &fakeInviteStore{objects: map[string]string{"meeting-invite/standup.txt": "zoom invite text"}}
	dialer := &fakeDialer{}
	svc := NewService(meetingRepo, newFakeScheduleRepo(), &fakeCompleter{answer: `{"meetingId": "123456789", "meetingType": "Zoom", "dialIn": "N/A"}`}, dialer, invites, "meeting-summarizer", zap.NewNop())
	svc.now = fixedNow
	stage := NewInviteStage(invites, svc, zap.NewNop())

	if err := stage.Handle(context.Background(), "meeting-invite/standup.txt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(meetingRepo.created) != 1 {
		t.Fatalf("expected 1 meeting row, got %d", len(meetingRepo.created))
	}
	if len(dialer.dialed) != 1 {
		t.Fatalf("expected immediate dial, got %d", len(dialer.dialed))
	}
	if dialer.dialed[0].ScheduledTime != fixedNow().UnixMilli() {
		t.Errorf("scheduled time = %d, want drop time", dialer.dialed[0].ScheduledTime)
	}

	// The service re-archives the invitation under the artifact naming;
	// that copy must not trigger another round.
	archivedKey := fmt.Sprintf("meeting-invite/123456789.%d.txt", fixedNow().UnixMilli())
	if invites.objects[archivedKey] != "zoom invite text" {
		t.Fatalf("archive = %v", invites.objects)
	}
	if err := stage.Handle(context.Background(), archivedKey); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dialer.dialed) != 1 {
		t.Errorf("archived copy re-processed, dials = %d", len(dialer.dialed))
	}
}
