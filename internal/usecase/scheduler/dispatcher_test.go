package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
)

type fakeScheduleRepo struct {
	schedules map[string]*entities.Schedule
	deleted   []string
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: map[string]*entities.Schedule{}}
}

func (f *fakeScheduleRepo) Create(_ context.Context, s *entities.Schedule) error {
	f.schedules[s.Name] = s
	return nil
}

func (f *fakeScheduleRepo) Get(_ context.Context, _, name string) (*entities.Schedule, error) {
	return f.schedules[name], nil
}

func (f *fakeScheduleRepo) ListGroup(_ context.Context, _ string) ([]entities.Schedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) ListDue(_ context.Context, _ string, now time.Time) ([]entities.Schedule, error) {
	var out []entities.Schedule
	for _, s := range f.schedules {
		if s.State == entities.ScheduleStateEnabled && !s.FireAt.After(now) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, _, name string) error {
	delete(f.schedules, name)
	f.deleted = append(f.deleted, name)
	return nil
}

type fakeDialer struct {
	dialed []entities.DialOutInput
	err    error
}

func (f *fakeDialer) Dial(_ context.Context, input entities.DialOutInput) error {
	f.dialed = append(f.dialed, input)
	return f.err
}

func mustSchedule(t *testing.T, repo *fakeScheduleRepo, meetingID string, fireAt time.Time) *entities.Schedule {
	t.Helper()
	input := entities.DialOutInput{MeetingID: meetingID, MeetingType: "Zoom", ScheduledTime: fireAt.UnixMilli()}
	s, err := entities.NewSchedule("meeting-summarizer", input, fireAt)
	if err != nil {
		t.Fatalf("new schedule: %v", err)
	}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("create schedule: %v", err)
	}
	return s
}

func TestTickFiresDueAndDeletes(t *testing.T) {
	repo := newFakeScheduleRepo()
	dialer := &fakeDialer{}
	d := NewDispatcher(repo, dialer, "meeting-summarizer", "@every 30s", zap.NewNop())

	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	due := mustSchedule(t, repo, "111", now.Add(-time.Minute))
	future := mustSchedule(t, repo, "222", now.Add(time.Hour))

	d.Tick(context.Background())

	if len(dialer.dialed) != 1 || dialer.dialed[0].MeetingID != "111" {
		t.Fatalf("dialed = %+v", dialer.dialed)
	}
	if _, ok := repo.schedules[due.Name]; ok {
		t.Error("fired schedule not deleted")
	}
	if _, ok := repo.schedules[future.Name]; !ok {
		t.Error("future schedule should remain")
	}
}

func TestTickKeepsScheduleOnDialFailure(t *testing.T) {
	repo := newFakeScheduleRepo()
	dialer := &fakeDialer{err: errors.New("boom")}
	d := NewDispatcher(repo, dialer, "meeting-summarizer", "@every 30s", zap.NewNop())

	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	due := mustSchedule(t, repo, "111", now.Add(-time.Minute))

	d.Tick(context.Background())

	if _, ok := repo.schedules[due.Name]; !ok {
		t.Error("schedule should survive a failed dial for the next tick")
	}
}

func TestTickDropsUndecodableSchedule(t *testing.T) {
	repo := newFakeScheduleRepo()
	dialer := &fakeDialer{}
	d := NewDispatcher(repo, dialer, "meeting-summarizer", "@every 30s", zap.NewNop())

	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	repo.schedules["broken"] = &entities.Schedule{
		Name:   "broken",
		State:  entities.ScheduleStateEnabled,
		FireAt: now.Add(-time.Minute),
		Input:  datatypes.JSON([]byte("not json")),
	}

	d.Tick(context.Background())

	if len(dialer.dialed) != 0 {
		t.Errorf("dialed = %+v", dialer.dialed)
	}
	if _, ok := repo.schedules["broken"]; ok {
		t.Error("undecodable schedule should be deleted")
	}
}
