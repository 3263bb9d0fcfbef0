package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/repositories"
)

// Dialer places the outbound call for a due schedule
type Dialer interface {
	Dial(ctx context.Context, input entities.DialOutInput) error
}

// Dispatcher fires one-shot schedules. Every tick it loads schedules whose
// fire time has passed, dials each one, and deletes the row. A failed dial
// leaves the schedule in place so the next tick retries it.
type Dispatcher struct {
	scheduleRepo repositories.ScheduleRepository
	dialer       Dialer
	groupName    string
	tickSpec     string
	cron         *cron.Cron
	now          func() time.Time
	logger       *zap.Logger
}

// NewDispatcher creates a schedule dispatcher
func NewDispatcher(scheduleRepo repositories.ScheduleRepository, dialer Dialer, groupName, tickSpec string, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		scheduleRepo: scheduleRepo,
		dialer:       dialer,
		groupName:    groupName,
		tickSpec:     tickSpec,
		now:          time.Now,
		logger:       logger,
	}
}

// Start begins ticking until Stop is called
func (d *Dispatcher) Start(ctx context.Context) error {
	d.cron = cron.New()
	_, err := d.cron.AddFunc(d.tickSpec, func() {
		d.Tick(ctx)
	})
	if err != nil {
		return err
	}
	d.cron.Start()
	d.logger.Info("schedule dispatcher started",
		zap.String("group", d.groupName),
		zap.String("tick", d.tickSpec))
	return nil
}

// Stop halts ticking and waits for a running tick to finish
func (d *Dispatcher) Stop() {
	if d.cron != nil {
		<-d.cron.Stop().Done()
	}
}

// Tick fires every due schedule once
func (d *Dispatcher) Tick(ctx context.Context) {
	due, err := d.scheduleRepo.ListDue(ctx, d.groupName, d.now())
	if err != nil {
		d.logger.Error("failed to list due schedules", zap.Error(err))
		return
	}

	for _, schedule := range due {
		input, err := schedule.DecodeInput()
		if err != nil {
			// Undecodable rows can never fire; drop them instead of retrying forever.
			d.logger.Error("deleting schedule with undecodable input",
				zap.String("name", schedule.Name),
				zap.Error(err))
			if err := d.scheduleRepo.Delete(ctx, d.groupName, schedule.Name); err != nil {
				d.logger.Error("failed to delete schedule", zap.String("name", schedule.Name), zap.Error(err))
			}
			continue
		}

		d.logger.Info("firing schedule",
			zap.String("name", schedule.Name),
			zap.String("meeting_id", input.MeetingID))
		if err := d.dialer.Dial(ctx, input); err != nil {
			d.logger.Error("scheduled dial-out failed, will retry next tick",
				zap.String("name", schedule.Name),
				zap.Error(err))
			continue
		}

		if err := d.scheduleRepo.Delete(ctx, d.groupName, schedule.Name); err != nil {
			d.logger.Error("failed to delete fired schedule",
				zap.String("name", schedule.Name),
				zap.Error(err))
		}
	}
}
