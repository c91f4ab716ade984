// internal/worker/schedule_sweep.go
package worker

import (
	"context"
	"time"

	"foamjobs/internal/domain/entities"
	"foamjobs/internal/usecase/interfaces"
	"foamjobs/pkg/schema"

	"go.uber.org/zap"
)

// ScheduleSweep flags work orders whose scheduled date has passed without an
// invoice. The worker's cron runs it once a day.
type ScheduleSweep struct {
	repo   interfaces.IJobRepository
	events interfaces.IEventPublisher
	logger *zap.Logger
}

func NewScheduleSweep(repo interfaces.IJobRepository, events interfaces.IEventPublisher, logger *zap.Logger) *ScheduleSweep {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleSweep{repo: repo, events: events, logger: logger}
}

// Run lists all jobs and publishes one overdue event per late work order.
func (s *ScheduleSweep) Run(ctx context.Context) error {
	jobs, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("schedule sweep list failed", zap.Error(err))
		return err
	}

	for _, o := range FindOverdueWorkOrders(jobs, time.Now()) {
		s.logger.Warn("work order past its scheduled date",
			zap.String("job_id", o.Job.ID),
			zap.String("customer_name", o.Job.CustomerName),
			zap.Time("scheduled_date", *o.Job.ScheduledDate),
			zap.Int("days_overdue", o.DaysOverdue))
		if s.events == nil {
			continue
		}
		evt := schema.ScheduleOverdueEvent{
			JobID:         o.Job.ID,
			CustomerName:  o.Job.CustomerName,
			ScheduledDate: o.Job.ScheduledDate.UTC().Format(time.RFC3339),
			DaysOverdue:   o.DaysOverdue,
			HappenedAt:    time.Now().Unix(),
		}
		if err := s.events.PublishScheduleOverdue(evt); err != nil {
			s.logger.Warn("overdue publish failed", zap.String("job_id", o.Job.ID), zap.Error(err))
		}
	}
	return nil
}

// OverdueJob pairs a late work order with how many whole days late it is.
type OverdueJob struct {
	Job         entities.Job
	DaysOverdue int
}

// FindOverdueWorkOrders returns the work orders whose scheduled date falls on
// an earlier UTC day than now. A work order scheduled for today is not
// overdue yet.
func FindOverdueWorkOrders(jobs []entities.Job, now time.Time) []OverdueJob {
	today := startOfUTCDay(now)
	var overdue []OverdueJob
	for _, j := range jobs {
		if j.Status != entities.JobStatusWorkOrder || j.ScheduledDate == nil {
			continue
		}
		day := startOfUTCDay(*j.ScheduledDate)
		if !day.Before(today) {
			continue
		}
		overdue = append(overdue, OverdueJob{
			Job:         j,
			DaysOverdue: int(today.Sub(day).Hours() / 24),
		})
	}
	return overdue
}

func startOfUTCDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
