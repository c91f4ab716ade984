// internal/infrastructure/bus/publisher.go
package bus

import (
	"os"

	"foamjobs/internal/usecase/interfaces"
	"foamjobs/pkg/schema"
)

const (
	defaultLifecycleSubject       = "jobs.lifecycle"
	defaultScheduleOverdueSubject = "jobs.schedule.overdue"
)

// EventPublisher emits job domain events on NATS.
//
// Publishing is best-effort by contract (interfaces.IEventPublisher): the
// usecases log and continue when a publish fails, so a broker outage never
// blocks the job pipeline.

type EventPublisher struct {
	client           *Client
	lifecycleSubject string
	overdueSubject   string
}

var _ interfaces.IEventPublisher = (*EventPublisher)(nil)

func NewEventPublisher(client *Client) *EventPublisher {
	return &EventPublisher{
		client:           client,
		lifecycleSubject: getenvDefault("JOB_LIFECYCLE_SUBJECT", defaultLifecycleSubject),
		overdueSubject:   getenvDefault("SCHEDULE_OVERDUE_SUBJECT", defaultScheduleOverdueSubject),
	}
}

func (p *EventPublisher) PublishJobLifecycle(evt schema.JobLifecycleEvent) error {
	return p.client.PublishJSON(p.lifecycleSubject, evt)
}

func (p *EventPublisher) PublishScheduleOverdue(evt schema.ScheduleOverdueEvent) error {
	return p.client.PublishJSON(p.overdueSubject, evt)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
