package interfaces

import (
	"foamjobs/pkg/schema"
)

// IEventPublisher abstracts the message bus (e.g. NATS) used to announce job
// pipeline changes. Publishing is best effort: callers log failures and move on.
type IEventPublisher interface {
	PublishJobLifecycle(evt schema.JobLifecycleEvent) error
	PublishScheduleOverdue(evt schema.ScheduleOverdueEvent) error
}
