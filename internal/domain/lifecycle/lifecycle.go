// Package lifecycle decides which commercial action is legal next for a job.
//
// Status graph:
//
//	draft ──mark_sold──► work_order ──generate_invoice──► invoiced ──record_payment──► paid
//	                         │
//	                         └─schedule_job (assigns a date, status unchanged)
//
// paid is terminal. A work order without a scheduled date must be scheduled
// before it can be invoiced; the presence of the date is the only input
// besides the status itself. The resolver never performs a transition; it
// only reports the one that is currently valid, and the surrounding service
// executes it.
package lifecycle

import (
	"errors"

	"foamjobs/internal/domain/entities"
)

// ErrUnknownStatus reports a status outside the four known lifecycle
// positions. An unknown stored value is never silently normalized into a
// fallback transition.
var ErrUnknownStatus = errors.New("unknown job status")

// Action is the stable identifier a caller uses to dispatch to the external
// handler that actually performs the transition.
type Action string

const (
	ActionMarkSold        Action = "mark_sold"
	ActionScheduleJob     Action = "schedule_job"
	ActionGenerateInvoice Action = "generate_invoice"
	ActionRecordPayment   Action = "record_payment"
)

// NextStep is the single legal next action for a job. Target is the status
// the action moves the job to; for schedule_job the status does not change
// and AdvancesStatus is false.
type NextStep struct {
	Action         Action
	Label          string
	Target         entities.JobStatus
	AdvancesStatus bool
}

// transitions is the full state table. Every known status maps to an entry;
// a nil outcome means the state is terminal. The work_order entry is the only
// one that reads the scheduled-date flag.
var transitions = map[entities.JobStatus]func(hasScheduledDate bool) *NextStep{
	entities.JobStatusDraft: func(bool) *NextStep {
		return &NextStep{
			Action:         ActionMarkSold,
			Label:          "Mark Sold",
			Target:         entities.JobStatusWorkOrder,
			AdvancesStatus: true,
		}
	},
	entities.JobStatusWorkOrder: func(hasScheduledDate bool) *NextStep {
		if !hasScheduledDate {
			return &NextStep{
				Action:         ActionScheduleJob,
				Label:          "Schedule Job",
				Target:         entities.JobStatusWorkOrder,
				AdvancesStatus: false,
			}
		}
		return &NextStep{
			Action:         ActionGenerateInvoice,
			Label:          "Generate Invoice",
			Target:         entities.JobStatusInvoiced,
			AdvancesStatus: true,
		}
	},
	entities.JobStatusInvoiced: func(bool) *NextStep {
		return &NextStep{
			Action:         ActionRecordPayment,
			Label:          "Record Payment",
			Target:         entities.JobStatusPaid,
			AdvancesStatus: true,
		}
	},
	entities.JobStatusPaid: func(bool) *NextStep { return nil },
}

// ResolveNextStep maps (status, scheduled-date present?) to the single legal
// next step. A nil step with nil error means the lifecycle is complete.
func ResolveNextStep(status entities.JobStatus, hasScheduledDate bool) (*NextStep, error) {
	resolve, ok := transitions[status]
	if !ok {
		return nil, ErrUnknownStatus
	}
	return resolve(hasScheduledDate), nil
}

// ResolveForJob is ResolveNextStep applied to a job record.
func ResolveForJob(j entities.Job) (*NextStep, error) {
	return ResolveNextStep(j.Status, j.HasScheduledDate())
}

// ParseStatus converts a raw string to a JobStatus, returning ErrUnknownStatus
// for values outside the lifecycle.
func ParseStatus(s string) (entities.JobStatus, error) {
	st := entities.JobStatus(s)
	if !st.IsValid() {
		return "", ErrUnknownStatus
	}
	return st, nil
}
