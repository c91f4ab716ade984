package entities

import "time"

// JobStatus represents the commercial lifecycle of a foam insulation job.
//
// Domain notes:
//   - The job-service is the source of truth for job/payment state.
//   - Status only moves forward: draft → work_order → invoiced → paid.
//   - Which action is legal next is decided by internal/domain/lifecycle.

type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusWorkOrder JobStatus = "work_order"
	JobStatusInvoiced  JobStatus = "invoiced"
	JobStatusPaid      JobStatus = "paid"
)

// IsValid reports whether s is one of the four known lifecycle positions.
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusDraft, JobStatusWorkOrder, JobStatusInvoiced, JobStatusPaid:
		return true
	}
	return false
}

func (s JobStatus) String() string { return string(s) }

// FoamFamily identifies one of the two chemical families a rig sprays.
type FoamFamily string

const (
	FoamFamilyOpenCell   FoamFamily = "open_cell"
	FoamFamilyClosedCell FoamFamily = "closed_cell"
)

// IsValid reports whether f is one of the two known chemical families.
func (f FoamFamily) IsValid() bool {
	return f == FoamFamilyOpenCell || f == FoamFamilyClosedCell
}

func (f FoamFamily) String() string { return string(f) }

// SurfaceSettings describes the foam applied to one surface (wall or roof).
// Descriptive only; no decision logic reads these.
type SurfaceSettings struct {
	MaterialType string  `json:"material_type"`
	ThicknessIn  float64 `json:"thickness_in"`
}

// MaterialSettings carries optional per-job strokes-per-set overrides.
// A zero or negative override is treated as absent; resolution against the
// default rate lives in internal/domain/metrics.
type MaterialSettings struct {
	OpenCellStrokesPerSet   float64 `json:"open_cell_strokes_per_set,omitempty"`
	ClosedCellStrokesPerSet float64 `json:"closed_cell_strokes_per_set,omitempty"`
}

// FamilyActuals is crew/rig recorded real-world usage for one chemical family.
// Sets are drum counts (fractional allowed), strokes are discrete dispenser counts.
type FamilyActuals struct {
	Sets    float64 `json:"sets"`
	Strokes int64   `json:"strokes"`
}

// JobActuals is the recorded real-world material usage for a job.
// Absent until a crew or the spray rig records usage; once present it is
// updated in place and never removed.
type JobActuals struct {
	OpenCell   FamilyActuals `json:"open_cell"`
	ClosedCell FamilyActuals `json:"closed_cell"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// Job is the insulation job persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Optionality:
//   - ScheduledDate is set once a work order has been scheduled and is the
//     disambiguator between "needs scheduling" and "ready to invoice".
//   - Materials and Actuals are nil until provided; nil Materials means the
//     default consumption rate applies.

type Job struct {
	ID            string             `json:"id"`
	CustomerName  string             `json:"customer_name"`
	Status        JobStatus          `json:"status"`
	ScheduledDate *time.Time         `json:"scheduled_date,omitempty"`
	WallSettings  SurfaceSettings    `json:"wall_settings"`
	RoofSettings  SurfaceSettings    `json:"roof_settings"`
	Materials     *MaterialSettings  `json:"materials,omitempty"`
	Actuals       *JobActuals        `json:"actuals,omitempty"`
	Totals        CalculationResults `json:"totals"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// HasScheduledDate reports whether a schedule has been assigned.
func (j Job) HasScheduledDate() bool {
	return j.ScheduledDate != nil && !j.ScheduledDate.IsZero()
}
