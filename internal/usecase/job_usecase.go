package usecase

import (
	"context"
	"errors"
	"foamjobs/internal/domain/entities"
	"foamjobs/internal/domain/lifecycle"
	"foamjobs/internal/domain/metrics"
	"foamjobs/internal/usecase/interfaces"
	"foamjobs/pkg/schema"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrInvalidJobID        = errors.New("invalid job id")
	ErrInvalidCustomerName = errors.New("invalid customer name")
	ErrInvalidScheduleDate = errors.New("invalid schedule date")
	ErrInvalidTotals       = errors.New("invalid calculation totals")
	ErrInvalidActuals      = errors.New("invalid actuals")
	ErrInvalidStrokeDelta  = errors.New("invalid stroke delta")
	ErrInvalidFoamFamily   = errors.New("invalid foam family")
	ErrActionNotAllowed    = errors.New("action not allowed for current job status")
	ErrJobStateChanged     = errors.New("job status changed concurrently")
)

// IJobUseCase exposes the job pipeline operations.
//
// These operations map to the pipeline board and job detail screens:
//   - "Next Step" button resolution => NextStep()
//   - draft "Mark Sold" => MarkSold(), work order "Generate Invoice" => GenerateInvoice()
//   - schedule picker on an unscheduled work order => Schedule()
//   - metrics panel (margin/profit, sets, strokes) => Metrics()
//   - crew actuals form => RecordActuals(); rig stroke feed => AccumulateRigStrokes()

type IJobUseCase interface {
	CreateJob(ctx context.Context, j entities.Job) (entities.Job, error)
	GetByID(ctx context.Context, id string) (entities.Job, error)
	List(ctx context.Context) ([]entities.Job, error)
	NextStep(ctx context.Context, id string) (entities.Job, *lifecycle.NextStep, error)
	Metrics(ctx context.Context, id string) (entities.Job, metrics.View, error)
	MarkSold(ctx context.Context, id string) (entities.Job, error)
	Schedule(ctx context.Context, id string, date time.Time) (entities.Job, error)
	GenerateInvoice(ctx context.Context, id string) (entities.Job, error)
	RecordActuals(ctx context.Context, id string, a entities.JobActuals) (entities.Job, error)
	AccumulateRigStrokes(ctx context.Context, id string, family entities.FoamFamily, strokes int64) (entities.Job, error)
	UpdateTotals(ctx context.Context, id string, totals entities.CalculationResults) (entities.Job, error)
}

type JobUseCase struct {
	repo   interfaces.IJobRepository
	events interfaces.IEventPublisher
}

var _ IJobUseCase = (*JobUseCase)(nil)

// NewJobUseCase builds the job pipeline usecase. events may be nil when no
// message bus is configured; lifecycle announcements are then skipped.
func NewJobUseCase(repo interfaces.IJobRepository, events interfaces.IEventPublisher) *JobUseCase {
	return &JobUseCase{repo: repo, events: events}
}

func (u *JobUseCase) CreateJob(ctx context.Context, j entities.Job) (entities.Job, error) {
	j.CustomerName = strings.TrimSpace(j.CustomerName)
	if j.CustomerName == "" {
		return entities.Job{}, ErrInvalidCustomerName
	}
	if !validTotals(j.Totals) {
		return entities.Job{}, ErrInvalidTotals
	}

	// Every job enters the pipeline as an unscheduled draft with no actuals.
	now := time.Now().UTC()
	j.ID = uuid.NewString()
	j.Status = entities.JobStatusDraft
	j.ScheduledDate = nil
	j.Actuals = nil
	j.CreatedAt = now
	j.UpdatedAt = now
	return u.repo.Create(ctx, j)
}

func (u *JobUseCase) GetByID(ctx context.Context, id string) (entities.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Job{}, ErrInvalidJobID
	}

	j, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Job{}, err
	}
	if j.ID == "" {
		return entities.Job{}, ErrJobNotFound
	}
	return j, nil
}

func (u *JobUseCase) List(ctx context.Context) ([]entities.Job, error) {
	return u.repo.List(ctx)
}

func (u *JobUseCase) NextStep(ctx context.Context, id string) (entities.Job, *lifecycle.NextStep, error) {
	j, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Job{}, nil, err
	}

	step, err := lifecycle.ResolveForJob(j)
	if err != nil {
		return entities.Job{}, nil, err
	}
	return j, step, nil
}

func (u *JobUseCase) Metrics(ctx context.Context, id string) (entities.Job, metrics.View, error) {
	j, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Job{}, metrics.View{}, err
	}
	return j, metrics.Derive(j, j.Totals), nil
}

func (u *JobUseCase) MarkSold(ctx context.Context, id string) (entities.Job, error) {
	return u.advance(ctx, id, lifecycle.ActionMarkSold)
}

func (u *JobUseCase) GenerateInvoice(ctx context.Context, id string) (entities.Job, error) {
	return u.advance(ctx, id, lifecycle.ActionGenerateInvoice)
}

// advance executes a status-advancing action. The action must match the one
// the lifecycle resolver reports for the job's current state, and the store
// update is conditioned on that same state so a concurrent advance loses
// cleanly instead of skipping a status.
func (u *JobUseCase) advance(ctx context.Context, id string, action lifecycle.Action) (entities.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Job{}, ErrInvalidJobID
	}

	j, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Job{}, err
	}
	if j.ID == "" {
		return entities.Job{}, ErrJobNotFound
	}

	step, err := lifecycle.ResolveForJob(j)
	if err != nil {
		return entities.Job{}, err
	}
	if step == nil || step.Action != action || !step.AdvancesStatus {
		return entities.Job{}, ErrActionNotAllowed
	}

	updated, err := u.repo.AdvanceStatus(ctx, id, j.Status, step.Target)
	if err != nil {
		return entities.Job{}, err
	}
	if updated.ID == "" {
		return entities.Job{}, ErrJobStateChanged
	}

	u.publishLifecycle(updated, j.Status, step.Action)
	return updated, nil
}

func (u *JobUseCase) Schedule(ctx context.Context, id string, date time.Time) (entities.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Job{}, ErrInvalidJobID
	}
	if date.IsZero() {
		return entities.Job{}, ErrInvalidScheduleDate
	}

	j, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Job{}, err
	}
	if j.ID == "" {
		return entities.Job{}, ErrJobNotFound
	}

	// Only work orders carry an install date. Re-scheduling an already
	// scheduled work order is allowed.
	if j.Status != entities.JobStatusWorkOrder {
		return entities.Job{}, ErrActionNotAllowed
	}

	updated, err := u.repo.SetScheduledDate(ctx, id, date.UTC())
	if err != nil {
		return entities.Job{}, err
	}
	if updated.ID == "" {
		// The write is conditioned on work_order. The job existed above, so
		// a lost condition means it advanced under us.
		return entities.Job{}, ErrJobStateChanged
	}
	return updated, nil
}

func (u *JobUseCase) RecordActuals(ctx context.Context, id string, a entities.JobActuals) (entities.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Job{}, ErrInvalidJobID
	}
	if a.OpenCell.Sets < 0 || a.OpenCell.Strokes < 0 || a.ClosedCell.Sets < 0 || a.ClosedCell.Strokes < 0 {
		return entities.Job{}, ErrInvalidActuals
	}

	j, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Job{}, err
	}
	if j.ID == "" {
		return entities.Job{}, ErrJobNotFound
	}
	if !j.Status.IsValid() {
		return entities.Job{}, lifecycle.ErrUnknownStatus
	}
	// Usage starts with the work order; drafts never carry actuals.
	if j.Status == entities.JobStatusDraft {
		return entities.Job{}, ErrActionNotAllowed
	}

	a.RecordedAt = time.Now().UTC()
	updated, err := u.repo.SetActuals(ctx, id, a)
	if err != nil {
		return entities.Job{}, err
	}
	if updated.ID == "" {
		return entities.Job{}, ErrJobNotFound
	}
	return updated, nil
}

func (u *JobUseCase) AccumulateRigStrokes(ctx context.Context, id string, family entities.FoamFamily, strokes int64) (entities.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Job{}, ErrInvalidJobID
	}
	if !family.IsValid() {
		return entities.Job{}, ErrInvalidFoamFamily
	}
	if strokes <= 0 {
		return entities.Job{}, ErrInvalidStrokeDelta
	}

	updated, err := u.repo.AddActualStrokes(ctx, id, family, strokes)
	if err != nil {
		return entities.Job{}, err
	}
	if updated.ID == "" {
		return entities.Job{}, ErrJobNotFound
	}
	return updated, nil
}

func (u *JobUseCase) UpdateTotals(ctx context.Context, id string, totals entities.CalculationResults) (entities.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Job{}, ErrInvalidJobID
	}
	if !validTotals(totals) {
		return entities.Job{}, ErrInvalidTotals
	}

	updated, err := u.repo.UpdateTotals(ctx, id, totals)
	if err != nil {
		return entities.Job{}, err
	}
	if updated.ID == "" {
		return entities.Job{}, ErrJobNotFound
	}
	return updated, nil
}

// publishLifecycle is best effort: a dead bus never fails the request.
func (u *JobUseCase) publishLifecycle(j entities.Job, from entities.JobStatus, action lifecycle.Action) {
	if u.events == nil {
		return
	}
	evt := schema.JobLifecycleEvent{
		JobID:        j.ID,
		CustomerName: j.CustomerName,
		FromStatus:   from.String(),
		ToStatus:     j.Status.String(),
		Action:       string(action),
		HappenedAt:   time.Now().Unix(),
	}
	if err := u.events.PublishJobLifecycle(evt); err != nil {
		log.Printf("[job][usecase] lifecycle publish failed job_id=%s action=%s err=%v", j.ID, action, err)
	}
}

func validTotals(t entities.CalculationResults) bool {
	return t.MaterialCost >= 0 && t.LaborCost >= 0 && t.MiscExpenses >= 0 &&
		t.OpenCellSets >= 0 && t.OpenCellStrokes >= 0 &&
		t.ClosedCellSets >= 0 && t.ClosedCellStrokes >= 0
}
