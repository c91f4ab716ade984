package interfaces

import (
	"context"
	"foamjobs/internal/domain/entities"
	"time"
)

// IJobRepository abstracts DynamoDB persistence for Job.
//
// The job service must be able to:
//   - create a draft job from an accepted estimate
//   - advance the status along the pipeline, guarded by the expected current status
//   - set the scheduled install date on a work order
//   - record office-entered actuals or accumulate rig stroke deltas
//   - replace the stored calculation totals after a recalculation

type IJobRepository interface {
	Create(ctx context.Context, j entities.Job) (entities.Job, error)
	GetByID(ctx context.Context, id string) (entities.Job, error)
	List(ctx context.Context) ([]entities.Job, error)
	AdvanceStatus(ctx context.Context, id string, from, to entities.JobStatus) (entities.Job, error)
	SetScheduledDate(ctx context.Context, id string, date time.Time) (entities.Job, error)
	SetActuals(ctx context.Context, id string, a entities.JobActuals) (entities.Job, error)
	AddActualStrokes(ctx context.Context, id string, family entities.FoamFamily, strokes int64) (entities.Job, error)
	UpdateTotals(ctx context.Context, id string, totals entities.CalculationResults) (entities.Job, error)
}
