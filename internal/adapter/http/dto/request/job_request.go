package request

import (
	"errors"
	"strings"
	"time"

	"foamjobs/internal/domain/entities"
)

var (
	ErrInvalidScheduledDate = errors.New("invalid scheduled date")
)

type SurfaceSettingsRequest struct {
	MaterialType string  `json:"material_type"`
	ThicknessIn  float64 `json:"thickness_in"`
}

type MaterialSettingsRequest struct {
	OpenCellStrokesPerSet   float64 `json:"open_cell_strokes_per_set"`
	ClosedCellStrokesPerSet float64 `json:"closed_cell_strokes_per_set"`
}

// CalculationResultsRequest mirrors the estimator's computed breakdown. The
// totals PATCH accepts this shape directly; the job stores it wholesale.
type CalculationResultsRequest struct {
	WallAreaSqFt  float64 `json:"wall_area_sqft"`
	RoofAreaSqFt  float64 `json:"roof_area_sqft"`
	WallBoardFeet float64 `json:"wall_board_feet"`
	RoofBoardFeet float64 `json:"roof_board_feet"`

	MaterialCost float64 `json:"material_cost"`
	LaborCost    float64 `json:"labor_cost"`
	MiscExpenses float64 `json:"misc_expenses"`
	TotalCost    float64 `json:"total_cost"`

	OpenCellSets      float64 `json:"open_cell_sets"`
	OpenCellStrokes   float64 `json:"open_cell_strokes"`
	ClosedCellSets    float64 `json:"closed_cell_sets"`
	ClosedCellStrokes float64 `json:"closed_cell_strokes"`
}

func (r CalculationResultsRequest) ToCalculation() entities.CalculationResults {
	return entities.CalculationResults{
		WallAreaSqFt:      r.WallAreaSqFt,
		RoofAreaSqFt:      r.RoofAreaSqFt,
		WallBoardFeet:     r.WallBoardFeet,
		RoofBoardFeet:     r.RoofBoardFeet,
		MaterialCost:      r.MaterialCost,
		LaborCost:         r.LaborCost,
		MiscExpenses:      r.MiscExpenses,
		TotalCost:         r.TotalCost,
		OpenCellSets:      r.OpenCellSets,
		OpenCellStrokes:   r.OpenCellStrokes,
		ClosedCellSets:    r.ClosedCellSets,
		ClosedCellStrokes: r.ClosedCellStrokes,
	}
}

// CreateJobRequest is the payload the estimator front end posts when the
// office opens a job from a finished estimate. Totals may be all-zero for a
// job opened before pricing is done.
type CreateJobRequest struct {
	CustomerName string                    `json:"customer_name" binding:"required"`
	WallSettings SurfaceSettingsRequest    `json:"wall_settings"`
	RoofSettings SurfaceSettingsRequest    `json:"roof_settings"`
	Materials    *MaterialSettingsRequest  `json:"materials"`
	Totals       CalculationResultsRequest `json:"totals"`
}

func (r CreateJobRequest) ResolveCustomerName() string {
	return strings.TrimSpace(r.CustomerName)
}

func (r CreateJobRequest) ToJob() entities.Job {
	j := entities.Job{
		CustomerName: r.ResolveCustomerName(),
		WallSettings: entities.SurfaceSettings{MaterialType: r.WallSettings.MaterialType, ThicknessIn: r.WallSettings.ThicknessIn},
		RoofSettings: entities.SurfaceSettings{MaterialType: r.RoofSettings.MaterialType, ThicknessIn: r.RoofSettings.ThicknessIn},
		Totals:       r.Totals.ToCalculation(),
	}
	// Overrides with no positive rate are the same as no overrides.
	if r.Materials != nil && (r.Materials.OpenCellStrokesPerSet > 0 || r.Materials.ClosedCellStrokesPerSet > 0) {
		j.Materials = &entities.MaterialSettings{
			OpenCellStrokesPerSet:   r.Materials.OpenCellStrokesPerSet,
			ClosedCellStrokesPerSet: r.Materials.ClosedCellStrokesPerSet,
		}
	}
	return j
}

// ScheduleJobRequest carries the install date for a sold work order.
type ScheduleJobRequest struct {
	ScheduledDate string `json:"scheduled_date" binding:"required"`
}

// ResolveDate accepts the date-only form the scheduling UI sends as well as
// full RFC 3339 timestamps.
func (r ScheduleJobRequest) ResolveDate() (time.Time, error) {
	v := strings.TrimSpace(r.ScheduledDate)
	if v == "" {
		return time.Time{}, ErrInvalidScheduledDate
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if d, err := time.Parse(layout, v); err == nil {
			return d.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidScheduledDate
}

type FamilyActualsRequest struct {
	Sets    float64 `json:"sets"`
	Strokes int64   `json:"strokes"`
}

// ActualsRequest is the office-entered real-world usage for both families.
type ActualsRequest struct {
	OpenCell   FamilyActualsRequest `json:"open_cell"`
	ClosedCell FamilyActualsRequest `json:"closed_cell"`
}

func (r ActualsRequest) ToActuals() entities.JobActuals {
	return entities.JobActuals{
		OpenCell:   entities.FamilyActuals{Sets: r.OpenCell.Sets, Strokes: r.OpenCell.Strokes},
		ClosedCell: entities.FamilyActuals{Sets: r.ClosedCell.Sets, Strokes: r.ClosedCell.Strokes},
	}
}
