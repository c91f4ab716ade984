package response

import (
	"time"

	"foamjobs/internal/domain/entities"
	"foamjobs/internal/domain/lifecycle"
	"foamjobs/internal/domain/metrics"
)

type SurfaceSettingsResponse struct {
	MaterialType string  `json:"material_type"`
	ThicknessIn  float64 `json:"thickness_in"`
}

type MaterialSettingsResponse struct {
	OpenCellStrokesPerSet   float64 `json:"open_cell_strokes_per_set,omitempty"`
	ClosedCellStrokesPerSet float64 `json:"closed_cell_strokes_per_set,omitempty"`
}

type FamilyActualsResponse struct {
	Sets    float64 `json:"sets"`
	Strokes int64   `json:"strokes"`
}

type JobActualsResponse struct {
	OpenCell   FamilyActualsResponse `json:"open_cell"`
	ClosedCell FamilyActualsResponse `json:"closed_cell"`
	RecordedAt time.Time             `json:"recorded_at"`
}

type CalculationResultsResponse struct {
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

type JobResponse struct {
	ID            string                     `json:"id"`
	CustomerName  string                     `json:"customer_name"`
	Status        string                     `json:"status"`
	ScheduledDate *time.Time                 `json:"scheduled_date,omitempty"`
	WallSettings  SurfaceSettingsResponse    `json:"wall_settings"`
	RoofSettings  SurfaceSettingsResponse    `json:"roof_settings"`
	Materials     *MaterialSettingsResponse  `json:"materials,omitempty"`
	Actuals       *JobActualsResponse        `json:"actuals,omitempty"`
	Totals        CalculationResultsResponse `json:"totals"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

func FromJob(j entities.Job) JobResponse {
	res := JobResponse{
		ID:            j.ID,
		CustomerName:  j.CustomerName,
		Status:        string(j.Status),
		ScheduledDate: j.ScheduledDate,
		WallSettings:  SurfaceSettingsResponse{MaterialType: j.WallSettings.MaterialType, ThicknessIn: j.WallSettings.ThicknessIn},
		RoofSettings:  SurfaceSettingsResponse{MaterialType: j.RoofSettings.MaterialType, ThicknessIn: j.RoofSettings.ThicknessIn},
		Totals:        fromCalculation(j.Totals),
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
	}
	if j.Materials != nil {
		res.Materials = &MaterialSettingsResponse{
			OpenCellStrokesPerSet:   j.Materials.OpenCellStrokesPerSet,
			ClosedCellStrokesPerSet: j.Materials.ClosedCellStrokesPerSet,
		}
	}
	if j.Actuals != nil {
		res.Actuals = &JobActualsResponse{
			OpenCell:   FamilyActualsResponse{Sets: j.Actuals.OpenCell.Sets, Strokes: j.Actuals.OpenCell.Strokes},
			ClosedCell: FamilyActualsResponse{Sets: j.Actuals.ClosedCell.Sets, Strokes: j.Actuals.ClosedCell.Strokes},
			RecordedAt: j.Actuals.RecordedAt,
		}
	}
	return res
}

func FromJobs(jobs []entities.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, FromJob(j))
	}
	return out
}

func fromCalculation(t entities.CalculationResults) CalculationResultsResponse {
	return CalculationResultsResponse{
		WallAreaSqFt:      t.WallAreaSqFt,
		RoofAreaSqFt:      t.RoofAreaSqFt,
		WallBoardFeet:     t.WallBoardFeet,
		RoofBoardFeet:     t.RoofBoardFeet,
		MaterialCost:      t.MaterialCost,
		LaborCost:         t.LaborCost,
		MiscExpenses:      t.MiscExpenses,
		TotalCost:         t.TotalCost,
		OpenCellSets:      t.OpenCellSets,
		OpenCellStrokes:   t.OpenCellStrokes,
		ClosedCellSets:    t.ClosedCellSets,
		ClosedCellStrokes: t.ClosedCellStrokes,
	}
}

// NextStepResponse renders the lifecycle resolver decision. A paid job is
// terminal: Done is true and the action fields are omitted.
type NextStepResponse struct {
	JobID          string `json:"job_id"`
	Status         string `json:"status"`
	Done           bool   `json:"done"`
	Action         string `json:"action,omitempty"`
	Label          string `json:"label,omitempty"`
	TargetStatus   string `json:"target_status,omitempty"`
	AdvancesStatus bool   `json:"advances_status,omitempty"`
}

func FromNextStep(j entities.Job, step *lifecycle.NextStep) NextStepResponse {
	res := NextStepResponse{
		JobID:  j.ID,
		Status: string(j.Status),
	}
	if step == nil {
		res.Done = true
		return res
	}
	res.Action = string(step.Action)
	res.Label = step.Label
	res.TargetStatus = string(step.Target)
	res.AdvancesStatus = step.AdvancesStatus
	return res
}

type FamilyMetricsResponse struct {
	Family        string  `json:"family"`
	Sets          float64 `json:"sets"`
	Strokes       float64 `json:"strokes"`
	StrokesPerSet float64 `json:"strokes_per_set"`

	ActualsVisible bool    `json:"actuals_visible"`
	ActualSets     float64 `json:"actual_sets"`
	ActualStrokes  int64   `json:"actual_strokes"`
}

type MetricsResponse struct {
	JobID         string                  `json:"job_id"`
	Status        string                  `json:"status"`
	TotalCost     float64                 `json:"total_cost"`
	Profit        float64                 `json:"profit"`
	MarginPercent float64                 `json:"margin_percent"`
	Families      []FamilyMetricsResponse `json:"families"`
}

func FromMetrics(j entities.Job, v metrics.View) MetricsResponse {
	families := make([]FamilyMetricsResponse, 0, len(v.Families))
	for _, f := range v.Families {
		families = append(families, FamilyMetricsResponse{
			Family:         string(f.Family),
			Sets:           f.Sets,
			Strokes:        f.Strokes,
			StrokesPerSet:  f.StrokesPerSet,
			ActualsVisible: f.ActualsVisible,
			ActualSets:     f.ActualSets,
			ActualStrokes:  f.ActualStrokes,
		})
	}
	return MetricsResponse{
		JobID:         j.ID,
		Status:        string(j.Status),
		TotalCost:     j.Totals.TotalCost,
		Profit:        v.Profit,
		MarginPercent: v.MarginPercent,
		Families:      families,
	}
}
