package response

import (
	"testing"
	"time"

	"foamjobs/internal/domain/entities"
	"foamjobs/internal/domain/lifecycle"
	"foamjobs/internal/domain/metrics"
)

func TestFromJob(t *testing.T) {
	now := time.Now().UTC()
	scheduled := now.AddDate(0, 0, 7)
	j := entities.Job{
		ID:            "job-1",
		CustomerName:  "Smith Residence",
		Status:        entities.JobStatusWorkOrder,
		ScheduledDate: &scheduled,
		WallSettings:  entities.SurfaceSettings{MaterialType: "open_cell", ThicknessIn: 5.5},
		RoofSettings:  entities.SurfaceSettings{MaterialType: "closed_cell", ThicknessIn: 2},
		Materials:     &entities.MaterialSettings{OpenCellStrokesPerSet: 7000},
		Actuals: &entities.JobActuals{
			OpenCell:   entities.FamilyActuals{Sets: 2.4, Strokes: 15800},
			RecordedAt: now,
		},
		Totals:    entities.CalculationResults{TotalCost: 6500, OpenCellSets: 2.5},
		CreatedAt: now,
		UpdatedAt: now,
	}

	res := FromJob(j)
	if res.ID != "job-1" || res.Status != "work_order" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.ScheduledDate == nil || !res.ScheduledDate.Equal(scheduled) {
		t.Fatalf("unexpected scheduled date: %+v", res.ScheduledDate)
	}
	if res.WallSettings.ThicknessIn != 5.5 || res.RoofSettings.MaterialType != "closed_cell" {
		t.Fatalf("unexpected surfaces: %+v", res)
	}
	if res.Materials == nil || res.Materials.OpenCellStrokesPerSet != 7000 {
		t.Fatalf("unexpected materials: %+v", res.Materials)
	}
	if res.Actuals == nil || res.Actuals.OpenCell.Strokes != 15800 || !res.Actuals.RecordedAt.Equal(now) {
		t.Fatalf("unexpected actuals: %+v", res.Actuals)
	}
	if res.Totals.TotalCost != 6500 || res.Totals.OpenCellSets != 2.5 {
		t.Fatalf("unexpected totals: %+v", res.Totals)
	}
}

func TestFromJob_OmitsAbsentOptionals(t *testing.T) {
	res := FromJob(entities.Job{ID: "job-1", Status: entities.JobStatusDraft})
	if res.ScheduledDate != nil || res.Materials != nil || res.Actuals != nil {
		t.Fatalf("expected nil optionals: %+v", res)
	}
}

func TestFromJobs(t *testing.T) {
	jobs := []entities.Job{{ID: "a"}, {ID: "b"}}
	res := FromJobs(jobs)
	if len(res) != 2 || res[0].ID != "a" || res[1].ID != "b" {
		t.Fatalf("unexpected list: %+v", res)
	}
	if got := FromJobs(nil); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestFromNextStep(t *testing.T) {
	j := entities.Job{ID: "job-1", Status: entities.JobStatusDraft}
	step := &lifecycle.NextStep{
		Action:         lifecycle.ActionMarkSold,
		Label:          "Mark Sold",
		Target:         entities.JobStatusWorkOrder,
		AdvancesStatus: true,
	}

	res := FromNextStep(j, step)
	if res.Done {
		t.Fatalf("expected not done")
	}
	if res.Action != "mark_sold" || res.Label != "Mark Sold" || res.TargetStatus != "work_order" || !res.AdvancesStatus {
		t.Fatalf("unexpected step: %+v", res)
	}

	paid := entities.Job{ID: "job-1", Status: entities.JobStatusPaid}
	done := FromNextStep(paid, nil)
	if !done.Done || done.Action != "" || done.Status != "paid" {
		t.Fatalf("unexpected terminal response: %+v", done)
	}
}

func TestFromMetrics(t *testing.T) {
	j := entities.Job{ID: "job-1", Status: entities.JobStatusInvoiced, Totals: entities.CalculationResults{TotalCost: 6500}}
	v := metrics.View{
		Profit:        2000,
		MarginPercent: 30.77,
		Families: []metrics.FamilyMetrics{
			{
				Family:         entities.FoamFamilyOpenCell,
				Sets:           2.5,
				Strokes:        16500,
				StrokesPerSet:  6600,
				ActualsVisible: true,
				ActualSets:     2.4,
				ActualStrokes:  15800,
			},
		},
	}

	res := FromMetrics(j, v)
	if res.JobID != "job-1" || res.Status != "invoiced" || res.TotalCost != 6500 {
		t.Fatalf("unexpected header: %+v", res)
	}
	if res.Profit != 2000 || res.MarginPercent != 30.77 {
		t.Fatalf("unexpected margin: %+v", res)
	}
	if len(res.Families) != 1 {
		t.Fatalf("expected one family, got %+v", res.Families)
	}
	f := res.Families[0]
	if f.Family != "open_cell" || f.Sets != 2.5 || f.StrokesPerSet != 6600 {
		t.Fatalf("unexpected family: %+v", f)
	}
	if !f.ActualsVisible || f.ActualSets != 2.4 || f.ActualStrokes != 15800 {
		t.Fatalf("unexpected actuals: %+v", f)
	}
}
