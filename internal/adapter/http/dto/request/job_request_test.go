package request

import (
	"errors"
	"testing"
	"time"
)

func TestCreateJobRequest_ToJob(t *testing.T) {
	r := CreateJobRequest{
		CustomerName: " Smith Residence ",
		WallSettings: SurfaceSettingsRequest{MaterialType: "open_cell", ThicknessIn: 5.5},
		RoofSettings: SurfaceSettingsRequest{MaterialType: "closed_cell", ThicknessIn: 2},
		Materials:    &MaterialSettingsRequest{OpenCellStrokesPerSet: 7000},
		Totals:       CalculationResultsRequest{TotalCost: 6500, MaterialCost: 2800, OpenCellSets: 2.5},
	}

	j := r.ToJob()
	if j.CustomerName != "Smith Residence" {
		t.Fatalf("expected trimmed name, got %q", j.CustomerName)
	}
	if j.WallSettings.ThicknessIn != 5.5 || j.RoofSettings.MaterialType != "closed_cell" {
		t.Fatalf("unexpected surfaces: %+v", j)
	}
	if j.Materials == nil || j.Materials.OpenCellStrokesPerSet != 7000 {
		t.Fatalf("expected materials override, got %+v", j.Materials)
	}
	if j.Totals.TotalCost != 6500 || j.Totals.OpenCellSets != 2.5 {
		t.Fatalf("unexpected totals: %+v", j.Totals)
	}
}

func TestCreateJobRequest_ToJob_NormalizesEmptyMaterials(t *testing.T) {
	r := CreateJobRequest{
		CustomerName: "Smith",
		Materials:    &MaterialSettingsRequest{OpenCellStrokesPerSet: 0, ClosedCellStrokesPerSet: -1},
	}
	if j := r.ToJob(); j.Materials != nil {
		t.Fatalf("expected nil materials for non-positive overrides, got %+v", j.Materials)
	}

	r2 := CreateJobRequest{CustomerName: "Smith"}
	if j := r2.ToJob(); j.Materials != nil {
		t.Fatalf("expected nil materials when omitted, got %+v", j.Materials)
	}
}

func TestScheduleJobRequest_ResolveDate(t *testing.T) {
	r := ScheduleJobRequest{ScheduledDate: "2026-03-14"}
	d, err := r.ResolveDate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2026 || d.Month() != time.March || d.Day() != 14 {
		t.Fatalf("unexpected date: %v", d)
	}

	r2 := ScheduleJobRequest{ScheduledDate: " 2026-03-14T08:30:00Z "}
	d2, err := r2.ResolveDate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d2.Hour() != 8 || d2.Minute() != 30 {
		t.Fatalf("unexpected time: %v", d2)
	}

	for _, bad := range []string{"", "   ", "14/03/2026", "not-a-date"} {
		r3 := ScheduleJobRequest{ScheduledDate: bad}
		if _, err := r3.ResolveDate(); !errors.Is(err, ErrInvalidScheduledDate) {
			t.Fatalf("input %q: expected ErrInvalidScheduledDate, got %v", bad, err)
		}
	}
}

func TestActualsRequest_ToActuals(t *testing.T) {
	r := ActualsRequest{
		OpenCell:   FamilyActualsRequest{Sets: 2.4, Strokes: 15800},
		ClosedCell: FamilyActualsRequest{Sets: 1, Strokes: 6600},
	}
	a := r.ToActuals()
	if a.OpenCell.Sets != 2.4 || a.OpenCell.Strokes != 15800 {
		t.Fatalf("unexpected open cell actuals: %+v", a.OpenCell)
	}
	if a.ClosedCell.Sets != 1 || a.ClosedCell.Strokes != 6600 {
		t.Fatalf("unexpected closed cell actuals: %+v", a.ClosedCell)
	}
	if !a.RecordedAt.IsZero() {
		t.Fatalf("recorded-at should be stamped by the usecase, got %v", a.RecordedAt)
	}
}
