package metrics

import (
	"reflect"
	"testing"
	"time"

	"foamjobs/internal/domain/entities"
)

func TestComputeMargin(t *testing.T) {
	t.Run("standard breakdown", func(t *testing.T) {
		profit, margin := ComputeMargin(entities.CalculationResults{
			MaterialCost: 300,
			LaborCost:    500,
			MiscExpenses: 50,
			TotalCost:    1000,
		})
		if profit != 150 {
			t.Fatalf("expected profit 150, got %v", profit)
		}
		if margin != 15 {
			t.Fatalf("expected margin 15, got %v", margin)
		}
	})

	t.Run("zero total guards division", func(t *testing.T) {
		profit, margin := ComputeMargin(entities.CalculationResults{})
		if profit != 0 || margin != 0 {
			t.Fatalf("expected 0/0, got profit=%v margin=%v", profit, margin)
		}
	})

	t.Run("zero total with costs keeps margin at zero", func(t *testing.T) {
		profit, margin := ComputeMargin(entities.CalculationResults{
			MaterialCost: 200,
			TotalCost:    0,
		})
		if profit != -200 {
			t.Fatalf("expected profit -200, got %v", profit)
		}
		if margin != 0 {
			t.Fatalf("expected margin 0 on non-positive total, got %v", margin)
		}
	})

	t.Run("costs above total go negative without rounding", func(t *testing.T) {
		profit, margin := ComputeMargin(entities.CalculationResults{
			MaterialCost: 600,
			LaborCost:    500,
			TotalCost:    1000,
		})
		if profit != -100 {
			t.Fatalf("expected profit -100, got %v", profit)
		}
		if margin != -10 {
			t.Fatalf("expected margin -10, got %v", margin)
		}
	})
}

func TestResolveConsumptionRate(t *testing.T) {
	cases := []struct {
		name      string
		materials *entities.MaterialSettings
		family    entities.FoamFamily
		want      float64
	}{
		{name: "nil settings", materials: nil, family: entities.FoamFamilyOpenCell, want: 6600},
		{
			name:      "positive open cell override",
			materials: &entities.MaterialSettings{OpenCellStrokesPerSet: 7000},
			family:    entities.FoamFamilyOpenCell,
			want:      7000,
		},
		{
			name:      "positive closed cell override",
			materials: &entities.MaterialSettings{ClosedCellStrokesPerSet: 6100},
			family:    entities.FoamFamilyClosedCell,
			want:      6100,
		},
		{
			name:      "zero override falls back",
			materials: &entities.MaterialSettings{OpenCellStrokesPerSet: 0},
			family:    entities.FoamFamilyOpenCell,
			want:      6600,
		},
		{
			name:      "negative override falls back",
			materials: &entities.MaterialSettings{ClosedCellStrokesPerSet: -5},
			family:    entities.FoamFamilyClosedCell,
			want:      6600,
		},
		{
			name:      "override on other family only",
			materials: &entities.MaterialSettings{OpenCellStrokesPerSet: 7000},
			family:    entities.FoamFamilyClosedCell,
			want:      6600,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveConsumptionRate(tc.materials, tc.family); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSelectVisibleFamilies(t *testing.T) {
	t.Run("none visible", func(t *testing.T) {
		if got := SelectVisibleFamilies(entities.CalculationResults{}); len(got) != 0 {
			t.Fatalf("expected no families, got %v", got)
		}
	})

	t.Run("open cell only", func(t *testing.T) {
		got := SelectVisibleFamilies(entities.CalculationResults{OpenCellSets: 2.5})
		want := []entities.FoamFamily{entities.FoamFamilyOpenCell}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("both visible in fixed order", func(t *testing.T) {
		got := SelectVisibleFamilies(entities.CalculationResults{OpenCellSets: 1, ClosedCellSets: 3})
		want := []entities.FoamFamily{entities.FoamFamilyOpenCell, entities.FoamFamilyClosedCell}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("zero set family omitted not zeroed", func(t *testing.T) {
		got := SelectVisibleFamilies(entities.CalculationResults{OpenCellSets: 0, ClosedCellSets: 0.1})
		if len(got) != 1 || got[0] != entities.FoamFamilyClosedCell {
			t.Fatalf("expected closed cell only, got %v", got)
		}
	})
}

func TestReconcileActuals(t *testing.T) {
	t.Run("nil actuals", func(t *testing.T) {
		if ReconcileActuals(nil, entities.FoamFamilyOpenCell) {
			t.Fatal("expected hidden for nil actuals")
		}
	})

	t.Run("present but empty family stays hidden", func(t *testing.T) {
		a := &entities.JobActuals{
			ClosedCell: entities.FamilyActuals{Sets: 2},
		}
		if ReconcileActuals(a, entities.FoamFamilyOpenCell) {
			t.Fatal("open cell has no usage, expected hidden")
		}
		if !ReconcileActuals(a, entities.FoamFamilyClosedCell) {
			t.Fatal("closed cell has sets, expected visible")
		}
	})

	t.Run("strokes alone make a family visible", func(t *testing.T) {
		a := &entities.JobActuals{
			OpenCell: entities.FamilyActuals{Strokes: 412},
		}
		if !ReconcileActuals(a, entities.FoamFamilyOpenCell) {
			t.Fatal("expected visible on positive strokes")
		}
	})
}

func TestDerive(t *testing.T) {
	totals := entities.CalculationResults{
		MaterialCost:    300,
		LaborCost:       500,
		MiscExpenses:    50,
		TotalCost:       1000,
		OpenCellSets:    2.5,
		OpenCellStrokes: 16500,
	}

	t.Run("composes margin families and rates", func(t *testing.T) {
		job := entities.Job{
			Materials: &entities.MaterialSettings{OpenCellStrokesPerSet: 7000},
		}
		view := Derive(job, totals)

		if view.Profit != 150 || view.MarginPercent != 15 {
			t.Fatalf("unexpected margin block: %+v", view)
		}
		if len(view.Families) != 1 {
			t.Fatalf("expected 1 visible family, got %d", len(view.Families))
		}
		fm := view.Families[0]
		if fm.Family != entities.FoamFamilyOpenCell || fm.Sets != 2.5 || fm.Strokes != 16500 {
			t.Fatalf("unexpected family block: %+v", fm)
		}
		if fm.StrokesPerSet != 7000 {
			t.Fatalf("expected override rate 7000, got %v", fm.StrokesPerSet)
		}
		if fm.ActualsVisible {
			t.Fatalf("no actuals recorded, expected hidden: %+v", fm)
		}
	})

	t.Run("actuals populate only visible families", func(t *testing.T) {
		job := entities.Job{
			Actuals: &entities.JobActuals{
				OpenCell:   entities.FamilyActuals{Sets: 2.2, Strokes: 14980},
				RecordedAt: time.Now().UTC(),
			},
		}
		view := Derive(job, totals)
		fm := view.Families[0]
		if !fm.ActualsVisible {
			t.Fatalf("expected actuals visible: %+v", fm)
		}
		if fm.ActualSets != 2.2 || fm.ActualStrokes != 14980 {
			t.Fatalf("unexpected actual values: %+v", fm)
		}
		if fm.StrokesPerSet != DefaultStrokesPerSet {
			t.Fatalf("expected default rate, got %v", fm.StrokesPerSet)
		}
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		job := entities.Job{
			Actuals: &entities.JobActuals{OpenCell: entities.FamilyActuals{Strokes: 10}},
		}
		a := Derive(job, totals)
		b := Derive(job, totals)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("expected identical views, got %+v and %+v", a, b)
		}
	})

	t.Run("empty totals derive empty view", func(t *testing.T) {
		view := Derive(entities.Job{}, entities.CalculationResults{})
		if view.Profit != 0 || view.MarginPercent != 0 || len(view.Families) != 0 {
			t.Fatalf("expected empty view, got %+v", view)
		}
	})
}
