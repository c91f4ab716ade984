// Package metrics derives presentation-ready financial and material numbers
// from a job's computed totals, its consumption-rate settings, and any
// recorded actuals. Every function is pure; rounding for display belongs to
// the caller.
package metrics

import "foamjobs/internal/domain/entities"

// DefaultStrokesPerSet is the dispenser yield assumed when a job carries no
// positive per-family override.
const DefaultStrokesPerSet = 6600.0

// FamilyMetrics is the derived block for one visible chemical family.
// Actual values are only populated when ActualsVisible is true.
type FamilyMetrics struct {
	Family        entities.FoamFamily `json:"family"`
	Sets          float64             `json:"sets"`
	Strokes       float64             `json:"strokes"`
	StrokesPerSet float64             `json:"strokes_per_set"`

	ActualsVisible bool    `json:"actuals_visible"`
	ActualSets     float64 `json:"actual_sets,omitempty"`
	ActualStrokes  int64   `json:"actual_strokes,omitempty"`
}

// View is the full derived-metrics record for a job. Families holds only the
// visible families, in open-cell then closed-cell order.
type View struct {
	Profit        float64         `json:"profit"`
	MarginPercent float64         `json:"margin_percent"`
	Families      []FamilyMetrics `json:"families"`
}

// ComputeMargin returns the absolute profit and the margin percentage for a
// totals record. Margin is 0 when the total is not positive.
func ComputeMargin(t entities.CalculationResults) (profit, marginPct float64) {
	profit = t.TotalCost - (t.MaterialCost + t.LaborCost + t.MiscExpenses)
	if t.TotalCost <= 0 {
		return profit, 0
	}
	return profit, profit / t.TotalCost * 100
}

// ResolveConsumptionRate returns the job's strokes-per-set override for the
// family when it is positive, else DefaultStrokesPerSet. A zero or negative
// override is treated as absent.
func ResolveConsumptionRate(m *entities.MaterialSettings, family entities.FoamFamily) float64 {
	if m == nil {
		return DefaultStrokesPerSet
	}
	rate := m.OpenCellStrokesPerSet
	if family == entities.FoamFamilyClosedCell {
		rate = m.ClosedCellStrokesPerSet
	}
	if rate > 0 {
		return rate
	}
	return DefaultStrokesPerSet
}

// SelectVisibleFamilies returns the families whose estimated set count is
// positive. A zero-set family is omitted entirely, never rendered as a
// zero row.
func SelectVisibleFamilies(t entities.CalculationResults) []entities.FoamFamily {
	families := make([]entities.FoamFamily, 0, 2)
	if t.OpenCellSets > 0 {
		families = append(families, entities.FoamFamilyOpenCell)
	}
	if t.ClosedCellSets > 0 {
		families = append(families, entities.FoamFamilyClosedCell)
	}
	return families
}

// ReconcileActuals reports whether recorded actuals for the family should be
// shown: true iff actuals exist and either the family's sets or strokes are
// positive. A family with no recorded usage stays hidden even when the other
// family has some.
func ReconcileActuals(a *entities.JobActuals, family entities.FoamFamily) bool {
	if a == nil {
		return false
	}
	fa := a.OpenCell
	if family == entities.FoamFamilyClosedCell {
		fa = a.ClosedCell
	}
	return fa.Sets > 0 || fa.Strokes > 0
}

// Derive composes the full metrics view for a job and its totals record.
func Derive(job entities.Job, totals entities.CalculationResults) View {
	profit, marginPct := ComputeMargin(totals)

	view := View{
		Profit:        profit,
		MarginPercent: marginPct,
	}

	for _, family := range SelectVisibleFamilies(totals) {
		fm := FamilyMetrics{
			Family:        family,
			Sets:          totals.FamilySets(family),
			Strokes:       totals.FamilyStrokes(family),
			StrokesPerSet: ResolveConsumptionRate(job.Materials, family),
		}
		if ReconcileActuals(job.Actuals, family) {
			fa := job.Actuals.OpenCell
			if family == entities.FoamFamilyClosedCell {
				fa = job.Actuals.ClosedCell
			}
			fm.ActualsVisible = true
			fm.ActualSets = fa.Sets
			fm.ActualStrokes = fa.Strokes
		}
		view.Families = append(view.Families, fm)
	}

	return view
}
