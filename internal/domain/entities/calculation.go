package entities

// CalculationResults is the computed area/volume/cost breakdown produced by
// the upstream estimator from wall and roof dimensions. The job-service never
// derives these numbers itself; it stores the record at job creation and
// replaces it wholesale on recalculation.
//
// Quantities are continuous (estimated sets and strokes may be fractional).

type CalculationResults struct {
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

// FamilySets returns the estimated set count for the given family.
func (c CalculationResults) FamilySets(f FoamFamily) float64 {
	if f == FoamFamilyClosedCell {
		return c.ClosedCellSets
	}
	return c.OpenCellSets
}

// FamilyStrokes returns the estimated stroke count for the given family.
func (c CalculationResults) FamilyStrokes(f FoamFamily) float64 {
	if f == FoamFamilyClosedCell {
		return c.ClosedCellStrokes
	}
	return c.OpenCellStrokes
}
