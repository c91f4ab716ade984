package repository

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"foamjobs/internal/domain/entities"
	"foamjobs/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultJobsTableName = "jobs"

type jobTotalsItem struct {
	WallAreaSqFt  float64 `dynamodbav:"wall_area_sqft"`
	RoofAreaSqFt  float64 `dynamodbav:"roof_area_sqft"`
	WallBoardFeet float64 `dynamodbav:"wall_board_feet"`
	RoofBoardFeet float64 `dynamodbav:"roof_board_feet"`

	MaterialCost float64 `dynamodbav:"material_cost"`
	LaborCost    float64 `dynamodbav:"labor_cost"`
	MiscExpenses float64 `dynamodbav:"misc_expenses"`
	TotalCost    float64 `dynamodbav:"total_cost"`

	OpenCellSets      float64 `dynamodbav:"open_cell_sets"`
	OpenCellStrokes   float64 `dynamodbav:"open_cell_strokes"`
	ClosedCellSets    float64 `dynamodbav:"closed_cell_sets"`
	ClosedCellStrokes float64 `dynamodbav:"closed_cell_strokes"`
}

type jobItem struct {
	ID            string `dynamodbav:"id"`
	CustomerName  string `dynamodbav:"customer_name"`
	Status        string `dynamodbav:"status"`
	ScheduledDate string `dynamodbav:"scheduled_date,omitempty"`

	WallMaterial    string  `dynamodbav:"wall_material,omitempty"`
	WallThicknessIn float64 `dynamodbav:"wall_thickness_in,omitempty"`
	RoofMaterial    string  `dynamodbav:"roof_material,omitempty"`
	RoofThicknessIn float64 `dynamodbav:"roof_thickness_in,omitempty"`

	OpenCellStrokesPerSet   float64 `dynamodbav:"oc_strokes_per_set,omitempty"`
	ClosedCellStrokesPerSet float64 `dynamodbav:"cc_strokes_per_set,omitempty"`

	Totals jobTotalsItem `dynamodbav:"totals"`

	ActualOpenCellSets      float64 `dynamodbav:"actual_oc_sets,omitempty"`
	ActualOpenCellStrokes   int64   `dynamodbav:"actual_oc_strokes,omitempty"`
	ActualClosedCellSets    float64 `dynamodbav:"actual_cc_sets,omitempty"`
	ActualClosedCellStrokes int64   `dynamodbav:"actual_cc_strokes,omitempty"`
	ActualsRecordedAt       string  `dynamodbav:"actuals_recorded_at,omitempty"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// JobDynamoRepository persists Job entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Actual usage counters live as top-level numeric attributes so the rig
// listener can apply stroke deltas with an atomic ADD instead of a
// read-modify-write. Status moves only through conditional writes guarded by
// the expected current status; a lost condition returns the zero Job.

type JobDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IJobRepository = (*JobDynamoRepository)(nil)

func NewJobDynamoRepository(ddb *dynamodb.Client) *JobDynamoRepository {
	return &JobDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("JOBS_TABLE", defaultJobsTableName),
	}
}

func (r *JobDynamoRepository) Create(ctx context.Context, j entities.Job) (entities.Job, error) {
	it := toJobItem(j)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Job{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Job{}, err
	}
	return j, nil
}

func (r *JobDynamoRepository) GetByID(ctx context.Context, id string) (entities.Job, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Job{}, err
	}
	if len(out.Item) == 0 {
		return entities.Job{}, nil
	}

	var it jobItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Job{}, err
	}
	return fromJobItem(it), nil
}

func (r *JobDynamoRepository) List(ctx context.Context) ([]entities.Job, error) {
	var (
		jobs    []entities.Job
		lastKey map[string]types.AttributeValue
	)
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it jobItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			jobs = append(jobs, fromJobItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	// Scan order is undefined; present newest first.
	sort.Slice(jobs, func(i, k int) bool {
		return jobs[i].CreatedAt.After(jobs[k].CreatedAt)
	})
	return jobs, nil
}

func (r *JobDynamoRepository) AdvanceStatus(ctx context.Context, id string, from, to entities.JobStatus) (entities.Job, error) {
	return r.update(ctx, id, "attribute_exists(#id) AND #status = :from", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(to)},
			":from":       &types.AttributeValueMemberS{Value: string(from)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *JobDynamoRepository) SetScheduledDate(ctx context.Context, id string, date time.Time) (entities.Job, error) {
	// Only work orders carry an install date; an invoice generated by a
	// concurrent writer must not get its date rewritten afterwards.
	return r.update(ctx, id, "attribute_exists(#id) AND #status = :wo", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #scheduled_date = :scheduled_date, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":scheduled_date": &types.AttributeValueMemberS{Value: date.UTC().Format(time.RFC3339Nano)},
			":updated_at":     &types.AttributeValueMemberS{Value: now},
			":wo":             &types.AttributeValueMemberS{Value: string(entities.JobStatusWorkOrder)},
		}
		names := map[string]string{
			"#scheduled_date": "scheduled_date",
			"#updated_at":     "updated_at",
			"#status":         "status",
		}
		return expr, vals, names
	})
}

func (r *JobDynamoRepository) SetActuals(ctx context.Context, id string, a entities.JobActuals) (entities.Job, error) {
	return r.update(ctx, id, "", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #oc_sets = :oc_sets, #oc_strokes = :oc_strokes, " +
			"#cc_sets = :cc_sets, #cc_strokes = :cc_strokes, " +
			"#recorded_at = :recorded_at, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":oc_sets":     &types.AttributeValueMemberN{Value: floatToString(a.OpenCell.Sets)},
			":oc_strokes":  &types.AttributeValueMemberN{Value: strconv.FormatInt(a.OpenCell.Strokes, 10)},
			":cc_sets":     &types.AttributeValueMemberN{Value: floatToString(a.ClosedCell.Sets)},
			":cc_strokes":  &types.AttributeValueMemberN{Value: strconv.FormatInt(a.ClosedCell.Strokes, 10)},
			":recorded_at": &types.AttributeValueMemberS{Value: a.RecordedAt.UTC().Format(time.RFC3339Nano)},
			":updated_at":  &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#oc_sets":     "actual_oc_sets",
			"#oc_strokes":  "actual_oc_strokes",
			"#cc_sets":     "actual_cc_sets",
			"#cc_strokes":  "actual_cc_strokes",
			"#recorded_at": "actuals_recorded_at",
			"#updated_at":  "updated_at",
		}
		return expr, vals, names
	})
}

func (r *JobDynamoRepository) AddActualStrokes(ctx context.Context, id string, family entities.FoamFamily, strokes int64) (entities.Job, error) {
	attr := "actual_oc_strokes"
	if family == entities.FoamFamilyClosedCell {
		attr = "actual_cc_strokes"
	}
	return r.update(ctx, id, "", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #recorded_at = :now, #updated_at = :now ADD #strokes :delta"
		vals := map[string]types.AttributeValue{
			":delta": &types.AttributeValueMemberN{Value: strconv.FormatInt(strokes, 10)},
			":now":   &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#strokes":     attr,
			"#recorded_at": "actuals_recorded_at",
			"#updated_at":  "updated_at",
		}
		return expr, vals, names
	})
}

func (r *JobDynamoRepository) UpdateTotals(ctx context.Context, id string, totals entities.CalculationResults) (entities.Job, error) {
	av, err := attributevalue.Marshal(toJobTotalsItem(totals))
	if err != nil {
		return entities.Job{}, err
	}
	return r.update(ctx, id, "", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #totals = :totals, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":totals":     av,
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#totals":     "totals",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *JobDynamoRepository) update(
	ctx context.Context,
	id string,
	condition string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Job, error) {
	if condition == "" {
		condition = "attribute_exists(#id)"
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(condition),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Job{}, nil
		}
		return entities.Job{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Job{}, nil
	}
	var it jobItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Job{}, err
	}
	return fromJobItem(it), nil
}

func toJobItem(j entities.Job) jobItem {
	it := jobItem{
		ID:              j.ID,
		CustomerName:    j.CustomerName,
		Status:          string(j.Status),
		WallMaterial:    j.WallSettings.MaterialType,
		WallThicknessIn: j.WallSettings.ThicknessIn,
		RoofMaterial:    j.RoofSettings.MaterialType,
		RoofThicknessIn: j.RoofSettings.ThicknessIn,
		Totals:          toJobTotalsItem(j.Totals),
		CreatedAt:       j.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       j.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if j.ScheduledDate != nil && !j.ScheduledDate.IsZero() {
		it.ScheduledDate = j.ScheduledDate.UTC().Format(time.RFC3339Nano)
	}
	if j.Materials != nil {
		it.OpenCellStrokesPerSet = j.Materials.OpenCellStrokesPerSet
		it.ClosedCellStrokesPerSet = j.Materials.ClosedCellStrokesPerSet
	}
	if j.Actuals != nil {
		it.ActualOpenCellSets = j.Actuals.OpenCell.Sets
		it.ActualOpenCellStrokes = j.Actuals.OpenCell.Strokes
		it.ActualClosedCellSets = j.Actuals.ClosedCell.Sets
		it.ActualClosedCellStrokes = j.Actuals.ClosedCell.Strokes
		it.ActualsRecordedAt = j.Actuals.RecordedAt.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromJobItem(it jobItem) entities.Job {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	j := entities.Job{
		ID:           it.ID,
		CustomerName: it.CustomerName,
		Status:       entities.JobStatus(it.Status),
		WallSettings: entities.SurfaceSettings{MaterialType: it.WallMaterial, ThicknessIn: it.WallThicknessIn},
		RoofSettings: entities.SurfaceSettings{MaterialType: it.RoofMaterial, ThicknessIn: it.RoofThicknessIn},
		Totals:       fromJobTotalsItem(it.Totals),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
	if it.ScheduledDate != "" {
		if d, err := time.Parse(time.RFC3339Nano, it.ScheduledDate); err == nil {
			j.ScheduledDate = &d
		}
	}
	if it.OpenCellStrokesPerSet > 0 || it.ClosedCellStrokesPerSet > 0 {
		j.Materials = &entities.MaterialSettings{
			OpenCellStrokesPerSet:   it.OpenCellStrokesPerSet,
			ClosedCellStrokesPerSet: it.ClosedCellStrokesPerSet,
		}
	}
	if it.ActualsRecordedAt != "" {
		recordedAt, _ := time.Parse(time.RFC3339Nano, it.ActualsRecordedAt)
		j.Actuals = &entities.JobActuals{
			OpenCell:   entities.FamilyActuals{Sets: it.ActualOpenCellSets, Strokes: it.ActualOpenCellStrokes},
			ClosedCell: entities.FamilyActuals{Sets: it.ActualClosedCellSets, Strokes: it.ActualClosedCellStrokes},
			RecordedAt: recordedAt,
		}
	}
	return j
}

func toJobTotalsItem(t entities.CalculationResults) jobTotalsItem {
	return jobTotalsItem{
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

func fromJobTotalsItem(it jobTotalsItem) entities.CalculationResults {
	return entities.CalculationResults{
		WallAreaSqFt:      it.WallAreaSqFt,
		RoofAreaSqFt:      it.RoofAreaSqFt,
		WallBoardFeet:     it.WallBoardFeet,
		RoofBoardFeet:     it.RoofBoardFeet,
		MaterialCost:      it.MaterialCost,
		LaborCost:         it.LaborCost,
		MiscExpenses:      it.MiscExpenses,
		TotalCost:         it.TotalCost,
		OpenCellSets:      it.OpenCellSets,
		OpenCellStrokes:   it.OpenCellStrokes,
		ClosedCellSets:    it.ClosedCellSets,
		ClosedCellStrokes: it.ClosedCellStrokes,
	}
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
