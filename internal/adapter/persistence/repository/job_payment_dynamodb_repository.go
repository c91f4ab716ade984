package repository

import (
	"context"
	"time"

	"foamjobs/internal/domain/entities"
	"foamjobs/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsJobIDIndex       = "job_id-index"
)

type jobPaymentItem struct {
	ID                 string                 `dynamodbav:"id"`
	JobID              string                 `dynamodbav:"job_id"`
	Amount             float64                `dynamodbav:"amount"`
	Date               string                 `dynamodbav:"date"`
	Status             string                 `dynamodbav:"status"`
	ProviderPayload    map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// JobPaymentDynamoRepository persists JobPayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: job_id-index (PK: job_id)

type JobPaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IJobPaymentRepository = (*JobPaymentDynamoRepository)(nil)

func NewJobPaymentDynamoRepository(ddb *dynamodb.Client) *JobPaymentDynamoRepository {
	return &JobPaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *JobPaymentDynamoRepository) Create(ctx context.Context, p entities.JobPayment) (entities.JobPayment, error) {
	it := toJobPaymentItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.JobPayment{}, err
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
		return entities.JobPayment{}, err
	}
	return p, nil
}

func (r *JobPaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.JobPayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.JobPayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.JobPayment{}, nil
	}

	var it jobPaymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.JobPayment{}, err
	}
	return fromJobPaymentItem(it), nil
}

func (r *JobPaymentDynamoRepository) ListByJobID(ctx context.Context, jobID string) ([]entities.JobPayment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsJobIDIndex),
		KeyConditionExpression: aws.String("job_id = :jid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":jid": &types.AttributeValueMemberS{Value: jobID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.JobPayment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it jobPaymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromJobPaymentItem(it))
	}
	return items, nil
}

func toJobPaymentItem(p entities.JobPayment) jobPaymentItem {
	return jobPaymentItem{
		ID:                 p.ID,
		JobID:              p.JobID,
		Amount:             p.Amount,
		Date:               p.Date.UTC().Format(time.RFC3339Nano),
		Status:             string(p.Status),
		ProviderPayload:    p.ProviderPayload,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromJobPaymentItem(it jobPaymentItem) entities.JobPayment {
	dt, _ := time.Parse(time.RFC3339Nano, it.Date)
	return entities.JobPayment{
		ID:                 it.ID,
		JobID:              it.JobID,
		Amount:             it.Amount,
		Date:               dt,
		Status:             entities.PaymentStatus(it.Status),
		ProviderPayload:    it.ProviderPayload,
		ProviderPayloadRaw: []byte(it.ProviderPayloadRaw),
	}
}
