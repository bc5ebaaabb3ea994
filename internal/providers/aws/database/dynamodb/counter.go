package dynamodb

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
	apperrors "github.com/DeanGilewicz/serverless-recipes-BE/internal/errors"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/logger"
)

const (
	counterKeyAttr   = "id"
	counterValueAttr = "counter"
)

// ErrCounterNotFound is the cause of an allocator fault when the counter record was never seeded.
var ErrCounterNotFound = stderrors.New("counter record not found")

// CounterRepository implements database.CounterRepository on a single DynamoDB item.
type CounterRepository struct {
	client    Client
	tableName string
	logger    *slog.Logger
}

// NewCounterRepository creates a new DynamoDB-backed recipe ID allocator.
func NewCounterRepository(client Client, tableName string, log *slog.Logger) *CounterRepository {
	return &CounterRepository{
		client:    client,
		tableName: tableName,
		logger:    log,
	}
}

type counterItem struct {
	ID      int64 `dynamodbav:"id"`
	Counter int64 `dynamodbav:"counter"`
}

func counterKey() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		counterKeyAttr: &types.AttributeValueMemberN{Value: strconv.Itoa(constants.CounterRecordID)},
	}
}

// Allocate increments the counter with a single atomic ADD and returns the post-increment
// value. Concurrent callers always receive distinct values. There is no retry: any failure is
// reported as an allocator fault and the caller must not write a recipe.
func (r *CounterRepository) Allocate(ctx context.Context) (int64, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, r.logger)

	expr, err := expression.NewBuilder().
		WithUpdate(expression.Add(expression.Name(counterValueAttr), expression.Value(1))).
		WithCondition(expression.AttributeExists(expression.Name(counterKeyAttr))).
		Build()
	if err != nil {
		return 0, apperrors.ErrAllocatorFault(fmt.Errorf("failed to build update expression: %w", err))
	}

	logArgs := []any{
		"operation", "DynamoDB.UpdateItem",
		"table", r.tableName,
		"action", "allocate",
	}
	logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
	reqLogger.Debug("calling external service", "context", logger.SliceToMap(logArgs))

	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       counterKey(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if stderrors.As(err, &ccf) {
			return 0, apperrors.ErrAllocatorFault(ErrCounterNotFound)
		}
		return 0, apperrors.ErrAllocatorFault(fmt.Errorf("failed to increment counter: %w", err))
	}

	var item counterItem
	if err = attributevalue.UnmarshalMap(result.Attributes, &item); err != nil {
		return 0, apperrors.ErrAllocatorFault(fmt.Errorf("unmarshal counter: %w", err))
	}
	if item.Counter <= 0 {
		return 0, apperrors.ErrAllocatorFault(fmt.Errorf("counter returned invalid value %d", item.Counter))
	}

	reqLogger.Debug("allocated recipe id", "recipe_id", item.Counter)

	return item.Counter, nil
}

// Seed creates the counter record. It refuses to overwrite an existing record so a re-run
// can never rewind the counter.
func (r *CounterRepository) Seed(ctx context.Context, start int64) error {
	reqLogger := logger.DeriveRequestLogger(ctx, r.logger)

	if start < 0 {
		return apperrors.ErrBadRequest("counter start value cannot be negative", nil)
	}

	av, err := attributevalue.MarshalMap(counterItem{ID: constants.CounterRecordID, Counter: start})
	if err != nil {
		return apperrors.ErrInternalError("failed to encode counter",
			fmt.Errorf("marshal counter item: %w", err))
	}

	logArgs := []any{
		"operation", "DynamoDB.PutItem",
		"table", r.tableName,
		"start", start,
	}
	logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
	reqLogger.Debug("calling external service", "context", logger.SliceToMap(logArgs))

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if stderrors.As(err, &ccf) {
			return apperrors.ErrConflict("counter already seeded", nil)
		}
		return apperrors.ErrDatabaseError("failed to seed counter", err)
	}

	return nil
}

// Current reads the counter with a consistent read.
func (r *CounterRepository) Current(ctx context.Context) (int64, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, r.logger)

	logArgs := []any{
		"operation", "DynamoDB.GetItem",
		"table", r.tableName,
	}
	logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
	reqLogger.Debug("calling external service", "context", logger.SliceToMap(logArgs))

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            counterKey(),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return 0, apperrors.ErrDatabaseError("failed to read counter", err)
	}
	if result.Item == nil {
		return 0, apperrors.ErrNotFound("counter not seeded", ErrCounterNotFound)
	}

	var item counterItem
	if err = attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return 0, apperrors.ErrInternalError("stored counter is malformed",
			fmt.Errorf("unmarshal counter item: %w", err))
	}

	return item.Counter, nil
}
