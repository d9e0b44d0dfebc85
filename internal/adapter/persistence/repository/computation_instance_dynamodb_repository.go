package repository

import (
	"context"
	"time"

	"buildcost/internal/domain/entities"
	"buildcost/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultInstancesTableName = "computation_instances"
	instanceLineItemIndexName = "line_item_id-index"
)

type instanceItem struct {
	ID              string            `dynamodbav:"id"`
	EstimateID      string            `dynamodbav:"estimate_id"`
	LineItemID      string            `dynamodbav:"line_item_id"`
	FormulaID       string            `dynamodbav:"formula_id"`
	FormulaVersion  int               `dynamodbav:"formula_version"`
	FormulaSnapshot formulaItem       `dynamodbav:"formula_snapshot"`
	InputValues     map[string]string `dynamodbav:"input_values"`
	ComputedResults map[string]string `dynamodbav:"computed_results"`
	ComputedAt      string            `dynamodbav:"computed_at"`
	ComputedBy      string            `dynamodbav:"computed_by"`
}

// ComputationInstanceDynamoRepository is the read side of computation
// receipts. The rows are written by EstimateDynamoRepository inside the
// compute transaction; nothing ever updates or deletes them.
//
// Table requirements:
//   - PK: id (string)
//   - GSI line_item_id-index: line_item_id
type ComputationInstanceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IComputationInstanceRepository = (*ComputationInstanceDynamoRepository)(nil)

func NewComputationInstanceDynamoRepository(ddb *dynamodb.Client) *ComputationInstanceDynamoRepository {
	return &ComputationInstanceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("COMPUTATION_INSTANCES_TABLE", defaultInstancesTableName),
	}
}

func (r *ComputationInstanceDynamoRepository) GetByID(ctx context.Context, id string) (entities.ComputationInstance, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ComputationInstance{}, err
	}
	if len(out.Item) == 0 {
		return entities.ComputationInstance{}, nil
	}

	var it instanceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ComputationInstance{}, err
	}
	return fromInstanceItem(it)
}

func (r *ComputationInstanceDynamoRepository) ListByLineItemID(ctx context.Context, lineItemID string) ([]entities.ComputationInstance, error) {
	var instances []entities.ComputationInstance
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(instanceLineItemIndexName),
			KeyConditionExpression: aws.String("#item = :item"),
			ExpressionAttributeNames: map[string]string{
				"#item": "line_item_id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":item": &types.AttributeValueMemberS{Value: lineItemID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it instanceItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			ci, err := fromInstanceItem(it)
			if err != nil {
				return nil, err
			}
			instances = append(instances, ci)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return instances, nil
}

func toInstanceItem(ci entities.ComputationInstance) instanceItem {
	return instanceItem{
		ID:              ci.ID,
		EstimateID:      ci.EstimateID,
		LineItemID:      ci.LineItemID,
		FormulaID:       ci.FormulaID,
		FormulaVersion:  ci.FormulaVersion,
		FormulaSnapshot: toFormulaItem(ci.FormulaSnapshot),
		InputValues:     decimalMapToStrings(ci.InputValues),
		ComputedResults: decimalMapToStrings(ci.ComputedResults),
		ComputedAt:      ci.ComputedAt.UTC().Format(time.RFC3339Nano),
		ComputedBy:      ci.ComputedBy,
	}
}

func fromInstanceItem(it instanceItem) (entities.ComputationInstance, error) {
	computedAt, _ := time.Parse(time.RFC3339Nano, it.ComputedAt)
	snapshot, err := fromFormulaItem(it.FormulaSnapshot)
	if err != nil {
		return entities.ComputationInstance{}, err
	}
	inputs, err := stringMapToDecimals(it.InputValues)
	if err != nil {
		return entities.ComputationInstance{}, err
	}
	results, err := stringMapToDecimals(it.ComputedResults)
	if err != nil {
		return entities.ComputationInstance{}, err
	}
	return entities.ComputationInstance{
		ID:              it.ID,
		EstimateID:      it.EstimateID,
		LineItemID:      it.LineItemID,
		FormulaID:       it.FormulaID,
		FormulaVersion:  it.FormulaVersion,
		FormulaSnapshot: snapshot,
		InputValues:     inputs,
		ComputedResults: results,
		ComputedAt:      computedAt,
		ComputedBy:      it.ComputedBy,
	}, nil
}

func decimalMapToStrings(m map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v.String()
	}
	return out
}

func stringMapToDecimals(m map[string]string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(m))
	for k, v := range m {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, err
		}
		out[k] = d
	}
	return out, nil
}
