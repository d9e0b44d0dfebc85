package repository

import (
	"context"
	"errors"
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
	defaultEstimatesTableName = "estimates"
	estimateOrgIndexName      = "org_id-index"
)

type lineItemItem struct {
	ID          string `dynamodbav:"id"`
	Category    string `dynamodbav:"category"`
	Description string `dynamodbav:"description"`

	Quantity         string `dynamodbav:"quantity"`
	Unit             string `dynamodbav:"unit"`
	UnitMaterialCost string `dynamodbav:"unit_material_cost"`
	UnitLaborCost    string `dynamodbav:"unit_labor_cost"`
	TotalCost        string `dynamodbav:"total_cost"`

	CalculationSource        string  `dynamodbav:"calculation_source"`
	OriginalComputedQuantity *string `dynamodbav:"original_computed_quantity,omitempty"`
	OriginalComputedCost     *string `dynamodbav:"original_computed_cost,omitempty"`
	OverrideReason           string  `dynamodbav:"override_reason,omitempty"`
	Locked                   bool    `dynamodbav:"locked"`
}

type estimateItem struct {
	ID             string `dynamodbav:"id"`
	OrganizationID string `dynamodbav:"org_id"`
	ProjectID      string `dynamodbav:"project_id"`
	Name           string `dynamodbav:"name"`
	Status         string `dynamodbav:"status"`

	MarkupRate string `dynamodbav:"markup_rate"`
	VATRate    string `dynamodbav:"vat_rate"`

	LineItems []lineItemItem `dynamodbav:"line_items"`

	Subtotal     string `dynamodbav:"subtotal"`
	MarkupAmount string `dynamodbav:"markup_amount"`
	VATAmount    string `dynamodbav:"vat_amount"`
	TotalAmount  string `dynamodbav:"total_amount"`

	Revision  int64  `dynamodbav:"revision"`
	CreatedBy string `dynamodbav:"created_by"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// EstimateDynamoRepository persists Estimate documents in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI org_id-index: org_id
//
// Line items are embedded in the estimate document, so one conditional put
// covers the item change and the recomputed aggregates. The revision
// attribute is the optimistic lock: writes assert the revision they read and
// store revision+1; a lost race is ErrRevisionConflict, never a partial or
// interleaved write.
type EstimateDynamoRepository struct {
	ddb            *dynamodb.Client
	tableName      string
	instancesTable string
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb *dynamodb.Client) *EstimateDynamoRepository {
	return &EstimateDynamoRepository{
		ddb:            ddb,
		tableName:      getenvDefault("ESTIMATES_TABLE", defaultEstimatesTableName),
		instancesTable: getenvDefault("COMPUTATION_INSTANCES_TABLE", defaultInstancesTableName),
	}
}

func (r *EstimateDynamoRepository) Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	av, err := attributevalue.MarshalMap(toEstimateItem(e))
	if err != nil {
		return entities.Estimate{}, err
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
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateDynamoRepository) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	if len(out.Item) == 0 {
		return entities.Estimate{}, nil
	}

	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it)
}

func (r *EstimateDynamoRepository) ListByOrganization(ctx context.Context, organizationID string) ([]entities.Estimate, error) {
	var estimates []entities.Estimate
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(estimateOrgIndexName),
			KeyConditionExpression: aws.String("#org = :org"),
			ExpressionAttributeNames: map[string]string{
				"#org": "org_id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":org": &types.AttributeValueMemberS{Value: organizationID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it estimateItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			e, err := fromEstimateItem(it)
			if err != nil {
				return nil, err
			}
			estimates = append(estimates, e)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return estimates, nil
}

func (r *EstimateDynamoRepository) Save(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	put, saved, err := r.conditionalPut(e)
	if err != nil {
		return entities.Estimate{}, err
	}
	_, err = r.ddb.PutItem(ctx, put)
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Estimate{}, interfaces.ErrRevisionConflict
		}
		return entities.Estimate{}, err
	}
	return saved, nil
}

// SaveWithComputation writes the estimate document and the computation
// receipt in one TransactWriteItems call: the line item mutation, the new
// aggregates and the receipt commit together or roll back together.
func (r *EstimateDynamoRepository) SaveWithComputation(ctx context.Context, e entities.Estimate, ci entities.ComputationInstance) (entities.Estimate, error) {
	put, saved, err := r.conditionalPut(e)
	if err != nil {
		return entities.Estimate{}, err
	}
	ciAV, err := attributevalue.MarshalMap(toInstanceItem(ci))
	if err != nil {
		return entities.Estimate{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:                 put.TableName,
					Item:                      put.Item,
					ConditionExpression:       put.ConditionExpression,
					ExpressionAttributeNames:  put.ExpressionAttributeNames,
					ExpressionAttributeValues: put.ExpressionAttributeValues,
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.instancesTable),
					Item:                ciAV,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			return entities.Estimate{}, interfaces.ErrRevisionConflict
		}
		return entities.Estimate{}, err
	}
	return saved, nil
}

// conditionalPut builds the revision-guarded put for e and returns the
// entity as it will be stored (revision bumped).
func (r *EstimateDynamoRepository) conditionalPut(e entities.Estimate) (*dynamodb.PutItemInput, entities.Estimate, error) {
	expected := e.Revision
	e.Revision++

	av, err := attributevalue.MarshalMap(toEstimateItem(e))
	if err != nil {
		return nil, entities.Estimate{}, err
	}
	return &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #revision = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":       "id",
			"#revision": "revision",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: decimal.NewFromInt(expected).String()},
		},
	}, e, nil
}

func toEstimateItem(e entities.Estimate) estimateItem {
	it := estimateItem{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		ProjectID:      e.ProjectID,
		Name:           e.Name,
		Status:         string(e.Status),
		MarkupRate:     e.MarkupRate.String(),
		VATRate:        e.VATRate.String(),
		Subtotal:       e.Subtotal.String(),
		MarkupAmount:   e.MarkupAmount.String(),
		VATAmount:      e.VATAmount.String(),
		TotalAmount:    e.TotalAmount.String(),
		Revision:       e.Revision,
		CreatedBy:      e.CreatedBy,
		CreatedAt:      e.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:      e.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	for _, li := range e.LineItems {
		it.LineItems = append(it.LineItems, lineItemItem{
			ID:                       li.ID,
			Category:                 li.Category,
			Description:              li.Description,
			Quantity:                 li.Quantity.String(),
			Unit:                     li.Unit,
			UnitMaterialCost:         li.UnitMaterialCost.String(),
			UnitLaborCost:            li.UnitLaborCost.String(),
			TotalCost:                li.TotalCost.String(),
			CalculationSource:        string(li.CalculationSource),
			OriginalComputedQuantity: decimalToStringPtr(li.OriginalComputedQuantity),
			OriginalComputedCost:     decimalToStringPtr(li.OriginalComputedCost),
			OverrideReason:           li.OverrideReason,
			Locked:                   li.Locked,
		})
	}
	return it
}

func fromEstimateItem(it estimateItem) (entities.Estimate, error) {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	markup, err := decimal.NewFromString(it.MarkupRate)
	if err != nil {
		return entities.Estimate{}, err
	}
	vat, err := decimal.NewFromString(it.VATRate)
	if err != nil {
		return entities.Estimate{}, err
	}
	subtotal, err := decimal.NewFromString(it.Subtotal)
	if err != nil {
		return entities.Estimate{}, err
	}
	markupAmount, err := decimal.NewFromString(it.MarkupAmount)
	if err != nil {
		return entities.Estimate{}, err
	}
	vatAmount, err := decimal.NewFromString(it.VATAmount)
	if err != nil {
		return entities.Estimate{}, err
	}
	totalAmount, err := decimal.NewFromString(it.TotalAmount)
	if err != nil {
		return entities.Estimate{}, err
	}

	e := entities.Estimate{
		ID:             it.ID,
		OrganizationID: it.OrganizationID,
		ProjectID:      it.ProjectID,
		Name:           it.Name,
		Status:         entities.EstimateStatus(it.Status),
		MarkupRate:     markup,
		VATRate:        vat,
		Subtotal:       subtotal,
		MarkupAmount:   markupAmount,
		VATAmount:      vatAmount,
		TotalAmount:    totalAmount,
		Revision:       it.Revision,
		CreatedBy:      it.CreatedBy,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
	for _, li := range it.LineItems {
		quantity, err := decimal.NewFromString(li.Quantity)
		if err != nil {
			return entities.Estimate{}, err
		}
		material, err := decimal.NewFromString(li.UnitMaterialCost)
		if err != nil {
			return entities.Estimate{}, err
		}
		labor, err := decimal.NewFromString(li.UnitLaborCost)
		if err != nil {
			return entities.Estimate{}, err
		}
		total, err := decimal.NewFromString(li.TotalCost)
		if err != nil {
			return entities.Estimate{}, err
		}
		origQuantity, err := stringPtrToDecimal(li.OriginalComputedQuantity)
		if err != nil {
			return entities.Estimate{}, err
		}
		origCost, err := stringPtrToDecimal(li.OriginalComputedCost)
		if err != nil {
			return entities.Estimate{}, err
		}
		e.LineItems = append(e.LineItems, entities.LineItem{
			ID:                       li.ID,
			Category:                 li.Category,
			Description:              li.Description,
			Quantity:                 quantity,
			Unit:                     li.Unit,
			UnitMaterialCost:         material,
			UnitLaborCost:            labor,
			TotalCost:                total,
			CalculationSource:        entities.CalculationSource(li.CalculationSource),
			OriginalComputedQuantity: origQuantity,
			OriginalComputedCost:     origCost,
			OverrideReason:           li.OverrideReason,
			Locked:                   li.Locked,
		})
	}
	return e, nil
}
