package repository

import (
	"context"
	"errors"
	"time"

	"buildcost/internal/domain/entities"
	"buildcost/internal/domain/formula"
	"buildcost/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultFormulasTableName = "formulas"
	formulaOrgIndexName      = "org_id-index"
)

type formulaInputItem struct {
	Variable     string  `dynamodbav:"variable"`
	Label        string  `dynamodbav:"label"`
	Unit         string  `dynamodbav:"unit"`
	Kind         string  `dynamodbav:"kind"`
	Min          *string `dynamodbav:"min,omitempty"`
	Max          *string `dynamodbav:"max,omitempty"`
	DefaultValue *string `dynamodbav:"default_value,omitempty"`
}

type formulaExpressionItem struct {
	Variable   string `dynamodbav:"variable"`
	Expression string `dynamodbav:"expression"`
}

type formulaOutputItem struct {
	Variable    string `dynamodbav:"variable"`
	TargetField string `dynamodbav:"target_field"`
	Unit        string `dynamodbav:"unit"`
}

type formulaItem struct {
	ID                string                  `dynamodbav:"id"`
	OrganizationID    string                  `dynamodbav:"org_id"`
	Name              string                  `dynamodbav:"name"`
	Description       string                  `dynamodbav:"description"`
	Category          string                  `dynamodbav:"category"`
	Version           int                     `dynamodbav:"version"`
	Inputs            []formulaInputItem      `dynamodbav:"inputs"`
	Expressions       []formulaExpressionItem `dynamodbav:"expressions"`
	Outputs           []formulaOutputItem     `dynamodbav:"outputs"`
	IsActive          bool                    `dynamodbav:"is_active"`
	PreviousVersionID string                  `dynamodbav:"previous_version_id,omitempty"`
	SupersededBy      string                  `dynamodbav:"superseded_by,omitempty"`
	CreatedBy         string                  `dynamodbav:"created_by"`
	CreatedAt         string                  `dynamodbav:"created_at"`
}

// FormulaDynamoRepository persists Formula versions in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI org_id-index: org_id
//
// Rows are append-only. The only attribute ever written to an existing row
// is superseded_by (chain bookkeeping), inside the same transaction that
// inserts the successor.
type FormulaDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IFormulaRepository = (*FormulaDynamoRepository)(nil)

func NewFormulaDynamoRepository(ddb *dynamodb.Client) *FormulaDynamoRepository {
	return &FormulaDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("FORMULAS_TABLE", defaultFormulasTableName),
	}
}

func (r *FormulaDynamoRepository) Create(ctx context.Context, f entities.Formula) (entities.Formula, error) {
	av, err := attributevalue.MarshalMap(toFormulaItem(f))
	if err != nil {
		return entities.Formula{}, err
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
		return entities.Formula{}, err
	}
	return f, nil
}

func (r *FormulaDynamoRepository) GetByID(ctx context.Context, id string) (entities.Formula, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Formula{}, err
	}
	if len(out.Item) == 0 {
		return entities.Formula{}, nil
	}

	var it formulaItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Formula{}, interfaces.ErrDefinitionInvalid
	}
	return fromFormulaItem(it)
}

func (r *FormulaDynamoRepository) ListCurrentByOrganization(ctx context.Context, organizationID, category string) ([]entities.Formula, error) {
	filter := "attribute_not_exists(#superseded) AND #active = :active"
	values := map[string]types.AttributeValue{
		":org":    &types.AttributeValueMemberS{Value: organizationID},
		":active": &types.AttributeValueMemberBOOL{Value: true},
	}
	names := map[string]string{
		"#org":        "org_id",
		"#superseded": "superseded_by",
		"#active":     "is_active",
	}
	if category != "" {
		filter += " AND #category = :category"
		values[":category"] = &types.AttributeValueMemberS{Value: category}
		names["#category"] = "category"
	}

	var formulas []entities.Formula
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(formulaOrgIndexName),
			KeyConditionExpression:    aws.String("#org = :org"),
			FilterExpression:          aws.String(filter),
			ExpressionAttributeValues: values,
			ExpressionAttributeNames:  names,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it formulaItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, interfaces.ErrDefinitionInvalid
			}
			f, err := fromFormulaItem(it)
			if err != nil {
				return nil, err
			}
			formulas = append(formulas, f)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return formulas, nil
}

// AppendVersion inserts the new version and marks the old head superseded in
// one transaction. attribute_not_exists(superseded_by) on the old head is
// the race guard: if another edit already appended a successor, the whole
// transaction cancels and the caller gets ErrVersionChainConflict.
func (r *FormulaDynamoRepository) AppendVersion(ctx context.Context, newVersion entities.Formula, supersededID string) (entities.Formula, error) {
	av, err := attributevalue.MarshalMap(toFormulaItem(newVersion))
	if err != nil {
		return entities.Formula{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                av,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
			{
				Update: &types.Update{
					TableName: aws.String(r.tableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: supersededID},
					},
					UpdateExpression:    aws.String("SET #superseded = :successor"),
					ConditionExpression: aws.String("attribute_exists(#id) AND attribute_not_exists(#superseded)"),
					ExpressionAttributeNames: map[string]string{
						"#id":         "id",
						"#superseded": "superseded_by",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":successor": &types.AttributeValueMemberS{Value: newVersion.ID},
					},
				},
			},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			return entities.Formula{}, interfaces.ErrVersionChainConflict
		}
		return entities.Formula{}, err
	}
	return newVersion, nil
}

func (r *FormulaDynamoRepository) SetActive(ctx context.Context, id string, active bool) (entities.Formula, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    aws.String("SET #active = :active"),
		ConditionExpression: aws.String("attribute_exists(#id) AND attribute_not_exists(#superseded)"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#active":     "is_active",
			"#superseded": "superseded_by",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberBOOL{Value: active},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Formula{}, interfaces.ErrVersionChainConflict
		}
		return entities.Formula{}, err
	}

	var it formulaItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Formula{}, interfaces.ErrDefinitionInvalid
	}
	return fromFormulaItem(it)
}

func toFormulaItem(f entities.Formula) formulaItem {
	it := formulaItem{
		ID:                f.ID,
		OrganizationID:    f.OrganizationID,
		Name:              f.Name,
		Description:       f.Description,
		Category:          f.Category,
		Version:           f.Version,
		IsActive:          f.IsActive,
		PreviousVersionID: f.PreviousVersionID,
		SupersededBy:      f.SupersededBy,
		CreatedBy:         f.CreatedBy,
		CreatedAt:         f.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	for _, in := range f.Inputs {
		it.Inputs = append(it.Inputs, formulaInputItem{
			Variable:     in.Variable,
			Label:        in.Label,
			Unit:         in.Unit,
			Kind:         string(in.Kind),
			Min:          decimalToStringPtr(in.Min),
			Max:          decimalToStringPtr(in.Max),
			DefaultValue: decimalToStringPtr(in.DefaultValue),
		})
	}
	for _, expr := range f.Expressions {
		it.Expressions = append(it.Expressions, formulaExpressionItem(expr))
	}
	for _, out := range f.Outputs {
		it.Outputs = append(it.Outputs, formulaOutputItem(out))
	}
	return it
}

// fromFormulaItem re-validates the persisted document against the expected
// shape instead of trusting historical rows blindly; anything that drifted
// (unknown kind, malformed decimal, empty variable) is reported as an
// invalid definition, not silently coerced.
func fromFormulaItem(it formulaItem) (entities.Formula, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, it.CreatedAt)
	if err != nil {
		return entities.Formula{}, interfaces.ErrDefinitionInvalid
	}
	if it.ID == "" || it.OrganizationID == "" || it.Version < 1 {
		return entities.Formula{}, interfaces.ErrDefinitionInvalid
	}

	f := entities.Formula{
		ID:                it.ID,
		OrganizationID:    it.OrganizationID,
		Name:              it.Name,
		Description:       it.Description,
		Category:          it.Category,
		Version:           it.Version,
		IsActive:          it.IsActive,
		PreviousVersionID: it.PreviousVersionID,
		SupersededBy:      it.SupersededBy,
		CreatedBy:         it.CreatedBy,
		CreatedAt:         createdAt,
	}
	for _, in := range it.Inputs {
		kind := formula.InputKind(in.Kind)
		if kind != formula.InputKindNumber && kind != formula.InputKindInteger {
			return entities.Formula{}, interfaces.ErrDefinitionInvalid
		}
		if !formula.IsValidIdentifier(in.Variable) {
			return entities.Formula{}, interfaces.ErrDefinitionInvalid
		}
		min, err := stringPtrToDecimal(in.Min)
		if err != nil {
			return entities.Formula{}, interfaces.ErrDefinitionInvalid
		}
		max, err := stringPtrToDecimal(in.Max)
		if err != nil {
			return entities.Formula{}, interfaces.ErrDefinitionInvalid
		}
		def, err := stringPtrToDecimal(in.DefaultValue)
		if err != nil {
			return entities.Formula{}, interfaces.ErrDefinitionInvalid
		}
		f.Inputs = append(f.Inputs, formula.InputDefinition{
			Variable:     in.Variable,
			Label:        in.Label,
			Unit:         in.Unit,
			Kind:         kind,
			Min:          min,
			Max:          max,
			DefaultValue: def,
		})
	}
	for _, expr := range it.Expressions {
		if !formula.IsValidIdentifier(expr.Variable) || expr.Expression == "" {
			return entities.Formula{}, interfaces.ErrDefinitionInvalid
		}
		f.Expressions = append(f.Expressions, formula.ExpressionDefinition(expr))
	}
	for _, out := range it.Outputs {
		if !formula.IsValidIdentifier(out.Variable) || out.TargetField != formula.OutputTargetQuantity {
			return entities.Formula{}, interfaces.ErrDefinitionInvalid
		}
		f.Outputs = append(f.Outputs, formula.OutputDefinition(out))
	}
	return f, nil
}

func decimalToStringPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func stringPtrToDecimal(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
