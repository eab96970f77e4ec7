package repository

import (
	"context"
	"time"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const proposalsOwnerIDIndex = "owner_id-index"

// DynamoAPI is the part of the DynamoDB client the repositories use.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

var _ DynamoAPI = (*dynamodb.Client)(nil)

type proposalItem struct {
	ID             string `dynamodbav:"id"`
	OwnerID        string `dynamodbav:"owner_id"`
	Title          string `dynamodbav:"title"`
	CompanyName    string `dynamodbav:"company_name"`
	CompanyPhone   string `dynamodbav:"company_phone"`
	CompanyTaxID   string `dynamodbav:"company_tax_id"`
	CompanyEmail   string `dynamodbav:"company_email"`
	ClientName     string `dynamodbav:"client_name"`
	ClientPhone    string `dynamodbav:"client_phone"`
	ClientLocation string `dynamodbav:"client_location"`
	LineItems      string `dynamodbav:"line_items"`
	Total          string `dynamodbav:"total"`
	Deadline       string `dynamodbav:"deadline"`
	PaymentTerms   string `dynamodbav:"payment_terms"`
	Observations   string `dynamodbav:"observations"`
	TemplateID     string `dynamodbav:"template_id"`
	TemplateColors string `dynamodbav:"template_colors,omitempty"`
	Status         string `dynamodbav:"status"`
	Source         string `dynamodbav:"source"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

// ProposalDynamoRepository persists Proposal entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: owner_id-index (PK: owner_id)
//
// Deleting a proposal also deletes its row in the signatures table, in the
// same transaction.
type ProposalDynamoRepository struct {
	ddb             DynamoAPI
	tableName       string
	signaturesTable string
}

var _ interfaces.IProposalRepository = (*ProposalDynamoRepository)(nil)

func NewProposalDynamoRepository(ddb DynamoAPI, tableName, signaturesTable string) *ProposalDynamoRepository {
	return &ProposalDynamoRepository{ddb: ddb, tableName: tableName, signaturesTable: signaturesTable}
}

func (r *ProposalDynamoRepository) Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error) {
	it, err := toProposalItem(p)
	if err != nil {
		return entities.Proposal{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Proposal{}, err
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
		return entities.Proposal{}, err
	}
	return p, nil
}

func (r *ProposalDynamoRepository) GetByID(ctx context.Context, id string) (entities.Proposal, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Proposal{}, err
	}
	if len(out.Item) == 0 {
		return entities.Proposal{}, nil
	}
	return unmarshalProposal(out.Item)
}

func (r *ProposalDynamoRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]entities.Proposal, error) {
	paginator := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(proposalsOwnerIDIndex),
		KeyConditionExpression: aws.String("owner_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: ownerID},
		},
	})

	items := make([]entities.Proposal, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			p, err := unmarshalProposal(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, p)
		}
	}
	return items, nil
}

func (r *ProposalDynamoRepository) Update(ctx context.Context, id string, patch entities.ProposalPatch) (entities.Proposal, error) {
	return r.update(ctx, id, func(now string) (*updateExpression, error) {
		u := newUpdateExpression()
		u.set("updated_at", &types.AttributeValueMemberS{Value: now})
		if patch.Title != nil {
			u.setString("title", *patch.Title)
		}
		if c := patch.Company; c != nil {
			u.setString("company_name", c.Name)
			u.setString("company_phone", c.Phone)
			u.setString("company_tax_id", c.TaxID)
			u.setString("company_email", c.Email)
		}
		if c := patch.Client; c != nil {
			u.setString("client_name", c.Name)
			u.setString("client_phone", c.Phone)
			u.setString("client_location", c.Location)
		}
		if patch.LineItems != nil {
			raw, err := EncodeLineItems(*patch.LineItems)
			if err != nil {
				return u, err
			}
			u.setString("line_items", raw)
			u.setString("total", floatToString(entities.SumLineItems(*patch.LineItems).InexactFloat64()))
		}
		if patch.Deadline != nil {
			u.setString("deadline", *patch.Deadline)
		}
		if patch.PaymentTerms != nil {
			u.setString("payment_terms", *patch.PaymentTerms)
		}
		if patch.Observations != nil {
			u.setString("observations", *patch.Observations)
		}
		if patch.TemplateID != nil {
			u.setString("template_id", string(*patch.TemplateID))
		}
		if patch.TemplateColors != nil {
			raw, err := EncodeTemplateColors(patch.TemplateColors)
			if err != nil {
				return u, err
			}
			if raw == "" {
				u.remove("template_colors")
			} else {
				u.setString("template_colors", raw)
			}
		}
		return u, nil
	})
}

func (r *ProposalDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.ProposalStatus) (entities.Proposal, error) {
	return r.update(ctx, id, func(now string) (*updateExpression, error) {
		u := newUpdateExpression()
		u.setString("status", string(status))
		u.setString("updated_at", now)
		return u, nil
	})
}

func (r *ProposalDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Delete: &types.Delete{
				TableName: aws.String(r.tableName),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: id},
				},
			}},
			{Delete: &types.Delete{
				TableName: aws.String(r.signaturesTable),
				Key: map[string]types.AttributeValue{
					"proposal_id": &types.AttributeValueMemberS{Value: id},
				},
			}},
		},
	})
	return err
}

func (r *ProposalDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (*updateExpression, error),
) (entities.Proposal, error) {
	u, err := build(formatTime(time.Now()))
	if err != nil {
		return entities.Proposal{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(u.String()),
		ExpressionAttributeValues: u.values,
		ExpressionAttributeNames:  mergeNames(u.names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Proposal{}, nil
		}
		return entities.Proposal{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Proposal{}, nil
	}
	return unmarshalProposal(out.Attributes)
}

func unmarshalProposal(raw map[string]types.AttributeValue) (entities.Proposal, error) {
	var it proposalItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Proposal{}, err
	}
	return fromProposalItem(it)
}

func toProposalItem(p entities.Proposal) (proposalItem, error) {
	lineItems, err := EncodeLineItems(p.LineItems)
	if err != nil {
		return proposalItem{}, err
	}
	colors, err := EncodeTemplateColors(p.TemplateColors)
	if err != nil {
		return proposalItem{}, err
	}
	return proposalItem{
		ID:             p.ID,
		OwnerID:        p.OwnerID,
		Title:          p.Title,
		CompanyName:    p.Company.Name,
		CompanyPhone:   p.Company.Phone,
		CompanyTaxID:   p.Company.TaxID,
		CompanyEmail:   p.Company.Email,
		ClientName:     p.Client.Name,
		ClientPhone:    p.Client.Phone,
		ClientLocation: p.Client.Location,
		LineItems:      lineItems,
		Total:          floatToString(p.Total),
		Deadline:       p.Deadline,
		PaymentTerms:   p.PaymentTerms,
		Observations:   p.Observations,
		TemplateID:     string(p.TemplateID),
		TemplateColors: colors,
		Status:         string(p.Status),
		Source:         string(p.Source),
		CreatedAt:      formatTime(p.CreatedAt),
		UpdatedAt:      formatTime(p.UpdatedAt),
	}, nil
}

func fromProposalItem(it proposalItem) (entities.Proposal, error) {
	lineItems, err := DecodeLineItems(it.LineItems)
	if err != nil {
		return entities.Proposal{}, err
	}
	colors, err := DecodeTemplateColors(it.TemplateColors)
	if err != nil {
		return entities.Proposal{}, err
	}
	return entities.Proposal{
		ID:      it.ID,
		OwnerID: it.OwnerID,
		Title:   it.Title,
		Company: entities.CompanyInfo{
			Name:  it.CompanyName,
			Phone: it.CompanyPhone,
			TaxID: it.CompanyTaxID,
			Email: it.CompanyEmail,
		},
		Client: entities.ClientInfo{
			Name:     it.ClientName,
			Phone:    it.ClientPhone,
			Location: it.ClientLocation,
		},
		LineItems:      lineItems,
		Total:          parseFloat(it.Total),
		Deadline:       it.Deadline,
		PaymentTerms:   it.PaymentTerms,
		Observations:   it.Observations,
		TemplateID:     entities.TemplateID(it.TemplateID),
		TemplateColors: colors,
		Status:         entities.ProposalStatus(it.Status),
		Source:         entities.ProposalSource(it.Source),
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}, nil
}
