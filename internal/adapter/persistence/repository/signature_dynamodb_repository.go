package repository

import (
	"context"
	"fmt"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/domain/errs"
	"orcafacil/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type signatureItem struct {
	ProposalID    string `dynamodbav:"proposal_id"`
	ID            string `dynamodbav:"id"`
	SignatureData string `dynamodbav:"signature_data"`
	SignerName    string `dynamodbav:"signer_name"`
	SignerEmail   string `dynamodbav:"signer_email"`
	SignedAt      string `dynamodbav:"signed_at"`
}

// SignatureDynamoRepository persists Signature entities in DynamoDB.
//
// Table requirements:
//   - PK: proposal_id (string)
//
// Keying by proposal_id makes the conditional put the uniqueness constraint:
// of two concurrent writers for one proposal exactly one succeeds.
type SignatureDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.ISignatureRepository = (*SignatureDynamoRepository)(nil)

func NewSignatureDynamoRepository(ddb DynamoAPI, tableName string) *SignatureDynamoRepository {
	return &SignatureDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *SignatureDynamoRepository) Create(ctx context.Context, s entities.Signature) (entities.Signature, error) {
	av, err := attributevalue.MarshalMap(toSignatureItem(s))
	if err != nil {
		return entities.Signature{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#pid)"),
		ExpressionAttributeNames: map[string]string{
			"#pid": "proposal_id",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Signature{}, fmt.Errorf("%w: signature for proposal %s", errs.ErrConflict, s.ProposalID)
		}
		return entities.Signature{}, err
	}
	return s, nil
}

func (r *SignatureDynamoRepository) GetByProposalID(ctx context.Context, proposalID string) (entities.Signature, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"proposal_id": &types.AttributeValueMemberS{Value: proposalID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Signature{}, err
	}
	if len(out.Item) == 0 {
		return entities.Signature{}, nil
	}

	var it signatureItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Signature{}, err
	}
	return fromSignatureItem(it), nil
}

func toSignatureItem(s entities.Signature) signatureItem {
	return signatureItem{
		ProposalID:    s.ProposalID,
		ID:            s.ID,
		SignatureData: s.SignatureData,
		SignerName:    s.SignerName,
		SignerEmail:   s.SignerEmail,
		SignedAt:      formatTime(s.SignedAt),
	}
}

func fromSignatureItem(it signatureItem) entities.Signature {
	return entities.Signature{
		ID:            it.ID,
		ProposalID:    it.ProposalID,
		SignatureData: it.SignatureData,
		SignerName:    it.SignerName,
		SignerEmail:   it.SignerEmail,
		SignedAt:      parseTime(it.SignedAt),
	}
}
