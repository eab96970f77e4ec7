package repository

import (
	"context"
	"errors"
	"fmt"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/domain/errs"
	"orcafacil/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// SignaturePostgresRepository persists Signature entities with gorm. The
// unique index on proposal_id is what keeps a proposal to one signature;
// the connection must be opened with TranslateError so violations surface as
// gorm.ErrDuplicatedKey.
type SignaturePostgresRepository struct {
	db *gorm.DB
}

var _ interfaces.ISignatureRepository = (*SignaturePostgresRepository)(nil)

func NewSignaturePostgresRepository(db *gorm.DB) *SignaturePostgresRepository {
	return &SignaturePostgresRepository{db: db}
}

func (r *SignaturePostgresRepository) Create(ctx context.Context, s entities.Signature) (entities.Signature, error) {
	m := toSignatureModel(s)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.Signature{}, fmt.Errorf("%w: signature for proposal %s", errs.ErrConflict, s.ProposalID)
		}
		return entities.Signature{}, err
	}
	return s, nil
}

func (r *SignaturePostgresRepository) GetByProposalID(ctx context.Context, proposalID string) (entities.Signature, error) {
	var m signatureModel
	err := r.db.WithContext(ctx).Where("proposal_id = ?", proposalID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Signature{}, nil
		}
		return entities.Signature{}, err
	}
	return fromSignatureModel(m), nil
}
