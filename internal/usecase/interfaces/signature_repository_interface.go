package interfaces

import (
	"context"

	"orcafacil/internal/domain/entities"
)

// ISignatureRepository abstracts persistence for Signature.
//
// The store holds at most one signature per proposal. Create fails with an
// error wrapping errs.ErrConflict when one already exists.
type ISignatureRepository interface {
	Create(ctx context.Context, s entities.Signature) (entities.Signature, error)
	GetByProposalID(ctx context.Context, proposalID string) (entities.Signature, error)
}
