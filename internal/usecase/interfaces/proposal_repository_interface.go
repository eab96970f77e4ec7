package interfaces

import (
	"context"

	"orcafacil/internal/domain/entities"
)

// IProposalRepository abstracts persistence for Proposal.
//
// Lookups and updates return a zero-value Proposal (empty ID) with a nil error
// when the proposal does not exist; the use case turns that into a NotFound.
// Delete cascades to the proposal's signature.
type IProposalRepository interface {
	Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error)
	GetByID(ctx context.Context, id string) (entities.Proposal, error)
	Update(ctx context.Context, id string, patch entities.ProposalPatch) (entities.Proposal, error)
	UpdateStatus(ctx context.Context, id string, status entities.ProposalStatus) (entities.Proposal, error)
	Delete(ctx context.Context, id string) error
	ListByOwnerID(ctx context.Context, ownerID string) ([]entities.Proposal, error)
}
