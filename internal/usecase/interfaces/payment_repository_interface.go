package interfaces

import (
	"context"

	"orcafacil/internal/domain/entities"
)

// IPaymentRepository abstracts persistence for ProposalPayment.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.ProposalPayment) (entities.ProposalPayment, error)
	GetByID(ctx context.Context, id string) (entities.ProposalPayment, error)
	ListByProposalID(ctx context.Context, proposalID string) ([]entities.ProposalPayment, error)
}
