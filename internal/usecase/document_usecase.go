package usecase

import (
	"context"
	"fmt"
	"strings"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/domain/palette"
	"orcafacil/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// IDocumentUseCase renders a proposal into a downloadable document.
type IDocumentUseCase interface {
	RenderProposal(ctx context.Context, proposalID string) (entities.Document, error)
}

type DocumentUseCase struct {
	proposalRepo  interfaces.IProposalRepository
	signatureRepo interfaces.ISignatureRepository
	renderer      interfaces.IDocumentRenderer
}

var _ IDocumentUseCase = (*DocumentUseCase)(nil)

func NewDocumentUseCase(proposalRepo interfaces.IProposalRepository, signatureRepo interfaces.ISignatureRepository, renderer interfaces.IDocumentRenderer) *DocumentUseCase {
	return &DocumentUseCase{proposalRepo: proposalRepo, signatureRepo: signatureRepo, renderer: renderer}
}

// RenderProposal loads the proposal and, when present, its signature, then
// renders them. Failing to load either record aborts; a signature image that
// does not decode is handled by the renderer.
func (u *DocumentUseCase) RenderProposal(ctx context.Context, proposalID string) (entities.Document, error) {
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return entities.Document{}, ErrInvalidProposalID
	}

	p, err := u.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		zap.L().Error("[document][usecase] load proposal failed", zap.String("proposal_id", proposalID), zap.Error(err))
		return entities.Document{}, persistenceError(err)
	}
	if p.ID == "" {
		return entities.Document{}, ErrProposalNotFound
	}
	p.Recalculate()

	var sig *entities.Signature
	s, err := u.signatureRepo.GetByProposalID(ctx, proposalID)
	if err != nil {
		zap.L().Error("[document][usecase] load signature failed", zap.String("proposal_id", proposalID), zap.Error(err))
		return entities.Document{}, persistenceError(err)
	}
	if s.ID != "" {
		sig = &s
	}

	doc, err := u.renderer.Render(ctx, p, palette.ForProposal(p), sig)
	if err != nil {
		zap.L().Error("[document][usecase] render failed", zap.String("proposal_id", proposalID), zap.Error(err))
		return entities.Document{}, fmt.Errorf("render proposal %s: %w", proposalID, err)
	}
	zap.L().Info("[document][usecase] rendered",
		zap.String("proposal_id", proposalID),
		zap.String("filename", doc.Filename),
		zap.Int("pages", doc.Pages),
		zap.Bool("signed", doc.Signed),
	)
	return doc, nil
}
