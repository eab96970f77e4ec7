package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/domain/errs"
	"orcafacil/internal/domain/palette"
	"orcafacil/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProposalNotFound  = fmt.Errorf("%w: proposal not found", errs.ErrNotFound)
	ErrInvalidProposalID = fmt.Errorf("%w: invalid proposal id", errs.ErrValidation)
	ErrInvalidOwnerID    = fmt.Errorf("%w: invalid owner id", errs.ErrValidation)
	ErrInvalidProposal   = fmt.Errorf("%w: invalid proposal", errs.ErrValidation)
	ErrInvalidStatus     = fmt.Errorf("%w: invalid status", errs.ErrValidation)
	ErrNotProposalOwner  = fmt.Errorf("%w: proposal belongs to another user", errs.ErrForbidden)
)

// ProposalInput is the caller-supplied part of a new proposal. Identity,
// owner, total, status and timestamps are assigned here.
type ProposalInput struct {
	Title          string
	Company        entities.CompanyInfo
	Client         entities.ClientInfo
	LineItems      []entities.LineItem
	Deadline       string
	PaymentTerms   string
	Observations   string
	TemplateID     entities.TemplateID
	TemplateColors *entities.TemplateColors
	Source         entities.ProposalSource
}

// IProposalUseCase exposes the proposal store and the status workflow.
type IProposalUseCase interface {
	Create(ctx context.Context, ownerID string, in ProposalInput) (entities.Proposal, error)
	GetByID(ctx context.Context, id string) (entities.Proposal, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entities.Proposal, error)
	Update(ctx context.Context, ownerID, id string, patch entities.ProposalPatch) (entities.Proposal, error)
	Delete(ctx context.Context, ownerID, id string) error
	SetStatus(ctx context.Context, id string, status entities.ProposalStatus) (entities.Proposal, error)
	ResolvePalette(ctx context.Context, id string) (palette.Palette, error)
}

type ProposalUseCase struct {
	repo interfaces.IProposalRepository
}

var _ IProposalUseCase = (*ProposalUseCase)(nil)

func NewProposalUseCase(repo interfaces.IProposalRepository) *ProposalUseCase {
	return &ProposalUseCase{repo: repo}
}

func (u *ProposalUseCase) Create(ctx context.Context, ownerID string, in ProposalInput) (entities.Proposal, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return entities.Proposal{}, ErrInvalidOwnerID
	}

	now := time.Now().UTC()
	p := entities.Proposal{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		Title:          strings.TrimSpace(in.Title),
		Company:        in.Company,
		Client:         in.Client,
		LineItems:      append([]entities.LineItem(nil), in.LineItems...),
		Deadline:       in.Deadline,
		PaymentTerms:   in.PaymentTerms,
		Observations:   in.Observations,
		TemplateID:     in.TemplateID,
		TemplateColors: in.TemplateColors,
		Status:         entities.ProposalStatusPending,
		Source:         in.Source,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if p.TemplateID == "" {
		p.TemplateID = entities.TemplateDefault
	}
	if p.Source == "" {
		p.Source = entities.ProposalSourceManual
	}
	if p.TemplateColors != nil && p.TemplateColors.IsEmpty() {
		p.TemplateColors = nil
	}
	p.Recalculate()

	if err := validateProposal(p); err != nil {
		return entities.Proposal{}, err
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		zap.L().Error("[proposal][usecase] create failed", zap.String("owner_id", ownerID), zap.Error(err))
		return entities.Proposal{}, persistenceError(err)
	}
	zap.L().Info("[proposal][usecase] created",
		zap.String("proposal_id", created.ID),
		zap.String("owner_id", ownerID),
		zap.Int("line_items", len(created.LineItems)),
		zap.Float64("total", created.Total),
	)
	return created, nil
}

func (u *ProposalUseCase) GetByID(ctx context.Context, id string) (entities.Proposal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Proposal{}, ErrInvalidProposalID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, persistenceError(err)
	}
	if p.ID == "" {
		return entities.Proposal{}, ErrProposalNotFound
	}
	return p, nil
}

func (u *ProposalUseCase) ListByOwner(ctx context.Context, ownerID string) ([]entities.Proposal, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrInvalidOwnerID
	}

	items, err := u.repo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, persistenceError(err)
	}
	return items, nil
}

func (u *ProposalUseCase) Update(ctx context.Context, ownerID, id string, patch entities.ProposalPatch) (entities.Proposal, error) {
	current, err := u.owned(ctx, ownerID, id)
	if err != nil {
		return entities.Proposal{}, err
	}

	next := current
	patch.Apply(&next)
	if err := validateProposal(next); err != nil {
		return entities.Proposal{}, err
	}

	updated, err := u.repo.Update(ctx, current.ID, patch)
	if err != nil {
		zap.L().Error("[proposal][usecase] update failed", zap.String("proposal_id", current.ID), zap.Error(err))
		return entities.Proposal{}, persistenceError(err)
	}
	if updated.ID == "" {
		return entities.Proposal{}, ErrProposalNotFound
	}
	return updated, nil
}

func (u *ProposalUseCase) Delete(ctx context.Context, ownerID, id string) error {
	current, err := u.owned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, current.ID); err != nil {
		zap.L().Error("[proposal][usecase] delete failed", zap.String("proposal_id", current.ID), zap.Error(err))
		return persistenceError(err)
	}
	zap.L().Info("[proposal][usecase] deleted", zap.String("proposal_id", current.ID))
	return nil
}

// SetStatus writes status through to the store. Any status may follow any
// other.
func (u *ProposalUseCase) SetStatus(ctx context.Context, id string, status entities.ProposalStatus) (entities.Proposal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Proposal{}, ErrInvalidProposalID
	}
	if !status.IsValid() {
		return entities.Proposal{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	updated, err := u.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		zap.L().Error("[proposal][usecase] set status failed", zap.String("proposal_id", id), zap.Error(err))
		return entities.Proposal{}, persistenceError(err)
	}
	if updated.ID == "" {
		return entities.Proposal{}, ErrProposalNotFound
	}
	zap.L().Info("[proposal][usecase] status changed", zap.String("proposal_id", id), zap.String("status", string(status)))
	return updated, nil
}

func (u *ProposalUseCase) ResolvePalette(ctx context.Context, id string) (palette.Palette, error) {
	p, err := u.GetByID(ctx, id)
	if err != nil {
		return palette.Palette{}, err
	}
	return palette.ForProposal(p), nil
}

func (u *ProposalUseCase) owned(ctx context.Context, ownerID, id string) (entities.Proposal, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return entities.Proposal{}, ErrInvalidOwnerID
	}
	p, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.OwnerID != ownerID {
		return entities.Proposal{}, ErrNotProposalOwner
	}
	return p, nil
}

func validateProposal(p entities.Proposal) error {
	if strings.TrimSpace(p.Company.Name) == "" {
		return fmt.Errorf("%w: company name is required", ErrInvalidProposal)
	}
	if strings.TrimSpace(p.Client.Name) == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidProposal)
	}
	for i, it := range p.LineItems {
		if strings.TrimSpace(it.Description) == "" {
			return fmt.Errorf("%w: line item %d has no description", ErrInvalidProposal, i+1)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: line item %d quantity must be at least 1", ErrInvalidProposal, i+1)
		}
		if it.UnitPrice < 0 {
			return fmt.Errorf("%w: line item %d price must not be negative", ErrInvalidProposal, i+1)
		}
	}
	if !palette.IsKnownTemplate(p.TemplateID) {
		return fmt.Errorf("%w: unknown template %q", ErrInvalidProposal, p.TemplateID)
	}
	if c := p.TemplateColors; c != nil {
		for _, v := range []string{c.Primary, c.Background, c.Text, c.Accent} {
			if v != "" && !palette.IsHexColor(v) {
				return fmt.Errorf("%w: color %q is not #RRGGBB", ErrInvalidProposal, v)
			}
		}
	}
	if !p.Source.IsValid() {
		return fmt.Errorf("%w: unknown source %q", ErrInvalidProposal, p.Source)
	}
	return nil
}

// persistenceError classifies store failures that carry no category of their
// own.
func persistenceError(err error) error {
	if errs.Category(err) != nil {
		return err
	}
	return fmt.Errorf("%w: %w", errs.ErrPersistence, err)
}
