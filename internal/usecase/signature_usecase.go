package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/domain/errs"
	"orcafacil/internal/infrastructure/canvas"
	"orcafacil/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrMissingSignerIdentity = fmt.Errorf("%w: missing signer identity", errs.ErrValidation)
	ErrEmptySignature        = fmt.Errorf("%w: empty signature", errs.ErrValidation)
	ErrInvalidSignatureImage = fmt.Errorf("%w: invalid signature image", errs.ErrValidation)
	ErrSignatureNotFound     = fmt.Errorf("%w: signature not found", errs.ErrNotFound)
	// ErrSignatureAlreadyExists is both a conflict and a rejected write.
	ErrSignatureAlreadyExists = fmt.Errorf("%w: %w: signature already exists for proposal", errs.ErrConflict, errs.ErrPersistence)
)

// SignatureInput is a signature submitted over the wire: either the raw
// strokes drawn by the signer, replayed server side, or an already
// rasterized image as a data URL.
type SignatureInput struct {
	SignerName    string
	SignerEmail   string
	Strokes       [][]canvas.Point
	SignatureData string
}

// ISignatureUseCase captures and reads the one signature a proposal may have.
type ISignatureUseCase interface {
	Save(ctx context.Context, proposalID string, surface *canvas.Surface, signerName, signerEmail string) (entities.Signature, error)
	Capture(ctx context.Context, proposalID string, in SignatureInput) (entities.Signature, error)
	GetByProposalID(ctx context.Context, proposalID string) (entities.Signature, error)
}

type SignatureUseCase struct {
	repo         interfaces.ISignatureRepository
	proposalRepo interfaces.IProposalRepository
}

var _ ISignatureUseCase = (*SignatureUseCase)(nil)

func NewSignatureUseCase(repo interfaces.ISignatureRepository, proposalRepo interfaces.IProposalRepository) *SignatureUseCase {
	return &SignatureUseCase{repo: repo, proposalRepo: proposalRepo}
}

// Save persists what is drawn on surface as the proposal's signature. Nothing
// is written unless both signer fields are filled and the surface has ink.
func (u *SignatureUseCase) Save(ctx context.Context, proposalID string, surface *canvas.Surface, signerName, signerEmail string) (entities.Signature, error) {
	signerName = strings.TrimSpace(signerName)
	signerEmail = strings.TrimSpace(signerEmail)
	if signerName == "" || signerEmail == "" {
		return entities.Signature{}, ErrMissingSignerIdentity
	}
	if surface == nil || !surface.HasInk() {
		return entities.Signature{}, ErrEmptySignature
	}

	proposalID, err := u.requireProposal(ctx, proposalID)
	if err != nil {
		return entities.Signature{}, err
	}

	data, err := surface.DataURL()
	if err != nil {
		return entities.Signature{}, fmt.Errorf("rasterize signature: %w", err)
	}
	return u.persist(ctx, proposalID, data, signerName, signerEmail)
}

// Capture replays in.Strokes on a fresh surface and saves it. Without strokes
// it falls back to in.SignatureData, which must decode and carry ink.
func (u *SignatureUseCase) Capture(ctx context.Context, proposalID string, in SignatureInput) (entities.Signature, error) {
	if len(in.Strokes) > 0 {
		surface := canvas.NewDefaultSurface()
		for _, stroke := range in.Strokes {
			if len(stroke) == 0 {
				continue
			}
			surface.BeginStroke(stroke[0])
			for _, pt := range stroke[1:] {
				surface.ExtendStroke(pt)
			}
			if len(stroke) == 1 {
				surface.ExtendStroke(stroke[0])
			}
			surface.EndStroke()
		}
		return u.Save(ctx, proposalID, surface, in.SignerName, in.SignerEmail)
	}

	signerName := strings.TrimSpace(in.SignerName)
	signerEmail := strings.TrimSpace(in.SignerEmail)
	if signerName == "" || signerEmail == "" {
		return entities.Signature{}, ErrMissingSignerIdentity
	}
	if strings.TrimSpace(in.SignatureData) == "" {
		return entities.Signature{}, ErrEmptySignature
	}
	img, err := canvas.DecodeDataURL(in.SignatureData)
	if err != nil {
		return entities.Signature{}, fmt.Errorf("%w: %v", ErrInvalidSignatureImage, err)
	}
	if !canvas.ImageHasInk(img) {
		return entities.Signature{}, ErrEmptySignature
	}

	proposalID, err = u.requireProposal(ctx, proposalID)
	if err != nil {
		return entities.Signature{}, err
	}
	return u.persist(ctx, proposalID, strings.TrimSpace(in.SignatureData), signerName, signerEmail)
}

func (u *SignatureUseCase) GetByProposalID(ctx context.Context, proposalID string) (entities.Signature, error) {
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return entities.Signature{}, ErrInvalidProposalID
	}

	s, err := u.repo.GetByProposalID(ctx, proposalID)
	if err != nil {
		return entities.Signature{}, persistenceError(err)
	}
	if s.ID == "" {
		return entities.Signature{}, ErrSignatureNotFound
	}
	return s, nil
}

func (u *SignatureUseCase) requireProposal(ctx context.Context, proposalID string) (string, error) {
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return "", ErrInvalidProposalID
	}
	p, err := u.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return "", persistenceError(err)
	}
	if p.ID == "" {
		return "", ErrProposalNotFound
	}
	return p.ID, nil
}

func (u *SignatureUseCase) persist(ctx context.Context, proposalID, data, signerName, signerEmail string) (entities.Signature, error) {
	s := entities.Signature{
		ID:            uuid.NewString(),
		ProposalID:    proposalID,
		SignatureData: data,
		SignerName:    signerName,
		SignerEmail:   signerEmail,
		SignedAt:      time.Now().UTC(),
	}

	created, err := u.repo.Create(ctx, s)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			zap.L().Warn("[signature][usecase] proposal already signed", zap.String("proposal_id", proposalID))
			return entities.Signature{}, ErrSignatureAlreadyExists
		}
		zap.L().Error("[signature][usecase] create failed", zap.String("proposal_id", proposalID), zap.Error(err))
		return entities.Signature{}, persistenceError(err)
	}
	zap.L().Info("[signature][usecase] signed",
		zap.String("proposal_id", proposalID),
		zap.String("signature_id", created.ID),
		zap.Int("image_bytes", len(created.SignatureData)),
	)
	return created, nil
}
