package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"orcafacil/internal/adapter/persistence/repository"
	"orcafacil/internal/domain/entities"
	"orcafacil/internal/domain/errs"
	"orcafacil/internal/domain/palette"
	"orcafacil/internal/infrastructure/document"
	mock_interfaces "orcafacil/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestDocumentUseCase_RenderProposal(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewDocumentUseCase(nil, nil, nil)
		_, err := uc.RenderProposal(context.Background(), " ")
		if !errors.Is(err, ErrInvalidProposalID) {
			t.Fatalf("expected ErrInvalidProposalID, got %v", err)
		}
	})

	t.Run("proposal load failure is fatal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		proposals := mock_interfaces.NewMockIProposalRepository(ctrl)
		signatures := mock_interfaces.NewMockISignatureRepository(ctrl)
		renderer := mock_interfaces.NewMockIDocumentRenderer(ctrl)
		uc := NewDocumentUseCase(proposals, signatures, renderer)

		proposals.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Proposal{}, errors.New("timeout"))

		doc, err := uc.RenderProposal(context.Background(), "p-1")
		if !errors.Is(err, errs.ErrPersistence) || len(doc.Content) != 0 {
			t.Fatalf("expected persistence error and no document, got %v", err)
		}
	})

	t.Run("proposal not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		proposals := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := NewDocumentUseCase(proposals, nil, nil)

		proposals.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Proposal{}, nil)

		_, err := uc.RenderProposal(context.Background(), "p-1")
		if !errors.Is(err, ErrProposalNotFound) {
			t.Fatalf("expected ErrProposalNotFound, got %v", err)
		}
	})

	t.Run("signature store failure is fatal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		proposals := mock_interfaces.NewMockIProposalRepository(ctrl)
		signatures := mock_interfaces.NewMockISignatureRepository(ctrl)
		renderer := mock_interfaces.NewMockIDocumentRenderer(ctrl)
		uc := NewDocumentUseCase(proposals, signatures, renderer)

		proposals.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Proposal{ID: "p-1"}, nil)
		signatures.EXPECT().GetByProposalID(gomock.Any(), "p-1").Return(entities.Signature{}, errors.New("db"))

		_, err := uc.RenderProposal(context.Background(), "p-1")
		if !errors.Is(err, errs.ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
	})

	t.Run("recomputes total and resolves palette", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		proposals := mock_interfaces.NewMockIProposalRepository(ctrl)
		signatures := mock_interfaces.NewMockISignatureRepository(ctrl)
		renderer := mock_interfaces.NewMockIDocumentRenderer(ctrl)
		uc := NewDocumentUseCase(proposals, signatures, renderer)

		stale := entities.Proposal{
			ID:             "p-1",
			LineItems:      []entities.LineItem{{Description: "x", Quantity: 2, UnitPrice: 10}},
			Total:          999,
			TemplateID:     entities.TemplateElegant,
			TemplateColors: &entities.TemplateColors{Accent: "#000000"},
		}
		sig := entities.Signature{ID: "s-1", ProposalID: "p-1"}
		proposals.EXPECT().GetByID(gomock.Any(), "p-1").Return(stale, nil)
		signatures.EXPECT().GetByProposalID(gomock.Any(), "p-1").Return(sig, nil)
		renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Proposal, pal palette.Palette, s *entities.Signature) (entities.Document, error) {
				if p.Total != 20 {
					t.Fatalf("expected recomputed total 20, got %v", p.Total)
				}
				want := palette.Baseline(entities.TemplateElegant)
				want.Accent = "#000000"
				if pal != want {
					t.Fatalf("unexpected palette %+v", pal)
				}
				if s == nil || s.ID != "s-1" {
					t.Fatalf("expected signature to be passed")
				}
				return entities.Document{Filename: "x_signed.pdf", Signed: true}, nil
			},
		)

		doc, err := uc.RenderProposal(context.Background(), "p-1")
		if err != nil || !doc.Signed {
			t.Fatalf("unexpected result %+v err=%v", doc, err)
		}
	})
}

func TestDocumentUseCase_DoorsScenario(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	proposals := NewProposalUseCase(store.Proposals())
	uc := NewDocumentUseCase(store.Proposals(), store.Signatures(), document.NewRenderer(document.WithCompression(false)))

	p, err := proposals.Create(ctx, "u-1", doorsInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Total != 27500 {
		t.Fatalf("expected 27500, got %v", p.Total)
	}
	if palette.ForProposal(p).Primary != palette.Baseline(entities.TemplateDefault).Primary {
		t.Fatalf("expected default primary color")
	}

	doc, err := uc.RenderProposal(ctx, p.ID)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"(TOTAL GERAL: R$ 27500.00)", "(Portas de Madeira)", "(Kit de Ferragens)"} {
		if !bytes.Contains(doc.Content, []byte(want)) {
			t.Fatalf("document is missing %s", want)
		}
	}
	if doc.Signed || doc.Filename != "Or_amento_de_Portas.pdf" {
		t.Fatalf("unexpected document %s signed=%v", doc.Filename, doc.Signed)
	}

	signatures := NewSignatureUseCase(store.Signatures(), store.Proposals())
	if _, err := signatures.Save(ctx, p.ID, inkedSurface(), "Maria", "m@x.com"); err != nil {
		t.Fatalf("save: %v", err)
	}
	signed, err := uc.RenderProposal(ctx, p.ID)
	if err != nil {
		t.Fatalf("render signed: %v", err)
	}
	if !signed.Signed || signed.Filename != "Or_amento_de_Portas_signed.pdf" {
		t.Fatalf("unexpected signed document %s", signed.Filename)
	}
	if !bytes.Contains(signed.Content, []byte("(ASSINATURA DIGITAL)")) {
		t.Fatalf("expected signature block")
	}
}
