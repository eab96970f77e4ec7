package usecase

import (
	"context"
	"errors"
	"testing"

	"orcafacil/internal/adapter/persistence/repository"
	"orcafacil/internal/domain/entities"
	"orcafacil/internal/domain/errs"
	"orcafacil/internal/domain/palette"
	mock_interfaces "orcafacil/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func doorsInput() ProposalInput {
	return ProposalInput{
		Title:   "Orçamento de Portas",
		Company: entities.CompanyInfo{Name: "Marcenaria Silva"},
		Client:  entities.ClientInfo{Name: "João Pereira"},
		LineItems: []entities.LineItem{
			{Description: "Portas de Madeira", Quantity: 10, UnitPrice: 2600.00},
			{Description: "Kit de Ferragens", Quantity: 10, UnitPrice: 150.00},
		},
	}
}

func TestProposalUseCase_Create(t *testing.T) {
	t.Run("missing owner", func(t *testing.T) {
		uc := NewProposalUseCase(nil)
		_, err := uc.Create(context.Background(), " ", doorsInput())
		if !errors.Is(err, ErrInvalidOwnerID) {
			t.Fatalf("expected ErrInvalidOwnerID, got %v", err)
		}
	})

	invalid := []struct {
		name   string
		mutate func(in *ProposalInput)
	}{
		{name: "no company", mutate: func(in *ProposalInput) { in.Company.Name = "" }},
		{name: "no client", mutate: func(in *ProposalInput) { in.Client.Name = "  " }},
		{name: "item without description", mutate: func(in *ProposalInput) { in.LineItems[0].Description = "" }},
		{name: "zero quantity", mutate: func(in *ProposalInput) { in.LineItems[0].Quantity = 0 }},
		{name: "negative price", mutate: func(in *ProposalInput) { in.LineItems[1].UnitPrice = -1 }},
		{name: "unknown template", mutate: func(in *ProposalInput) { in.TemplateID = "neon" }},
		{name: "bad color", mutate: func(in *ProposalInput) { in.TemplateColors = &entities.TemplateColors{Primary: "red"} }},
		{name: "unknown source", mutate: func(in *ProposalInput) { in.Source = "import" }},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewProposalUseCase(nil)
			in := doorsInput()
			tc.mutate(&in)
			_, err := uc.Create(context.Background(), "u-1", in)
			if !errors.Is(err, ErrInvalidProposal) || !errors.Is(err, errs.ErrValidation) {
				t.Fatalf("expected ErrInvalidProposal, got %v", err)
			}
		})
	}

	t.Run("repo error is a persistence error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := NewProposalUseCase(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Proposal{}, errors.New("db"))

		_, err := uc.Create(context.Background(), "u-1", doorsInput())
		if !errors.Is(err, errs.ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
	})

	t.Run("create success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := NewProposalUseCase(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Proposal{})).DoAndReturn(
			func(_ context.Context, p entities.Proposal) (entities.Proposal, error) {
				if p.ID == "" || p.OwnerID != "u-1" || p.Status != entities.ProposalStatusPending {
					t.Fatalf("unexpected proposal: %+v", p)
				}
				if p.Total != 27500 {
					t.Fatalf("expected total 27500, got %v", p.Total)
				}
				if p.TemplateID != entities.TemplateDefault || p.Source != entities.ProposalSourceManual {
					t.Fatalf("expected defaults, got template=%s source=%s", p.TemplateID, p.Source)
				}
				if p.TemplateColors != nil {
					t.Fatalf("empty overrides should be dropped")
				}
				if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
					t.Fatalf("expected timestamps")
				}
				return p, nil
			},
		)

		in := doorsInput()
		in.TemplateColors = &entities.TemplateColors{}
		res, err := uc.Create(context.Background(), " u-1 ", in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID == "" {
			t.Fatalf("expected generated id")
		}
	})
}

func TestProposalUseCase_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewProposalUseCase(nil)
		_, err := uc.GetByID(context.Background(), "")
		if !errors.Is(err, ErrInvalidProposalID) {
			t.Fatalf("expected ErrInvalidProposalID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := NewProposalUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Proposal{}, nil)

		_, err := uc.GetByID(context.Background(), "p-1")
		if !errors.Is(err, ErrProposalNotFound) || !errors.Is(err, errs.ErrNotFound) {
			t.Fatalf("expected ErrProposalNotFound, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := NewProposalUseCase(repo)
		dbErr := errors.New("db")

		repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Proposal{}, dbErr)

		_, err := uc.GetByID(context.Background(), "p-1")
		if !errors.Is(err, dbErr) || !errors.Is(err, errs.ErrPersistence) {
			t.Fatalf("expected wrapped db error, got %v", err)
		}
	})
}

func TestProposalUseCase_UpdateAndDelete(t *testing.T) {
	owned := entities.Proposal{
		ID:         "p-1",
		OwnerID:    "u-1",
		Company:    entities.CompanyInfo{Name: "Silva"},
		Client:     entities.ClientInfo{Name: "João"},
		TemplateID: entities.TemplateDefault,
		Source:     entities.ProposalSourceManual,
	}

	t.Run("other owner cannot update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := NewProposalUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(owned, nil)

		title := "x"
		_, err := uc.Update(context.Background(), "u-2", "p-1", entities.ProposalPatch{Title: &title})
		if !errors.Is(err, ErrNotProposalOwner) || !errors.Is(err, errs.ErrForbidden) {
			t.Fatalf("expected ErrNotProposalOwner, got %v", err)
		}
	})

	t.Run("invalid patch writes nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := NewProposalUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(owned, nil)

		items := []entities.LineItem{{Description: "", Quantity: 1}}
		_, err := uc.Update(context.Background(), "u-1", "p-1", entities.ProposalPatch{LineItems: &items})
		if !errors.Is(err, ErrInvalidProposal) {
			t.Fatalf("expected ErrInvalidProposal, got %v", err)
		}
	})

	t.Run("update success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := NewProposalUseCase(repo)

		title := "Novo"
		patch := entities.ProposalPatch{Title: &title}
		repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(owned, nil)
		repo.EXPECT().Update(gomock.Any(), "p-1", patch).Return(entities.Proposal{ID: "p-1", Title: "Novo"}, nil)

		res, err := uc.Update(context.Background(), "u-1", "p-1", patch)
		if err != nil || res.Title != "Novo" {
			t.Fatalf("unexpected result %+v err=%v", res, err)
		}
	})

	t.Run("delete by owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := NewProposalUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(owned, nil)
		repo.EXPECT().Delete(gomock.Any(), "p-1").Return(nil)

		if err := uc.Delete(context.Background(), "u-1", "p-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("delete by other owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := NewProposalUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(owned, nil)

		if err := uc.Delete(context.Background(), "u-2", "p-1"); !errors.Is(err, ErrNotProposalOwner) {
			t.Fatalf("expected ErrNotProposalOwner, got %v", err)
		}
	})
}

func TestProposalUseCase_SetStatus(t *testing.T) {
	t.Run("invalid status never reaches the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := NewProposalUseCase(repo)

		_, err := uc.SetStatus(context.Background(), "p-1", "bogus")
		if !errors.Is(err, ErrInvalidStatus) || !errors.Is(err, errs.ErrValidation) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := NewProposalUseCase(repo)

		repo.EXPECT().UpdateStatus(gomock.Any(), "p-1", entities.ProposalStatusAccepted).Return(entities.Proposal{}, nil)

		_, err := uc.SetStatus(context.Background(), "p-1", entities.ProposalStatusAccepted)
		if !errors.Is(err, ErrProposalNotFound) {
			t.Fatalf("expected ErrProposalNotFound, got %v", err)
		}
	})

	t.Run("accept then bogus leaves accepted", func(t *testing.T) {
		ctx := context.Background()
		uc := NewProposalUseCase(repository.NewMemoryStore().Proposals())

		p, err := uc.Create(ctx, "u-1", doorsInput())
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := uc.SetStatus(ctx, p.ID, entities.ProposalStatusAccepted); err != nil {
			t.Fatalf("set status: %v", err)
		}
		got, _ := uc.GetByID(ctx, p.ID)
		if got.Status != entities.ProposalStatusAccepted {
			t.Fatalf("expected accepted, got %s", got.Status)
		}

		if _, err := uc.SetStatus(ctx, p.ID, "bogus"); !errors.Is(err, errs.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
		got, _ = uc.GetByID(ctx, p.ID)
		if got.Status != entities.ProposalStatusAccepted {
			t.Fatalf("status changed to %s", got.Status)
		}

		// Any transition is allowed.
		if _, err := uc.SetStatus(ctx, p.ID, entities.ProposalStatusRejected); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := uc.SetStatus(ctx, p.ID, entities.ProposalStatusAccepted); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestProposalUseCase_TotalFollowsLineItems(t *testing.T) {
	ctx := context.Background()
	uc := NewProposalUseCase(repository.NewMemoryStore().Proposals())

	p, err := uc.Create(ctx, "u-1", doorsInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Total != 27500 {
		t.Fatalf("expected 27500, got %v", p.Total)
	}

	items := []entities.LineItem{
		{Description: "a", Quantity: 3, UnitPrice: 0.1},
		{Description: "b", Quantity: 7, UnitPrice: 19.99},
	}
	updated, err := uc.Update(ctx, "u-1", p.ID, entities.ProposalPatch{LineItems: &items})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Total != 140.23 {
		t.Fatalf("expected 140.23, got %v", updated.Total)
	}
}

func TestProposalUseCase_ResolvePalette(t *testing.T) {
	ctx := context.Background()
	uc := NewProposalUseCase(repository.NewMemoryStore().Proposals())

	in := doorsInput()
	in.TemplateID = entities.TemplateDark
	in.TemplateColors = &entities.TemplateColors{Primary: "#ff0000"}
	p, err := uc.Create(ctx, "u-1", in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	pal, err := uc.ResolvePalette(ctx, p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := palette.Baseline(entities.TemplateDark)
	want.Primary = "#ff0000"
	if pal != want {
		t.Fatalf("expected %+v, got %+v", want, pal)
	}
}
