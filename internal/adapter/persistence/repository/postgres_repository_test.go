package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/domain/errs"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB connects to TEST_DATABASE_DSN inside a throwaway schema. Tests
// using it are skipped when the variable is unset.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	schema := fmt.Sprintf("orcafacil_test_%d", time.Now().UnixNano()%1000000)
	setup, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	setup.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema))

	db, err := gorm.Open(postgres.Open(fmt.Sprintf("%s search_path=%s", dsn, schema)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("connect to schema: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
		setup.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schema))
		if sqlDB, _ := setup.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestPostgresRepositories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	proposals := NewProposalPostgresRepository(db)
	signatures := NewSignaturePostgresRepository(db)
	payments := NewPaymentPostgresRepository(db)

	p := sampleProposal("p-1", "u-1")
	p.TemplateColors = &entities.TemplateColors{Primary: "#ff0000"}
	if _, err := proposals.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := proposals.GetByID(ctx, "p-1")
	if err != nil || got.ID != "p-1" || got.TemplateColors == nil || got.TemplateColors.Primary != "#ff0000" {
		t.Fatalf("unexpected proposal %+v err=%v", got, err)
	}

	items := []entities.LineItem{{Description: "Portas", Quantity: 10, UnitPrice: 2750}}
	updated, err := proposals.Update(ctx, "p-1", entities.ProposalPatch{LineItems: &items})
	if err != nil || updated.Total != 27500 {
		t.Fatalf("unexpected update %+v err=%v", updated, err)
	}

	accepted, err := proposals.UpdateStatus(ctx, "p-1", entities.ProposalStatusAccepted)
	if err != nil || accepted.Status != entities.ProposalStatusAccepted {
		t.Fatalf("unexpected status update %+v err=%v", accepted, err)
	}
	if missing, err := proposals.UpdateStatus(ctx, "nope", entities.ProposalStatusAccepted); err != nil || missing.ID != "" {
		t.Fatalf("expected zero value, got %+v err=%v", missing, err)
	}

	s := entities.Signature{ID: "s-1", ProposalID: "p-1", SignatureData: "data:image/png;base64,AA==", SignerName: "Maria", SignerEmail: "m@x.com", SignedAt: time.Now()}
	if _, err := signatures.Create(ctx, s); err != nil {
		t.Fatalf("create signature: %v", err)
	}
	s.ID = "s-2"
	if _, err := signatures.Create(ctx, s); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	pay := entities.ProposalPayment{ID: "pay-1", ProposalID: "p-1", Amount: 27500, Date: time.Now(), Status: entities.PaymentStatusAprovado, ProviderPayloadRaw: []byte(`{"status":"approved"}`)}
	if _, err := payments.Create(ctx, pay); err != nil {
		t.Fatalf("create payment: %v", err)
	}
	list, err := payments.ListByProposalID(ctx, "p-1")
	if err != nil || len(list) != 1 || list[0].ProviderPayload["status"] != "approved" {
		t.Fatalf("unexpected payments %+v err=%v", list, err)
	}

	if err := proposals.Delete(ctx, "p-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if sig, _ := signatures.GetByProposalID(ctx, "p-1"); sig.ID != "" {
		t.Fatalf("expected signature to be deleted with its proposal")
	}
}
