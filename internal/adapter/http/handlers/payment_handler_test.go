package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orcafacil/internal/adapter/http/handlers/mocks"
	"orcafacil/internal/domain/entities"
	"orcafacil/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

type failingReadCloser struct{}

func (failingReadCloser) Read(_ []byte) (int, error) { return 0, errors.New("read error") }
func (failingReadCloser) Close() error               { return nil }

func TestPaymentHandler_CreatePaymentByProposalID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, false)

		r := gin.New()
		r.POST("/v1/payments/:proposal_id", h.CreatePaymentByProposalID)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/p-1", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid payload in mock mode falls back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, true)

		r := gin.New()
		r.POST("/v1/payments/:proposal_id", h.CreatePaymentByProposalID)

		uc.EXPECT().CreateAndApprove(gomock.Any(), "p-1", json.RawMessage("{}")).
			Return(entities.ProposalPayment{ID: "pay-1", ProposalID: "p-1", Status: entities.PaymentStatusAprovado}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/p-1", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("usecase mapped error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, false)

		r := gin.New()
		r.POST("/v1/payments/:proposal_id", h.CreatePaymentByProposalID)

		uc.EXPECT().CreateAndApprove(gomock.Any(), "p-1", gomock.Any()).Return(entities.ProposalPayment{}, usecase.ErrProposalNotAccepted)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/p-1", bytes.NewBufferString(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, false)

		r := gin.New()
		r.POST("/v1/payments/:proposal_id", h.CreatePaymentByProposalID)

		now := time.Now().UTC()
		uc.EXPECT().CreateAndApprove(gomock.Any(), "p-1", json.RawMessage(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`)).
			Return(entities.ProposalPayment{ID: "pay-1", ProposalID: "p-1", Date: now, Amount: 27500, Status: entities.PaymentStatusAprovado}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/p-1", bytes.NewBufferString(`{"mp_payload":{"payment_method_id":"pix","payer":{"email":"x@test.com"}}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "pay-1" || body["amount"] != float64(27500) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestPaymentHandler_GetPaymentByProposalID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, false)

		r := gin.New()
		r.GET("/v1/payments/:proposal_id", h.GetPaymentByProposalID)

		uc.EXPECT().ListByProposalID(gomock.Any(), "p-1").Return(nil, usecase.ErrInvalidProposalID)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/p-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, false)

		r := gin.New()
		r.GET("/v1/payments/:proposal_id", h.GetPaymentByProposalID)

		uc.EXPECT().ListByProposalID(gomock.Any(), "p-1").Return([]entities.ProposalPayment{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/p-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success returns latest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, false)

		r := gin.New()
		r.GET("/v1/payments/:proposal_id", h.GetPaymentByProposalID)

		old := entities.ProposalPayment{ID: "old", ProposalID: "p-1", Date: time.Now().Add(-time.Hour), Status: entities.PaymentStatusPendente}
		latest := entities.ProposalPayment{ID: "latest", ProposalID: "p-1", Date: time.Now(), Status: entities.PaymentStatusAprovado}
		uc.EXPECT().ListByProposalID(gomock.Any(), "p-1").Return([]entities.ProposalPayment{latest, old}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/p-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "latest" {
			t.Fatalf("expected latest payment, got body: %s", w.Body.String())
		}
	})
}

func TestReadMPPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	makeCtx := func(raw string) *gin.Context {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(raw))
		c.Request.Header.Set("Content-Type", "application/json")
		return c
	}

	ctxReadErr := makeCtx("{}")
	ctxReadErr.Request.Body = failingReadCloser{}
	if _, err := readMPPayload(ctxReadErr); err == nil {
		t.Fatalf("expected read body error")
	}

	if _, err := readMPPayload(makeCtx("{invalid")); err == nil {
		t.Fatalf("expected invalid json error")
	}

	payload, err := readMPPayload(makeCtx("   "))
	if err != nil || string(payload) != "{}" {
		t.Fatalf("expected {}, got payload=%s err=%v", string(payload), err)
	}

	if _, err := readMPPayload(makeCtx(`{"mp_payload":null}`)); err == nil {
		t.Fatalf("expected mp_payload empty error")
	}

	payload, err = readMPPayload(makeCtx(`{"mp_payload":{"a":1}}`))
	if err != nil || string(payload) != `{"a":1}` {
		t.Fatalf("expected wrapped payload, got %s err=%v", payload, err)
	}

	payload, err = readMPPayload(makeCtx(`{"payment_method_id":"pix"}`))
	if err != nil || string(payload) != `{"payment_method_id":"pix"}` {
		t.Fatalf("expected raw body payload, got %s err=%v", payload, err)
	}
}
