package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"orcafacil/internal/adapter/http/handlers/mocks"
	"orcafacil/internal/domain/entities"
	"orcafacil/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newSignatureRouter(h *SignatureHandler) *gin.Engine {
	r := gin.New()
	r.GET("/v1/signature/:proposal_id", h.GetShareView)
	r.POST("/v1/signature/:proposal_id", h.CaptureSignature)
	return r
}

func TestSignatureHandler_GetShareView(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("proposal not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		proposals := mocks.NewMockIProposalUseCase(ctrl)
		signatures := mocks.NewMockISignatureUseCase(ctrl)
		h := NewSignatureHandler(proposals, signatures)

		proposals.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Proposal{}, usecase.ErrProposalNotFound)

		w := doRequest(newSignatureRouter(h), http.MethodGet, "/v1/signature/p-1", "", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("unsigned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		proposals := mocks.NewMockIProposalUseCase(ctrl)
		signatures := mocks.NewMockISignatureUseCase(ctrl)
		h := NewSignatureHandler(proposals, signatures)

		proposals.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Proposal{ID: "p-1"}, nil)
		signatures.EXPECT().GetByProposalID(gomock.Any(), "p-1").Return(entities.Signature{}, usecase.ErrSignatureNotFound)

		w := doRequest(newSignatureRouter(h), http.MethodGet, "/v1/signature/p-1", "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["signed"] != false || body["signature"] != nil {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("signed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		proposals := mocks.NewMockIProposalUseCase(ctrl)
		signatures := mocks.NewMockISignatureUseCase(ctrl)
		h := NewSignatureHandler(proposals, signatures)

		proposals.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Proposal{ID: "p-1"}, nil)
		signatures.EXPECT().GetByProposalID(gomock.Any(), "p-1").
			Return(entities.Signature{ID: "s-1", ProposalID: "p-1", SignerName: "Maria", SignedAt: time.Now().UTC()}, nil)

		w := doRequest(newSignatureRouter(h), http.MethodGet, "/v1/signature/p-1", "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Signed    bool `json:"signed"`
			Signature struct {
				SignerName string `json:"signer_name"`
			} `json:"signature"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if !body.Signed || body.Signature.SignerName != "Maria" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("signature store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		proposals := mocks.NewMockIProposalUseCase(ctrl)
		signatures := mocks.NewMockISignatureUseCase(ctrl)
		h := NewSignatureHandler(proposals, signatures)

		proposals.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Proposal{ID: "p-1"}, nil)
		signatures.EXPECT().GetByProposalID(gomock.Any(), "p-1").Return(entities.Signature{}, errors.New("db"))

		w := doRequest(newSignatureRouter(h), http.MethodGet, "/v1/signature/p-1", "", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestSignatureHandler_CaptureSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)

	body := `{"signer_name":"Maria","signer_email":"m@x.com","strokes":[[{"x":10,"y":10},{"x":80,"y":50}]]}`

	cases := []struct {
		name string
		err  error
		code int
	}{
		{name: "missing identity", err: usecase.ErrMissingSignerIdentity, code: http.StatusBadRequest},
		{name: "empty pad", err: usecase.ErrEmptySignature, code: http.StatusBadRequest},
		{name: "unknown proposal", err: usecase.ErrProposalNotFound, code: http.StatusNotFound},
		{name: "already signed", err: usecase.ErrSignatureAlreadyExists, code: http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			signatures := mocks.NewMockISignatureUseCase(ctrl)
			h := NewSignatureHandler(mocks.NewMockIProposalUseCase(ctrl), signatures)

			signatures.EXPECT().Capture(gomock.Any(), "p-1", gomock.Any()).Return(entities.Signature{}, tc.err)

			w := doRequest(newSignatureRouter(h), http.MethodPost, "/v1/signature/p-1", body, "")
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, w.Code)
			}
		})
	}

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewSignatureHandler(mocks.NewMockIProposalUseCase(ctrl), mocks.NewMockISignatureUseCase(ctrl))

		w := doRequest(newSignatureRouter(h), http.MethodPost, "/v1/signature/p-1", `{"strokes":"x"}`, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		signatures := mocks.NewMockISignatureUseCase(ctrl)
		h := NewSignatureHandler(mocks.NewMockIProposalUseCase(ctrl), signatures)

		signatures.EXPECT().Capture(gomock.Any(), "p-1", gomock.Any()).DoAndReturn(
			func(_ any, proposalID string, in usecase.SignatureInput) (entities.Signature, error) {
				if in.SignerName != "Maria" || len(in.Strokes) != 1 || len(in.Strokes[0]) != 2 {
					t.Fatalf("unexpected input %+v", in)
				}
				return entities.Signature{ID: "s-1", ProposalID: proposalID, SignerName: in.SignerName}, nil
			},
		)

		w := doRequest(newSignatureRouter(h), http.MethodPost, "/v1/signature/p-1", body, "")
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var res map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &res)
		if res["id"] != "s-1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}
