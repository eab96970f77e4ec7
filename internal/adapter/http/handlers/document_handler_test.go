package handlers

import (
	"errors"
	"net/http"
	"testing"

	"orcafacil/internal/adapter/http/handlers/mocks"
	"orcafacil/internal/domain/entities"
	"orcafacil/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestDocumentHandler_DownloadDocument(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(h *DocumentHandler) *gin.Engine {
		r := gin.New()
		r.GET("/v1/proposals/:id/document", h.DownloadDocument)
		return r
	}

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIDocumentUseCase(ctrl)
		h := NewDocumentHandler(uc)

		uc.EXPECT().RenderProposal(gomock.Any(), "p-1").Return(entities.Document{}, usecase.ErrProposalNotFound)

		w := doRequest(newRouter(h), http.MethodGet, "/v1/proposals/p-1/document", "", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("render failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIDocumentUseCase(ctrl)
		h := NewDocumentHandler(uc)

		uc.EXPECT().RenderProposal(gomock.Any(), "p-1").Return(entities.Document{}, errors.New("fpdf"))

		w := doRequest(newRouter(h), http.MethodGet, "/v1/proposals/p-1/document", "", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIDocumentUseCase(ctrl)
		h := NewDocumentHandler(uc)

		content := []byte("%PDF-1.3 fake")
		uc.EXPECT().RenderProposal(gomock.Any(), "p-1").Return(entities.Document{
			Filename:    "Or_amento_de_Portas_signed.pdf",
			ContentType: "application/pdf",
			Content:     content,
			Pages:       1,
			Signed:      true,
		}, nil)

		w := doRequest(newRouter(h), http.MethodGet, "/v1/proposals/p-1/document", "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Fatalf("unexpected content type %q", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="Or_amento_de_Portas_signed.pdf"` {
			t.Fatalf("unexpected disposition %q", cd)
		}
		if w.Body.String() != string(content) {
			t.Fatalf("unexpected body %q", w.Body.String())
		}
	})
}
