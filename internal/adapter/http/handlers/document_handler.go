package handlers

import (
	"fmt"
	"net/http"

	"orcafacil/internal/usecase"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	usecase usecase.IDocumentUseCase
}

func NewDocumentHandler(uc usecase.IDocumentUseCase) *DocumentHandler {
	return &DocumentHandler{usecase: uc}
}

// DownloadDocument godoc
// @Summary      Render the proposal as a PDF
// @Tags         proposals
// @Produce      application/pdf
// @Param        id  path  string  true  "Proposal id"
// @Success      200  {file}    file
// @Failure      404  {object}  pkg.HTTPError
// @Router       /proposals/{id}/document [get]
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	doc, err := h.usecase.RenderProposal(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWith(c, mapError(err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Header("X-Document-Pages", fmt.Sprintf("%d", doc.Pages))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}
