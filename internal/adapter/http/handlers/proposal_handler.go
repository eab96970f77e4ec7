package handlers

import (
	"net/http"

	request "orcafacil/internal/adapter/http/dto/request"
	response "orcafacil/internal/adapter/http/dto/response"
	"orcafacil/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProposalHandler handles HTTP requests for proposals and their status.
type ProposalHandler struct {
	usecase usecase.IProposalUseCase
}

func NewProposalHandler(uc usecase.IProposalUseCase) *ProposalHandler {
	return &ProposalHandler{usecase: uc}
}

// CreateProposal godoc
// @Summary      Create a proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string                    true  "Owner account id"
// @Param        body       body    request.ProposalRequest  true  "Proposal"
// @Success      201  {object}  response.ProposalResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /proposals [post]
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		abortWith(c, errMissingUserID)
		return
	}
	var payload request.ProposalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		zap.L().Warn("[proposal][handler] invalid payload", zap.Error(err))
		abortWith(c, errInvalidRequest)
		return
	}

	p, err := h.usecase.Create(c.Request.Context(), owner, payload.ToInput())
	if err != nil {
		abortWith(c, mapError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromProposal(p))
}

// ListProposals godoc
// @Summary      List the caller's proposals, newest first
// @Tags         proposals
// @Produce      json
// @Param        X-User-ID  header  string  true  "Owner account id"
// @Success      200  {array}  response.ProposalResponse
// @Router       /proposals [get]
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		abortWith(c, errMissingUserID)
		return
	}
	items, err := h.usecase.ListByOwner(c.Request.Context(), owner)
	if err != nil {
		abortWith(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProposals(items))
}

// GetProposal godoc
// @Summary      Get a proposal
// @Tags         proposals
// @Produce      json
// @Param        id  path  string  true  "Proposal id"
// @Success      200  {object}  response.ProposalResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /proposals/{id} [get]
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWith(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProposal(p))
}

// UpdateProposal godoc
// @Summary      Partially update a proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string                         true  "Owner account id"
// @Param        id         path    string                         true  "Proposal id"
// @Param        body       body    request.ProposalPatchRequest  true  "Fields to change"
// @Success      200  {object}  response.ProposalResponse
// @Failure      403  {object}  pkg.HTTPError
// @Router       /proposals/{id} [patch]
func (h *ProposalHandler) UpdateProposal(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		abortWith(c, errMissingUserID)
		return
	}
	var payload request.ProposalPatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	p, err := h.usecase.Update(c.Request.Context(), owner, c.Param("id"), payload.ToPatch())
	if err != nil {
		abortWith(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProposal(p))
}

// DeleteProposal godoc
// @Summary      Delete a proposal and its signature
// @Tags         proposals
// @Param        X-User-ID  header  string  true  "Owner account id"
// @Param        id         path    string  true  "Proposal id"
// @Success      204
// @Router       /proposals/{id} [delete]
func (h *ProposalHandler) DeleteProposal(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		abortWith(c, errMissingUserID)
		return
	}
	if err := h.usecase.Delete(c.Request.Context(), owner, c.Param("id")); err != nil {
		abortWith(c, mapError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// SetStatus godoc
// @Summary      Set the proposal status (pending, accepted or rejected)
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Proposal id"
// @Param        body  body  request.StatusRequest  true  "New status"
// @Success      200  {object}  response.ProposalResponse
// @Router       /proposals/{id}/status [patch]
func (h *ProposalHandler) SetStatus(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	p, err := h.usecase.SetStatus(c.Request.Context(), c.Param("id"), payload.ToStatus())
	if err != nil {
		abortWith(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProposal(p))
}

// GetPalette godoc
// @Summary      Resolved colors the proposal renders with
// @Tags         proposals
// @Produce      json
// @Param        id  path  string  true  "Proposal id"
// @Success      200  {object}  response.PaletteResponse
// @Router       /proposals/{id}/palette [get]
func (h *ProposalHandler) GetPalette(c *gin.Context) {
	id := c.Param("id")
	pal, err := h.usecase.ResolvePalette(c.Request.Context(), id)
	if err != nil {
		abortWith(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPalette(id, pal))
}
