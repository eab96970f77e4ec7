package handlers

import (
	"errors"
	"net/http"

	request "orcafacil/internal/adapter/http/dto/request"
	response "orcafacil/internal/adapter/http/dto/response"
	"orcafacil/internal/domain/entities"
	"orcafacil/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SignatureHandler serves the share link a client opens to sign a proposal.
type SignatureHandler struct {
	proposals  usecase.IProposalUseCase
	signatures usecase.ISignatureUseCase
}

func NewSignatureHandler(proposals usecase.IProposalUseCase, signatures usecase.ISignatureUseCase) *SignatureHandler {
	return &SignatureHandler{proposals: proposals, signatures: signatures}
}

// GetShareView godoc
// @Summary      Proposal and current signature for the signing page
// @Tags         signature
// @Produce      json
// @Param        proposal_id  path  string  true  "Proposal id"
// @Success      200  {object}  response.ShareViewResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /signature/{proposal_id} [get]
func (h *SignatureHandler) GetShareView(c *gin.Context) {
	proposalID := c.Param("proposal_id")
	p, err := h.proposals.GetByID(c.Request.Context(), proposalID)
	if err != nil {
		abortWith(c, mapError(err))
		return
	}

	var sig *entities.Signature
	s, err := h.signatures.GetByProposalID(c.Request.Context(), proposalID)
	switch {
	case err == nil:
		sig = &s
	case errors.Is(err, usecase.ErrSignatureNotFound):
	default:
		abortWith(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromShareView(p, sig))
}

// CaptureSignature godoc
// @Summary      Sign a proposal
// @Tags         signature
// @Accept       json
// @Produce      json
// @Param        proposal_id  path  string                    true  "Proposal id"
// @Param        body         body  request.SignatureRequest  true  "Strokes or rasterized data URL"
// @Success      201  {object}  response.SignatureResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /signature/{proposal_id} [post]
func (h *SignatureHandler) CaptureSignature(c *gin.Context) {
	proposalID := c.Param("proposal_id")
	var payload request.SignatureRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		zap.L().Warn("[signature][handler] invalid payload", zap.String("proposal_id", proposalID), zap.Error(err))
		abortWith(c, errInvalidRequest)
		return
	}

	sig, err := h.signatures.Capture(c.Request.Context(), proposalID, payload.ToInput())
	if err != nil {
		abortWith(c, mapError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromSignature(sig))
}
