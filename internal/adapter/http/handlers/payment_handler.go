package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	response "orcafacil/internal/adapter/http/dto/response"
	"orcafacil/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler handles HTTP requests for proposal payments.
type PaymentHandler struct {
	usecase  usecase.IPaymentUseCase
	mockMode bool
}

// NewPaymentHandler builds the handler. In mock mode unreadable bodies fall
// back to an empty payload instead of being rejected.
func NewPaymentHandler(uc usecase.IPaymentUseCase, mockMode bool) *PaymentHandler {
	return &PaymentHandler{usecase: uc, mockMode: mockMode}
}

// CreatePaymentByProposalID godoc
// @Summary      Create and process a payment for an accepted proposal
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        proposal_id  path  string                        true  "Proposal id"
// @Param        body         body  request.PaymentCreateRequest  false "Mercado Pago payload, bare or wrapped in mp_payload"
// @Success      200  {object}  response.PaymentResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /payments/{proposal_id} [post]
func (h *PaymentHandler) CreatePaymentByProposalID(c *gin.Context) {
	proposalID := c.Param("proposal_id")
	log := zap.L().With(zap.String("proposal_id", proposalID))
	log.Info("[payment][handler] create start")

	mpPayload, err := readMPPayload(c)
	if err != nil {
		if !h.mockMode {
			log.Warn("[payment][handler] invalid payload", zap.Error(err))
			abortWith(c, errInvalidRequest)
			return
		}
		log.Info("[payment][handler] payload invalid in mock mode; fallback to empty payload", zap.Error(err))
		mpPayload = json.RawMessage("{}")
	}

	created, err := h.usecase.CreateAndApprove(c.Request.Context(), proposalID, mpPayload)
	if err != nil {
		log.Warn("[payment][handler] create failed", zap.Error(err))
		abortWith(c, mapError(err))
		return
	}
	log.Info("[payment][handler] create success", zap.String("payment_id", created.ID), zap.String("status", string(created.Status)))

	c.JSON(http.StatusOK, response.FromPayment(created))
}

// GetPaymentByProposalID godoc
// @Summary      Latest payment of a proposal
// @Tags         payments
// @Produce      json
// @Param        proposal_id  path  string  true  "Proposal id"
// @Success      200  {object}  response.PaymentResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /payments/{proposal_id} [get]
func (h *PaymentHandler) GetPaymentByProposalID(c *gin.Context) {
	proposalID := c.Param("proposal_id")

	payments, err := h.usecase.ListByProposalID(c.Request.Context(), proposalID)
	if err != nil {
		abortWith(c, mapError(err))
		return
	}
	if len(payments) == 0 {
		abortWith(c, errPaymentNotFound)
		return
	}

	latest := payments[0]
	for _, p := range payments[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	c.JSON(http.StatusOK, response.FromPayment(latest))
}

func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if s := strings.TrimSpace(string(wrapped)); s == "" || s == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}
