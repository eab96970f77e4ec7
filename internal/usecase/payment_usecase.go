package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/domain/errs"
	"orcafacil/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrPaymentNotFound                = fmt.Errorf("%w: payment not found", errs.ErrNotFound)
	ErrInvalidPaymentID               = fmt.Errorf("%w: invalid payment id", errs.ErrValidation)
	ErrInvalidProviderPayload         = fmt.Errorf("%w: invalid mercado pago payload", errs.ErrValidation)
	ErrProposalNotAccepted            = fmt.Errorf("%w: proposal not accepted", errs.ErrConflict)
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = fmt.Errorf("%w: payment gateway bad request", errs.ErrValidation)
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = fmt.Errorf("%w: payment gateway invalid users involved", errs.ErrValidation)
	ErrPaymentGatewayCustomerNotFound = fmt.Errorf("%w: payment gateway customer not found", errs.ErrNotFound)
)

// PaymentSettings tunes how payloads are sent to the provider.
type PaymentSettings struct {
	// MockMode approves payments locally without calling the gateway.
	MockMode        bool
	AccessToken     string
	TestPayerEmail  string
	TestPayerUserID string
}

func (s PaymentSettings) sandbox() bool {
	return strings.HasPrefix(strings.TrimSpace(s.AccessToken), "TEST-")
}

// IPaymentUseCase collects payment for accepted proposals.
type IPaymentUseCase interface {
	CreateAndApprove(ctx context.Context, proposalID string, providerPayload json.RawMessage) (entities.ProposalPayment, error)
	GetByID(ctx context.Context, id string) (entities.ProposalPayment, error)
	ListByProposalID(ctx context.Context, proposalID string) ([]entities.ProposalPayment, error)
}

type PaymentUseCase struct {
	repo         interfaces.IPaymentRepository
	proposalRepo interfaces.IProposalRepository
	gateway      interfaces.IPaymentGateway
	settings     PaymentSettings
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, proposalRepo interfaces.IProposalRepository, gateway interfaces.IPaymentGateway, settings PaymentSettings) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, proposalRepo: proposalRepo, gateway: gateway, settings: settings}
}

func (u *PaymentUseCase) CreateAndApprove(ctx context.Context, proposalID string, payload json.RawMessage) (entities.ProposalPayment, error) {
	log := zap.L().With(zap.String("proposal_id", strings.TrimSpace(proposalID)))
	log.Info("[payment][usecase] create-and-approve start", zap.Int("payload_len", len(payload)))

	mockMode := u.settings.MockMode
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return entities.ProposalPayment{}, ErrInvalidProposalID
	}
	if len(payload) == 0 || !json.Valid(payload) {
		if !mockMode {
			log.Warn("[payment][usecase] invalid payload")
			return entities.ProposalPayment{}, ErrInvalidProviderPayload
		}
		payload = json.RawMessage("{}")
	}
	if !mockMode && u.gateway == nil {
		log.Error("[payment][usecase] gateway not configured")
		return entities.ProposalPayment{}, ErrPaymentGatewayNotConfigured
	}

	p, err := u.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		log.Error("[payment][usecase] failed loading proposal", zap.Error(err))
		return entities.ProposalPayment{}, persistenceError(err)
	}
	if p.ID == "" {
		return entities.ProposalPayment{}, ErrProposalNotFound
	}
	if p.Status != entities.ProposalStatusAccepted {
		log.Warn("[payment][usecase] proposal not accepted", zap.String("status", string(p.Status)))
		return entities.ProposalPayment{}, ErrProposalNotAccepted
	}
	amount := p.TotalAmount().InexactFloat64()

	var reqMap map[string]any
	if err := json.Unmarshal(payload, &reqMap); err != nil || reqMap == nil {
		if !mockMode {
			return entities.ProposalPayment{}, ErrInvalidProviderPayload
		}
		reqMap = map[string]any{}
	}
	if !mockMode {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			log.Warn("[payment][usecase] missing payment_method_id")
			return entities.ProposalPayment{}, ErrInvalidProviderPayload
		}
		u.normalizeSandboxPayer(reqMap)
		u.ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			log.Warn("[payment][usecase] missing or invalid payer")
			return entities.ProposalPayment{}, ErrInvalidProviderPayload
		}
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = proposalID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = proposalDescription(p)
	}
	// The stored proposal is the source of truth for the amount.
	reqMap["transaction_amount"] = amount
	if payload, err = json.Marshal(reqMap); err != nil {
		return entities.ProposalPayment{}, err
	}

	var (
		providerPaymentID string
		providerStatus    string
		providerResp      json.RawMessage
	)
	if mockMode {
		log.Info("[payment][usecase] mock mode enabled; skipping payment gateway")
		providerPaymentID, providerStatus, providerResp, err = mockApproval(reqMap)
		if err != nil {
			return entities.ProposalPayment{}, err
		}
	} else {
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, payload)
		if err != nil {
			log.Error("[payment][usecase] payment gateway failed", zap.Error(err))
			return entities.ProposalPayment{}, mapGatewayError(err)
		}
	}
	log.Info("[payment][usecase] payment gateway success",
		zap.String("provider_payment_id", providerPaymentID),
		zap.String("provider_status", providerStatus),
	)

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Warn("[payment][usecase] provider response unmarshal failed", zap.Error(err))
	}

	payment := entities.ProposalPayment{
		ID:                 providerPaymentID,
		ProposalID:         proposalID,
		Amount:             amount,
		Date:               time.Now().UTC(),
		Status:             MapProviderStatus(providerStatus),
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, payment)
	if err != nil {
		log.Error("[payment][usecase] payment repository create failed", zap.String("payment_id", payment.ID), zap.Error(err))
		return entities.ProposalPayment{}, persistenceError(err)
	}
	log.Info("[payment][usecase] create-and-approve success", zap.String("payment_id", created.ID), zap.String("status", string(created.Status)))
	return created, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.ProposalPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ProposalPayment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ProposalPayment{}, persistenceError(err)
	}
	if p.ID == "" {
		return entities.ProposalPayment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListByProposalID(ctx context.Context, proposalID string) ([]entities.ProposalPayment, error) {
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return nil, ErrInvalidProposalID
	}
	items, err := u.repo.ListByProposalID(ctx, proposalID)
	if err != nil {
		return nil, persistenceError(err)
	}
	return items, nil
}

// MapProviderStatus maps a Mercado Pago payment status onto ours.
func MapProviderStatus(status string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "authorized":
		return entities.PaymentStatusAprovado
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusNegado
	default:
		return entities.PaymentStatusPendente
	}
}

func proposalDescription(p entities.Proposal) string {
	if t := strings.TrimSpace(p.Title); t != "" {
		return t
	}
	return fmt.Sprintf("Orçamento %s", p.ID)
}

func mockApproval(req map[string]any) (string, string, json.RawMessage, error) {
	id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	now := time.Now().UTC().Format(time.RFC3339Nano)

	resp := make(map[string]any, len(req)+5)
	for k, v := range req {
		resp[k] = v
	}
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = now
	resp["date_approved"] = now

	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	return id, "approved", b, nil
}

func mapGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	default:
		return err
	}
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func (u *PaymentUseCase) ensurePayerDefaults(m map[string]any) {
	if m["payer"] == nil {
		m["payer"] = map[string]any{}
	}
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	// Sandbox accepts either payer.id or payer.email; fill email only when
	// both are missing.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		if email := strings.TrimSpace(u.settings.TestPayerEmail); email != "" {
			payer["email"] = email
		} else if u.settings.sandbox() {
			payer["email"] = "test_user_br@testuser.com"
		}
	}
}

func (u *PaymentUseCase) normalizeSandboxPayer(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok || !u.settings.sandbox() {
		return
	}
	if !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}

	userID := strings.TrimSpace(u.settings.TestPayerUserID)
	email := strings.TrimSpace(u.settings.TestPayerEmail)
	if userID == "" || email == "" {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != userID {
		return
	}

	payer["email"] = email
	delete(payer, "id")
	zap.L().Debug("[payment][usecase] mapped sandbox payer user_id to payer.email")
}
