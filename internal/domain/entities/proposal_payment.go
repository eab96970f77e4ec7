package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPendente PaymentStatus = "pendente"
	PaymentStatusAprovado PaymentStatus = "aprovado"
	PaymentStatusNegado   PaymentStatus = "negado"
)

// ProposalPayment records a payment collected for an accepted proposal.
//
// Storage model:
//   - PK: id
//   - GSI (proposal_id-index): proposal_id
//
// ProviderPayloadRaw keeps the provider body as received for audit; the parsed
// map is a convenience for querying.
type ProposalPayment struct {
	ID         string        `json:"id"`
	ProposalID string        `json:"proposal_id"`
	Amount     float64       `json:"amount"`
	Date       time.Time     `json:"date"`
	Status     PaymentStatus `json:"status"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}
