package entities

import "time"

// Signature is the raster capture of a hand-drawn mark bound 1:1 to a proposal.
//
// Storage model:
//   - PK / unique key: proposal_id (at most one signature per proposal)
//
// It is created once and never mutated; it goes away only with its proposal.
type Signature struct {
	ID            string    `json:"id"`
	ProposalID    string    `json:"proposal_id"`
	SignatureData string    `json:"signature_data"`
	SignerName    string    `json:"signer_name"`
	SignerEmail   string    `json:"signer_email"`
	SignedAt      time.Time `json:"signed_at"`
}
