package response

import (
	"time"

	"orcafacil/internal/domain/entities"
)

type SignatureResponse struct {
	ID            string    `json:"id"`
	ProposalID    string    `json:"proposal_id"`
	SignerName    string    `json:"signer_name"`
	SignerEmail   string    `json:"signer_email"`
	SignatureData string    `json:"signature_data"`
	SignedAt      time.Time `json:"signed_at"`
}

func FromSignature(s entities.Signature) SignatureResponse {
	return SignatureResponse{
		ID:            s.ID,
		ProposalID:    s.ProposalID,
		SignerName:    s.SignerName,
		SignerEmail:   s.SignerEmail,
		SignatureData: s.SignatureData,
		SignedAt:      s.SignedAt,
	}
}

// ShareViewResponse is what the public signing page loads: the proposal and,
// once signed, its signature.
type ShareViewResponse struct {
	Proposal  ProposalResponse   `json:"proposal"`
	Signed    bool               `json:"signed"`
	Signature *SignatureResponse `json:"signature,omitempty"`
}

func FromShareView(p entities.Proposal, sig *entities.Signature) ShareViewResponse {
	res := ShareViewResponse{Proposal: FromProposal(p)}
	if sig != nil {
		s := FromSignature(*sig)
		res.Signed = true
		res.Signature = &s
	}
	return res
}
