package response

import (
	"time"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/domain/palette"
)

type LineItemResponse struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Amount      float64 `json:"amount"`
}

type ProposalResponse struct {
	ID             string                   `json:"id"`
	OwnerID        string                   `json:"owner_id"`
	Title          string                   `json:"title"`
	Company        entities.CompanyInfo     `json:"company"`
	Client         entities.ClientInfo      `json:"client"`
	LineItems      []LineItemResponse       `json:"line_items"`
	Total          float64                  `json:"total"`
	Deadline       string                   `json:"deadline,omitempty"`
	PaymentTerms   string                   `json:"payment_terms,omitempty"`
	Observations   string                   `json:"observations,omitempty"`
	TemplateID     string                   `json:"template_id"`
	TemplateColors *entities.TemplateColors `json:"template_colors,omitempty"`
	Status         string                   `json:"status"`
	Source         string                   `json:"source"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

func FromProposal(p entities.Proposal) ProposalResponse {
	items := make([]LineItemResponse, 0, len(p.LineItems))
	for _, it := range p.LineItems {
		items = append(items, LineItemResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			Price:       it.UnitPrice,
			Amount:      it.Amount().InexactFloat64(),
		})
	}
	return ProposalResponse{
		ID:             p.ID,
		OwnerID:        p.OwnerID,
		Title:          p.Title,
		Company:        p.Company,
		Client:         p.Client,
		LineItems:      items,
		Total:          p.TotalAmount().InexactFloat64(),
		Deadline:       p.Deadline,
		PaymentTerms:   p.PaymentTerms,
		Observations:   p.Observations,
		TemplateID:     string(p.TemplateID),
		TemplateColors: p.TemplateColors,
		Status:         string(p.Status),
		Source:         string(p.Source),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func FromProposals(items []entities.Proposal) []ProposalResponse {
	out := make([]ProposalResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromProposal(p))
	}
	return out
}

type PaletteResponse struct {
	ProposalID string `json:"proposal_id"`
	palette.Palette
}

func FromPalette(proposalID string, pal palette.Palette) PaletteResponse {
	return PaletteResponse{ProposalID: proposalID, Palette: pal}
}
