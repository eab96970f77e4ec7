package request

import (
	"strings"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/usecase"
)

type CompanyRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	TaxID string `json:"tax_id"`
	Email string `json:"email"`
}

type ClientRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type LineItemRequest struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type TemplateColorsRequest struct {
	Primary    string `json:"primary"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Accent     string `json:"accent"`
}

// ProposalRequest is the body of POST /proposals. Totals are never read from
// the client.
type ProposalRequest struct {
	Title          string                 `json:"title"`
	Company        CompanyRequest         `json:"company"`
	Client         ClientRequest          `json:"client"`
	LineItems      []LineItemRequest      `json:"line_items"`
	Deadline       string                 `json:"deadline"`
	PaymentTerms   string                 `json:"payment_terms"`
	Observations   string                 `json:"observations"`
	TemplateID     string                 `json:"template_id"`
	TemplateColors *TemplateColorsRequest `json:"template_colors"`
	Source         string                 `json:"source"`
}

func (r ProposalRequest) ToInput() usecase.ProposalInput {
	return usecase.ProposalInput{
		Title:          strings.TrimSpace(r.Title),
		Company:        r.Company.toEntity(),
		Client:         r.Client.toEntity(),
		LineItems:      toLineItems(r.LineItems),
		Deadline:       r.Deadline,
		PaymentTerms:   r.PaymentTerms,
		Observations:   r.Observations,
		TemplateID:     entities.TemplateID(strings.TrimSpace(r.TemplateID)),
		TemplateColors: r.TemplateColors.toEntity(),
		Source:         entities.ProposalSource(strings.TrimSpace(r.Source)),
	}
}

// ProposalPatchRequest is the body of PATCH /proposals/:id; absent fields are
// left untouched.
type ProposalPatchRequest struct {
	Title          *string                `json:"title"`
	Company        *CompanyRequest        `json:"company"`
	Client         *ClientRequest         `json:"client"`
	LineItems      *[]LineItemRequest     `json:"line_items"`
	Deadline       *string                `json:"deadline"`
	PaymentTerms   *string                `json:"payment_terms"`
	Observations   *string                `json:"observations"`
	TemplateID     *string                `json:"template_id"`
	TemplateColors *TemplateColorsRequest `json:"template_colors"`
}

func (r ProposalPatchRequest) ToPatch() entities.ProposalPatch {
	patch := entities.ProposalPatch{
		Title:        r.Title,
		Deadline:     r.Deadline,
		PaymentTerms: r.PaymentTerms,
		Observations: r.Observations,
	}
	if r.Company != nil {
		c := r.Company.toEntity()
		patch.Company = &c
	}
	if r.Client != nil {
		c := r.Client.toEntity()
		patch.Client = &c
	}
	if r.LineItems != nil {
		items := toLineItems(*r.LineItems)
		patch.LineItems = &items
	}
	if r.TemplateID != nil {
		id := entities.TemplateID(strings.TrimSpace(*r.TemplateID))
		patch.TemplateID = &id
	}
	if r.TemplateColors != nil {
		// An empty object clears the overrides.
		c := entities.TemplateColors{
			Primary:    r.TemplateColors.Primary,
			Background: r.TemplateColors.Background,
			Text:       r.TemplateColors.Text,
			Accent:     r.TemplateColors.Accent,
		}
		patch.TemplateColors = &c
	}
	return patch
}

// StatusRequest is the body of PATCH /proposals/:id/status.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r StatusRequest) ToStatus() entities.ProposalStatus {
	return entities.ProposalStatus(strings.ToLower(strings.TrimSpace(r.Status)))
}

func (c CompanyRequest) toEntity() entities.CompanyInfo {
	return entities.CompanyInfo{
		Name:  strings.TrimSpace(c.Name),
		Phone: strings.TrimSpace(c.Phone),
		TaxID: strings.TrimSpace(c.TaxID),
		Email: strings.TrimSpace(c.Email),
	}
}

func (c ClientRequest) toEntity() entities.ClientInfo {
	return entities.ClientInfo{
		Name:     strings.TrimSpace(c.Name),
		Phone:    strings.TrimSpace(c.Phone),
		Location: strings.TrimSpace(c.Location),
	}
}

func (c *TemplateColorsRequest) toEntity() *entities.TemplateColors {
	if c == nil {
		return nil
	}
	return &entities.TemplateColors{
		Primary:    c.Primary,
		Background: c.Background,
		Text:       c.Text,
		Accent:     c.Accent,
	}
}

func toLineItems(in []LineItemRequest) []entities.LineItem {
	items := make([]entities.LineItem, 0, len(in))
	for _, it := range in {
		items = append(items, entities.LineItem{
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			UnitPrice:   it.Price,
		})
	}
	return items
}
