package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProposalStatus represents the acceptance lifecycle of a proposal (orçamento).
//
// Any status can follow any other; the set is a flat enum.
type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)

func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusPending, ProposalStatusAccepted, ProposalStatusRejected:
		return true
	}
	return false
}

// ProposalSource records how a proposal was drafted. Informational only.
type ProposalSource string

const (
	ProposalSourceManual ProposalSource = "manual"
	ProposalSourceAI     ProposalSource = "ai"
)

func (s ProposalSource) IsValid() bool {
	return s == ProposalSourceManual || s == ProposalSourceAI
}

// TemplateID names one of the fixed visual templates.
type TemplateID string

const (
	TemplateDefault TemplateID = "default"
	TemplateMinimal TemplateID = "minimal"
	TemplateDark    TemplateID = "dark"
	TemplateElegant TemplateID = "elegant"
)

// TemplateColors holds per-proposal color overrides. An empty field means
// "keep the template baseline".
type TemplateColors struct {
	Primary    string `json:"primary,omitempty"`
	Background string `json:"background,omitempty"`
	Text       string `json:"text,omitempty"`
	Accent     string `json:"accent,omitempty"`
}

func (c TemplateColors) IsEmpty() bool {
	return c == TemplateColors{}
}

// LineItem is one priced row of a proposal.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"price"`
}

// Amount returns quantity × unit price in exact decimal arithmetic.
func (li LineItem) Amount() decimal.Decimal {
	return decimal.NewFromInt(int64(li.Quantity)).Mul(decimal.NewFromFloat(li.UnitPrice))
}

type CompanyInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	TaxID string `json:"tax_id,omitempty"`
	Email string `json:"email,omitempty"`
}

type ClientInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// Proposal is the quote record owned by exactly one user account.
//
// Total is derived from LineItems; call Recalculate after touching them.
type Proposal struct {
	ID             string          `json:"id"`
	OwnerID        string          `json:"owner_id"`
	Title          string          `json:"title"`
	Company        CompanyInfo     `json:"company"`
	Client         ClientInfo      `json:"client"`
	LineItems      []LineItem      `json:"line_items"`
	Total          float64         `json:"total"`
	Deadline       string          `json:"deadline,omitempty"`
	PaymentTerms   string          `json:"payment_terms,omitempty"`
	Observations   string          `json:"observations,omitempty"`
	TemplateID     TemplateID      `json:"template_id"`
	TemplateColors *TemplateColors `json:"template_colors,omitempty"`
	Status         ProposalStatus  `json:"status"`
	Source         ProposalSource  `json:"source"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SumLineItems returns Σ(quantity × unit price).
func SumLineItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount())
	}
	return total
}

// TotalAmount recomputes the total from the current line items.
func (p Proposal) TotalAmount() decimal.Decimal {
	return SumLineItems(p.LineItems)
}

// Recalculate refreshes Total from LineItems.
func (p *Proposal) Recalculate() {
	p.Total = p.TotalAmount().InexactFloat64()
}

// ProposalPatch carries a partial update; nil fields are left untouched.
type ProposalPatch struct {
	Title          *string
	Company        *CompanyInfo
	Client         *ClientInfo
	LineItems      *[]LineItem
	Deadline       *string
	PaymentTerms   *string
	Observations   *string
	TemplateID     *TemplateID
	TemplateColors *TemplateColors
}

// Apply writes the patch onto p and recalculates the total when line items
// changed.
func (patch ProposalPatch) Apply(p *Proposal) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Company != nil {
		p.Company = *patch.Company
	}
	if patch.Client != nil {
		p.Client = *patch.Client
	}
	if patch.LineItems != nil {
		p.LineItems = append([]LineItem(nil), (*patch.LineItems)...)
		p.Recalculate()
	}
	if patch.Deadline != nil {
		p.Deadline = *patch.Deadline
	}
	if patch.PaymentTerms != nil {
		p.PaymentTerms = *patch.PaymentTerms
	}
	if patch.Observations != nil {
		p.Observations = *patch.Observations
	}
	if patch.TemplateID != nil {
		p.TemplateID = *patch.TemplateID
	}
	if patch.TemplateColors != nil {
		if patch.TemplateColors.IsEmpty() {
			p.TemplateColors = nil
		} else {
			c := *patch.TemplateColors
			p.TemplateColors = &c
		}
	}
}
