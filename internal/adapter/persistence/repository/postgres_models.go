package repository

import (
	"encoding/json"
	"time"

	"orcafacil/internal/domain/entities"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type proposalModel struct {
	ID             string         `gorm:"column:id;primaryKey;type:varchar(64)"`
	OwnerID        string         `gorm:"column:owner_id;type:varchar(128);not null;index"`
	Title          string         `gorm:"column:title;type:varchar(255)"`
	CompanyName    string         `gorm:"column:company_name;type:varchar(255);not null"`
	CompanyPhone   string         `gorm:"column:company_phone;type:varchar(64)"`
	CompanyTaxID   string         `gorm:"column:company_tax_id;type:varchar(32)"`
	CompanyEmail   string         `gorm:"column:company_email;type:varchar(255)"`
	ClientName     string         `gorm:"column:client_name;type:varchar(255);not null"`
	ClientPhone    string         `gorm:"column:client_phone;type:varchar(64)"`
	ClientLocation string         `gorm:"column:client_location;type:varchar(255)"`
	LineItems      datatypes.JSON `gorm:"column:line_items;type:jsonb;not null"`
	Total          float64        `gorm:"column:total;type:decimal(15,2)"`
	Deadline       string         `gorm:"column:deadline;type:text"`
	PaymentTerms   string         `gorm:"column:payment_terms;type:text"`
	Observations   string         `gorm:"column:observations;type:text"`
	TemplateID     string         `gorm:"column:template_id;type:varchar(32)"`
	TemplateColors datatypes.JSON `gorm:"column:template_colors;type:jsonb"`
	Status         string         `gorm:"column:status;type:varchar(16);index"`
	Source         string         `gorm:"column:source;type:varchar(16)"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
}

func (proposalModel) TableName() string { return "proposals" }

type signatureModel struct {
	ID            string    `gorm:"column:id;primaryKey;type:varchar(64)"`
	ProposalID    string    `gorm:"column:proposal_id;type:varchar(64);not null;uniqueIndex"`
	SignatureData string    `gorm:"column:signature_data;type:text;not null"`
	SignerName    string    `gorm:"column:signer_name;type:varchar(255);not null"`
	SignerEmail   string    `gorm:"column:signer_email;type:varchar(255);not null"`
	SignedAt      time.Time `gorm:"column:signed_at"`
}

func (signatureModel) TableName() string { return "signatures" }

type paymentModel struct {
	ID              string         `gorm:"column:id;primaryKey;type:varchar(64)"`
	ProposalID      string         `gorm:"column:proposal_id;type:varchar(64);not null;index"`
	Amount          float64        `gorm:"column:amount;type:decimal(15,2)"`
	Date            time.Time      `gorm:"column:date"`
	Status          string         `gorm:"column:status;type:varchar(16)"`
	ProviderPayload datatypes.JSON `gorm:"column:provider_payload;type:jsonb"`
}

func (paymentModel) TableName() string { return "proposal_payments" }

// AutoMigrate creates or updates the tables used by the PostgreSQL
// repositories.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&proposalModel{}, &signatureModel{}, &paymentModel{})
}

func toProposalModel(p entities.Proposal) (proposalModel, error) {
	lineItems, err := EncodeLineItems(p.LineItems)
	if err != nil {
		return proposalModel{}, err
	}
	colors, err := EncodeTemplateColors(p.TemplateColors)
	if err != nil {
		return proposalModel{}, err
	}
	m := proposalModel{
		ID:             p.ID,
		OwnerID:        p.OwnerID,
		Title:          p.Title,
		CompanyName:    p.Company.Name,
		CompanyPhone:   p.Company.Phone,
		CompanyTaxID:   p.Company.TaxID,
		CompanyEmail:   p.Company.Email,
		ClientName:     p.Client.Name,
		ClientPhone:    p.Client.Phone,
		ClientLocation: p.Client.Location,
		LineItems:      datatypes.JSON(lineItems),
		Total:          p.Total,
		Deadline:       p.Deadline,
		PaymentTerms:   p.PaymentTerms,
		Observations:   p.Observations,
		TemplateID:     string(p.TemplateID),
		Status:         string(p.Status),
		Source:         string(p.Source),
		CreatedAt:      p.CreatedAt.UTC(),
		UpdatedAt:      p.UpdatedAt.UTC(),
	}
	if colors != "" {
		m.TemplateColors = datatypes.JSON(colors)
	}
	return m, nil
}

func fromProposalModel(m proposalModel) (entities.Proposal, error) {
	lineItems, err := DecodeLineItems(string(m.LineItems))
	if err != nil {
		return entities.Proposal{}, err
	}
	colors, err := DecodeTemplateColors(string(m.TemplateColors))
	if err != nil {
		return entities.Proposal{}, err
	}
	return entities.Proposal{
		ID:      m.ID,
		OwnerID: m.OwnerID,
		Title:   m.Title,
		Company: entities.CompanyInfo{
			Name:  m.CompanyName,
			Phone: m.CompanyPhone,
			TaxID: m.CompanyTaxID,
			Email: m.CompanyEmail,
		},
		Client: entities.ClientInfo{
			Name:     m.ClientName,
			Phone:    m.ClientPhone,
			Location: m.ClientLocation,
		},
		LineItems:      lineItems,
		Total:          m.Total,
		Deadline:       m.Deadline,
		PaymentTerms:   m.PaymentTerms,
		Observations:   m.Observations,
		TemplateID:     entities.TemplateID(m.TemplateID),
		TemplateColors: colors,
		Status:         entities.ProposalStatus(m.Status),
		Source:         entities.ProposalSource(m.Source),
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}, nil
}

func toSignatureModel(s entities.Signature) signatureModel {
	return signatureModel{
		ID:            s.ID,
		ProposalID:    s.ProposalID,
		SignatureData: s.SignatureData,
		SignerName:    s.SignerName,
		SignerEmail:   s.SignerEmail,
		SignedAt:      s.SignedAt.UTC(),
	}
}

func fromSignatureModel(m signatureModel) entities.Signature {
	return entities.Signature{
		ID:            m.ID,
		ProposalID:    m.ProposalID,
		SignatureData: m.SignatureData,
		SignerName:    m.SignerName,
		SignerEmail:   m.SignerEmail,
		SignedAt:      m.SignedAt.UTC(),
	}
}

func toPaymentModel(p entities.ProposalPayment) paymentModel {
	m := paymentModel{
		ID:         p.ID,
		ProposalID: p.ProposalID,
		Amount:     p.Amount,
		Date:       p.Date.UTC(),
		Status:     string(p.Status),
	}
	if len(p.ProviderPayloadRaw) > 0 && json.Valid(p.ProviderPayloadRaw) {
		m.ProviderPayload = datatypes.JSON(p.ProviderPayloadRaw)
	}
	return m
}

func fromPaymentModel(m paymentModel) entities.ProposalPayment {
	p := entities.ProposalPayment{
		ID:                 m.ID,
		ProposalID:         m.ProposalID,
		Amount:             m.Amount,
		Date:               m.Date.UTC(),
		Status:             entities.PaymentStatus(m.Status),
		ProviderPayloadRaw: json.RawMessage(m.ProviderPayload),
	}
	if len(m.ProviderPayload) > 0 {
		_ = json.Unmarshal(m.ProviderPayload, &p.ProviderPayload)
	}
	return p
}
