package response

import (
	"encoding/json"
	"testing"
	"time"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/domain/palette"
)

func TestFromProposal(t *testing.T) {
	p := entities.Proposal{
		ID:     "p-1",
		Title:  "Orçamento de Portas",
		Total:  1,
		Status: entities.ProposalStatusPending,
		LineItems: []entities.LineItem{
			{Description: "Portas de Madeira", Quantity: 10, UnitPrice: 2600},
			{Description: "Kit de Ferragens", Quantity: 10, UnitPrice: 150},
		},
		TemplateID: entities.TemplateDefault,
		Source:     entities.ProposalSourceManual,
	}

	res := FromProposal(p)
	if res.Total != 27500 {
		t.Fatalf("expected total recomputed to 27500, got %v", res.Total)
	}
	if len(res.LineItems) != 2 || res.LineItems[0].Amount != 26000 || res.LineItems[1].Price != 150 {
		t.Fatalf("unexpected line items %+v", res.LineItems)
	}
	if res.Status != "pending" || res.TemplateID != "default" || res.Source != "manual" {
		t.Fatalf("unexpected fields %+v", res)
	}

	if got := FromProposals(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list")
	}
}

func TestFromPalette(t *testing.T) {
	res := FromPalette("p-1", palette.Baseline(entities.TemplateDark))
	b, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body map[string]string
	_ = json.Unmarshal(b, &body)
	if body["proposal_id"] != "p-1" || body["background"] != "#1f2937" {
		t.Fatalf("unexpected body %s", b)
	}
}

func TestFromShareView(t *testing.T) {
	p := entities.Proposal{ID: "p-1"}

	unsigned := FromShareView(p, nil)
	if unsigned.Signed || unsigned.Signature != nil {
		t.Fatalf("expected unsigned view")
	}

	now := time.Now().UTC()
	signed := FromShareView(p, &entities.Signature{ID: "s-1", ProposalID: "p-1", SignerName: "Maria", SignedAt: now})
	if !signed.Signed || signed.Signature == nil || signed.Signature.SignerName != "Maria" || !signed.Signature.SignedAt.Equal(now) {
		t.Fatalf("unexpected signed view %+v", signed)
	}
}

func TestFromPayment(t *testing.T) {
	now := time.Now().UTC()
	payload := map[string]interface{}{"a": "b"}
	raw := json.RawMessage(`{"id":123}`)

	p := entities.ProposalPayment{
		ID:                 "pay-1",
		ProposalID:         "p-1",
		Amount:             27500,
		Date:               now,
		Status:             entities.PaymentStatusAprovado,
		ProviderPayloadRaw: raw,
		ProviderPayload:    payload,
	}

	res := FromPayment(p)
	if res.ID != "pay-1" || res.PaymentID != "pay-1" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.ProposalID != "p-1" || res.Status != "aprovado" || res.Amount != 27500 {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if !res.PaymentDate.Equal(now) {
		t.Fatalf("unexpected date: %+v", res)
	}
	if res.MPPayloadRaw != string(raw) {
		t.Fatalf("unexpected raw payload: %s", res.MPPayloadRaw)
	}
	if res.MPPayload["a"] != "b" {
		t.Fatalf("unexpected parsed payload: %+v", res.MPPayload)
	}
}
