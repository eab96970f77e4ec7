package request

import "encoding/json"

// PaymentCreateRequest is the optional envelope of POST /payments/:proposal_id.
//
// `mp_payload` is forwarded as-is (raw JSON) to support varying Mercado Pago
// schemas; a bare Mercado Pago body is accepted too.
type PaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}
