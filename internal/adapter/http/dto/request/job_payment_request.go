package request

import "encoding/json"

// JobPaymentCreateRequest is the payload for the "record payment" route.
//
// `provider_payload` is forwarded as-is (raw JSON) to support varying
// Mercado Pago schemas.

type JobPaymentCreateRequest struct {
	ProviderPayload json.RawMessage `json:"provider_payload"`
}
