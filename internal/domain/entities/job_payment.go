package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.
//
// Recording a payment closes the job lifecycle, so in practice only approved
// payments are persisted. The type supports a denied status for completeness.

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// JobPayment is the payment recorded when an invoiced job is paid.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (job_id-index): job_id
//
// Provider payload:
//   - ProviderPayloadRaw keeps the original body (JSON) for traceability/audit.
//   - ProviderPayload is an optional parsed representation, useful for
//     querying/debugging. (Both are persisted because provider schemas vary.)

type JobPayment struct {
	ID     string        `json:"id"`
	JobID  string        `json:"job_id"`
	Amount float64       `json:"amount"`
	Date   time.Time     `json:"date"`
	Status PaymentStatus `json:"status"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}
