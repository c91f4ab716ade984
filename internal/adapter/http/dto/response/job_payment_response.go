package response

import (
	"time"

	"foamjobs/internal/domain/entities"
)

type JobPaymentResponse struct {
	ID     string    `json:"id"`
	JobID  string    `json:"job_id"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	Status string    `json:"status"`

	ProviderPayloadRaw string                 `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}

func FromJobPayment(p entities.JobPayment) JobPaymentResponse {
	return JobPaymentResponse{
		ID:                 p.ID,
		JobID:              p.JobID,
		Amount:             p.Amount,
		Date:               p.Date,
		Status:             string(p.Status),
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
		ProviderPayload:    p.ProviderPayload,
	}
}
