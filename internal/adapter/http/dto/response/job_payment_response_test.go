package response

import (
	"encoding/json"
	"testing"
	"time"

	"foamjobs/internal/domain/entities"
)

func TestFromJobPayment(t *testing.T) {
	now := time.Now().UTC()
	payload := map[string]interface{}{"a": "b"}
	raw := json.RawMessage(`{"id":123}`)

	p := entities.JobPayment{
		ID:                 "pay-1",
		JobID:              "job-1",
		Amount:             6500,
		Date:               now,
		Status:             entities.PaymentStatusApproved,
		ProviderPayloadRaw: raw,
		ProviderPayload:    payload,
	}

	res := FromJobPayment(p)
	if res.ID != "pay-1" || res.JobID != "job-1" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.Amount != 6500 || res.Status != "approved" {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if !res.Date.Equal(now) {
		t.Fatalf("unexpected date: %+v", res)
	}
	if res.ProviderPayloadRaw != string(raw) {
		t.Fatalf("unexpected raw payload: %s", res.ProviderPayloadRaw)
	}
	if res.ProviderPayload["a"] != "b" {
		t.Fatalf("unexpected parsed payload: %+v", res.ProviderPayload)
	}
}
