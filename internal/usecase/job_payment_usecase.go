package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"foamjobs/internal/domain/entities"
	"foamjobs/internal/domain/lifecycle"
	"foamjobs/internal/usecase/interfaces"
	"foamjobs/pkg/schema"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	ErrJobPaymentNotFound             = errors.New("job payment not found")
	ErrInvalidPaymentJobID            = errors.New("invalid job_id")
	ErrInvalidProviderPayload         = errors.New("invalid payment provider payload")
	ErrJobNotInvoiced                 = errors.New("job not invoiced")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// IJobPaymentUseCase encapsulates the "record payment" behavior that closes
// the job pipeline.
//
// Requested behavior:
//   - Create an item in the payment table for the invoiced total and move the
//     job from invoiced to paid.

type IJobPaymentUseCase interface {
	RecordPayment(ctx context.Context, jobID string, providerPayload json.RawMessage) (entities.JobPayment, error)
	GetByID(ctx context.Context, id string) (entities.JobPayment, error)
	ListByJobID(ctx context.Context, jobID string) ([]entities.JobPayment, error)
}

type JobPaymentUseCase struct {
	repo    interfaces.IJobPaymentRepository
	jobRepo interfaces.IJobRepository
	gateway interfaces.IPaymentGateway
	events  interfaces.IEventPublisher
}

var _ IJobPaymentUseCase = (*JobPaymentUseCase)(nil)

func NewJobPaymentUseCase(repo interfaces.IJobPaymentRepository, jobRepo interfaces.IJobRepository, gateway interfaces.IPaymentGateway, events interfaces.IEventPublisher) *JobPaymentUseCase {
	return &JobPaymentUseCase{repo: repo, jobRepo: jobRepo, gateway: gateway, events: events}
}

func (u *JobPaymentUseCase) RecordPayment(ctx context.Context, jobID string, providerPayload json.RawMessage) (entities.JobPayment, error) {
	log.Printf("[payment][usecase] record-payment start raw_job_id=%q payload_len=%d", jobID, len(providerPayload))
	mockMode := isPaymentGatewayMockEnabled()
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		log.Printf("[payment][usecase] invalid job_id (empty)")
		return entities.JobPayment{}, ErrInvalidPaymentJobID
	}
	if len(providerPayload) == 0 {
		if mockMode {
			providerPayload = json.RawMessage("{}")
		} else {
			log.Printf("[payment][usecase] invalid payload (empty) job_id=%s", jobID)
			return entities.JobPayment{}, ErrInvalidProviderPayload
		}
	}
	if !json.Valid(providerPayload) {
		if mockMode {
			providerPayload = json.RawMessage("{}")
		} else {
			log.Printf("[payment][usecase] invalid payload (not-json) job_id=%s", jobID)
			return entities.JobPayment{}, ErrInvalidProviderPayload
		}
	}
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured job_id=%s", jobID)
		return entities.JobPayment{}, errors.New("payment gateway not configured")
	}
	if u.jobRepo == nil {
		log.Printf("[payment][usecase] job repository not configured job_id=%s", jobID)
		return entities.JobPayment{}, errors.New("job repository not configured")
	}

	log.Printf("[payment][usecase] loading job job_id=%s", jobID)
	var err error
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		log.Printf("[payment][usecase] failed loading job job_id=%s err=%v", jobID, err)
		return entities.JobPayment{}, err
	}
	if job.ID == "" {
		log.Printf("[payment][usecase] job not found job_id=%s", jobID)
		return entities.JobPayment{}, ErrJobNotFound
	}

	// Payment is only legal when the lifecycle resolver says so. Mock mode
	// bypasses the external gateway, never the pipeline order.
	step, err := lifecycle.ResolveForJob(job)
	if err != nil {
		log.Printf("[payment][usecase] lifecycle resolve failed job_id=%s status=%s err=%v", jobID, job.Status, err)
		return entities.JobPayment{}, err
	}
	if step == nil || step.Action != lifecycle.ActionRecordPayment {
		log.Printf("[payment][usecase] job not invoiced job_id=%s status=%s", jobID, job.Status)
		return entities.JobPayment{}, ErrJobNotInvoiced
	}
	log.Printf("[payment][usecase] job loaded job_id=%s status=%s total=%.2f", jobID, job.Status, job.Totals.TotalCost)

	// Ensure basic linkage with the job when the caller didn't provide it.
	// Mercado Pago uses external_reference to help reconcile events.
	var reqMap map[string]any
	if err := json.Unmarshal(providerPayload, &reqMap); err == nil {
		if !mockMode && !hasNonEmptyString(reqMap, "payment_method_id") {
			log.Printf("[payment][usecase] missing payment_method_id job_id=%s", jobID)
			return entities.JobPayment{}, ErrInvalidProviderPayload
		}
		if !mockMode {
			ensurePayerDefaults(reqMap)
		}
		if !mockMode && !hasPayer(reqMap) {
			log.Printf("[payment][usecase] missing/invalid payer job_id=%s", jobID)
			return entities.JobPayment{}, ErrInvalidProviderPayload
		}

		log.Printf("[payment][usecase] enriching payload job_id=%s", jobID)
		if _, ok := reqMap["external_reference"]; !ok {
			reqMap["external_reference"] = jobID
		}
		if _, ok := reqMap["description"]; !ok {
			reqMap["description"] = fmt.Sprintf("Foam insulation job %s", jobID)
		}

		// The source of truth for amount is the invoiced total in DB.
		reqMap["transaction_amount"] = job.Totals.TotalCost
		if b, err := json.Marshal(reqMap); err == nil {
			providerPayload = b
			log.Printf("[payment][usecase] payload enriched job_id=%s payload_len=%d", jobID, len(providerPayload))
		}
	} else {
		log.Printf("[payment][usecase] payload unmarshal failed job_id=%s err=%v", jobID, err)
	}

	providerPaymentID := ""
	providerStatus := ""
	providerResp := json.RawMessage(nil)

	if mockMode {
		log.Printf("[payment][usecase] mock mode enabled; skipping external payment gateway job_id=%s", jobID)
		providerPaymentID = strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		providerStatus = "approved"
		now := time.Now().UTC().Format(time.RFC3339Nano)
		mockResp := map[string]any{}
		if len(providerPayload) > 0 && json.Valid(providerPayload) {
			_ = json.Unmarshal(providerPayload, &mockResp)
		}
		mockResp["id"] = providerPaymentID
		mockResp["status"] = "approved"
		mockResp["status_detail"] = "accredited"
		mockResp["date_created"] = now
		mockResp["date_approved"] = now
		if _, ok := mockResp["external_reference"]; !ok {
			mockResp["external_reference"] = jobID
		}
		if _, ok := mockResp["transaction_amount"]; !ok {
			mockResp["transaction_amount"] = job.Totals.TotalCost
		}
		b, mErr := json.Marshal(mockResp)
		if mErr != nil {
			return entities.JobPayment{}, mErr
		}
		providerResp = b
	} else {
		log.Printf("[payment][usecase] calling payment gateway job_id=%s", jobID)
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, providerPayload)
		if err != nil {
			log.Printf("[payment][usecase] payment gateway failed job_id=%s err=%v", jobID, err)
			if isGatewayCustomerNotFound(err) {
				return entities.JobPayment{}, ErrPaymentGatewayCustomerNotFound
			}
			if isGatewayInvalidUsers(err) {
				return entities.JobPayment{}, ErrPaymentGatewayInvalidUsers
			}
			if isGatewayUnauthorized(err) {
				return entities.JobPayment{}, ErrPaymentGatewayUnauthorized
			}
			if isGatewayBadRequest(err) {
				return entities.JobPayment{}, ErrPaymentGatewayBadRequest
			}
			return entities.JobPayment{}, err
		}
	}
	log.Printf("[payment][usecase] payment gateway success job_id=%s provider_payment_id=%s provider_status=%s", jobID, providerPaymentID, providerStatus)

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed job_id=%s err=%v", jobID, err)
	}

	now := time.Now().UTC()
	p := entities.JobPayment{
		ID:                 providerPaymentID,
		JobID:              jobID,
		Amount:             job.Totals.TotalCost,
		Date:               now,
		Status:             entities.PaymentStatusApproved,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed job_id=%s payment_id=%s err=%v", jobID, p.ID, err)
		return entities.JobPayment{}, err
	}

	// Close the pipeline. The conditional write loses when someone already
	// advanced the job; the payment record itself is kept for audit.
	advanced, err := u.jobRepo.AdvanceStatus(ctx, jobID, job.Status, step.Target)
	if err != nil {
		log.Printf("[payment][usecase] job status advance failed job_id=%s payment_id=%s err=%v", jobID, created.ID, err)
		return entities.JobPayment{}, err
	}
	if advanced.ID == "" {
		log.Printf("[payment][usecase] job status changed concurrently job_id=%s payment_id=%s", jobID, created.ID)
		return entities.JobPayment{}, ErrJobStateChanged
	}

	u.publishLifecycle(advanced, job.Status)
	log.Printf("[payment][usecase] record-payment success job_id=%s payment_id=%s status=%s", jobID, created.ID, created.Status)
	return created, nil
}

func (u *JobPaymentUseCase) publishLifecycle(j entities.Job, from entities.JobStatus) {
	if u.events == nil {
		return
	}
	evt := schema.JobLifecycleEvent{
		JobID:        j.ID,
		CustomerName: j.CustomerName,
		FromStatus:   from.String(),
		ToStatus:     j.Status.String(),
		Action:       string(lifecycle.ActionRecordPayment),
		HappenedAt:   time.Now().Unix(),
	}
	if err := u.events.PublishJobLifecycle(evt); err != nil {
		log.Printf("[payment][usecase] lifecycle publish failed job_id=%s err=%v", j.ID, err)
	}
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	v, ok := m["payer"]
	if !ok {
		return false
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}

	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	// In sandbox, either payer.id or payer.email may be used.
	// Fill email only when both are missing.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		if email := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")); email != "" {
			payer["email"] = email
		} else if strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-") {
			// Sandbox-safe fallback recommended by Mercado Pago examples.
			payer["email"] = "test_user_br@testuser.com"
		}
	}
}

func isPaymentGatewayMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("PAYMENT_GATEWAY_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}

	v = strings.ToLower(strings.TrimSpace(os.Getenv("MERCADOPAGO_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}

	return false
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayInvalidUsers(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}

func (u *JobPaymentUseCase) GetByID(ctx context.Context, id string) (entities.JobPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.JobPayment{}, errors.New("invalid payment id")
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.JobPayment{}, err
	}
	if p.ID == "" {
		return entities.JobPayment{}, ErrJobPaymentNotFound
	}
	return p, nil
}

func (u *JobPaymentUseCase) ListByJobID(ctx context.Context, jobID string) ([]entities.JobPayment, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, ErrInvalidPaymentJobID
	}
	return u.repo.ListByJobID(ctx, jobID)
}
