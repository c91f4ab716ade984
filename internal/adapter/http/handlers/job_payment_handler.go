package handlers

import (
	"encoding/json"
	"errors"
	response "foamjobs/internal/adapter/http/dto/response"
	"foamjobs/internal/usecase"
	"foamjobs/pkg"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// JobPaymentHandler handles HTTP requests for job payments.

type JobPaymentHandler struct {
	usecase usecase.IJobPaymentUseCase
}

func NewJobPaymentHandler(uc usecase.IJobPaymentUseCase) *JobPaymentHandler {
	return &JobPaymentHandler{usecase: uc}
}

// RecordPaymentByJobID charges and records a payment for an invoiced job.
func (h *JobPaymentHandler) RecordPaymentByJobID(c *gin.Context) {
	jobID := c.Param("job_id")
	log.Printf("[payment][handler] record start job_id=%s", jobID)
	mockMode := isPaymentGatewayMockEnabled()
	providerPayload, err := readProviderPayload(c)
	if err != nil {
		if mockMode {
			log.Printf("[payment][handler] payload invalid in mock mode; fallback to empty payload job_id=%s err=%v", jobID, err)
			providerPayload = json.RawMessage("{}")
		} else {
			log.Printf("[payment][handler] invalid payload job_id=%s err=%v", jobID, err)
			appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
	}

	created, err := h.usecase.RecordPayment(c.Request.Context(), jobID, providerPayload)
	if err != nil {
		log.Printf("[payment][handler] record failed job_id=%s err=%v", jobID, err)
		appErr := mapJobPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] record success job_id=%s payment_id=%s status=%s", jobID, created.ID, created.Status)

	c.JSON(http.StatusOK, response.FromJobPayment(created))
}

// GetPaymentByJobID returns the latest payment for a job.
func (h *JobPaymentHandler) GetPaymentByJobID(c *gin.Context) {
	jobID := c.Param("job_id")
	log.Printf("[payment][handler] get-by-job start job_id=%s", jobID)

	payments, err := h.usecase.ListByJobID(c.Request.Context(), jobID)
	if err != nil {
		log.Printf("[payment][handler] get-by-job failed job_id=%s err=%v", jobID, err)
		appErr := mapJobPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if len(payments) == 0 {
		log.Printf("[payment][handler] get-by-job not-found job_id=%s", jobID)
		appErr := pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	latest := payments[0]
	for _, p := range payments[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	log.Printf("[payment][handler] get-by-job success job_id=%s payment_id=%s status=%s", jobID, latest.ID, latest.Status)

	c.JSON(http.StatusOK, response.FromJobPayment(latest))
}

func readProviderPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["provider_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("provider_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapJobPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentJobID), errors.Is(err, usecase.ErrInvalidProviderPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrJobNotFound):
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrJobNotInvoiced):
		return pkg.NewDomainErrorSimple("JOB_NOT_INVOICED", "Job is not invoiced", http.StatusConflict)
	case errors.Is(err, usecase.ErrJobStateChanged):
		return pkg.NewDomainErrorSimple("JOB_STATE_CHANGED", "Job status changed concurrently", http.StatusConflict)
	case errors.Is(err, usecase.ErrJobPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
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
