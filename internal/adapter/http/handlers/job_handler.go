package handlers

import (
	"context"
	"errors"
	request "foamjobs/internal/adapter/http/dto/request"
	response "foamjobs/internal/adapter/http/dto/response"
	"foamjobs/internal/domain/entities"
	"foamjobs/internal/domain/lifecycle"
	"foamjobs/internal/usecase"
	"foamjobs/pkg"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidJobPayload = pkg.NewDomainErrorSimple("INVALID_JOB_INPUT", "Invalid job payload", http.StatusBadRequest)
)

// JobHandler handles HTTP requests for foam insulation jobs.
//
// The transition endpoints (mark-sold, schedule, invoice, record payment) are
// thin wrappers: which transition is legal is decided by the lifecycle
// resolver inside the usecase, never here.

type JobHandler struct {
	usecase usecase.IJobUseCase
}

func NewJobHandler(uc usecase.IJobUseCase) *JobHandler {
	return &JobHandler{usecase: uc}
}

// CreateJob opens a draft job from a finished estimate.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var payload request.CreateJobRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	if payload.ResolveCustomerName() == "" {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest).ToHTTPError())
		return
	}

	job, err := h.usecase.CreateJob(c.Request.Context(), payload.ToJob())
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromJob(job))
}

// ListJobs returns every job, newest first.
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.usecase.List(c.Request.Context())
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJobs(jobs))
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.usecase.GetByID(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJob(job))
}

// GetNextStep returns the single legal next action for the job.
func (h *JobHandler) GetNextStep(c *gin.Context) {
	job, step, err := h.usecase.NextStep(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromNextStep(job, step))
}

// GetMetrics returns the derived financial and material view for the job.
func (h *JobHandler) GetMetrics(c *gin.Context) {
	job, view, err := h.usecase.Metrics(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromMetrics(job, view))
}

func (h *JobHandler) MarkSold(c *gin.Context) {
	h.patchJobStatus(c, h.usecase.MarkSold)
}

func (h *JobHandler) GenerateInvoice(c *gin.Context) {
	h.patchJobStatus(c, h.usecase.GenerateInvoice)
}

// Schedule assigns the install date to a sold work order.
func (h *JobHandler) Schedule(c *gin.Context) {
	var payload request.ScheduleJobRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	date, err := payload.ResolveDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest).ToHTTPError())
		return
	}

	job, err := h.usecase.Schedule(c.Request.Context(), c.Param("job_id"), date)
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJob(job))
}

// RecordActuals stores office-entered real-world material usage.
func (h *JobHandler) RecordActuals(c *gin.Context) {
	var payload request.ActualsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	job, err := h.usecase.RecordActuals(c.Request.Context(), c.Param("job_id"), payload.ToActuals())
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJob(job))
}

// UpdateTotals replaces the stored calculation results after a recalculation.
func (h *JobHandler) UpdateTotals(c *gin.Context) {
	var payload request.CalculationResultsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidJobPayload.HTTPStatus, errInvalidJobPayload.ToHTTPError())
		return
	}

	job, err := h.usecase.UpdateTotals(c.Request.Context(), c.Param("job_id"), payload.ToCalculation())
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJob(job))
}

func (h *JobHandler) patchJobStatus(
	c *gin.Context,
	advance func(ctx context.Context, id string) (entities.Job, error),
) {
	job, err := advance(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJob(job))
}

func mapJobError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidJobID),
		errors.Is(err, usecase.ErrInvalidCustomerName),
		errors.Is(err, usecase.ErrInvalidScheduleDate),
		errors.Is(err, usecase.ErrInvalidTotals),
		errors.Is(err, usecase.ErrInvalidActuals),
		errors.Is(err, usecase.ErrInvalidStrokeDelta),
		errors.Is(err, usecase.ErrInvalidFoamFamily):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrJobNotFound):
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrActionNotAllowed):
		return pkg.NewDomainErrorSimple("ACTION_NOT_ALLOWED", "Action not allowed for the current job status", http.StatusConflict)
	case errors.Is(err, usecase.ErrJobStateChanged):
		return pkg.NewDomainErrorSimple("JOB_STATE_CHANGED", "Job status changed concurrently", http.StatusConflict)
	case errors.Is(err, lifecycle.ErrUnknownStatus):
		return pkg.NewDomainError("UNRECOGNIZED_STATUS", "Job has an unrecognized status", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
