package routes

import (
	"foamjobs/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathJobs     = "/jobs"
	PathPayments = "/payments"
)

func addJobRoutes(rg *gin.RouterGroup, jobHandler *handlers.JobHandler, paymentHandler *handlers.JobPaymentHandler) {
	jobs := rg.Group(PathJobs)
	{
		jobs.POST("", jobHandler.CreateJob)
		jobs.GET("", jobHandler.ListJobs)
		jobs.GET("/:job_id", jobHandler.GetJob)
		jobs.GET("/:job_id/next-step", jobHandler.GetNextStep)
		jobs.GET("/:job_id/metrics", jobHandler.GetMetrics)
		jobs.PATCH("/:job_id/mark-sold", jobHandler.MarkSold)
		jobs.PATCH("/:job_id/schedule", jobHandler.Schedule)
		jobs.PATCH("/:job_id/invoice", jobHandler.GenerateInvoice)
		jobs.PATCH("/:job_id/actuals", jobHandler.RecordActuals)
		jobs.PATCH("/:job_id/totals", jobHandler.UpdateTotals)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("/:job_id", paymentHandler.RecordPaymentByJobID)
		payments.GET("/:job_id", paymentHandler.GetPaymentByJobID)
	}
}
