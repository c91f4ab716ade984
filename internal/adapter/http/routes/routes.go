package routes

import (
	_ "foamjobs/docs" // This will be auto-generated
	"foamjobs/internal/adapter/http/handlers"
	repository2 "foamjobs/internal/adapter/persistence/repository"
	"foamjobs/internal/infrastructure/bus"
	"foamjobs/internal/infrastructure/database"
	"foamjobs/internal/infrastructure/payments"
	"foamjobs/internal/usecase"
	"foamjobs/internal/usecase/interfaces"
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	jobRepo := repository2.NewJobDynamoRepository(ddb)
	paymentRepo := repository2.NewJobPaymentDynamoRepository(ddb)

	var eventPublisher interfaces.IEventPublisher
	if url := os.Getenv("NATS_URL"); url != "" {
		busClient, err := bus.Connect(url)
		if err != nil {
			log.Printf("NATS not connected, lifecycle events disabled: %v", err)
		} else {
			eventPublisher = bus.NewEventPublisher(busClient)
		}
	}

	jobUseCase := usecase.NewJobUseCase(jobRepo, eventPublisher)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	paymentUseCase := usecase.NewJobPaymentUseCase(paymentRepo, jobRepo, paymentGateway, eventPublisher)

	jobHandler := handlers.NewJobHandler(jobUseCase)
	jobPaymentHandler := handlers.NewJobPaymentHandler(paymentUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addJobRoutes(v1, jobHandler, jobPaymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
