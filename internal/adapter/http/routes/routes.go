package routes

import (
	"log"
	"strconv"

	_ "buildcost/docs" // This will be auto-generated
	"buildcost/internal/adapter/http/handlers"
	repository2 "buildcost/internal/adapter/persistence/repository"
	"buildcost/internal/infrastructure/database"
	"buildcost/internal/usecase"

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

	formulaRepo := repository2.NewFormulaDynamoRepository(ddb)
	estimateRepo := repository2.NewEstimateDynamoRepository(ddb)
	instanceRepo := repository2.NewComputationInstanceDynamoRepository(ddb)

	formulaUseCase := usecase.NewFormulaUseCase(formulaRepo)
	estimateUseCase := usecase.NewEstimateUseCase(estimateRepo, formulaRepo, instanceRepo)

	formulaHandler := handlers.NewFormulaHandler(formulaUseCase)
	estimateHandler := handlers.NewEstimateHandler(estimateUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addEstimatingRoutes(v1, formulaHandler, estimateHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
