package app

import (
	"report_backend/docs"
	"report_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	router.GET("/", c.health.Awake)
	router.GET("/health", c.health.HealthCheck)

	registerIndividualRoutes(router.Group("/individual"), c)
	registerResultRoutes(router.Group("/results"), c)
}

func registerIndividualRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/post-individual", c.individual.PostIndividual)
	rg.GET("/get-all-individual", c.individual.GetAllIndividual)
	rg.GET("/get-by-id-individual/:user_id", c.individual.GetIndividualByUserID)
	rg.PUT("/update-individual", c.individual.UpdateIndividual)
	rg.DELETE("/delete-test/:user_id/:result_test_id", c.individual.DeleteTest)
	rg.POST("/export", c.individual.ExportIndividuals)
}

func registerResultRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/get-result", c.result.GetResults)
	rg.POST("/post-result", c.result.PostResult)
	rg.PUT("/update-result", c.result.UpdateResult)
	rg.DELETE("/delete-by-result-id/:result_id", c.result.DeleteResult)
	rg.GET("/get-result-by-user/:result_user_id", c.result.GetResultByUser)
	rg.GET("/results/check", c.result.CheckResult)
}
