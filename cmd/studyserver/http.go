package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/controllers"
)

// SetupRestAPI initializes the REST API and starts listening
func SetupRestAPI(listenAddress string) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Add a ginzap middleware, which:
	//   - Logs all requests, like a combined access and error log.
	//   - Logs to stdout.
	//   - RFC3339 with UTC time format.
	router.Use(ginzap.Ginzap(zap.L(), time.RFC3339, true))

	// Logs all panic to error log
	//   - stack means whether output the stack info.
	router.Use(ginzap.RecoveryWithZap(zap.L(), true))

	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Healthcheck
	router.GET("/", func(c *gin.Context) {
		if shutdownEnabled {
			c.String(http.StatusOK, "shutdown")
		} else {
			c.String(http.StatusOK, "online")
		}
	})

	api := router.Group("/api")
	{
		api.POST("/demographics", controllers.PostDemographicsHandler)
		api.GET("/participants/:participantId/conditions", controllers.GetConditionsHandler)

		api.GET("/part-a/sentences", controllers.GetSentencesHandler)
		api.GET("/part-a/questions", controllers.GetPartAQuestionsHandler)
		api.POST("/part-a/log", controllers.PostPartALogHandler)
		api.POST("/part-a/submit-questions", controllers.PostPartASubmitQuestionsHandler)

		api.GET("/part-b/stories", controllers.GetStoriesHandler)
		api.GET("/part-b/segments", controllers.GetSegmentsHandler)
		api.GET("/part-b/questions", controllers.GetPartBQuestionsHandler)
		api.POST("/part-b/actions", controllers.PostPartBActionHandler)
		api.POST("/part-b/submit", controllers.PostPartBSubmitHandler)

		api.GET("/part-c/passages", controllers.GetPassagesHandler)
		api.GET("/part-c/questions", controllers.GetPartCQuestionsHandler)
		api.POST("/part-c/submit", controllers.PostPartCSubmitHandler)

		api.GET("/cognitive/vocabulary", controllers.GetVocabularyHandler)
		api.POST("/cognitive/vocabulary", controllers.PostVocabularyHandler)
		api.GET("/cognitive/letter-comparison", controllers.GetLetterComparisonHandler)
		api.POST("/cognitive/letter-comparison", controllers.PostLetterComparisonHandler)

		api.GET("/assessment/questions", controllers.GetAssessmentQuestionsHandler)
		api.POST("/assessment/submit", controllers.PostAssessmentSubmitHandler)

		api.GET("/session/:participantId", controllers.GetSessionHandler)
		api.POST("/session/:participantId/visit", controllers.PostSessionVisitHandler)
		api.POST("/session/:participantId/step", controllers.PostSessionStepHandler)
		api.POST("/session/:participantId/advance", controllers.PostSessionAdvanceHandler)

		// developer-only bulk loaders, gated behind SEED_ENABLED
		api.GET("/seed-:dataset", controllers.SeedHandler)
	}

	err := router.Run(listenAddress)
	if err != nil {
		zap.S().Errorf("Failed to bind to %s: %s", listenAddress, err)
		ShutdownApplicationGraceful()
	}
}
