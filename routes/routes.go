package routes

import (
	"net/http"
	"time"

	"github.com/Talhaahmd/OptimizedTrainerAI/controllers"
	"github.com/Talhaahmd/OptimizedTrainerAI/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter(
	chat *controllers.ChatController,
	meals *controllers.MealController,
	stats *controllers.StatsController,
	profile *controllers.ProfileController,
	realtime *controllers.RealtimeController,
) *gin.Engine {
	r := gin.Default()

	// Unauthenticated liveness probe
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	v1 := r.Group("/v1")
	v1.Use(middlewares.AuthMiddleware())
	{
		v1.GET("/me", profile.Me)
		v1.POST("/profile", profile.Update)

		v1.POST("/stats/steps", stats.LogSteps)
		v1.POST("/stats/sleep", stats.LogSleep)
		v1.POST("/stats/weight", stats.LogWeight)

		v1.POST("/meals/camera/upload-url", meals.UploadURL)
		v1.POST("/meals/camera/create-draft", meals.CreateDraft)
		v1.POST("/meals/confirm", meals.Confirm)

		v1.POST("/chat/start", chat.StartConversation)
		v1.POST("/chat/message", chat.Message)

		v1.GET("/realtime/ws", realtime.EventsWS)
	}

	return r
}
