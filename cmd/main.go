package main

import (
	"log"

	"github.com/Talhaahmd/OptimizedTrainerAI/config"
	"github.com/Talhaahmd/OptimizedTrainerAI/controllers"
	"github.com/Talhaahmd/OptimizedTrainerAI/routes"
	"github.com/Talhaahmd/OptimizedTrainerAI/services"
	"github.com/Talhaahmd/OptimizedTrainerAI/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()

	ai, err := services.NewOpenAIClient()
	if err != nil {
		log.Fatalf("openai client: %v", err)
	}

	hub := services.NewRealtimeHub()

	audit := services.NewAuditService(config.DB)
	profiles := services.NewProfileService(config.DB)
	stats := services.NewStatsService(config.DB, config.ReferenceLocation())
	meals := services.NewMealService(config.DB, ai, audit)
	convos := services.NewConversationService(config.DB)
	contexts := services.NewContextService(config.DB, profiles, stats)
	registry := services.NewToolRegistry(stats, meals)
	chat := services.NewChatService(convos, contexts, registry, stats, profiles, audit, ai, hub)

	r := routes.SetupRouter(
		controllers.NewChatController(chat),
		controllers.NewMealController(meals, stats),
		controllers.NewStatsController(stats, hub),
		controllers.NewProfileController(profiles, stats, meals),
		controllers.NewRealtimeController(hub),
	)

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("server: %v", err)
	}
}
