package controllers

import (
	"net/http"

	"github.com/Talhaahmd/OptimizedTrainerAI/services"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	Profiles *services.ProfileService
	Stats    *services.StatsService
	Meals    *services.MealService
}

func NewProfileController(profiles *services.ProfileService, stats *services.StatsService, meals *services.MealService) *ProfileController {
	return &ProfileController{Profiles: profiles, Stats: stats, Meals: meals}
}

// Me aggregates everything the home screen needs in one read.
func (h *ProfileController) Me(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.Profiles.Get(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	targets, err := h.Profiles.LatestTargets(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	today, err := h.Stats.Today(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	todayMeals, err := h.Meals.ListByDate(userID, h.Stats.TodayKey())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":      profile,
		"targets":      targets,
		"todaySummary": gin.H{"steps": today.Steps, "sleep_hours": today.SleepHours},
		"todayMeals":   todayMeals,
	})
}

func (h *ProfileController) Update(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body services.ProfileInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, targets, err := h.Profiles.Upsert(userID, body)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if targets != nil {
		c.JSON(http.StatusOK, gin.H{"profile": profile, "targets": targets})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
