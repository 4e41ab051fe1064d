package controllers

import (
	"net/http"

	"github.com/Talhaahmd/OptimizedTrainerAI/services"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Svc *services.StatsService
	RT  *services.RealtimeHub
}

func NewStatsController(svc *services.StatsService, rt *services.RealtimeHub) *StatsController {
	return &StatsController{Svc: svc, RT: rt}
}

func (h *StatsController) LogSteps(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		Steps *int   `json:"steps" binding:"required"`
		Date  string `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stat, err := h.Svc.LogSteps(userID, *body.Steps, body.Date)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.broadcast(userID, stat)
	c.JSON(http.StatusOK, stat)
}

func (h *StatsController) LogSleep(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		SleepHours *float64 `json:"sleep_hours" binding:"required"`
		Date       string   `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stat, err := h.Svc.LogSleep(userID, *body.SleepHours, body.Date)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.broadcast(userID, stat)
	c.JSON(http.StatusOK, stat)
}

func (h *StatsController) LogWeight(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		WeightKg *float64 `json:"weight_kg" binding:"required"`
		Date     string   `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stat, targets, err := h.Svc.LogWeight(userID, *body.WeightKg, body.Date)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.broadcast(userID, stat)
	if targets != nil {
		c.JSON(http.StatusOK, gin.H{"stat": stat, "targets": targets})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stat": stat})
}

func (h *StatsController) broadcast(userID string, stat interface{}) {
	if h.RT == nil {
		return
	}
	h.RT.Broadcast(userID, map[string]interface{}{
		"kind": "summary.updated",
		"stat": stat,
	})
}
