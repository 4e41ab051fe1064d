package controllers

import (
	"net/http"

	"github.com/Talhaahmd/OptimizedTrainerAI/services"
	"github.com/Talhaahmd/OptimizedTrainerAI/utils"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Meals *services.MealService
	Stats *services.StatsService
}

func NewMealController(meals *services.MealService, stats *services.StatsService) *MealController {
	return &MealController{Meals: meals, Stats: stats}
}

// UploadURL hands the client a presigned PUT for the photo it is about to
// take; the returned path is echoed back on create-draft.
func (h *MealController) UploadURL(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	uploadURL, key, err := utils.PresignMealUpload(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploadUrl": uploadURL, "path": key})
}

func (h *MealController) CreateDraft(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		PhotoPath string `json:"photo_path" binding:"required"`
		Date      string `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dateKey, err := h.Stats.ResolveDateKey(body.Date)
	if err != nil {
		abortWithError(c, err)
		return
	}

	draft, err := h.Meals.CreateDraft(c.Request.Context(), userID, body.PhotoPath, utils.MealPhotoURL(body.PhotoPath), dateKey)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *MealController) Confirm(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		MealID    string                   `json:"meal_id" binding:"required"`
		Confirmed *bool                    `json:"confirmed" binding:"required"`
		Edits     []services.MealItemInput `json:"edits"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := h.Meals.Confirm(userID, body.MealID, *body.Confirmed, body.Edits)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
