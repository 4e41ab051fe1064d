// services/meal_service.go
package services

import (
	"context"
	"errors"

	"github.com/Talhaahmd/OptimizedTrainerAI/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealService struct {
	db    *gorm.DB
	ai    AIClient
	audit *AuditService
}

func NewMealService(db *gorm.DB, ai AIClient, audit *AuditService) *MealService {
	return &MealService{db: db, ai: ai, audit: audit}
}

// MealItemInput is one item as supplied at confirmation or by the
// log_meal_items tool.
type MealItemInput struct {
	Name     string  `json:"name"`
	Portion  string  `json:"portion"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// DraftResult pairs the created draft with the vision analysis the client
// shows for confirmation.
type DraftResult struct {
	MealID             string         `json:"meal_id"`
	Draft              []MealEstimate `json:"draft"`
	ConfirmationPrompt string         `json:"confirmation_prompt"`
}

// CreateDraft stores a draft camera meal, runs vision analysis on its photo
// and audits the AI exchange. The meal stays in draft until the user
// confirms or rejects the estimate.
func (s *MealService) CreateDraft(ctx context.Context, userID, photoPath, photoURL, dateKey string) (*DraftResult, error) {
	meal := &models.Meal{
		ID:        uuid.NewString(),
		UserID:    userID,
		DateKey:   dateKey,
		Status:    models.MealStatusDraft,
		Source:    models.MealSourceCamera,
		PhotoPath: photoPath,
	}
	if err := s.db.Create(meal).Error; err != nil {
		return nil, err
	}

	analysis, err := s.ai.AnalyzeMealPhoto(ctx, photoURL)
	if err != nil {
		return nil, errors.Join(ErrUpstreamUnavailable, err)
	}

	s.audit.Record(userID, "meal_draft",
		map[string]string{"photo_path": photoPath}, analysis)

	return &DraftResult{
		MealID:             meal.ID,
		Draft:              analysis.Items,
		ConfirmationPrompt: analysis.ConfirmationPrompt,
	}, nil
}

// Confirm settles a draft: confirmed=true writes the (possibly edited) items
// in one batch and flips the status, confirmed=false rejects with no items.
// Both outcomes are terminal; a meal that already left draft is refused.
func (s *MealService) Confirm(userID, mealID string, confirmed bool, edits []MealItemInput) (string, error) {
	var meal models.Meal
	err := s.db.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if meal.Status != models.MealStatusDraft {
		return "", ErrMealNotDraft
	}

	if !confirmed {
		if err := s.db.Model(&meal).Update("status", models.MealStatusRejected).Error; err != nil {
			return "", err
		}
		return models.MealStatusRejected, nil
	}

	items := make([]models.MealItem, 0, len(edits))
	for _, it := range edits {
		items = append(items, models.MealItem{
			MealID:   meal.ID,
			Name:     it.Name,
			Portion:  it.Portion,
			Calories: it.Calories,
			ProteinG: it.ProteinG,
			CarbsG:   it.CarbsG,
			FatG:     it.FatG,
		})
	}
	if len(items) > 0 {
		if err := s.db.Create(&items).Error; err != nil {
			return "", err
		}
	}
	if err := s.db.Model(&meal).Update("status", models.MealStatusConfirmed).Error; err != nil {
		return "", err
	}
	return models.MealStatusConfirmed, nil
}

// LogChatMeal creates an already-confirmed meal described in chat, with its
// items in one batch. Used by the log_meal_items tool.
func (s *MealService) LogChatMeal(userID, dateKey string, items []MealItemInput) (*models.Meal, error) {
	meal := &models.Meal{
		ID:      uuid.NewString(),
		UserID:  userID,
		DateKey: dateKey,
		Status:  models.MealStatusConfirmed,
		Source:  models.MealSourceChat,
	}
	if err := s.db.Create(meal).Error; err != nil {
		return nil, err
	}

	rows := make([]models.MealItem, 0, len(items))
	for _, it := range items {
		rows = append(rows, models.MealItem{
			MealID:   meal.ID,
			Name:     it.Name,
			Portion:  it.Portion,
			Calories: it.Calories,
			ProteinG: it.ProteinG,
			CarbsG:   it.CarbsG,
			FatG:     it.FatG,
		})
	}
	if err := s.db.Create(&rows).Error; err != nil {
		return nil, err
	}

	// reload with items
	var populated models.Meal
	if err := s.db.Preload("Items").First(&populated, "id = ?", meal.ID).Error; err != nil {
		return nil, err
	}
	return &populated, nil
}

// ListByDate returns a day's meals with their items, newest first.
func (s *MealService) ListByDate(userID, dateKey string) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Preload("Items").
		Where("user_id = ? AND date_key = ?", userID, dateKey).
		Order("created_at DESC").
		Find(&meals).Error
	return meals, err
}
