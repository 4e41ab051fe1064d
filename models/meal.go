package models

import (
    "time"

    "gorm.io/gorm"
)

// Meal statuses. A meal is created as a draft and moves to exactly one of
// confirmed or rejected; both are terminal.
const (
    MealStatusDraft     = "draft"
    MealStatusConfirmed = "confirmed"
    MealStatusRejected  = "rejected"
)

// Meal sources.
const (
    MealSourceCamera = "camera"
    MealSourceChat   = "chat"
)

type Meal struct {
    ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
    UserID    string    `gorm:"index;not null" json:"user_id"`
    DateKey   string    `gorm:"index;not null" json:"date_key"` // YYYY-MM-DD
    Status    string    `gorm:"not null" json:"status"`
    Source    string    `gorm:"not null" json:"source"`
    PhotoPath string    `json:"photo_path,omitempty"`
    CreatedAt time.Time `json:"created_at"`
    UpdatedAt time.Time `json:"updated_at"`

    Items []MealItem `gorm:"foreignKey:MealID" json:"items,omitempty"`
}

// MealItem is written only at confirmation, in one batch tied to its Meal.
type MealItem struct {
    gorm.Model
    MealID   string  `gorm:"index;not null" json:"meal_id"`
    Name     string  `json:"name"`
    Portion  string  `json:"portion"`
    Calories float64 `json:"calories"`
    ProteinG float64 `json:"protein_g"`
    CarbsG   float64 `json:"carbs_g"`
    FatG     float64 `json:"fat_g"`
}
