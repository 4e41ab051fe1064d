package models

import (
    "gorm.io/gorm"
)

// DailyStat holds one row per (user, date). Writes merge only the fields
// they carry, so a steps upsert never clobbers the day's sleep or weight.
type DailyStat struct {
    gorm.Model
    UserID     string  `gorm:"uniqueIndex:idx_user_date;not null" json:"user_id"`
    DateKey    string  `gorm:"uniqueIndex:idx_user_date;not null" json:"date_key"` // YYYY-MM-DD
    Steps      int     `json:"steps"`
    SleepHours float64 `json:"sleep_hours"`
    WeightKg   float64 `json:"weight_kg"`
}
