package models

import (
    "gorm.io/gorm"
)

// TargetSet is an append-only snapshot of daily targets derived from a
// Profile. A new row is inserted whenever the physical inputs change; the
// most recently created row is the user's current targets.
type TargetSet struct {
    gorm.Model
    UserID           string  `gorm:"index;not null" json:"user_id"`
    StepsTarget      int     `json:"steps_target"`
    SleepTargetHours float64 `json:"sleep_target_hours"`
    CaloriesTarget   int     `json:"calories_target"`
    ProteinGTarget   int     `json:"protein_g_target"`
    CarbsGTarget     int     `json:"carbs_g_target"`
    FatGTarget       int     `json:"fat_g_target"`
    Method           string  `json:"method"`      // formula version tag
    InputsJSON       string  `json:"inputs_json"` // what triggered the recompute
}
