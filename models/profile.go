package models

import (
    "gorm.io/gorm"
)

// Profile is the single mutable per-user row holding the physical inputs
// targets are derived from. Upserted on onboarding/edit and whenever a new
// weight is logged; never deleted.
type Profile struct {
    gorm.Model
    UserID   string  `gorm:"uniqueIndex;not null" json:"user_id"`
    FullName string  `json:"full_name"`
    Sex      string  `json:"sex"`  // "M" | "F"
    Age      int     `json:"age"`  // years
    HeightCm float64 `json:"height_cm"`
    WeightKg float64 `json:"weight_kg"`
    Goal     string  `json:"goal"` // "muscle" | "fatloss"
}

// Complete reports whether all five calculator inputs are present.
func (p *Profile) Complete() bool {
    return p.WeightKg > 0 && p.HeightCm > 0 && p.Age > 0 &&
        (p.Sex == "M" || p.Sex == "F") &&
        (p.Goal == "muscle" || p.Goal == "fatloss")
}
