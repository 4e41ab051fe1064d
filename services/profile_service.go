package services

import (
	"errors"

	"github.com/Talhaahmd/OptimizedTrainerAI/models"
	"github.com/Talhaahmd/OptimizedTrainerAI/utils"

	"gorm.io/gorm"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// ProfileInput carries a partial profile edit; nil fields are untouched.
type ProfileInput struct {
	FullName *string  `json:"full_name"`
	Sex      *string  `json:"sex"`
	Age      *int     `json:"age"`
	HeightCm *float64 `json:"height_cm"`
	WeightKg *float64 `json:"weight_kg"`
	Goal     *string  `json:"goal"`
}

func (in *ProfileInput) validate() error {
	if in.Sex != nil && *in.Sex != "M" && *in.Sex != "F" {
		return errors.New("sex must be M or F")
	}
	if in.Goal != nil && *in.Goal != "muscle" && *in.Goal != "fatloss" {
		return errors.New("goal must be muscle or fatloss")
	}
	if in.Age != nil && *in.Age <= 0 {
		return errors.New("age must be positive")
	}
	if in.HeightCm != nil && *in.HeightCm <= 0 {
		return errors.New("height_cm must be positive")
	}
	if in.WeightKg != nil && *in.WeightKg <= 0 {
		return errors.New("weight_kg must be positive")
	}
	return nil
}

// Upsert merges the edit into the user's single profile row and, when the
// result is complete, appends a fresh TargetSet. Targets come back nil for
// incomplete profiles; that is not an error.
func (s *ProfileService) Upsert(userID string, in ProfileInput) (*models.Profile, *models.TargetSet, error) {
	if err := in.validate(); err != nil {
		return nil, nil, errors.Join(ErrValidation, err)
	}

	var profile models.Profile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
	} else if err != nil {
		return nil, nil, err
	}

	if in.FullName != nil {
		profile.FullName = *in.FullName
	}
	if in.Sex != nil {
		profile.Sex = *in.Sex
	}
	if in.Age != nil {
		profile.Age = *in.Age
	}
	if in.HeightCm != nil {
		profile.HeightCm = *in.HeightCm
	}
	if in.WeightKg != nil {
		profile.WeightKg = *in.WeightKg
	}
	if in.Goal != nil {
		profile.Goal = *in.Goal
	}

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, nil, err
	}

	targets, err := AppendTargets(s.db, profile, in)
	if errors.Is(err, utils.ErrIncompleteProfile) {
		return &profile, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return &profile, targets, nil
}

// Get returns the user's profile, nil when onboarding has not happened yet.
func (s *ProfileService) Get(userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// LatestTargets returns the most recently created TargetSet, nil when none
// has ever been computed.
func (s *ProfileService) LatestTargets(userID string) (*models.TargetSet, error) {
	var ts models.TargetSet
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&ts).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
