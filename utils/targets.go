package utils

import (
	"errors"
	"math"

	"github.com/Talhaahmd/OptimizedTrainerAI/models"
)

// TargetMethodMifflinStJeor tags every TargetSet produced by this formula
// version so stored history stays distinguishable if the formula changes.
const TargetMethodMifflinStJeor = "mifflin_st_jeor_v1"

// ErrIncompleteProfile is returned when any of the five calculator inputs
// (weight, height, age, sex, goal) is absent. Callers should check
// Profile.Complete before asking for targets.
var ErrIncompleteProfile = errors.New("profile missing required fields for target calculation")

// CalculateTargets derives a full set of daily targets from a profile.
// Mifflin-St Jeor BMR, then goal-conditioned calorie/macro scaling.
// Pure: no I/O, same input always yields the same output.
func CalculateTargets(p models.Profile) (models.TargetSet, error) {
	if !p.Complete() {
		return models.TargetSet{}, ErrIncompleteProfile
	}

	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Sex == "M" {
		bmr += 5
	} else {
		bmr -= 161
	}

	var calories, protein, steps int
	if p.Goal == "muscle" {
		calories = int(math.Round(bmr*1.3 + 300))
		protein = int(math.Round(p.WeightKg * 2.2))
		steps = 8000
	} else {
		calories = int(math.Round(bmr*1.2 - 400))
		protein = int(math.Round(p.WeightKg * 2.0))
		steps = 10000
	}

	// Fat takes 25% of calories; carbs get whatever calories remain.
	// Carbs can go negative for implausibly small bodies; kept unclamped so a
	// stored TargetSet is always reproducible from its inputs and method tag.
	fat := int(math.Round(float64(calories) * 0.25 / 9))
	carbs := int(math.Round(float64(calories-protein*4-fat*9) / 4))

	return models.TargetSet{
		StepsTarget:      steps,
		SleepTargetHours: 8.0,
		CaloriesTarget:   calories,
		ProteinGTarget:   protein,
		CarbsGTarget:     carbs,
		FatGTarget:       fat,
		Method:           TargetMethodMifflinStJeor,
	}, nil
}
