package utils

import (
	"testing"

	"github.com/Talhaahmd/OptimizedTrainerAI/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTargetsMuscle(t *testing.T) {
	p := models.Profile{
		WeightKg: 80,
		HeightCm: 180,
		Age:      30,
		Sex:      "M",
		Goal:     "muscle",
	}

	ts, err := CalculateTargets(p)
	require.NoError(t, err)

	assert.Equal(t, 2614, ts.CaloriesTarget)
	assert.Equal(t, 176, ts.ProteinGTarget)
	assert.Equal(t, 73, ts.FatGTarget)
	assert.Equal(t, 313, ts.CarbsGTarget)
	assert.Equal(t, 8000, ts.StepsTarget)
	assert.Equal(t, 8.0, ts.SleepTargetHours)
	assert.Equal(t, TargetMethodMifflinStJeor, ts.Method)
}

func TestCalculateTargetsFatloss(t *testing.T) {
	p := models.Profile{
		WeightKg: 65,
		HeightCm: 165,
		Age:      28,
		Sex:      "F",
		Goal:     "fatloss",
	}

	ts, err := CalculateTargets(p)
	require.NoError(t, err)

	assert.Equal(t, 1256, ts.CaloriesTarget)
	assert.Equal(t, 130, ts.ProteinGTarget)
	assert.Equal(t, 35, ts.FatGTarget)
	assert.Equal(t, 105, ts.CarbsGTarget)
	assert.Equal(t, 10000, ts.StepsTarget)
	assert.Equal(t, 8.0, ts.SleepTargetHours)
}

func TestCalculateTargetsDeterministic(t *testing.T) {
	p := models.Profile{WeightKg: 72.5, HeightCm: 177, Age: 41, Sex: "M", Goal: "fatloss"}

	first, err := CalculateTargets(p)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := CalculateTargets(p)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCalculateTargetsIncompleteProfile(t *testing.T) {
	cases := map[string]models.Profile{
		"empty":       {},
		"no weight":   {HeightCm: 180, Age: 30, Sex: "M", Goal: "muscle"},
		"no height":   {WeightKg: 80, Age: 30, Sex: "M", Goal: "muscle"},
		"no age":      {WeightKg: 80, HeightCm: 180, Sex: "M", Goal: "muscle"},
		"bad sex":     {WeightKg: 80, HeightCm: 180, Age: 30, Sex: "X", Goal: "muscle"},
		"bad goal":    {WeightKg: 80, HeightCm: 180, Age: 30, Sex: "M", Goal: "bulk"},
		"missing sex": {WeightKg: 80, HeightCm: 180, Age: 30, Goal: "muscle"},
	}

	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := CalculateTargets(p)
			assert.ErrorIs(t, err, ErrIncompleteProfile)
		})
	}
}
