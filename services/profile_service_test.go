package services

import (
	"testing"

	"github.com/Talhaahmd/OptimizedTrainerAI/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestProfileUpsertCreatesAndDerivesTargets(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	profile, targets, err := svc.Upsert("u1", ProfileInput{
		FullName: ptr("Ada"),
		Sex:      ptr("F"),
		Age:      ptr(28),
		HeightCm: ptr(165.0),
		WeightKg: ptr(65.0),
		Goal:     ptr("fatloss"),
	})
	require.NoError(t, err)
	require.NotNil(t, targets)

	assert.Equal(t, "Ada", profile.FullName)
	assert.Equal(t, 1256, targets.CaloriesTarget)
	assert.Equal(t, 10000, targets.StepsTarget)
}

func TestProfileUpsertPartialMerge(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)
	seedProfile(t, db, "u1")

	profile, targets, err := svc.Upsert("u1", ProfileInput{Goal: ptr("fatloss")})
	require.NoError(t, err)
	require.NotNil(t, targets)

	// untouched fields survive the edit
	assert.Equal(t, 80.0, profile.WeightKg)
	assert.Equal(t, "fatloss", profile.Goal)
	assert.Equal(t, 10000, targets.StepsTarget)

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", "u1").Count(&count).Error)
	assert.Equal(t, int64(1), count, "profile stays a single row")
}

func TestProfileUpsertIncompleteSkipsTargets(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	profile, targets, err := svc.Upsert("u1", ProfileInput{FullName: ptr("Partial")})
	require.NoError(t, err)
	assert.NotNil(t, profile)
	assert.Nil(t, targets)
}

func TestProfileUpsertValidation(t *testing.T) {
	svc := NewProfileService(newTestDB(t))

	_, _, err := svc.Upsert("u1", ProfileInput{Sex: ptr("X")})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.Upsert("u1", ProfileInput{Goal: ptr("tone")})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.Upsert("u1", ProfileInput{WeightKg: ptr(-5.0)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLatestTargetsPicksNewest(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)
	p := seedProfile(t, db, "u1")

	first, err := AppendTargets(db, p, nil)
	require.NoError(t, err)

	p.WeightKg = 85
	second, err := AppendTargets(db, p, map[string]string{"trigger": "weight_update"})
	require.NoError(t, err)
	require.NotEqual(t, first.ProteinGTarget, second.ProteinGTarget)

	latest, err := svc.LatestTargets("u1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ProteinGTarget, latest.ProteinGTarget)

	// history is append-only
	var count int64
	require.NoError(t, db.Model(&models.TargetSet{}).Where("user_id = ?", "u1").Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestGetAndLatestTargetsAbsent(t *testing.T) {
	svc := NewProfileService(newTestDB(t))

	profile, err := svc.Get("nobody")
	require.NoError(t, err)
	assert.Nil(t, profile)

	targets, err := svc.LatestTargets("nobody")
	require.NoError(t, err)
	assert.Nil(t, targets)
}
