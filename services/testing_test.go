package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Talhaahmd/OptimizedTrainerAI/models"

	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.TargetSet{},
		&models.DailyStat{},
		&models.Meal{},
		&models.MealItem{},
		&models.Conversation{},
		&models.ConversationMessage{},
		&models.AIAuditLog{},
	))
	return db
}

func newTestStats(db *gorm.DB) *StatsService {
	return NewStatsService(db, time.UTC)
}

// fakeAIClient scripts the inference endpoint for a test. Calls and inputs
// are recorded for assertions.
type fakeAIClient struct {
	reply    *ChatReply
	chatErr  error
	analysis *MealAnalysis
	visErr   error

	chatCalls    int
	lastContext  string
	lastHistory  []ChatTurn
	lastMessage  string
	lastTools    []llms.Tool
	lastPhotoURL string
	analyzeCalls int
}

func (f *fakeAIClient) Chat(_ context.Context, contextJSON string, history []ChatTurn, message string, tools []llms.Tool) (*ChatReply, error) {
	f.chatCalls++
	f.lastContext = contextJSON
	f.lastHistory = history
	f.lastMessage = message
	f.lastTools = tools
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	return f.reply, nil
}

func (f *fakeAIClient) AnalyzeMealPhoto(_ context.Context, photoURL string) (*MealAnalysis, error) {
	f.analyzeCalls++
	f.lastPhotoURL = photoURL
	if f.visErr != nil {
		return nil, f.visErr
	}
	return f.analysis, nil
}

// seedProfile inserts a complete profile so weight logging can re-derive
// targets.
func seedProfile(t *testing.T, db *gorm.DB, userID string) models.Profile {
	t.Helper()
	p := models.Profile{
		UserID:   userID,
		FullName: "Test User",
		Sex:      "M",
		Age:      30,
		HeightCm: 180,
		WeightKg: 80,
		Goal:     "muscle",
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}
