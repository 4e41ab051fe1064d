package services

import (
	"github.com/Talhaahmd/OptimizedTrainerAI/models"

	"gorm.io/gorm"
)

// contextWindowDays is how many trailing days of stats ground one AI turn.
const contextWindowDays = 14

// ContextSnapshot is the read-only bundle serialized into the model's system
// message. Missing pieces stay nil/empty; a turn never fails for lack of
// context.
type ContextSnapshot struct {
	Profile *models.Profile    `json:"profile"`
	Targets *models.TargetSet  `json:"targets"`
	History []models.DailyStat `json:"history"` // newest first
}

type ContextService struct {
	db       *gorm.DB
	profiles *ProfileService
	stats    *StatsService
}

func NewContextService(db *gorm.DB, profiles *ProfileService, stats *StatsService) *ContextService {
	return &ContextService{db: db, profiles: profiles, stats: stats}
}

// Snapshot re-reads everything fresh. No caching across turns: if a prior
// turn in the same request mutated data, the model sees the latest state.
func (s *ContextService) Snapshot(userID string) *ContextSnapshot {
	snap := &ContextSnapshot{}

	if profile, err := s.profiles.Get(userID); err == nil {
		snap.Profile = profile
	}
	if targets, err := s.profiles.LatestTargets(userID); err == nil {
		snap.Targets = targets
	}
	if history, err := s.stats.Recent(userID, contextWindowDays); err == nil {
		snap.History = history
	}
	return snap
}
