package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Talhaahmd/OptimizedTrainerAI/models"
	"github.com/Talhaahmd/OptimizedTrainerAI/utils"

	"gorm.io/gorm"
)

const dateKeyLayout = "2006-01-02"

type StatsService struct {
	db  *gorm.DB
	loc *time.Location
}

func NewStatsService(db *gorm.DB, loc *time.Location) *StatsService {
	return &StatsService{db: db, loc: loc}
}

// TodayKey is today's date key in the service's reference timezone.
func (s *StatsService) TodayKey() string {
	return time.Now().In(s.loc).Format(dateKeyLayout)
}

// ResolveDateKey validates an optional YYYY-MM-DD date, defaulting to today.
func (s *StatsService) ResolveDateKey(date string) (string, error) {
	if date == "" {
		return s.TodayKey(), nil
	}
	if _, err := time.Parse(dateKeyLayout, date); err != nil {
		return "", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return date, nil
}

// Upsert merges the given fields into the (user, date) row. Only the fields
// present in the map are written; an existing row's other fields survive.
// Keys are column names: steps, sleep_hours, weight_kg.
func (s *StatsService) Upsert(userID, dateKey string, fields map[string]interface{}) (*models.DailyStat, error) {
	var stat models.DailyStat
	err := s.db.Where("user_id = ? AND date_key = ?", userID, dateKey).First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stat = models.DailyStat{UserID: userID, DateKey: dateKey}
		applyStatFields(&stat, fields)
		if err := s.db.Create(&stat).Error; err != nil {
			return nil, err
		}
		return &stat, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(&stat).Updates(fields).Error; err != nil {
		return nil, err
	}
	return &stat, nil
}

func applyStatFields(stat *models.DailyStat, fields map[string]interface{}) {
	for k, v := range fields {
		switch k {
		case "steps":
			if n, ok := v.(int); ok {
				stat.Steps = n
			}
		case "sleep_hours":
			if f, ok := v.(float64); ok {
				stat.SleepHours = f
			}
		case "weight_kg":
			if f, ok := v.(float64); ok {
				stat.WeightKg = f
			}
		}
	}
}

func (s *StatsService) LogSteps(userID string, steps int, date string) (*models.DailyStat, error) {
	dateKey, err := s.ResolveDateKey(date)
	if err != nil {
		return nil, err
	}
	return s.Upsert(userID, dateKey, map[string]interface{}{"steps": steps})
}

func (s *StatsService) LogSleep(userID string, hours float64, date string) (*models.DailyStat, error) {
	dateKey, err := s.ResolveDateKey(date)
	if err != nil {
		return nil, err
	}
	return s.Upsert(userID, dateKey, map[string]interface{}{"sleep_hours": hours})
}

// LogWeight upserts the day's weight, mirrors it onto the profile, and
// appends a fresh TargetSet when the profile has all calculator inputs.
// The returned TargetSet is nil when the profile is absent or incomplete.
func (s *StatsService) LogWeight(userID string, weightKg float64, date string) (*models.DailyStat, *models.TargetSet, error) {
	dateKey, err := s.ResolveDateKey(date)
	if err != nil {
		return nil, nil, err
	}
	stat, err := s.Upsert(userID, dateKey, map[string]interface{}{"weight_kg": weightKg})
	if err != nil {
		return nil, nil, err
	}

	var profile models.Profile
	err = s.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stat, nil, nil // no profile yet, nothing to re-derive
	}
	if err != nil {
		return nil, nil, err
	}

	profile.WeightKg = weightKg
	if err := s.db.Save(&profile).Error; err != nil {
		return nil, nil, err
	}

	targets, err := AppendTargets(s.db, profile, map[string]interface{}{
		"weight_kg": weightKg,
		"trigger":   "weight_update",
	})
	if errors.Is(err, utils.ErrIncompleteProfile) {
		return stat, nil, nil // recoverable: caller proceeds without targets
	}
	if err != nil {
		return nil, nil, err
	}
	return stat, targets, nil
}

// AppendTargets computes targets from the profile and inserts a new
// TargetSet row recording what triggered the recompute.
func AppendTargets(db *gorm.DB, p models.Profile, inputs interface{}) (*models.TargetSet, error) {
	ts, err := utils.CalculateTargets(p)
	if err != nil {
		return nil, err
	}
	ts.UserID = p.UserID
	if b, err := json.Marshal(inputs); err == nil {
		ts.InputsJSON = string(b)
	}
	if err := db.Create(&ts).Error; err != nil {
		return nil, err
	}
	return &ts, nil
}

// Today returns today's row, zero-valued when the user has no data yet.
func (s *StatsService) Today(userID string) (*models.DailyStat, error) {
	var stat models.DailyStat
	err := s.db.Where("user_id = ? AND date_key = ?", userID, s.TodayKey()).First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.DailyStat{UserID: userID, DateKey: s.TodayKey()}, nil
	}
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

// Recent returns up to `days` most recent rows, newest first.
func (s *StatsService) Recent(userID string, days int) ([]models.DailyStat, error) {
	var rows []models.DailyStat
	err := s.db.
		Where("user_id = ?", userID).
		Order("date_key DESC").
		Limit(days).
		Find(&rows).Error
	return rows, err
}

// StatsSummary is the read-only aggregate the get_summary tool returns.
type StatsSummary struct {
	RangeDays    int     `json:"range_days"`
	DaysWithData int     `json:"days_with_data"`
	AvgSteps     float64 `json:"avg_steps"`
	AvgSleep     float64 `json:"avg_sleep_hours"`
	LatestWeight float64 `json:"latest_weight_kg,omitempty"`

	Labels []string  `json:"labels"`
	Steps  []int     `json:"steps"`
	Sleep  []float64 `json:"sleep"`
}

// Summary aggregates the last rangeDays of stats, chronological series
// included. Read-only.
func (s *StatsService) Summary(userID string, rangeDays int) (*StatsSummary, error) {
	rows, err := s.Recent(userID, rangeDays)
	if err != nil {
		return nil, err
	}

	out := &StatsSummary{RangeDays: rangeDays, DaysWithData: len(rows)}
	var stepsSum, sleepSum float64
	// rows are newest-first; walk backwards to build chronological series
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		out.Labels = append(out.Labels, r.DateKey)
		out.Steps = append(out.Steps, r.Steps)
		out.Sleep = append(out.Sleep, r.SleepHours)
		stepsSum += float64(r.Steps)
		sleepSum += r.SleepHours
	}
	if len(rows) > 0 {
		out.AvgSteps = stepsSum / float64(len(rows))
		out.AvgSleep = sleepSum / float64(len(rows))
		for _, r := range rows { // newest-first: first non-zero weight wins
			if r.WeightKg > 0 {
				out.LatestWeight = r.WeightKg
				break
			}
		}
	}
	return out, nil
}
