package services

import (
	"encoding/json"
	"log"

	"github.com/Talhaahmd/OptimizedTrainerAI/models"

	"gorm.io/gorm"
)

// AuditService appends one AIAuditLog row per AI invocation. Write-only from
// the core's perspective; a failed audit write never fails the operation it
// describes.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

func (s *AuditService) Record(userID, eventType string, request, response interface{}) {
	entry := &models.AIAuditLog{
		UserID:    userID,
		EventType: eventType,
	}
	if b, err := json.Marshal(request); err == nil {
		entry.RequestJSON = string(b)
	}
	if b, err := json.Marshal(response); err == nil {
		entry.ResponseJSON = string(b)
	}
	if err := s.db.Create(entry).Error; err != nil {
		log.Printf("audit write failed for %s/%s: %v", userID, eventType, err)
	}
}
