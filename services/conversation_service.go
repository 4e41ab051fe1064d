package services

import (
	"errors"
	"fmt"

	"github.com/Talhaahmd/OptimizedTrainerAI/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConversationService is the append/read adapter over the conversation
// store. Messages are append-only and ordered by creation.
type ConversationService struct {
	db *gorm.DB
}

func NewConversationService(db *gorm.DB) *ConversationService {
	return &ConversationService{db: db}
}

func (s *ConversationService) Create(userID, title string) (*models.Conversation, error) {
	if title == "" {
		title = "New Conversation"
	}
	conv := &models.Conversation{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  title,
	}
	if err := s.db.Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

// Resolve returns the conversation for the turn: the owned existing one when
// an id is supplied, a fresh one otherwise. A foreign or unknown id is a
// validation failure, caught before any side effect.
func (s *ConversationService) Resolve(userID, conversationID string) (*models.Conversation, error) {
	if conversationID == "" {
		return s.Create(userID, "")
	}
	var conv models.Conversation
	err := s.db.Where("id = ? AND user_id = ?", conversationID, userID).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: unknown conversation", ErrValidation)
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *ConversationService) Append(conversationID, userID, role, content, structuredJSON string) error {
	msg := &models.ConversationMessage{
		ConversationID: conversationID,
		UserID:         userID,
		Role:           role,
		Content:        content,
		StructuredJSON: structuredJSON,
	}
	return s.db.Create(msg).Error
}

// History returns all messages oldest-first.
func (s *ConversationService) History(conversationID string) ([]models.ConversationMessage, error) {
	var msgs []models.ConversationMessage
	err := s.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	return msgs, err
}
