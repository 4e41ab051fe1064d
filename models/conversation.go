package models

import (
    "time"

    "gorm.io/gorm"
)

// Message roles.
const (
    RoleUser      = "user"
    RoleAssistant = "assistant"
)

type Conversation struct {
    ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
    UserID    string    `gorm:"index;not null" json:"user_id"`
    Title     string    `json:"title"`
    CreatedAt time.Time `json:"created_at"`
}

// ConversationMessage is append-only; creation order is the only ordering
// guarantee the store makes.
type ConversationMessage struct {
    gorm.Model
    ConversationID string `gorm:"index;not null" json:"conversation_id"`
    UserID         string `gorm:"index;not null" json:"user_id"`
    Role           string `gorm:"not null" json:"role"`
    Content        string `json:"content"`
    StructuredJSON string `json:"structured_json,omitempty"` // tool outcomes for assistant rows
}
