package models

import (
    "gorm.io/gorm"
)

// AIAuditLog records the outbound request and inbound response of every AI
// invocation. Append-only; the core only ever writes it.
type AIAuditLog struct {
    gorm.Model
    UserID       string `gorm:"index;not null" json:"user_id"`
    EventType    string `gorm:"not null" json:"event_type"` // e.g. "meal_draft", "chat_turn"
    RequestJSON  string `json:"request_json"`
    ResponseJSON string `json:"response_json"`
}
