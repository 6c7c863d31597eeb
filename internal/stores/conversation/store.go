// Package conversation persists agent conversation history
package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultRuns is the number of recent user turns replayed to an agent
const DefaultRuns = 3

// ErrNotFound is returned when a conversation does not exist
var ErrNotFound = errors.New("conversation not found")

// Conversation groups the items exchanged with one external party
type Conversation struct {
	ID         uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	CreatedAt  time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt  time.Time      `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
	ExternalID string         `json:"external_id" gorm:"size:255;uniqueIndex;not null"`
}

// TableName sets the table name for GORM
func (Conversation) TableName() string {
	return "conversations"
}

// Store opens and removes conversations
type Store interface {
	// Open returns the conversation for externalID, creating it on first use
	Open(ctx context.Context, externalID string) (*Session, error)
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
