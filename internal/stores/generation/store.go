// Package generation records every spec-to-repository run
package generation

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no run has the requested ID
var ErrNotFound = errors.New("run not found")

// DefaultListLimit bounds List when the caller passes no limit
const DefaultListLimit = 50

// Store persists runs
type Store interface {
	Create(ctx context.Context, run *Run) error
	Update(ctx context.Context, run *Run) error
	Get(ctx context.Context, id uuid.UUID) (*Run, error)
	List(ctx context.Context, limit int) ([]*Run, error)
	ListByStatus(ctx context.Context, status Status) ([]*Run, error)
}
