package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ActivitySnapshot is a cached copy of the normalized fetch result for one
// repository and window. Only raw inputs are cached, never computed
// statistics, so aggregation policy changes take effect on the next run.
type ActivitySnapshot struct {
	ID          string    `json:"id" db:"id"`
	Repository  string    `json:"repository" db:"repository"`
	WindowStart time.Time `json:"window_start" db:"window_start"`
	WindowEnd   time.Time `json:"window_end" db:"window_end"`
	Payload     string    `json:"payload" db:"payload"` // JSON-encoded RepositoryActivity
	FetchedAt   time.Time `json:"fetched_at" db:"fetched_at"`
}

// NewActivitySnapshot creates a new ActivitySnapshot with a generated UUID
func NewActivitySnapshot(repository string, windowStart, windowEnd time.Time, payload string) *ActivitySnapshot {
	return &ActivitySnapshot{
		ID:          uuid.New().String(),
		Repository:  repository,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Payload:     payload,
		FetchedAt:   time.Now(),
	}
}

// Validate validates the ActivitySnapshot fields
func (s *ActivitySnapshot) Validate() error {
	if s.Repository == "" {
		return errors.New("repository is required")
	}
	if s.WindowStart.IsZero() || s.WindowEnd.IsZero() {
		return errors.New("window bounds are required")
	}
	if s.WindowEnd.Before(s.WindowStart) {
		return errors.New("window end cannot precede window start")
	}
	if s.Payload == "" {
		return errors.New("payload is required")
	}
	return nil
}
