package repositories

import (
	"database/sql"
	"sync"
	"time"

	"github.com/vmaerten/github-stats/internal/models"
)

type ActivitySnapshotRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewActivitySnapshotRepository(db *sql.DB) *ActivitySnapshotRepository {
	return &ActivitySnapshotRepository{db: db}
}

// Create stores a new activity snapshot
func (r *ActivitySnapshotRepository) Create(snapshot *models.ActivitySnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO activity_snapshots (
			id, repository, window_start, window_end, payload, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		snapshot.ID, snapshot.Repository, snapshot.WindowStart, snapshot.WindowEnd,
		snapshot.Payload, snapshot.FetchedAt,
	)

	return err
}

// GetLatest retrieves the freshest snapshot for a repository and window
// fetched at or after the cutoff, or nil when none exists.
func (r *ActivitySnapshotRepository) GetLatest(repository string, windowStart, windowEnd, fetchedAfter time.Time) (*models.ActivitySnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, repository, window_start, window_end, payload, fetched_at
		FROM activity_snapshots
		WHERE repository = ? AND window_start = ? AND window_end = ? AND fetched_at >= ?
		ORDER BY fetched_at DESC
		LIMIT 1
	`

	var snapshot models.ActivitySnapshot
	err := r.db.QueryRow(query, repository, windowStart, windowEnd, fetchedAfter).Scan(
		&snapshot.ID, &snapshot.Repository, &snapshot.WindowStart, &snapshot.WindowEnd,
		&snapshot.Payload, &snapshot.FetchedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// DeleteOlderThan prunes snapshots fetched before the cutoff
func (r *ActivitySnapshotRepository) DeleteOlderThan(cutoff time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`DELETE FROM activity_snapshots WHERE fetched_at < ?`, cutoff)
	return err
}
