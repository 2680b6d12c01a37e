// Package audit keeps an append-only Postgres history of processed push
// events. Recording is best-effort: failures are logged, never surfaced
// to the relay, so the relay's two side effects stay exactly two.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tagwatch/tagwatch/internal/models"
)

// Entry is one row of the push history.
type Entry struct {
	ID              string    `json:"id"`
	Repository      string    `json:"repository"`
	ImageTag        string    `json:"imageTag"`
	RecordTimestamp string    `json:"recordTimestamp"`
	Outcome         string    `json:"outcome"`
	ReceivedAt      time.Time `json:"receivedAt"`
}

// Recorder appends processed pushes to the audit table.
type Recorder struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewRecorder connects to Postgres and verifies the connection.
func NewRecorder(ctx context.Context, connString string, logger *slog.Logger) (*Recorder, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{pool: pool, logger: logger}, nil
}

// Record appends one entry. Errors are logged and swallowed.
func (r *Recorder) Record(ctx context.Context, rec *models.ImageRecord, outcome string) {
	query := `
		INSERT INTO push_audit (id, repository, image_tag, record_timestamp, outcome, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		uuid.New().String(), rec.Repository, rec.ImageTag, rec.Timestamp, outcome, time.Now().UTC(),
	)
	if err != nil {
		r.logger.WarnContext(ctx, "audit record failed",
			slog.String("image_tag", rec.ImageTag),
			slog.String("error", err.Error()),
		)
	}
}

// Recent returns the most recent entries, newest first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, repository, image_tag, record_timestamp, outcome, received_at
		FROM push_audit
		ORDER BY received_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.Repository, &e.ImageTag, &e.RecordTimestamp, &e.Outcome, &e.ReceivedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Close releases the connection pool.
func (r *Recorder) Close() {
	r.pool.Close()
}
