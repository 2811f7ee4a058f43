// Package errlog persists failure records to the error log sink.
// Reporting is an explicit call at each catch site, and is best-effort: a
// failed log write must never mask the error being reported.
package errlog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pricebook_backend/platform/logger"
)

// StatusOpen is the initial status of every persisted failure record.
const StatusOpen = "Open"

// Record is one persisted failure.
type Record struct {
	Message    string
	ActionName string
	Status     string
}

// Store persists failure records.
type Store interface {
	Insert(ctx context.Context, record Record) error
}

// PGStore writes failure records to the error_logs table.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a Postgres-backed error log store.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// Compile-time check that PGStore implements Store.
var _ Store = (*PGStore)(nil)

// Insert writes one failure record.
func (s *PGStore) Insert(ctx context.Context, record Record) error {
	query := `INSERT INTO error_logs (message, action_name, status) VALUES ($1, $2, $3)`
	if _, err := s.pool.Exec(ctx, query, record.Message, record.ActionName, record.Status); err != nil {
		return fmt.Errorf("insert error log: %w", err)
	}
	return nil
}

// Reporter wraps failures into records and persists them best-effort.
type Reporter struct {
	store Store
	log   *logger.Logger
}

// NewReporter creates a reporter over the given store.
func NewReporter(store Store, log *logger.Logger) *Reporter {
	return &Reporter{store: store, log: log}
}

// Report persists a failure record with status Open. Its own write failure is
// logged at warn level and swallowed so it never propagates to the caller of
// the primary operation.
func (r *Reporter) Report(ctx context.Context, message, actionName string) {
	record := Record{
		Message:    message,
		ActionName: actionName,
		Status:     StatusOpen,
	}
	if err := r.store.Insert(ctx, record); err != nil {
		r.log.Warn("error log write failed", "action", actionName, "error", err)
	}
}
