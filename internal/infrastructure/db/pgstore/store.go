// Package pgstore backs the admission flow with pgx transactions. The event
// row lock taken at the top of every unit of work is the per-event critical
// section: two workers deciding seats for the same event queue up on it,
// workers on different events do not.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkotelnikov/eventory/internal/application/admission"
	"github.com/dkotelnikov/eventory/internal/domain"
)

// Lock order for a given event_id: the events row first (FOR UPDATE), request
// rows after. Every entry point takes the event lock before touching
// requests, so there is no cycle to deadlock on.

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

func (s *Store) WithEventTx(ctx context.Context, eventID int64, fn func(ctx context.Context, tx admission.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockEvent(ctx, tx, eventID); err != nil {
		return err
	}
	if err := fn(ctx, &pgTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) WithRequestTx(ctx context.Context, requestID, requesterID int64, fn func(ctx context.Context, tx admission.Tx, req *domain.Request) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var eventID int64
	err = tx.QueryRow(ctx,
		`SELECT event_id FROM requests WHERE id = $1 AND requester_id = $2`,
		requestID, requesterID).Scan(&eventID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound("request not found",
			fmt.Sprintf("no request with id=%d for user %d", requestID, requesterID))
	}
	if err != nil {
		return err
	}

	if err := lockEvent(ctx, tx, eventID); err != nil {
		return err
	}

	// re-read under the event lock; the pre-lock row may be stale
	req, err := scanRequest(tx.QueryRow(ctx, getRequestSQL, requestID))
	if err != nil {
		return err
	}
	if err := fn(ctx, &pgTx{tx: tx}, req); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) ListByRequester(ctx context.Context, requesterID int64) ([]*domain.Request, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, event_id, requester_id, created, status
FROM requests
WHERE requester_id = $1
ORDER BY id ASC
`, requesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (s *Store) ListByEvent(ctx context.Context, eventID int64) ([]*domain.Request, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, event_id, requester_id, created, status
FROM requests
WHERE event_id = $1
ORDER BY id ASC
`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (s *Store) OwnedEvent(ctx context.Context, eventID, initiatorID int64) (*domain.Event, error) {
	return queryOwnedEvent(ctx, s.pool, eventID, initiatorID)
}

func lockEvent(ctx context.Context, tx pgx.Tx, eventID int64) error {
	var id int64
	err := tx.QueryRow(ctx,
		`SELECT id FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound("event not found",
			fmt.Sprintf("no event with id=%d", eventID))
	}
	return err
}
