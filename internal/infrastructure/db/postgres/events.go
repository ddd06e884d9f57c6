// Package postgres is the database/sql side of persistence: event reads and
// writes, search, and the catalog tables. The admission critical section
// lives in the pgstore package.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/dkotelnikov/eventory/internal/domain"
)

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, e *domain.Event) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, insertEventSQL,
		e.InitiatorID, e.CategoryID, e.Title, e.Annotation, e.Description,
		e.Location.Lat, e.Location.Lon, e.EventDate, e.PublishedDate, e.CreatedDate,
		e.Paid, e.ParticipantLimit, e.RequestModeration, string(e.State),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, getEventSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("event not found",
			fmt.Sprintf("no event with id=%d", id))
	}
	return e, err
}

func (r *Repo) GetByIDAndInitiator(ctx context.Context, id, initiatorID int64) (*domain.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, getOwnedEventSQL, id, initiatorID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("event not found",
			fmt.Sprintf("no event with id=%d for initiator %d", id, initiatorID))
	}
	return e, err
}

func (r *Repo) Update(ctx context.Context, e *domain.Event) error {
	res, err := r.db.ExecContext(ctx, updateEventSQL,
		e.ID,
		e.CategoryID, e.Title, e.Annotation, e.Description,
		e.Location.Lat, e.Location.Lon, e.EventDate, e.PublishedDate,
		e.Paid, e.ParticipantLimit, e.RequestModeration, string(e.State),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("event not found",
			fmt.Sprintf("no event with id=%d", e.ID))
	}
	return nil
}

func (r *Repo) ListByInitiator(ctx context.Context, initiatorID int64, from, size int) ([]*domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, listByInitiatorSQL, initiatorID, size, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *Repo) ConfirmedCounts(ctx context.Context, eventIDs []int64) (map[int64]int, error) {
	out := make(map[int64]int, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx, confirmedCountsSQL, pq.Array(eventIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	var state string
	err := row.Scan(
		&e.ID, &e.InitiatorID, &e.CategoryID, &e.Title, &e.Annotation, &e.Description,
		&e.Location.Lat, &e.Location.Lon, &e.EventDate, &e.PublishedDate, &e.CreatedDate,
		&e.Paid, &e.ParticipantLimit, &e.RequestModeration, &state,
	)
	if err != nil {
		return nil, err
	}
	e.State = domain.EventState(state)
	if !e.State.Valid() {
		return nil, fmt.Errorf("event %d: invalid state %q in db", e.ID, state)
	}
	return &e, nil
}

func collectEvents(rows *sql.Rows) ([]*domain.Event, error) {
	var out []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
