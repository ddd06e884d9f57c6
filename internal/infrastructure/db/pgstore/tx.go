package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dkotelnikov/eventory/internal/domain"
)

const getRequestSQL = `
SELECT id, event_id, requester_id, created, status
FROM requests
WHERE id = $1
`

const eventColumns = `
id, initiator_id, category_id, title, annotation, description,
lat, lon, event_date, published_date, created_date,
paid, participant_limit, request_moderation, state`

type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) Event(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := scanEvent(t.tx.QueryRow(ctx,
		`SELECT`+eventColumns+` FROM events WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("event not found",
			fmt.Sprintf("no event with id=%d", id))
	}
	return e, err
}

func (t *pgTx) OwnedEvent(ctx context.Context, eventID, initiatorID int64) (*domain.Event, error) {
	return queryOwnedEvent(ctx, t.tx, eventID, initiatorID)
}

func (t *pgTx) ConfirmedCount(ctx context.Context, eventID int64) (int, error) {
	var n int
	err := t.tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM requests WHERE event_id = $1 AND status = 'CONFIRMED'`,
		eventID).Scan(&n)
	return n, err
}

func (t *pgTx) HasLiveRequest(ctx context.Context, eventID, requesterID int64) (bool, error) {
	var live bool
	err := t.tx.QueryRow(ctx, `
SELECT EXISTS (
  SELECT 1 FROM requests
  WHERE event_id = $1 AND requester_id = $2 AND status <> 'CANCELED'
)`, eventID, requesterID).Scan(&live)
	return live, err
}

func (t *pgTx) InsertRequest(ctx context.Context, r *domain.Request) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `
INSERT INTO requests (event_id, requester_id, created, status)
VALUES ($1, $2, $3, $4)
RETURNING id
`, r.EventID, r.RequesterID, r.Created, string(r.Status)).Scan(&id)
	return id, err
}

func (t *pgTx) RequestsByIDs(ctx context.Context, eventID int64, ids []int64) ([]*domain.Request, error) {
	// unnest with ordinality keeps the caller-supplied order; unresolved ids
	// simply produce no row
	rows, err := t.tx.Query(ctx, `
SELECT r.id, r.event_id, r.requester_id, r.created, r.status
FROM unnest($2::bigint[]) WITH ORDINALITY AS want(id, ord)
JOIN requests r ON r.id = want.id
WHERE r.event_id = $1
ORDER BY want.ord
`, eventID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (t *pgTx) SaveRequestStatus(ctx context.Context, requestID int64, status domain.RequestStatus) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE requests SET status = $2 WHERE id = $1`, requestID, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("request not found",
			fmt.Sprintf("no request with id=%d", requestID))
	}
	return nil
}

func queryOwnedEvent(ctx context.Context, q queryer, eventID, initiatorID int64) (*domain.Event, error) {
	e, err := scanEvent(q.QueryRow(ctx,
		`SELECT`+eventColumns+` FROM events WHERE id = $1 AND initiator_id = $2`,
		eventID, initiatorID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("event not found",
			fmt.Sprintf("no event with id=%d for initiator %d", eventID, initiatorID))
	}
	return e, err
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
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
	return &e, nil
}

func scanRequest(row pgx.Row) (*domain.Request, error) {
	var r domain.Request
	var status string
	err := row.Scan(&r.ID, &r.EventID, &r.RequesterID, &r.Created, &status)
	if err != nil {
		return nil, err
	}
	r.Status = domain.RequestStatus(status)
	return &r, nil
}

func collectRequests(rows pgx.Rows) ([]*domain.Request, error) {
	var out []*domain.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
