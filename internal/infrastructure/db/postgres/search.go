package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/dkotelnikov/eventory/internal/application/event"
	"github.com/dkotelnikov/eventory/internal/domain"
)

func (r *Repo) SearchAdmin(ctx context.Context, f event.AdminFilter) ([]*domain.Event, error) {
	where := []string{}
	args := []any{}
	argN := 1

	add := func(condFmt string, val any) {
		where = append(where, fmt.Sprintf(condFmt, argN))
		args = append(args, val)
		argN++
	}

	if len(f.Users) > 0 {
		add("initiator_id = ANY($%d)", pq.Array(f.Users))
	}
	if len(f.States) > 0 {
		states := make([]string, 0, len(f.States))
		for _, s := range f.States {
			states = append(states, string(s))
		}
		add("state = ANY($%d)", pq.Array(states))
	}
	if len(f.Categories) > 0 {
		add("category_id = ANY($%d)", pq.Array(f.Categories))
	}
	if f.Start != nil {
		add("event_date >= $%d", *f.Start)
	}
	if f.End != nil {
		add("event_date <= $%d", *f.End)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	listSQL := `
SELECT` + eventColumns + `
FROM events
` + whereSQL + `
ORDER BY id ASC
LIMIT $` + fmt.Sprintf("%d", argN) + ` OFFSET $` + fmt.Sprintf("%d", argN+1)
	args = append(args, f.Size, f.From)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *Repo) SearchPublic(ctx context.Context, f event.PublicFilter, w event.PublicWindow) ([]*domain.Event, error) {
	where := []string{"state = 'PUBLISHED'"}
	args := []any{}
	argN := 1

	add := func(condFmt string, val any) {
		where = append(where, fmt.Sprintf(condFmt, argN))
		args = append(args, val)
		argN++
	}

	if text := strings.TrimSpace(f.Text); text != "" {
		where = append(where, fmt.Sprintf("(annotation ILIKE $%d OR description ILIKE $%d)", argN, argN))
		args = append(args, "%"+text+"%")
		argN++
	}
	if len(f.Categories) > 0 {
		add("category_id = ANY($%d)", pq.Array(f.Categories))
	}
	if f.Paid != nil {
		add("paid = $%d", *f.Paid)
	}

	// window bounds are strict on both sides
	add("event_date > $%d", w.AfterDate)
	if w.BeforeDate != nil {
		add("event_date < $%d", *w.BeforeDate)
	}

	if f.OnlyAvailable {
		// the clause filters nothing; it is kept literally as the legacy
		// contract has it
		where = append(where, "participant_limit >= 0")
	}

	whereSQL := "WHERE " + strings.Join(where, " AND ")

	orderBy := "id ASC"
	if f.Sort == "EVENT_DATE" {
		orderBy = "event_date ASC, id ASC"
	}

	listSQL := `
SELECT` + eventColumns + `
FROM events
` + whereSQL + `
ORDER BY ` + orderBy + `
LIMIT $` + fmt.Sprintf("%d", argN) + ` OFFSET $` + fmt.Sprintf("%d", argN+1)
	args = append(args, f.Size, f.From)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}
