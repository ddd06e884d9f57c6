package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/dkotelnikov/eventory/internal/stats/statdto"
)

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo { return &Repo{db: db} }

const insertHitSQL = `
INSERT INTO hits (app, uri, ip, created_at)
VALUES ($1, $2, $3, $4)
`

func (r *Repo) SaveHit(ctx context.Context, hit statdto.EndpointHit) error {
	_, err := r.db.ExecContext(ctx, insertHitSQL, hit.App, hit.URI, hit.IP, hit.Timestamp.Time())
	return err
}

const statsSQL = `
SELECT app, uri, COUNT(ip) AS hits
FROM hits
WHERE created_at BETWEEN $1 AND $2
  AND (cardinality($3::text[]) = 0 OR uri = ANY($3))
GROUP BY app, uri
ORDER BY hits DESC
`

const uniqueStatsSQL = `
SELECT app, uri, COUNT(DISTINCT ip) AS hits
FROM hits
WHERE created_at BETWEEN $1 AND $2
  AND (cardinality($3::text[]) = 0 OR uri = ANY($3))
GROUP BY app, uri
ORDER BY hits DESC
`

func (r *Repo) Stats(ctx context.Context, start, end time.Time, uris []string) ([]statdto.ViewStats, error) {
	return r.queryStats(ctx, statsSQL, start, end, uris)
}

func (r *Repo) UniqueStats(ctx context.Context, start, end time.Time, uris []string) ([]statdto.ViewStats, error) {
	return r.queryStats(ctx, uniqueStatsSQL, start, end, uris)
}

func (r *Repo) queryStats(ctx context.Context, query string, start, end time.Time, uris []string) ([]statdto.ViewStats, error) {
	if uris == nil {
		uris = []string{}
	}
	rows, err := r.db.QueryContext(ctx, query, start, end, pq.Array(uris))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []statdto.ViewStats
	for rows.Next() {
		var vs statdto.ViewStats
		if err := rows.Scan(&vs.App, &vs.URI, &vs.Hits); err != nil {
			return nil, err
		}
		out = append(out, vs)
	}
	return out, rows.Err()
}
