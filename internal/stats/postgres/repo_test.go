package postgres

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/dkotelnikov/eventory/internal/stats/statdto"
)

func TestRepo_SaveHit(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	defer db.Close()

	ts := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	mock.ExpectExec(`INSERT INTO hits`).
		WithArgs("eventory", "/events/1", "10.0.0.1", ts).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = New(db).SaveHit(context.Background(), statdto.EndpointHit{
		App: "eventory", URI: "/events/1", IP: "10.0.0.1", Timestamp: statdto.WireTime(ts),
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Stats(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("plain_counts", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT app, uri, COUNT\(ip\) AS hits`).
			WithArgs(start, end, pq.Array([]string{"/events/1"})).
			WillReturnRows(sqlmock.NewRows([]string{"app", "uri", "hits"}).
				AddRow("eventory", "/events/1", 7))

		out, err := New(db).Stats(context.Background(), start, end, []string{"/events/1"})
		assert.NoError(t, err)
		assert.Equal(t, []statdto.ViewStats{{App: "eventory", URI: "/events/1", Hits: 7}}, out)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique_counts_use_distinct_ip", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`COUNT\(DISTINCT ip\)`).
			WithArgs(start, end, pq.Array([]string{})).
			WillReturnRows(sqlmock.NewRows([]string{"app", "uri", "hits"}))

		out, err := New(db).UniqueStats(context.Background(), start, end, nil)
		assert.NoError(t, err)
		assert.Nil(t, out)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
