package handlers

import (
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dkotelnikov/eventory/internal/domain"
)

func TestQueryInt64List(t *testing.T) {
	t.Run("csv_and_repeated_params_mix", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/?ids=1,2&ids=3", nil)
		ids, err := queryInt64List(req, "ids")
		assert.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3}, ids)
	})

	t.Run("absent_param_is_nil", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		ids, err := queryInt64List(req, "ids")
		assert.NoError(t, err)
		assert.Nil(t, ids)
	})

	t.Run("non_integer_rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/?ids=1,x", nil)
		_, err := queryInt64List(req, "ids")
		assert.True(t, domain.IsKind(err, domain.KindIncorrectParameters))
	})
}

func TestQueryBool(t *testing.T) {
	t.Run("absent_is_nil", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		b, err := queryBool(req, "paid")
		assert.NoError(t, err)
		assert.Nil(t, b)
	})

	t.Run("true_parses", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/?paid=true", nil)
		b, err := queryBool(req, "paid")
		assert.NoError(t, err)
		if assert.NotNil(t, b) {
			assert.True(t, *b)
		}
	})

	t.Run("garbage_rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/?paid=maybe", nil)
		_, err := queryBool(req, "paid")
		assert.True(t, domain.IsKind(err, domain.KindIncorrectParameters))
	})
}

func TestRangeWindow(t *testing.T) {
	t.Run("both_bounds", func(t *testing.T) {
		q := url.Values{}
		q.Set("rangeStart", "2026-03-01 00:00:00")
		q.Set("rangeEnd", "2026-04-01 00:00:00")
		req := httptest.NewRequest("GET", "/?"+q.Encode(), nil)

		start, end, err := rangeWindow(req)
		assert.NoError(t, err)
		if assert.NotNil(t, start) {
			assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), *start)
		}
		if assert.NotNil(t, end) {
			assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local), *end)
		}
	})

	t.Run("absent_bounds_are_nil", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		start, end, err := rangeWindow(req)
		assert.NoError(t, err)
		assert.Nil(t, start)
		assert.Nil(t, end)
	})

	t.Run("bad_layout_rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/?rangeStart=2026-03-01T00:00:00Z", nil)
		_, _, err := rangeWindow(req)
		assert.True(t, domain.IsKind(err, domain.KindIncorrectParameters))
	})
}
