package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dkotelnikov/eventory/internal/domain"
	"github.com/dkotelnikov/eventory/internal/stats/statdto"
)

type memHitRepo struct {
	hits       []statdto.EndpointHit
	uniqueRows []statdto.ViewStats
	allRows    []statdto.ViewStats
}

func (m *memHitRepo) SaveHit(ctx context.Context, hit statdto.EndpointHit) error {
	m.hits = append(m.hits, hit)
	return nil
}

func (m *memHitRepo) Stats(ctx context.Context, start, end time.Time, uris []string) ([]statdto.ViewStats, error) {
	return m.allRows, nil
}

func (m *memHitRepo) UniqueStats(ctx context.Context, start, end time.Time, uris []string) ([]statdto.ViewStats, error) {
	return m.uniqueRows, nil
}

func TestService_ViewStats(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	repo := &memHitRepo{
		allRows:    []statdto.ViewStats{{App: "eventory", URI: "/events/1", Hits: 7}},
		uniqueRows: []statdto.ViewStats{{App: "eventory", URI: "/events/1", Hits: 3}},
	}
	svc := NewService(repo)

	t.Run("all_hits", func(t *testing.T) {
		out, err := svc.ViewStats(ctx, start, end, []string{"/events/1"}, false)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), out[0].Hits)
	})

	t.Run("unique_hits", func(t *testing.T) {
		out, err := svc.ViewStats(ctx, start, end, []string{"/events/1"}, true)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), out[0].Hits)
	})

	t.Run("inverted_window_rejected", func(t *testing.T) {
		_, err := svc.ViewStats(ctx, end, start, nil, false)
		assert.True(t, domain.IsKind(err, domain.KindIncorrectParameters))
	})

	t.Run("empty_window_rejected", func(t *testing.T) {
		_, err := svc.ViewStats(ctx, start, start, nil, false)
		assert.True(t, domain.IsKind(err, domain.KindIncorrectParameters))
	})
}

func TestService_SaveHit(t *testing.T) {
	repo := &memHitRepo{}
	svc := NewService(repo)

	hit := statdto.EndpointHit{App: "eventory", URI: "/events/1", IP: "10.0.0.1"}
	assert.NoError(t, svc.SaveHit(context.Background(), hit))
	assert.Len(t, repo.hits, 1)
	assert.Equal(t, "/events/1", repo.hits[0].URI)
}
