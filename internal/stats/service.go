// Package stats implements the view-statistics collaborator: it records
// endpoint hits and answers aggregated view-count queries.
package stats

import (
	"context"
	"time"

	"github.com/dkotelnikov/eventory/internal/domain"
	"github.com/dkotelnikov/eventory/internal/stats/statdto"
)

type HitRepo interface {
	SaveHit(ctx context.Context, hit statdto.EndpointHit) error
	Stats(ctx context.Context, start, end time.Time, uris []string) ([]statdto.ViewStats, error)
	UniqueStats(ctx context.Context, start, end time.Time, uris []string) ([]statdto.ViewStats, error)
}

type Service struct {
	repo HitRepo
}

func NewService(repo HitRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) SaveHit(ctx context.Context, hit statdto.EndpointHit) error {
	return s.repo.SaveHit(ctx, hit)
}

// ViewStats returns hit counts per URI over [start, end]. A start at or past
// the end is a caller error.
func (s *Service) ViewStats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]statdto.ViewStats, error) {
	if !start.Before(end) {
		return nil, domain.ErrIncorrectParameters("invalid stats query",
			"start must be before end")
	}
	if unique {
		return s.repo.UniqueStats(ctx, start, end, uris)
	}
	return s.repo.Stats(ctx, start, end, uris)
}
