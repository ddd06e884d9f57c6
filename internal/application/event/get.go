package event

import (
	"context"
	"fmt"

	"github.com/dkotelnikov/eventory/internal/domain"
)

// GetPublic returns a published event enriched with counts, recording the
// page view. Unpublished events are invisible to the public surface.
func (s *Service) GetPublic(ctx context.Context, eventID int64, viewerIP string) (*WithStats, error) {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.State != domain.StatePublished {
		return nil, domain.ErrNotFound("event not published",
			fmt.Sprintf("event with id=%d is not published", eventID))
	}

	s.stats.RecordView(ctx, eventURI(ev.ID), viewerIP)

	enriched, err := s.enrich(ctx, []*domain.Event{ev}, true)
	if err != nil {
		return nil, err
	}
	return enriched[0], nil
}

// GetByOwner returns the initiator's own event regardless of state.
func (s *Service) GetByOwner(ctx context.Context, userID, eventID int64) (*WithStats, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	ev, err := s.repo.GetByIDAndInitiator(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, ev)
}

func (s *Service) ListByOwner(ctx context.Context, userID int64, from, size int) ([]*WithStats, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	events, err := s.repo.ListByInitiator(ctx, userID, from, size)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, events, false)
}

func (s *Service) withCounts(ctx context.Context, ev *domain.Event) (*WithStats, error) {
	enriched, err := s.enrich(ctx, []*domain.Event{ev}, false)
	if err != nil {
		return nil, err
	}
	return enriched[0], nil
}
