package event

import (
	"context"
	"strconv"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/dkotelnikov/eventory/internal/domain"
)

// enrich attaches confirmed-request counts (one batched query) and,
// optionally, view counts to a page of events.
func (s *Service) enrich(ctx context.Context, events []*domain.Event, withViews bool) ([]*WithStats, error) {
	ids := make([]int64, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}

	counts := map[int64]int{}
	if len(ids) > 0 {
		var err error
		counts, err = s.repo.ConfirmedCounts(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	views := map[int64]int64{}
	if withViews && len(events) > 0 {
		var err error
		views, err = s.viewCounts(ctx, events)
		if err != nil {
			return nil, err
		}
	}

	out := make([]*WithStats, 0, len(events))
	for _, ev := range events {
		out = append(out, &WithStats{
			Event:             ev,
			ConfirmedRequests: counts[ev.ID],
			Views:             views[ev.ID],
		})
	}
	return out, nil
}

func (s *Service) enrichWithViews(ctx context.Context, events []*domain.Event) ([]*WithStats, error) {
	return s.enrich(ctx, events, true)
}

// viewCounts resolves per-event view counts, consulting the short-TTL cache
// first and falling back to the stats gateway for the rest. Gateway
// infrastructure failures degrade to zero counts; a caller-shape rejection
// surfaces.
func (s *Service) viewCounts(ctx context.Context, events []*domain.Event) (map[int64]int64, error) {
	out := make(map[int64]int64, len(events))
	var missing []*domain.Event

	for _, ev := range events {
		if s.cache != nil {
			var cached int64
			ok, err := s.cache.Get(ctx, viewsCacheKey(ev.ID), &cached)
			if err == nil && ok {
				out[ev.ID] = cached
				continue
			}
		}
		missing = append(missing, ev)
	}
	if len(missing) == 0 {
		return out, nil
	}

	uris := make([]string, 0, len(missing))
	since := missing[0].CreatedDate
	for _, ev := range missing {
		uris = append(uris, eventURI(ev.ID))
		if ev.CreatedDate.Before(since) {
			since = ev.CreatedDate
		}
	}

	hits, err := s.stats.ViewCounts(ctx, uris, since, s.clock.Now(), true)
	if err != nil {
		if domain.IsKind(err, domain.KindIncorrectParameters) {
			return nil, err
		}
		zlog.Warn().Err(err).Msg("view stats unavailable, substituting zero counts")
		hits = map[string]int64{}
	}

	byID := make(map[int64]int64, len(hits))
	for uri, n := range hits {
		if id, ok := EventIDFromURI(uri); ok {
			byID[id] = n
		}
	}

	for _, ev := range missing {
		n := byID[ev.ID]
		out[ev.ID] = n
		if s.cache != nil {
			if err := s.cache.Set(ctx, viewsCacheKey(ev.ID), n, s.ttlViews); err != nil {
				zlog.Warn().Err(err).Int64("event_id", ev.ID).Msg("views cache set failed")
			}
		}
	}
	return out, nil
}

func viewsCacheKey(eventID int64) string {
	return "views:event:" + strconv.FormatInt(eventID, 10)
}

// EventIDFromURI is the inverse of the per-event resource key, used when
// folding gateway rows back onto events.
func EventIDFromURI(uri string) (int64, bool) {
	const prefix = "/events/"
	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
