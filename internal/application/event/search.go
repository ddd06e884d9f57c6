package event

import (
	"context"
	"sort"

	"github.com/dkotelnikov/eventory/internal/domain"
)

const searchURI = "/events"

// SearchAdmin composes the optional admin filter clauses. Admins see events
// in any state.
func (s *Service) SearchAdmin(ctx context.Context, f AdminFilter) ([]*WithStats, error) {
	normalizePage(&f.From, &f.Size)

	events, err := s.repo.SearchAdmin(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, events, false)
}

// SearchPublic searches published events only, recording a hit for the search
// page and enriching the results with confirmed-request and view counts.
func (s *Service) SearchPublic(ctx context.Context, f PublicFilter, viewerIP string) ([]*WithStats, error) {
	if f.Start != nil && f.End != nil && f.End.Before(*f.Start) {
		return nil, domain.ErrIncorrectParameters("invalid search window",
			"end date must not be before start date")
	}
	normalizePage(&f.From, &f.Size)

	s.stats.RecordView(ctx, searchURI, viewerIP)

	// default window: [now, +inf) with strict greater-than on the lower bound
	now := s.clock.Now().UTC()
	w := PublicWindow{AfterDate: now}
	if f.Start != nil {
		w.AfterDate = f.Start.UTC()
	}
	if f.End != nil {
		end := f.End.UTC()
		w.BeforeDate = &end
	} else if w.AfterDate.Before(now) {
		// an open-ended search never surfaces past events, even when the
		// caller's start lies in the past
		w.AfterDate = now
	}

	events, err := s.repo.SearchPublic(ctx, f, w)
	if err != nil {
		return nil, err
	}
	out, err := s.enrichWithViews(ctx, events)
	if err != nil {
		return nil, err
	}
	// view ordering only exists after enrichment, so it is applied here
	if f.Sort == "VIEWS" {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	}
	return out, nil
}

// normalizePage maps the from/size offset pair onto a page window using floor
// division, matching the rest of the API's paging contract.
func normalizePage(from, size *int) {
	if *size <= 0 {
		*size = 10
	}
	if *from < 0 {
		*from = 0
	}
	*from = (*from / *size) * *size
}
