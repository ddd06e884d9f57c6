package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkotelnikov/eventory/internal/domain"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type userSet map[int64]bool

func (u userSet) Exists(_ context.Context, id int64) (bool, error) { return u[id], nil }

type categorySet map[int64]string

func (c categorySet) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	name, ok := c[id]
	if !ok {
		return nil, domain.ErrNotFound("category not found", fmt.Sprintf("no category with id=%d", id))
	}
	return &domain.Category{ID: id, Name: name}, nil
}

type memEventRepo struct {
	mu      sync.Mutex
	events  map[int64]*domain.Event
	counts  map[int64]int
	nextID  int64
	updates int

	lastAdminFilter  *AdminFilter
	lastPublicFilter *PublicFilter
	lastWindow       *PublicWindow
	searchResult     []*domain.Event
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: map[int64]*domain.Event{}, counts: map[int64]int{}}
}

func (r *memEventRepo) put(ev *domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[ev.ID] = ev
}

func (r *memEventRepo) Create(_ context.Context, e *domain.Event) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cp := *e
	cp.ID = r.nextID
	r.events[cp.ID] = &cp
	return cp.ID, nil
}

func (r *memEventRepo) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound("event not found", fmt.Sprintf("no event with id=%d", id))
	}
	cp := *ev
	return &cp, nil
}

func (r *memEventRepo) GetByIDAndInitiator(_ context.Context, id, initiatorID int64) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok || ev.InitiatorID != initiatorID {
		return nil, domain.ErrNotFound("event not found",
			fmt.Sprintf("no event with id=%d for initiator %d", id, initiatorID))
	}
	cp := *ev
	return &cp, nil
}

func (r *memEventRepo) Update(_ context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.ID]; !ok {
		return domain.ErrNotFound("event not found", fmt.Sprintf("no event with id=%d", e.ID))
	}
	cp := *e
	r.events[e.ID] = &cp
	r.updates++
	return nil
}

func (r *memEventRepo) SearchAdmin(_ context.Context, f AdminFilter) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastAdminFilter = &f
	return r.searchResult, nil
}

func (r *memEventRepo) SearchPublic(_ context.Context, f PublicFilter, w PublicWindow) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPublicFilter = &f
	r.lastWindow = &w
	return r.searchResult, nil
}

func (r *memEventRepo) ListByInitiator(_ context.Context, initiatorID int64, from, size int) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Event
	for _, ev := range r.events {
		if ev.InitiatorID == initiatorID {
			cp := *ev
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memEventRepo) ConfirmedCounts(_ context.Context, eventIDs []int64) (map[int64]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[int64]int{}
	for _, id := range eventIDs {
		if n, ok := r.counts[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

type fakeStats struct {
	mu       sync.Mutex
	recorded []string
	hits     map[string]int64
	err      error
	calls    int
}

func (f *fakeStats) RecordView(_ context.Context, uri, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, uri)
}

func (f *fakeStats) ViewCounts(_ context.Context, uris []string, since, until time.Time, uniqueOnly bool) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]int64{}
	for _, u := range uris {
		if n, ok := f.hits[u]; ok {
			out[u] = n
		}
	}
	return out, nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string]int64
}

func newMemCache() *memCache { return &memCache{data: map[string]int64{}} }

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	if p, ok := dest.(*int64); ok {
		*p = v
	}
	return true, nil
}

func (c *memCache) Set(_ context.Context, key string, val any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n, ok := val.(int64); ok {
		c.data[key] = n
	}
	return nil
}

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo  *memEventRepo
	stats *fakeStats
	cache *memCache
	svc   *Service
}

func newFixture() *fixture {
	repo := newMemEventRepo()
	stats := &fakeStats{hits: map[string]int64{}}
	cache := newMemCache()
	svc := New(repo, categorySet{1: "concerts"}, userSet{1: true, 2: true},
		stats, fixedClock{t: testNow}, NoopPublisher{}, cache, time.Minute)
	return &fixture{repo: repo, stats: stats, cache: cache, svc: svc}
}

func pendingEvent(id, initiatorID int64) *domain.Event {
	return &domain.Event{
		ID:                id,
		InitiatorID:       initiatorID,
		CategoryID:        1,
		Title:             "evening concert",
		Annotation:        "an annotation long enough to be valid",
		Description:       "a description long enough to be valid",
		Location:          domain.Location{Lat: 55.75, Lon: 37.62},
		EventDate:         testNow.Add(72 * time.Hour),
		CreatedDate:       testNow.Add(-time.Hour),
		ParticipantLimit:  10,
		RequestModeration: true,
		State:             domain.StatePending,
	}
}

func publishedEvent(id, initiatorID int64) *domain.Event {
	ev := pendingEvent(id, initiatorID)
	ev.State = domain.StatePublished
	pub := testNow.Add(-30 * time.Minute)
	ev.PublishedDate = &pub
	return ev
}

func validCreateCmd() CreateCmd {
	return CreateCmd{
		InitiatorID:       1,
		Title:             "evening concert",
		Annotation:        "an annotation long enough to be valid",
		Description:       "a description long enough to be valid",
		CategoryID:        1,
		Location:          domain.Location{Lat: 55.75, Lon: 37.62},
		EventDate:         testNow.Add(72 * time.Hour),
		Paid:              true,
		ParticipantLimit:  10,
		RequestModeration: true,
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("pending_with_zero_counts", func(t *testing.T) {
		f := newFixture()
		got, err := f.svc.Create(ctx, validCreateCmd())
		require.NoError(t, err)
		assert.Equal(t, domain.StatePending, got.Event.State)
		assert.NotZero(t, got.Event.ID)
		assert.Zero(t, got.ConfirmedRequests)
		assert.Zero(t, got.Views)
	})

	t.Run("unknown_category", func(t *testing.T) {
		f := newFixture()
		cmd := validCreateCmd()
		cmd.CategoryID = 42
		_, err := f.svc.Create(ctx, cmd)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("date_too_close", func(t *testing.T) {
		f := newFixture()
		cmd := validCreateCmd()
		cmd.EventDate = testNow.Add(time.Hour)
		_, err := f.svc.Create(ctx, cmd)
		assert.Equal(t, domain.KindTemporal, domain.KindOf(err))
	})
}

func TestUpdateByOwner(t *testing.T) {
	ctx := context.Background()
	ptr := func(s string) *string { return &s }

	t.Run("empty_patch_skips_write", func(t *testing.T) {
		f := newFixture()
		f.repo.put(pendingEvent(10, 1))

		got, err := f.svc.UpdateByOwner(ctx, 1, 10, domain.EventPatch{})
		require.NoError(t, err)
		assert.Equal(t, domain.StatePending, got.Event.State)
		assert.Zero(t, f.repo.updates)
	})

	t.Run("field_patch_persists", func(t *testing.T) {
		f := newFixture()
		f.repo.put(pendingEvent(10, 1))

		got, err := f.svc.UpdateByOwner(ctx, 1, 10, domain.EventPatch{Title: ptr("late show")})
		require.NoError(t, err)
		assert.Equal(t, "late show", got.Event.Title)
		assert.Equal(t, 1, f.repo.updates)
	})

	t.Run("published_event_not_editable", func(t *testing.T) {
		f := newFixture()
		f.repo.put(publishedEvent(10, 1))

		_, err := f.svc.UpdateByOwner(ctx, 1, 10, domain.EventPatch{Title: ptr("late show")})
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	})

	t.Run("canceled_event_stays_canceled", func(t *testing.T) {
		f := newFixture()
		ev := pendingEvent(10, 1)
		ev.State = domain.StateCanceled
		f.repo.put(ev)

		_, err := f.svc.UpdateByOwner(ctx, 1, 10, domain.EventPatch{Action: domain.ActionSendToReview})
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	})

	t.Run("admin_action_rejected", func(t *testing.T) {
		f := newFixture()
		f.repo.put(pendingEvent(10, 1))

		_, err := f.svc.UpdateByOwner(ctx, 1, 10, domain.EventPatch{Action: domain.ActionPublish})
		assert.Equal(t, domain.KindIncorrectParameters, domain.KindOf(err))
	})

	t.Run("date_keeps_owner_lead_time", func(t *testing.T) {
		f := newFixture()
		f.repo.put(pendingEvent(10, 1))

		tooClose := testNow.Add(time.Hour)
		_, err := f.svc.UpdateByOwner(ctx, 1, 10, domain.EventPatch{EventDate: &tooClose})
		assert.Equal(t, domain.KindTemporal, domain.KindOf(err))
	})

	t.Run("strangers_event_not_found", func(t *testing.T) {
		f := newFixture()
		f.repo.put(pendingEvent(10, 2))

		_, err := f.svc.UpdateByOwner(ctx, 1, 10, domain.EventPatch{})
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}

func TestUpdateByAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("publish_sets_published_date", func(t *testing.T) {
		f := newFixture()
		f.repo.put(pendingEvent(10, 1))

		got, err := f.svc.UpdateByAdmin(ctx, 10, domain.EventPatch{Action: domain.ActionPublish})
		require.NoError(t, err)
		assert.Equal(t, domain.StatePublished, got.Event.State)
		require.NotNil(t, got.Event.PublishedDate)
		assert.Equal(t, testNow, got.Event.PublishedDate.UTC())
	})

	t.Run("publish_inside_lead_time_fails", func(t *testing.T) {
		f := newFixture()
		ev := pendingEvent(10, 1)
		ev.EventDate = testNow.Add(30 * time.Minute)
		f.repo.put(ev)

		_, err := f.svc.UpdateByAdmin(ctx, 10, domain.EventPatch{Action: domain.ActionPublish})
		assert.Equal(t, domain.KindTemporal, domain.KindOf(err))
	})

	t.Run("published_event_conflicts", func(t *testing.T) {
		f := newFixture()
		f.repo.put(publishedEvent(10, 1))

		_, err := f.svc.UpdateByAdmin(ctx, 10, domain.EventPatch{Action: domain.ActionReject})
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	})

	t.Run("canceled_event_conflicts", func(t *testing.T) {
		f := newFixture()
		ev := pendingEvent(10, 1)
		ev.State = domain.StateCanceled
		f.repo.put(ev)

		_, err := f.svc.UpdateByAdmin(ctx, 10, domain.EventPatch{Action: domain.ActionPublish})
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	})

	t.Run("owner_action_rejected", func(t *testing.T) {
		f := newFixture()
		f.repo.put(pendingEvent(10, 1))

		_, err := f.svc.UpdateByAdmin(ctx, 10, domain.EventPatch{Action: domain.ActionCancelReview})
		assert.Equal(t, domain.KindIncorrectParameters, domain.KindOf(err))
	})

	t.Run("bare_date_fix_skips_lead_check", func(t *testing.T) {
		f := newFixture()
		f.repo.put(pendingEvent(10, 1))

		soon := testNow.Add(10 * time.Minute)
		got, err := f.svc.UpdateByAdmin(ctx, 10, domain.EventPatch{EventDate: &soon})
		require.NoError(t, err)
		assert.Equal(t, soon, got.Event.EventDate)
	})
}

func TestGetPublic(t *testing.T) {
	ctx := context.Background()

	t.Run("published_event_with_views", func(t *testing.T) {
		f := newFixture()
		f.repo.put(publishedEvent(10, 1))
		f.repo.counts[10] = 3
		f.stats.hits["/events/10"] = 7

		got, err := f.svc.GetPublic(ctx, 10, "203.0.113.9")
		require.NoError(t, err)
		assert.Equal(t, 3, got.ConfirmedRequests)
		assert.Equal(t, int64(7), got.Views)
		assert.Equal(t, []string{"/events/10"}, f.stats.recorded)
	})

	t.Run("pending_event_invisible", func(t *testing.T) {
		f := newFixture()
		f.repo.put(pendingEvent(10, 1))

		_, err := f.svc.GetPublic(ctx, 10, "203.0.113.9")
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("views_served_from_cache", func(t *testing.T) {
		f := newFixture()
		f.repo.put(publishedEvent(10, 1))
		f.stats.hits["/events/10"] = 7

		_, err := f.svc.GetPublic(ctx, 10, "203.0.113.9")
		require.NoError(t, err)
		_, err = f.svc.GetPublic(ctx, 10, "203.0.113.9")
		require.NoError(t, err)
		assert.Equal(t, 1, f.stats.calls)
	})

	t.Run("gateway_outage_degrades_to_zero", func(t *testing.T) {
		f := newFixture()
		f.repo.put(publishedEvent(10, 1))
		f.stats.err = errors.New("connection refused")

		got, err := f.svc.GetPublic(ctx, 10, "203.0.113.9")
		require.NoError(t, err)
		assert.Zero(t, got.Views)
	})

	t.Run("gateway_rejection_surfaces", func(t *testing.T) {
		f := newFixture()
		f.repo.put(publishedEvent(10, 1))
		f.stats.err = domain.ErrIncorrectParameters("bad stats query", "start after end")

		_, err := f.svc.GetPublic(ctx, 10, "203.0.113.9")
		assert.Equal(t, domain.KindIncorrectParameters, domain.KindOf(err))
	})
}

func TestSearchPublic(t *testing.T) {
	ctx := context.Background()

	t.Run("default_window_is_now_onward", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.SearchPublic(ctx, PublicFilter{}, "203.0.113.9")
		require.NoError(t, err)
		require.NotNil(t, f.repo.lastWindow)
		assert.Equal(t, testNow, f.repo.lastWindow.AfterDate)
		assert.Nil(t, f.repo.lastWindow.BeforeDate)
		assert.Equal(t, []string{"/events"}, f.stats.recorded)
	})

	t.Run("explicit_window_passed_through", func(t *testing.T) {
		f := newFixture()
		start := testNow.Add(-24 * time.Hour)
		end := testNow.Add(24 * time.Hour)
		_, err := f.svc.SearchPublic(ctx, PublicFilter{Start: &start, End: &end}, "203.0.113.9")
		require.NoError(t, err)
		assert.Equal(t, start, f.repo.lastWindow.AfterDate)
		require.NotNil(t, f.repo.lastWindow.BeforeDate)
		assert.Equal(t, end, *f.repo.lastWindow.BeforeDate)
	})

	t.Run("past_start_without_end_clamps_to_now", func(t *testing.T) {
		f := newFixture()
		start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		_, err := f.svc.SearchPublic(ctx, PublicFilter{Start: &start}, "203.0.113.9")
		require.NoError(t, err)
		// a past start must not resurface events dated before now
		assert.Equal(t, testNow, f.repo.lastWindow.AfterDate)
		assert.Nil(t, f.repo.lastWindow.BeforeDate)
	})

	t.Run("future_start_without_end_kept", func(t *testing.T) {
		f := newFixture()
		start := testNow.Add(48 * time.Hour)
		_, err := f.svc.SearchPublic(ctx, PublicFilter{Start: &start}, "203.0.113.9")
		require.NoError(t, err)
		assert.Equal(t, start, f.repo.lastWindow.AfterDate)
	})

	t.Run("past_start_with_end_passed_through", func(t *testing.T) {
		f := newFixture()
		start := testNow.Add(-48 * time.Hour)
		end := testNow.Add(-24 * time.Hour)
		_, err := f.svc.SearchPublic(ctx, PublicFilter{Start: &start, End: &end}, "203.0.113.9")
		require.NoError(t, err)
		// a bounded window is the caller's to aim anywhere, past included
		assert.Equal(t, start, f.repo.lastWindow.AfterDate)
	})

	t.Run("inverted_window_rejected", func(t *testing.T) {
		f := newFixture()
		start := testNow
		end := testNow.Add(-time.Hour)
		_, err := f.svc.SearchPublic(ctx, PublicFilter{Start: &start, End: &end}, "203.0.113.9")
		assert.Equal(t, domain.KindIncorrectParameters, domain.KindOf(err))
	})

	t.Run("paging_floors_from_to_page_boundary", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.SearchPublic(ctx, PublicFilter{From: 25, Size: 10}, "203.0.113.9")
		require.NoError(t, err)
		assert.Equal(t, 20, f.repo.lastPublicFilter.From)
		assert.Equal(t, 10, f.repo.lastPublicFilter.Size)
	})

	t.Run("paging_defaults", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.SearchPublic(ctx, PublicFilter{From: -5, Size: 0}, "203.0.113.9")
		require.NoError(t, err)
		assert.Equal(t, 0, f.repo.lastPublicFilter.From)
		assert.Equal(t, 10, f.repo.lastPublicFilter.Size)
	})
}

func TestSearchAdmin(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	f.repo.searchResult = []*domain.Event{pendingEvent(10, 1), publishedEvent(11, 1)}
	f.repo.counts[11] = 4

	got, err := f.svc.SearchAdmin(ctx, AdminFilter{States: []domain.EventState{domain.StatePending, domain.StatePublished}, From: 7, Size: 5})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 4, got[1].ConfirmedRequests)
	// no views on the admin surface
	assert.Zero(t, got[1].Views)
	assert.Equal(t, 5, f.repo.lastAdminFilter.From)
	// admin search never records a hit
	assert.Empty(t, f.stats.recorded)
}

func TestEventIDFromURI(t *testing.T) {
	id, ok := EventIDFromURI("/events/42")
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = EventIDFromURI("/events")
	assert.False(t, ok)
	_, ok = EventIDFromURI("/events/abc")
	assert.False(t, ok)
}
