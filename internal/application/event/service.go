package event

import (
	"context"
	"fmt"
	"time"

	"github.com/dkotelnikov/eventory/internal/domain"
)

// WithStats is an event enriched for display with its confirmed-request and
// view counts. The counts never feed capacity decisions.
type WithStats struct {
	Event             *domain.Event
	ConfirmedRequests int
	Views             int64
}

type Service struct {
	repo       EventRepo
	categories CategoryRepo
	users      UserRepo
	stats      StatsGateway
	pub        Publisher
	cache      Cache
	clock      Clock

	ttlViews time.Duration
}

func New(
	repo EventRepo,
	categories CategoryRepo,
	users UserRepo,
	stats StatsGateway,
	clock Clock,
	pub Publisher,
	cache Cache,
	ttlViews time.Duration,
) *Service {
	if ttlViews == 0 {
		ttlViews = 30 * time.Second
	}
	return &Service{
		repo:       repo,
		categories: categories,
		users:      users,
		stats:      stats,
		pub:        pub,
		cache:      cache,
		clock:      clock,
		ttlViews:   ttlViews,
	}
}

func eventURI(id int64) string {
	return fmt.Sprintf("/events/%d", id)
}

func (s *Service) checkUser(ctx context.Context, userID int64) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound("user not found",
			fmt.Sprintf("no user with id=%d", userID))
	}
	return nil
}

func (s *Service) checkCategory(ctx context.Context, categoryID int64) error {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return err
	}
	return nil
}
