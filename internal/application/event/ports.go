package event

import (
	"context"
	"time"

	"github.com/dkotelnikov/eventory/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// AdminFilter is the admin search: every clause optional, no implicit state
// restriction.
type AdminFilter struct {
	Users      []int64
	States     []domain.EventState
	Categories []int64
	Start      *time.Time
	End        *time.Time

	From int
	Size int
}

// PublicFilter is the public search. Start/End are the raw caller bounds; the
// service normalizes them into the effective window before hitting the repo.
type PublicFilter struct {
	Text          string
	Categories    []int64
	Paid          *bool
	Start         *time.Time
	End           *time.Time
	OnlyAvailable bool
	Sort          string

	From int
	Size int
}

// PublicWindow is the normalized date window: AfterDate is always set (strict
// greater-than), BeforeDate optional (strict less-than).
type PublicWindow struct {
	AfterDate  time.Time
	BeforeDate *time.Time
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	GetByIDAndInitiator(ctx context.Context, id, initiatorID int64) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error

	SearchAdmin(ctx context.Context, f AdminFilter) ([]*domain.Event, error)
	SearchPublic(ctx context.Context, f PublicFilter, w PublicWindow) ([]*domain.Event, error)
	ListByInitiator(ctx context.Context, initiatorID int64, from, size int) ([]*domain.Event, error)

	// ConfirmedCounts returns confirmed-request counts keyed by event id, in
	// one batched query.
	ConfirmedCounts(ctx context.Context, eventIDs []int64) (map[int64]int, error)
}

type CategoryRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
}

type UserRepo interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// StatsGateway is the view-statistics collaborator.
type StatsGateway interface {
	// RecordView is fire-and-forget: implementations must not return an error
	// to the caller.
	RecordView(ctx context.Context, uri, ip string)

	// ViewCounts returns hit counts keyed by uri. Infrastructure failures
	// yield an empty map; a caller-shape rejection by the gateway surfaces as
	// an IncorrectParameters error.
	ViewCounts(ctx context.Context, uris []string, since, until time.Time, uniqueOnly bool) (map[string]int64, error)
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
}
