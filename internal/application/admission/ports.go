package admission

import (
	"context"
	"time"

	"github.com/dkotelnikov/eventory/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// Store is the admission side of the record store. All capacity decisions run
// through WithEventTx, which serializes the read-decide-write sequence per
// event: no two concurrent units of work for the same event may both observe
// seats as available. Work on different events must not block.
type Store interface {
	WithEventTx(ctx context.Context, eventID int64, fn func(ctx context.Context, tx Tx) error) error

	// WithRequestTx resolves the request owned by requesterID, then enters
	// the per-event critical section for the request's event. NotFound when
	// the pair does not resolve.
	WithRequestTx(ctx context.Context, requestID, requesterID int64, fn func(ctx context.Context, tx Tx, req *domain.Request) error) error

	ListByRequester(ctx context.Context, requesterID int64) ([]*domain.Request, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*domain.Request, error)
	OwnedEvent(ctx context.Context, eventID, initiatorID int64) (*domain.Event, error)
}

// Tx is the view of the store inside one serialized unit of work.
type Tx interface {
	Event(ctx context.Context, id int64) (*domain.Event, error)
	OwnedEvent(ctx context.Context, eventID, initiatorID int64) (*domain.Event, error)

	ConfirmedCount(ctx context.Context, eventID int64) (int, error)
	HasLiveRequest(ctx context.Context, eventID, requesterID int64) (bool, error)

	InsertRequest(ctx context.Context, r *domain.Request) (int64, error)

	// RequestsByIDs loads the requests named by ids under the given event,
	// preserving the caller-supplied order. Ids that do not resolve are
	// simply absent from the result.
	RequestsByIDs(ctx context.Context, eventID int64, ids []int64) ([]*domain.Request, error)

	SaveRequestStatus(ctx context.Context, requestID int64, status domain.RequestStatus) error
}

type UserRepo interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}
