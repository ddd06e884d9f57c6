package admission

import (
	"context"
	"fmt"

	zlog "github.com/rs/zerolog/log"

	"github.com/dkotelnikov/eventory/internal/domain"
)

type Service struct {
	store Store
	users UserRepo
	pub   Publisher
	clock Clock
}

func New(store Store, users UserRepo, clock Clock, pub Publisher) *Service {
	return &Service{store: store, users: users, clock: clock, pub: pub}
}

// RequestAdmission creates a participation request inside the event's
// critical section, so the capacity check and the insert are atomic relative
// to competing admissions.
func (s *Service) RequestAdmission(ctx context.Context, requesterID, eventID int64) (*domain.Request, error) {
	if err := s.checkUser(ctx, requesterID); err != nil {
		return nil, err
	}

	var created *domain.Request
	err := s.store.WithEventTx(ctx, eventID, func(ctx context.Context, tx Tx) error {
		ev, err := tx.Event(ctx, eventID)
		if err != nil {
			return err
		}
		if ev.InitiatorID == requesterID {
			return domain.ErrConflict("request rejected",
				"the event's initiator may not request admission")
		}
		if ev.State != domain.StatePublished {
			return domain.ErrConflict("request rejected",
				"the event is not published")
		}
		live, err := tx.HasLiveRequest(ctx, eventID, requesterID)
		if err != nil {
			return err
		}
		if live {
			return domain.ErrConflict("request rejected",
				fmt.Sprintf("user %d already has a live request for event %d", requesterID, eventID))
		}
		if ev.ParticipantLimit > 0 {
			confirmed, err := tx.ConfirmedCount(ctx, eventID)
			if err != nil {
				return err
			}
			if confirmed >= ev.ParticipantLimit {
				return domain.ErrConflict("request rejected",
					"the participant limit has been reached")
			}
		}

		req := domain.NewRequest(requesterID, ev, s.clock.Now())
		id, err := tx.InsertRequest(ctx, req)
		if err != nil {
			return err
		}
		req.ID = id
		created = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created.Status == domain.RequestConfirmed {
		s.publishDecision(ctx, "request.confirmed", created.EventID, []int64{created.ID})
	}
	return created, nil
}

// Cancel flips the requester's own live request to CANCELED. The freed seat
// is not handed to any pending request.
func (s *Service) Cancel(ctx context.Context, requesterID, requestID int64) (*domain.Request, error) {
	if err := s.checkUser(ctx, requesterID); err != nil {
		return nil, err
	}

	var canceled *domain.Request
	err := s.store.WithRequestTx(ctx, requestID, requesterID, func(ctx context.Context, tx Tx, req *domain.Request) error {
		if err := req.Cancel(); err != nil {
			return err
		}
		if err := tx.SaveRequestStatus(ctx, req.ID, req.Status); err != nil {
			return err
		}
		canceled = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return canceled, nil
}

func (s *Service) ListOwn(ctx context.Context, requesterID int64) ([]*domain.Request, error) {
	if err := s.checkUser(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.store.ListByRequester(ctx, requesterID)
}

func (s *Service) ListForEventOwner(ctx context.Context, ownerID, eventID int64) ([]*domain.Request, error) {
	if err := s.checkUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if _, err := s.store.OwnedEvent(ctx, eventID, ownerID); err != nil {
		return nil, err
	}
	return s.store.ListByEvent(ctx, eventID)
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

func (s *Service) publishDecision(ctx context.Context, routingKey string, eventID int64, requestIDs []int64) {
	if s.pub == nil || len(requestIDs) == 0 {
		return
	}
	payload := map[string]any{
		"event_id":    eventID,
		"request_ids": requestIDs,
	}
	if err := s.pub.Publish(ctx, routingKey, payload); err != nil {
		zlog.Error().
			Err(err).
			Str("rk", routingKey).
			Int64("event_id", eventID).
			Msg("publish domain event failed")
	}
}
