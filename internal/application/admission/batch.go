package admission

import (
	"context"
	"fmt"

	"github.com/dkotelnikov/eventory/internal/domain"
)

// StatusUpdateResult partitions a batch decision: every id from the input
// lands in exactly one of the two lists (or the whole batch failed).
type StatusUpdateResult struct {
	Confirmed []*domain.Request
	Rejected  []*domain.Request
}

// UpdateStatusBatch is the capacity-critical operation: the event owner
// confirms or rejects a list of pending requests against the remaining free
// seats. The whole walk runs inside the event's serialized unit of work, so
// two overlapping batches can never jointly overcommit the limit, and the
// batch commits or rolls back as one.
//
// Confirming more ids than there are free seats confirms a prefix of the
// caller-supplied order and force-rejects the remainder of the list.
func (s *Service) UpdateStatusBatch(ctx context.Context, ownerID, eventID int64, requestIDs []int64, target domain.RequestStatus) (*StatusUpdateResult, error) {
	if err := s.checkUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if target != domain.RequestConfirmed && target != domain.RequestRejected {
		return nil, domain.ErrIncorrectParameters("status not updated",
			"target status must be CONFIRMED or REJECTED, got "+string(target))
	}

	result := &StatusUpdateResult{}
	err := s.store.WithEventTx(ctx, eventID, func(ctx context.Context, tx Tx) error {
		ev, err := tx.OwnedEvent(ctx, eventID, ownerID)
		if err != nil {
			return err
		}
		if !ev.RequestModeration || ev.ParticipantLimit == 0 {
			return domain.ErrConflict("status not updated",
				"the event does not require request confirmation")
		}

		confirmed, err := tx.ConfirmedCount(ctx, eventID)
		if err != nil {
			return err
		}
		freeSeats := ev.ParticipantLimit - confirmed

		requests, err := tx.RequestsByIDs(ctx, eventID, requestIDs)
		if err != nil {
			return err
		}
		if len(requests) != len(requestIDs) {
			return domain.ErrNotFound("request or event not found",
				fmt.Sprintf("some of requests %v do not exist under event %d", requestIDs, eventID))
		}
		if freeSeats == 0 {
			return domain.ErrConflict("status not updated",
				"the participant limit has been reached")
		}

		switch target {
		case domain.RequestConfirmed:
			return s.confirmWalk(ctx, tx, requests, freeSeats, result)
		default:
			return s.rejectWalk(ctx, tx, requests, result)
		}
	})
	if err != nil {
		return nil, err
	}

	s.publishDecision(ctx, "request.confirmed", eventID, collectIDs(result.Confirmed))
	s.publishDecision(ctx, "request.rejected", eventID, collectIDs(result.Rejected))
	return result, nil
}

// confirmWalk confirms requests in caller order until seats run out, then
// force-rejects the rest of the list rather than leaving it pending.
func (s *Service) confirmWalk(ctx context.Context, tx Tx, requests []*domain.Request, freeSeats int, result *StatusUpdateResult) error {
	for _, req := range requests {
		if freeSeats > 0 {
			req.Status = domain.RequestConfirmed
			if err := tx.SaveRequestStatus(ctx, req.ID, req.Status); err != nil {
				return err
			}
			result.Confirmed = append(result.Confirmed, req)
			freeSeats--
			continue
		}
		req.Status = domain.RequestRejected
		if err := tx.SaveRequestStatus(ctx, req.ID, req.Status); err != nil {
			return err
		}
		result.Rejected = append(result.Rejected, req)
	}
	return nil
}

// rejectWalk rejects pending requests in caller order and halts at the first
// request that is no longer pending. The halt mirrors the legacy contract;
// it is deliberately not idempotent across partially decided lists.
func (s *Service) rejectWalk(ctx context.Context, tx Tx, requests []*domain.Request, result *StatusUpdateResult) error {
	for _, req := range requests {
		if req.Status != domain.RequestPending {
			break
		}
		req.Status = domain.RequestRejected
		if err := tx.SaveRequestStatus(ctx, req.ID, req.Status); err != nil {
			return err
		}
		result.Rejected = append(result.Rejected, req)
	}
	return nil
}

func collectIDs(requests []*domain.Request) []int64 {
	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	return ids
}
