package event

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/dkotelnikov/eventory/internal/domain"
)

// UpdateByOwner merges a partial update from the event's initiator. The write
// is skipped entirely when the patch changes nothing.
func (s *Service) UpdateByOwner(ctx context.Context, userID, eventID int64, patch domain.EventPatch) (*WithStats, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	ev, err := s.repo.GetByIDAndInitiator(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if ev.State == domain.StatePublished {
		return nil, domain.ErrConflict("event not updated",
			"a published event may not be edited by its initiator")
	}

	if patch.Action != "" && !patch.Action.Owner() {
		return nil, domain.ErrIncorrectParameters("event not updated",
			"unknown owner state action "+string(patch.Action))
	}

	changed, err := s.applyPatch(ctx, ev, patch, domain.OwnerLeadTime)
	if err != nil {
		return nil, err
	}
	if !changed {
		return s.withCounts(ctx, ev)
	}
	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}
	if ev.State == domain.StateCanceled {
		s.publish(ctx, "event.canceled", ev)
	}
	return s.withCounts(ctx, ev)
}

// UpdateByAdmin handles the admin review decision and field fixes. Only a
// pending event may be touched at all.
func (s *Service) UpdateByAdmin(ctx context.Context, eventID int64, patch domain.EventPatch) (*WithStats, error) {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.State != domain.StatePending {
		return nil, domain.ErrConflict("event not updated",
			"only a pending event may be modified")
	}

	if patch.Action != "" && !patch.Action.Admin() {
		return nil, domain.ErrIncorrectParameters("event not updated",
			"unknown admin state action "+string(patch.Action))
	}

	// the admin lead time is enforced inside the publish transition against
	// the effective event date, so a bare date fix carries no lead check here
	changed, err := s.applyPatch(ctx, ev, patch, 0)
	if err != nil {
		return nil, err
	}
	if !changed {
		return s.withCounts(ctx, ev)
	}
	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}

	switch ev.State {
	case domain.StatePublished:
		s.publish(ctx, "event.published", ev)
	case domain.StateCanceled:
		s.publish(ctx, "event.canceled", ev)
	}
	return s.withCounts(ctx, ev)
}

// applyPatch merges fields, the event date, and the state action, reporting
// whether anything changed. A zero dateLead skips the lead-time check on a
// bare date change.
func (s *Service) applyPatch(ctx context.Context, ev *domain.Event, patch domain.EventPatch, dateLead time.Duration) (bool, error) {
	if patch.CategoryID != nil {
		if err := s.checkCategory(ctx, *patch.CategoryID); err != nil {
			return false, err
		}
	}

	changed := ev.Apply(patch)

	if patch.EventDate != nil {
		if dateLead > 0 {
			if err := domain.CheckEventDate(*patch.EventDate, s.clock.Now(), dateLead); err != nil {
				return false, err
			}
		}
		ev.EventDate = patch.EventDate.UTC()
		changed = true
	}

	if patch.Action != "" {
		if err := ev.Transition(patch.Action, s.clock.Now()); err != nil {
			return false, err
		}
		changed = true
	}
	return changed, nil
}

func (s *Service) publish(ctx context.Context, routingKey string, ev *domain.Event) {
	if s.pub == nil {
		return
	}
	payload := map[string]any{
		"event_id":          ev.ID,
		"initiator_id":      ev.InitiatorID,
		"state":             string(ev.State),
		"event_date":        ev.EventDate,
		"participant_limit": ev.ParticipantLimit,
	}
	if err := s.pub.Publish(ctx, routingKey, payload); err != nil {
		zlog.Error().
			Err(err).
			Str("rk", routingKey).
			Int64("event_id", ev.ID).
			Msg("publish domain event failed")
	}
}
