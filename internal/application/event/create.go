package event

import (
	"context"
	"time"

	"github.com/dkotelnikov/eventory/internal/domain"
)

type CreateCmd struct {
	InitiatorID int64

	Title       string
	Annotation  string
	Description string
	CategoryID  int64
	Location    domain.Location
	EventDate   time.Time

	Paid              bool
	ParticipantLimit  int
	RequestModeration bool
}

func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*WithStats, error) {
	if err := s.checkUser(ctx, cmd.InitiatorID); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, cmd.CategoryID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	e, err := domain.NewEvent(cmd.InitiatorID, cmd.CategoryID, cmd.Title, cmd.Annotation,
		cmd.Description, cmd.Location, cmd.EventDate, cmd.Paid, cmd.ParticipantLimit,
		cmd.RequestModeration, now)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	e.ID = id

	return &WithStats{Event: e}, nil
}
