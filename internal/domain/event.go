package domain

import (
	"strings"
	"time"
)

// Lead times an event date must keep ahead of the wall clock.
const (
	OwnerLeadTime = 2 * time.Hour
	AdminLeadTime = 1 * time.Hour
)

type Location struct {
	Lat float64
	Lon float64
}

func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lon >= -180 && l.Lon <= 180
}

type Event struct {
	ID          int64
	InitiatorID int64
	CategoryID  int64

	Title       string
	Annotation  string
	Description string
	Location    Location

	EventDate     time.Time
	PublishedDate *time.Time
	CreatedDate   time.Time

	Paid              bool
	ParticipantLimit  int // 0 = unlimited
	RequestModeration bool

	State EventState
}

func NewEvent(initiatorID, categoryID int64, title, annotation, description string, loc Location, eventDate time.Time, paid bool, participantLimit int, requestModeration bool, now time.Time) (*Event, error) {
	title = strings.TrimSpace(title)
	annotation = strings.TrimSpace(annotation)
	description = strings.TrimSpace(description)

	if n := len([]rune(title)); n < 3 || n > 120 {
		return nil, ErrIncorrectParameters("invalid event fields", "title must be 3..120 chars")
	}
	if n := len([]rune(annotation)); n < 20 || n > 2000 {
		return nil, ErrIncorrectParameters("invalid event fields", "annotation must be 20..2000 chars")
	}
	if n := len([]rune(description)); n < 20 || n > 7000 {
		return nil, ErrIncorrectParameters("invalid event fields", "description must be 20..7000 chars")
	}
	if !loc.Valid() {
		return nil, ErrIncorrectParameters("invalid event fields", "location out of range")
	}
	if participantLimit < 0 {
		return nil, ErrIncorrectParameters("invalid event fields", "participant limit must be >= 0 (0 means unlimited)")
	}
	if err := CheckEventDate(eventDate, now, OwnerLeadTime); err != nil {
		return nil, err
	}

	return &Event{
		InitiatorID:       initiatorID,
		CategoryID:        categoryID,
		Title:             title,
		Annotation:        annotation,
		Description:       description,
		Location:          loc,
		EventDate:         eventDate.UTC(),
		CreatedDate:       now.UTC(),
		Paid:              paid,
		ParticipantLimit:  participantLimit,
		RequestModeration: requestModeration,
		State:             StatePending,
	}, nil
}

// CheckEventDate fails when date is earlier than now plus the given lead time.
func CheckEventDate(date, now time.Time, lead time.Duration) error {
	if date.Before(now.Add(lead)) {
		return ErrTemporal("invalid event date",
			"event date must keep at least "+lead.String()+" of lead time")
	}
	return nil
}

// EventPatch carries a partial update. Nil fields are left untouched; blank
// strings are treated as absent. EventDate and Action are handled by the
// lifecycle rules, not by Apply.
type EventPatch struct {
	Annotation        *string
	CategoryID        *int64
	Description       *string
	Location          *Location
	ParticipantLimit  *int
	Paid              *bool
	RequestModeration *bool
	Title             *string

	EventDate *time.Time
	Action    StateAction
}

// Apply merges the non-empty patch fields onto e and reports whether anything
// actually changed, so callers can skip the write on a no-op patch.
func (e *Event) Apply(p EventPatch) bool {
	changed := false
	if p.Annotation != nil && strings.TrimSpace(*p.Annotation) != "" {
		e.Annotation = strings.TrimSpace(*p.Annotation)
		changed = true
	}
	if p.CategoryID != nil {
		e.CategoryID = *p.CategoryID
		changed = true
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) != "" {
		e.Description = strings.TrimSpace(*p.Description)
		changed = true
	}
	if p.Location != nil {
		e.Location = *p.Location
		changed = true
	}
	if p.ParticipantLimit != nil {
		e.ParticipantLimit = *p.ParticipantLimit
		changed = true
	}
	if p.Paid != nil {
		e.Paid = *p.Paid
		changed = true
	}
	if p.RequestModeration != nil {
		e.RequestModeration = *p.RequestModeration
		changed = true
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) != "" {
		e.Title = strings.TrimSpace(*p.Title)
		changed = true
	}
	return changed
}

// Transition applies a lifecycle action. Only pending events move; any action
// on a published or canceled event is a conflict.
func (e *Event) Transition(action StateAction, now time.Time) error {
	if e.State != StatePending {
		return ErrConflict("event not updated", "only a pending event may be modified")
	}
	switch action {
	case ActionSendToReview:
		// already pending; counts as a change so the caller persists it
		e.State = StatePending
	case ActionCancelReview, ActionReject:
		e.State = StateCanceled
	case ActionPublish:
		if err := CheckEventDate(e.EventDate, now, AdminLeadTime); err != nil {
			return err
		}
		t := now.UTC()
		e.State = StatePublished
		e.PublishedDate = &t
	default:
		return ErrIncorrectParameters("event not updated", "unknown state action "+string(action))
	}
	return nil
}
