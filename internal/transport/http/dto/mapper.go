package dto

import (
	"github.com/dkotelnikov/eventory/internal/application/event"
	"github.com/dkotelnikov/eventory/internal/domain"
)

func ToEventFullDto(ws *event.WithStats, cat CategoryDto, initiator UserShort) EventFullDto {
	e := ws.Event
	out := EventFullDto{
		ID:                e.ID,
		Title:             e.Title,
		Annotation:        e.Annotation,
		Description:       e.Description,
		Category:          cat,
		Initiator:         initiator,
		Location:          LocationDto{Lat: e.Location.Lat, Lon: e.Location.Lon},
		EventDate:         APITime(e.EventDate),
		CreatedOn:         APITime(e.CreatedDate),
		Paid:              e.Paid,
		ParticipantLimit:  e.ParticipantLimit,
		RequestModeration: e.RequestModeration,
		State:             string(e.State),
		ConfirmedRequests: ws.ConfirmedRequests,
		Views:             ws.Views,
	}
	if e.PublishedDate != nil {
		p := APITime(*e.PublishedDate)
		out.PublishedOn = &p
	}
	return out
}

func ToEventShortDto(ws *event.WithStats, cat CategoryDto, initiator UserShort) EventShortDto {
	e := ws.Event
	return EventShortDto{
		ID:                e.ID,
		Title:             e.Title,
		Annotation:        e.Annotation,
		Category:          cat,
		Initiator:         initiator,
		EventDate:         APITime(e.EventDate),
		Paid:              e.Paid,
		ConfirmedRequests: ws.ConfirmedRequests,
		Views:             ws.Views,
	}
}

func ToCategoryDto(c *domain.Category) CategoryDto {
	return CategoryDto{ID: c.ID, Name: c.Name}
}

func ToUserDto(u *domain.User) UserDto {
	return UserDto{ID: u.ID, Name: u.Name, Email: u.Email}
}

func ToUserShort(u *domain.User) UserShort {
	return UserShort{ID: u.ID, Name: u.Name}
}

func ToRequestDto(r *domain.Request) ParticipationRequestDto {
	return ParticipationRequestDto{
		ID:        r.ID,
		Event:     r.EventID,
		Requester: r.RequesterID,
		Created:   APITime(r.Created),
		Status:    string(r.Status),
	}
}

func ToRequestDtos(rs []*domain.Request) []ParticipationRequestDto {
	out := make([]ParticipationRequestDto, 0, len(rs))
	for _, r := range rs {
		out = append(out, ToRequestDto(r))
	}
	return out
}

// OwnerPatch folds the initiator's update body into a domain patch.
func (req UpdateEventUserRequest) OwnerPatch() domain.EventPatch {
	p := basePatch(req.Title, req.Annotation, req.Description, req.Category,
		req.Location, req.ParticipantLimit, req.Paid, req.RequestModeration, req.EventDate)
	p.Action = domain.StateAction(req.StateAction)
	return p
}

func (req UpdateEventAdminRequest) AdminPatch() domain.EventPatch {
	p := basePatch(req.Title, req.Annotation, req.Description, req.Category,
		req.Location, req.ParticipantLimit, req.Paid, req.RequestModeration, req.EventDate)
	p.Action = domain.StateAction(req.StateAction)
	return p
}

func basePatch(
	title, annotation, description *string,
	category *int64,
	loc *LocationDto,
	limit *int,
	paid, moderation *bool,
	eventDate *APITime,
) domain.EventPatch {
	p := domain.EventPatch{
		Title:             title,
		Annotation:        annotation,
		Description:       description,
		CategoryID:        category,
		ParticipantLimit:  limit,
		Paid:              paid,
		RequestModeration: moderation,
		EventDate:         eventDate.TimePtr(),
	}
	if loc != nil {
		p.Location = &domain.Location{Lat: loc.Lat, Lon: loc.Lon}
	}
	return p
}
