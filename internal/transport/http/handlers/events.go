package handlers

import (
	"net/http"

	"github.com/dkotelnikov/eventory/internal/application/catalog"
	"github.com/dkotelnikov/eventory/internal/application/event"
	"github.com/dkotelnikov/eventory/internal/domain"
	"github.com/dkotelnikov/eventory/internal/transport/http/dto"
	"github.com/dkotelnikov/eventory/internal/transport/http/response"
	"github.com/dkotelnikov/eventory/internal/transport/http/validate"
)

type EventsHandler struct {
	svc     *event.Service
	catalog *catalog.Service
}

func NewEventsHandler(svc *event.Service, cat *catalog.Service) *EventsHandler {
	return &EventsHandler{svc: svc, catalog: cat}
}

// SearchPublic handles GET /events.
func (h *EventsHandler) SearchPublic(w http.ResponseWriter, r *http.Request) {
	f, err := publicFilter(r)
	if err != nil {
		response.Err(w, err)
		return
	}

	items, err := h.svc.SearchPublic(r.Context(), f, r.RemoteAddr)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, newRefResolver(h.catalog).shortDtos(r.Context(), items))
}

// GetPublic handles GET /events/{eventId}.
func (h *EventsHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "eventId")
	if err != nil {
		response.Err(w, err)
		return
	}
	ws, err := h.svc.GetPublic(r.Context(), id, r.RemoteAddr)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, newRefResolver(h.catalog).fullDto(r.Context(), ws))
}

// Create handles POST /users/{userId}/events.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	var req dto.NewEventDto
	if err := validate.Body(r, &req); err != nil {
		response.Err(w, err)
		return
	}

	moderation := true
	if req.RequestModeration != nil {
		moderation = *req.RequestModeration
	}
	ws, err := h.svc.Create(r.Context(), event.CreateCmd{
		InitiatorID:       userID,
		Title:             req.Title,
		Annotation:        req.Annotation,
		Description:       req.Description,
		CategoryID:        req.Category,
		Location:          domain.Location{Lat: req.Location.Lat, Lon: req.Location.Lon},
		EventDate:         req.EventDate.Time(),
		Paid:              req.Paid,
		ParticipantLimit:  req.ParticipantLimit,
		RequestModeration: moderation,
	})
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusCreated, newRefResolver(h.catalog).fullDto(r.Context(), ws))
}

// ListOwn handles GET /users/{userId}/events.
func (h *EventsHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	from, err := queryInt(r, "from", 0)
	if err != nil {
		response.Err(w, err)
		return
	}
	size, err := queryInt(r, "size", 10)
	if err != nil {
		response.Err(w, err)
		return
	}

	items, err := h.svc.ListByOwner(r.Context(), userID, from, size)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, newRefResolver(h.catalog).shortDtos(r.Context(), items))
}

// GetOwn handles GET /users/{userId}/events/{eventId}.
func (h *EventsHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	eventID, err := pathID(r, "eventId")
	if err != nil {
		response.Err(w, err)
		return
	}

	ws, err := h.svc.GetByOwner(r.Context(), userID, eventID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, newRefResolver(h.catalog).fullDto(r.Context(), ws))
}

// UpdateOwn handles PATCH /users/{userId}/events/{eventId}.
func (h *EventsHandler) UpdateOwn(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	eventID, err := pathID(r, "eventId")
	if err != nil {
		response.Err(w, err)
		return
	}
	var req dto.UpdateEventUserRequest
	if err := validate.Body(r, &req); err != nil {
		response.Err(w, err)
		return
	}

	ws, err := h.svc.UpdateByOwner(r.Context(), userID, eventID, req.OwnerPatch())
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, newRefResolver(h.catalog).fullDto(r.Context(), ws))
}

// SearchAdmin handles GET /admin/events.
func (h *EventsHandler) SearchAdmin(w http.ResponseWriter, r *http.Request) {
	f, err := adminFilter(r)
	if err != nil {
		response.Err(w, err)
		return
	}

	items, err := h.svc.SearchAdmin(r.Context(), f)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, newRefResolver(h.catalog).fullDtos(r.Context(), items))
}

// UpdateAdmin handles PATCH /admin/events/{eventId}.
func (h *EventsHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		response.Err(w, err)
		return
	}
	var req dto.UpdateEventAdminRequest
	if err := validate.Body(r, &req); err != nil {
		response.Err(w, err)
		return
	}

	ws, err := h.svc.UpdateByAdmin(r.Context(), eventID, req.AdminPatch())
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, newRefResolver(h.catalog).fullDto(r.Context(), ws))
}

func publicFilter(r *http.Request) (event.PublicFilter, error) {
	f := event.PublicFilter{Text: r.URL.Query().Get("text")}

	var err error
	if f.Categories, err = queryInt64List(r, "categories"); err != nil {
		return f, err
	}
	if f.Paid, err = queryBool(r, "paid"); err != nil {
		return f, err
	}
	if f.Start, f.End, err = rangeWindow(r); err != nil {
		return f, err
	}
	onlyAvailable, err := queryBool(r, "onlyAvailable")
	if err != nil {
		return f, err
	}
	f.OnlyAvailable = onlyAvailable != nil && *onlyAvailable

	switch sort := r.URL.Query().Get("sort"); sort {
	case "", "EVENT_DATE", "VIEWS":
		f.Sort = sort
	default:
		return f, domain.ErrIncorrectParameters("invalid query param",
			"sort must be EVENT_DATE or VIEWS")
	}

	if f.From, err = queryInt(r, "from", 0); err != nil {
		return f, err
	}
	f.Size, err = queryInt(r, "size", 10)
	return f, err
}

func adminFilter(r *http.Request) (event.AdminFilter, error) {
	f := event.AdminFilter{}

	var err error
	if f.Users, err = queryInt64List(r, "users"); err != nil {
		return f, err
	}
	for _, raw := range queryStringList(r, "states") {
		st := domain.EventState(raw)
		if !st.Valid() {
			return f, domain.ErrIncorrectParameters("invalid query param",
				"unknown event state "+raw)
		}
		f.States = append(f.States, st)
	}
	if f.Categories, err = queryInt64List(r, "categories"); err != nil {
		return f, err
	}
	if f.Start, f.End, err = rangeWindow(r); err != nil {
		return f, err
	}
	if f.From, err = queryInt(r, "from", 0); err != nil {
		return f, err
	}
	f.Size, err = queryInt(r, "size", 10)
	return f, err
}

