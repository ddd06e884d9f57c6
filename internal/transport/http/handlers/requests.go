package handlers

import (
	"net/http"

	"github.com/dkotelnikov/eventory/internal/application/admission"
	"github.com/dkotelnikov/eventory/internal/domain"
	"github.com/dkotelnikov/eventory/internal/transport/http/dto"
	"github.com/dkotelnikov/eventory/internal/transport/http/response"
	"github.com/dkotelnikov/eventory/internal/transport/http/validate"
)

type RequestsHandler struct {
	svc *admission.Service
}

func NewRequestsHandler(svc *admission.Service) *RequestsHandler {
	return &RequestsHandler{svc: svc}
}

// Create handles POST /users/{userId}/requests?eventId=N.
func (h *RequestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	eventID, err := queryInt64(r, "eventId")
	if err != nil {
		response.Err(w, err)
		return
	}

	req, err := h.svc.RequestAdmission(r.Context(), userID, eventID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToRequestDto(req))
}

// ListOwn handles GET /users/{userId}/requests.
func (h *RequestsHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	items, err := h.svc.ListOwn(r.Context(), userID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToRequestDtos(items))
}

// Cancel handles PATCH /users/{userId}/requests/{requestId}/cancel.
func (h *RequestsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	requestID, err := pathID(r, "requestId")
	if err != nil {
		response.Err(w, err)
		return
	}

	req, err := h.svc.Cancel(r.Context(), userID, requestID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToRequestDto(req))
}

// ListForEvent handles GET /users/{userId}/events/{eventId}/requests.
func (h *RequestsHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
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

	items, err := h.svc.ListForEventOwner(r.Context(), userID, eventID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToRequestDtos(items))
}

// UpdateBatch handles PATCH /users/{userId}/events/{eventId}/requests.
func (h *RequestsHandler) UpdateBatch(w http.ResponseWriter, r *http.Request) {
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
	var req dto.EventRequestStatusUpdateRequest
	if err := validate.Body(r, &req); err != nil {
		response.Err(w, err)
		return
	}

	res, err := h.svc.UpdateStatusBatch(r.Context(), userID, eventID,
		req.RequestIDs, domain.RequestStatus(req.Status))
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, dto.EventRequestStatusUpdateResult{
		ConfirmedRequests: dto.ToRequestDtos(res.Confirmed),
		RejectedRequests:  dto.ToRequestDtos(res.Rejected),
	})
}
