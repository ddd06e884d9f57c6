package domain

import "time"

type Request struct {
	ID          int64
	EventID     int64
	RequesterID int64
	Created     time.Time
	Status      RequestStatus
}

// NewRequest builds a participation request for a published event. The status
// is CONFIRMED up front when the event needs no moderation or has no limit.
func NewRequest(requesterID int64, e *Event, now time.Time) *Request {
	status := RequestPending
	if !e.RequestModeration || e.ParticipantLimit == 0 {
		status = RequestConfirmed
	}
	return &Request{
		EventID:     e.ID,
		RequesterID: requesterID,
		Created:     now.UTC(),
		Status:      status,
	}
}

// Live reports whether the request still occupies the one-per-(user,event)
// slot, i.e. it has not been canceled.
func (r *Request) Live() bool {
	return r.Status != RequestCanceled
}

// Cancel is a one-way terminal move by the requester. Canceling an already
// decided-against request fails.
func (r *Request) Cancel() error {
	if r.Status == RequestCanceled || r.Status == RequestRejected {
		return ErrIncorrectParameters("request not canceled",
			"request is already "+string(r.Status))
	}
	r.Status = RequestCanceled
	return nil
}
