package dto

type ParticipationRequestDto struct {
	ID        int64   `json:"id"`
	Event     int64   `json:"event"`
	Requester int64   `json:"requester"`
	Created   APITime `json:"created"`
	Status    string  `json:"status"`
}

type EventRequestStatusUpdateRequest struct {
	RequestIDs []int64 `json:"requestIds" validate:"required,min=1"`
	Status     string  `json:"status" validate:"required,oneof=CONFIRMED REJECTED"`
}

type EventRequestStatusUpdateResult struct {
	ConfirmedRequests []ParticipationRequestDto `json:"confirmedRequests"`
	RejectedRequests  []ParticipationRequestDto `json:"rejectedRequests"`
}
