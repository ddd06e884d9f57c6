package dto

type LocationDto struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type NewEventDto struct {
	Title             string      `json:"title" validate:"required,min=3,max=120"`
	Annotation        string      `json:"annotation" validate:"required,min=20,max=2000"`
	Description       string      `json:"description" validate:"required,min=20,max=7000"`
	Category          int64       `json:"category" validate:"required,gt=0"`
	Location          LocationDto `json:"location" validate:"required"`
	EventDate         APITime     `json:"eventDate" validate:"required"`
	Paid              bool        `json:"paid"`
	ParticipantLimit  int         `json:"participantLimit" validate:"gte=0"`
	RequestModeration *bool       `json:"requestModeration"`
}

// UpdateEventUserRequest carries the initiator's partial update. Every field
// is optional; absent fields leave the event untouched.
type UpdateEventUserRequest struct {
	Title             *string      `json:"title,omitempty" validate:"omitempty,min=3,max=120"`
	Annotation        *string      `json:"annotation,omitempty" validate:"omitempty,min=20,max=2000"`
	Description       *string      `json:"description,omitempty" validate:"omitempty,min=20,max=7000"`
	Category          *int64       `json:"category,omitempty" validate:"omitempty,gt=0"`
	Location          *LocationDto `json:"location,omitempty"`
	EventDate         *APITime     `json:"eventDate,omitempty"`
	Paid              *bool        `json:"paid,omitempty"`
	ParticipantLimit  *int         `json:"participantLimit,omitempty" validate:"omitempty,gte=0"`
	RequestModeration *bool        `json:"requestModeration,omitempty"`
	StateAction       string       `json:"stateAction,omitempty" validate:"omitempty,oneof=SEND_TO_REVIEW CANCEL_REVIEW"`
}

type UpdateEventAdminRequest struct {
	Title             *string      `json:"title,omitempty" validate:"omitempty,min=3,max=120"`
	Annotation        *string      `json:"annotation,omitempty" validate:"omitempty,min=20,max=2000"`
	Description       *string      `json:"description,omitempty" validate:"omitempty,min=20,max=7000"`
	Category          *int64       `json:"category,omitempty" validate:"omitempty,gt=0"`
	Location          *LocationDto `json:"location,omitempty"`
	EventDate         *APITime     `json:"eventDate,omitempty"`
	Paid              *bool        `json:"paid,omitempty"`
	ParticipantLimit  *int         `json:"participantLimit,omitempty" validate:"omitempty,gte=0"`
	RequestModeration *bool        `json:"requestModeration,omitempty"`
	StateAction       string       `json:"stateAction,omitempty" validate:"omitempty,oneof=PUBLISH_EVENT REJECT_EVENT"`
}

type EventFullDto struct {
	ID                int64       `json:"id"`
	Title             string      `json:"title"`
	Annotation        string      `json:"annotation"`
	Description       string      `json:"description"`
	Category          CategoryDto `json:"category"`
	Initiator         UserShort   `json:"initiator"`
	Location          LocationDto `json:"location"`
	EventDate         APITime     `json:"eventDate"`
	CreatedOn         APITime     `json:"createdOn"`
	PublishedOn       *APITime    `json:"publishedOn,omitempty"`
	Paid              bool        `json:"paid"`
	ParticipantLimit  int         `json:"participantLimit"`
	RequestModeration bool        `json:"requestModeration"`
	State             string      `json:"state"`
	ConfirmedRequests int         `json:"confirmedRequests"`
	Views             int64       `json:"views"`
}

type EventShortDto struct {
	ID                int64       `json:"id"`
	Title             string      `json:"title"`
	Annotation        string      `json:"annotation"`
	Category          CategoryDto `json:"category"`
	Initiator         UserShort   `json:"initiator"`
	EventDate         APITime     `json:"eventDate"`
	Paid              bool        `json:"paid"`
	ConfirmedRequests int         `json:"confirmedRequests"`
	Views             int64       `json:"views"`
}
