package response

import (
	"encoding/json"
	"errors"
	"net/http"

	zlog "github.com/rs/zerolog/log"

	"github.com/dkotelnikov/eventory/internal/domain"
)

// Envelope is the success envelope: {"data": ...}
type Envelope struct {
	Data any `json:"data,omitempty"`
}

// ApiError is the failure payload shared by every endpoint:
// {"status": "...", "message": "...", "reason": "...", "errors": [...]}
type ApiError struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Reason  string   `json:"reason"`
	Errors  []string `json:"errors"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Data wraps payload with {"data": ...}
func Data(w http.ResponseWriter, status int, payload any) {
	JSON(w, status, Envelope{Data: payload})
}

// Fail renders an ApiError for statuses with no domain error behind them,
// auth rejections mostly.
func Fail(w http.ResponseWriter, status int, message, reason string) {
	JSON(w, status, ApiError{
		Status:  http.StatusText(status),
		Message: message,
		Reason:  reason,
		Errors:  []string{message},
	})
}

// Err renders err as an ApiError. Unknown error types stay in the logs and
// surface as a generic internal error.
func Err(w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	var ae *domain.AppError
	if errors.As(err, &ae) {
		status := statusFromKind(ae.Kind)
		JSON(w, status, ApiError{
			Status:  http.StatusText(status),
			Message: ae.Message,
			Reason:  ae.Reason,
			Errors:  []string{ae.Message},
		})
		return
	}

	zlog.Error().Err(err).Msg("unhandled error")
	JSON(w, http.StatusInternalServerError, ApiError{
		Status:  http.StatusText(http.StatusInternalServerError),
		Message: "internal error",
		Reason:  "INTERNAL_SERVER_ERROR",
		Errors:  []string{"internal error"},
	})
}

func statusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindIncorrectParameters, domain.KindTemporal:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
