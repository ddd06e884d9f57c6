package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dkotelnikov/eventory/internal/domain"
	"github.com/dkotelnikov/eventory/internal/transport/http/dto"
)

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrIncorrectParameters("invalid path param",
			fmt.Sprintf("%s must be a positive integer, got %q", name, raw))
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ErrIncorrectParameters("invalid query param",
			fmt.Sprintf("%s must be an integer, got %q", name, raw))
	}
	return n, nil
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrIncorrectParameters("invalid query param",
			fmt.Sprintf("%s must be a positive integer, got %q", name, raw))
	}
	return id, nil
}

func queryInt64List(r *http.Request, name string) ([]int64, error) {
	var out []int64
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, domain.ErrIncorrectParameters("invalid query param",
					fmt.Sprintf("%s must be a list of integers, got %q", name, part))
			}
			out = append(out, id)
		}
	}
	return out, nil
}

func queryStringList(r *http.Request, name string) []string {
	var out []string
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// rangeWindow reads the rangeStart/rangeEnd pair, both optional.
func rangeWindow(r *http.Request) (start, end *time.Time, err error) {
	if raw := r.URL.Query().Get("rangeStart"); raw != "" {
		t, perr := dto.ParseAPITime(raw)
		if perr != nil {
			return nil, nil, domain.ErrIncorrectParameters("invalid query param",
				"rangeStart must be "+dto.TimeLayout)
		}
		start = &t
	}
	if raw := r.URL.Query().Get("rangeEnd"); raw != "" {
		t, perr := dto.ParseAPITime(raw)
		if perr != nil {
			return nil, nil, domain.ErrIncorrectParameters("invalid query param",
				"rangeEnd must be "+dto.TimeLayout)
		}
		end = &t
	}
	return start, end, nil
}

func queryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.ErrIncorrectParameters("invalid query param",
			fmt.Sprintf("%s must be a boolean, got %q", name, raw))
	}
	return &b, nil
}
