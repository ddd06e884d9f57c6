package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/dkotelnikov/eventory/internal/domain"
	"github.com/dkotelnikov/eventory/internal/stats"
	"github.com/dkotelnikov/eventory/internal/stats/statdto"
	"github.com/dkotelnikov/eventory/internal/transport/http/response"
)

type Handler struct {
	svc *stats.Service
}

func New(svc *stats.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) SaveHit(w http.ResponseWriter, r *http.Request) {
	var hit statdto.EndpointHit
	if err := render.DecodeJSON(r.Body, &hit); err != nil {
		response.Err(w, domain.ErrIncorrectParameters("invalid hit body", err.Error()))
		return
	}
	if strings.TrimSpace(hit.App) == "" || strings.TrimSpace(hit.URI) == "" {
		response.Err(w, domain.ErrIncorrectParameters("invalid hit body", "app and uri are required"))
		return
	}
	if err := h.svc.SaveHit(r.Context(), hit); err != nil {
		response.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := time.ParseInLocation(statdto.TimeLayout, q.Get("start"), time.Local)
	if err != nil {
		response.Err(w, domain.ErrIncorrectParameters("invalid stats query", "start must be "+statdto.TimeLayout))
		return
	}
	end, err := time.ParseInLocation(statdto.TimeLayout, q.Get("end"), time.Local)
	if err != nil {
		response.Err(w, domain.ErrIncorrectParameters("invalid stats query", "end must be "+statdto.TimeLayout))
		return
	}

	var uris []string
	if raw := strings.TrimSpace(q.Get("uris")); raw != "" {
		uris = strings.Split(raw, ",")
	}
	unique := q.Get("unique") == "true"

	out, err := h.svc.ViewStats(r.Context(), start, end, uris, unique)
	if err != nil {
		response.Err(w, err)
		return
	}
	if out == nil {
		out = []statdto.ViewStats{}
	}
	// bare array body: part of the collaborator protocol
	response.JSON(w, http.StatusOK, out)
}

func Router(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/hit", h.SaveHit)
	r.Get("/stats", h.GetStats)

	return r
}
