// Package transport exposes the legacy-compatible operation surface over
// HTTP. It is thin JSON glue: every list it returns has already been
// through the synchronizer, and presentation concerns stay on the other
// side of the wire.
package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/seldt/wellspring/internal/caldate"
	"github.com/seldt/wellspring/internal/domain/activity"
	"github.com/seldt/wellspring/internal/ical"
)

// ownerHeader names the acting owner; a missing header falls back to a
// single-user default.
const (
	ownerHeader  = "X-Owner"
	defaultOwner = "local"
)

// Server wires HTTP handlers over the activity service.
type Server struct {
	service *activity.Service
	logger  *slog.Logger
}

// NewRouter creates the HTTP router.
func NewRouter(service *activity.Service, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{service: service, logger: logger}

	r := chi.NewRouter()
	r.Get("/health", srv.handleHealth)
	r.Post("/activities", srv.handleCreate)
	r.Get("/activities", srv.handleList)
	r.Patch("/activities/{legacyID}", srv.handleUpdate)
	r.Delete("/activities/{legacyID}", srv.handleDelete)
	r.Get("/calendar.ics", srv.handleExport)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type createResponse struct {
	LegacyID int64 `json:"legacy_id"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req activity.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	legacyID, err := s.service.Create(r.Context(), owner(r), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createResponse{LegacyID: legacyID})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	win, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := s.service.List(r.Context(), owner(r), win)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if list == nil {
		list = []activity.Activity{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	legacyID, ok := legacyIDParam(w, r)
	if !ok {
		return
	}

	var req activity.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.service.Update(r.Context(), owner(r), legacyID, req); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	legacyID, ok := legacyIDParam(w, r)
	if !ok {
		return
	}

	scope := activity.DeleteScope(r.URL.Query().Get("scope"))
	switch scope {
	case "", activity.DeleteSingle, activity.DeleteAll:
	default:
		writeError(w, http.StatusBadRequest, "scope must be single or all")
		return
	}

	if err := s.service.Delete(r.Context(), owner(r), legacyID, scope); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	win, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := s.service.List(r.Context(), owner(r), win)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	_, _ = w.Write([]byte(ical.Export(list)))
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var partial *activity.PartialFailureError
	switch {
	case errors.Is(err, activity.ErrActivityNotFound):
		// A transient, recoverable condition for the caller, not a fault.
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":     "activity not found",
			"transient": "true",
		})
	case errors.Is(err, activity.ErrInvalidInput), errors.Is(err, activity.ErrInvalidRecurrence):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &partial):
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":  partial.Error(),
			"step":   partial.Step,
			"action": "resynchronize",
		})
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func owner(r *http.Request) string {
	if o := r.Header.Get(ownerHeader); o != "" {
		return o
	}
	return defaultOwner
}

func legacyIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "legacyID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		writeError(w, http.StatusBadRequest, "legacy id must be a non-negative integer")
		return 0, false
	}
	return id, true
}

// windowFromQuery parses ?from=&to= into a Window. Both absent means nil
// (today); one absent collapses to a single-day window on the other.
func windowFromQuery(r *http.Request) (*activity.Window, error) {
	fromRaw := r.URL.Query().Get("from")
	toRaw := r.URL.Query().Get("to")
	if fromRaw == "" && toRaw == "" {
		return nil, nil
	}
	if fromRaw == "" {
		fromRaw = toRaw
	}
	if toRaw == "" {
		toRaw = fromRaw
	}

	from, err := caldate.ParseDay(fromRaw)
	if err != nil {
		return nil, errors.New("from must be YYYY-MM-DD")
	}
	to, err := caldate.ParseDay(toRaw)
	if err != nil {
		return nil, errors.New("to must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return nil, errors.New("to must not precede from")
	}
	return &activity.Window{From: from, To: to}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
