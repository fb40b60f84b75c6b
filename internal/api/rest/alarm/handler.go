package alarm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

const (
	// HeaderActorHost carries the caller hostname.
	HeaderActorHost = "X-Alarm-Actor-Host"
	// HeaderActorUser carries the caller username.
	HeaderActorUser = "X-Alarm-Actor-User"

	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 64 << 10
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	ListAlarms(ctx context.Context) ([]domain.Alarm, error)
	CreateAlarm(ctx context.Context, actor *domain.Actor, draft *domain.Draft) (string, error)
	ToggleAlarm(ctx context.Context, actor *domain.Actor, id string) error
	DeleteAlarm(ctx context.Context, actor *domain.Actor, id string) error
	StopRinging(ctx context.Context, actor *domain.Actor) error
	RingingStatus(ctx context.Context) (*domain.RemoteStatus, error)
}

// CreateRequest is the body of POST /api/alarms.
// Pointer fields distinguish missing values from zero values.
type CreateRequest struct {
	Hour    *int   `json:"hour"`
	Minute  *int   `json:"minute"`
	Label   string `json:"label,omitempty"`
	Vibrate *bool  `json:"vibrate,omitempty"`
}

// Result is the body returned by mutations.
type Result struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

var (
	errHourRequired   = errors.New("hour is required")
	errMinuteRequired = errors.New("minute is required")
)

// Handler serves the alarm REST API.
type Handler struct {
	// service provides the business logic for alarm operations.
	service Service
}

// NewHandler wires the provided service implementation into HTTP handlers.
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Routes returns a mux with every alarm route registered.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/alarms", h.handleList)
	mux.HandleFunc("POST /api/alarms", h.handleCreate)
	mux.HandleFunc("GET /api/alarms/ringing", h.handleStatus)
	mux.HandleFunc("POST /api/alarms/stop", h.handleStop)
	mux.HandleFunc("DELETE /api/alarms/{id}", h.handleDelete)
	mux.HandleFunc("PUT /api/alarms/{id}/toggle", h.handleToggle)

	return mux
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	alarms, err := h.service.ListAlarms(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	if alarms == nil {
		alarms = []domain.Alarm{}
	}

	writeJSON(r.Context(), w, http.StatusOK, alarms)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var request CreateRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&request); err != nil {
		writeError(r.Context(), w, fmt.Errorf("%w: decode body: %w", domain.ErrInvalidInput, err))
		return
	}

	draft, err := request.Draft()
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id, err := h.service.CreateAlarm(r.Context(), ActorFromRequest(r), draft)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, Result{Success: true, ID: id})
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ToggleAlarm(r.Context(), ActorFromRequest(r), r.PathValue("id")); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, Result{Success: true})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAlarm(r.Context(), ActorFromRequest(r), r.PathValue("id")); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, Result{Success: true})
}

func (h *Handler) handleStop(w http.ResponseWriter, r *http.Request) {
	if err := h.service.StopRinging(r.Context(), ActorFromRequest(r)); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, Result{Success: true})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.RingingStatus(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	if status == nil {
		status = new(domain.RemoteStatus)
	}

	writeJSON(r.Context(), w, http.StatusOK, status)
}

// Draft converts the request into a validated domain draft.
// A missing vibrate flag defaults to true.
func (c *CreateRequest) Draft() (*domain.Draft, error) {
	if c.Hour == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, errHourRequired)
	}

	if c.Minute == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, errMinuteRequired)
	}

	draft := &domain.Draft{
		Hour:    *c.Hour,
		Minute:  *c.Minute,
		Label:   c.Label,
		Vibrate: c.Vibrate == nil || *c.Vibrate,
	}

	if err := draft.Normalize(); err != nil {
		return nil, err
	}

	return draft, nil
}

// ActorFromRequest reads the caller identity headers, nil when both are absent.
func ActorFromRequest(r *http.Request) *domain.Actor {
	host, user := r.Header.Get(HeaderActorHost), r.Header.Get(HeaderActorUser)
	if host == "" && user == "" {
		return nil
	}

	return &domain.Actor{
		Hostname: host,
		Username: user,
	}
}

// StatusCode maps a domain error to an HTTP status code.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTransient):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	code := StatusCode(err)
	if code >= http.StatusInternalServerError {
		logger.ErrorKV(ctx, "Alarm request failed", "error", err)
	}

	writeJSON(ctx, w, code, Result{Success: false, Error: err.Error()})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.DebugKV(ctx, "Write response failed", "error", err)
	}
}
