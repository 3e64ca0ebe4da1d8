package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/kingluffyxx/portfolio/internal/calcom"
	"github.com/kingluffyxx/portfolio/internal/observability/metrics"
	"github.com/kingluffyxx/portfolio/internal/schedule"
	"github.com/kingluffyxx/portfolio/pkg/logging"
)

// BookingCreator is the subset of the Cal.com client the booking proxy needs.
type BookingCreator interface {
	CreateBooking(ctx context.Context, req calcom.BookingRequest) (*calcom.Booking, error)
}

// BookHandler proxies booking creation to the scheduling provider.
type BookHandler struct {
	creator BookingCreator
	metrics *metrics.SiteMetrics
	logger  *logging.Logger
}

// NewBookHandler creates the booking proxy handler. m may be nil.
func NewBookHandler(creator BookingCreator, m *metrics.SiteMetrics, logger *logging.Logger) *BookHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &BookHandler{creator: creator, metrics: m, logger: logger}
}

// eventTypeID accepts both a JSON number and a numeric string, since widget
// builds have sent either over time.
type eventTypeID int

func (e *eventTypeID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*e = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*e = eventTypeID(n)
	return nil
}

type bookRequest struct {
	EventTypeID eventTypeID `json:"eventTypeId"`
	Start       string      `json:"start"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Notes       string      `json:"notes"`
	TimeZone    string      `json:"timeZone"`
	Language    string      `json:"language"`
}

// CreateBooking handles POST /api/booking-calendar/book.
func (h *BookHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveBooking("invalid")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.EventTypeID == 0 || req.Start == "" || req.Name == "" || req.Email == "" {
		h.metrics.ObserveBooking("invalid")
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.TimeZone == "" {
		req.TimeZone = schedule.DefaultTimezone
	}
	if req.Language == "" {
		req.Language = "fr"
	}

	booking, err := h.creator.CreateBooking(r.Context(), calcom.BookingRequest{
		EventTypeID: int(req.EventTypeID),
		Start:       req.Start,
		Name:        req.Name,
		Email:       req.Email,
		Notes:       req.Notes,
		TimeZone:    req.TimeZone,
		Language:    req.Language,
	})
	if err != nil {
		h.handleBookError(w, err)
		return
	}

	h.metrics.ObserveBooking("success")
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    booking,
	})
}

func (h *BookHandler) handleBookError(w http.ResponseWriter, err error) {
	if errors.Is(err, calcom.ErrNotConfigured) {
		h.metrics.ObserveBooking("not_configured")
		writeError(w, http.StatusInternalServerError, "Cal.com API key not configured")
		return
	}
	var apiErr *calcom.APIError
	if errors.As(err, &apiErr) {
		h.metrics.ObserveBooking("upstream_error")
		h.logger.Error("booking rejected upstream", "status", apiErr.StatusCode, "error", apiErr.Message)
		message := apiErr.Message
		if message == "" {
			message = "Failed to create booking"
		}
		writeError(w, apiErr.StatusCode, message)
		return
	}
	h.metrics.ObserveBooking("error")
	h.logger.Error("booking failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
