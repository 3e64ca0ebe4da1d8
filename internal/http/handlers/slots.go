package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kingluffyxx/portfolio/internal/calcom"
	"github.com/kingluffyxx/portfolio/internal/observability/metrics"
	"github.com/kingluffyxx/portfolio/internal/schedule"
	"github.com/kingluffyxx/portfolio/pkg/logging"
)

// SlotFetcher is the subset of the Cal.com client the slots proxy needs.
type SlotFetcher interface {
	GetAvailableSlots(ctx context.Context, eventTypeID, startDate, endDate, timeZone string) (calcom.MonthSlots, error)
}

// SlotsHandler proxies slot-availability requests to the scheduling provider,
// with a short-TTL cache in front of the upstream call.
type SlotsHandler struct {
	fetcher SlotFetcher
	cache   *schedule.SlotCache
	metrics *metrics.SiteMetrics
	logger  *logging.Logger
}

// NewSlotsHandler creates the slots proxy handler. cache and m may be nil.
func NewSlotsHandler(fetcher SlotFetcher, cache *schedule.SlotCache, m *metrics.SiteMetrics, logger *logging.Logger) *SlotsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &SlotsHandler{fetcher: fetcher, cache: cache, metrics: m, logger: logger}
}

type slotsPayload struct {
	Slots calcom.MonthSlots `json:"slots"`
}

type slotsResponse struct {
	Data slotsPayload `json:"data"`
}

// GetSlots handles GET /api/booking-calendar/slots.
func (h *SlotsHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	eventTypeID := q.Get("eventTypeId")
	startTime := q.Get("startTime")
	endTime := q.Get("endTime")
	timeZone := q.Get("timeZone")
	if timeZone == "" {
		timeZone = schedule.DefaultTimezone
	}

	if eventTypeID == "" || startTime == "" || endTime == "" {
		h.metrics.ObserveSlotFetch("invalid", false)
		writeError(w, http.StatusBadRequest, "Missing required parameters")
		return
	}

	if body, ok := h.cache.Get(r.Context(), eventTypeID, startTime, endTime, timeZone); ok {
		h.metrics.ObserveSlotFetch("success", true)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		return
	}

	slots, err := h.fetcher.GetAvailableSlots(r.Context(), eventTypeID, startTime, endTime, timeZone)
	if err != nil {
		h.handleFetchError(w, err)
		return
	}

	resp := slotsResponse{Data: slotsPayload{Slots: slots}}
	body, err := json.Marshal(resp)
	if err != nil {
		h.metrics.ObserveSlotFetch("error", false)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.cache.Set(r.Context(), eventTypeID, startTime, endTime, timeZone, body)

	h.metrics.ObserveSlotFetch("success", false)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *SlotsHandler) handleFetchError(w http.ResponseWriter, err error) {
	if errors.Is(err, calcom.ErrNotConfigured) {
		h.metrics.ObserveSlotFetch("not_configured", false)
		writeError(w, http.StatusInternalServerError, "Cal.com API key not configured")
		return
	}
	var apiErr *calcom.APIError
	if errors.As(err, &apiErr) {
		h.metrics.ObserveSlotFetch("upstream_error", false)
		h.logger.Error("slot fetch rejected upstream", "status", apiErr.StatusCode, "error", apiErr.Message)
		writeError(w, apiErr.StatusCode, "Failed to fetch slots")
		return
	}
	h.metrics.ObserveSlotFetch("error", false)
	h.logger.Error("slot fetch failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
