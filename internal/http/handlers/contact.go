package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kingluffyxx/portfolio/internal/contact"
	"github.com/kingluffyxx/portfolio/internal/observability/metrics"
	"github.com/kingluffyxx/portfolio/pkg/logging"
)

// ContactHandler accepts contact-form submissions and relays them by email.
type ContactHandler struct {
	service *contact.Service
	metrics *metrics.SiteMetrics
	logger  *logging.Logger
}

// NewContactHandler creates the contact handler. m may be nil.
func NewContactHandler(service *contact.Service, m *metrics.SiteMetrics, logger *logging.Logger) *ContactHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ContactHandler{service: service, metrics: m, logger: logger}
}

type contactRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Subject        string `json:"subject"`
	Message        string `json:"message"`
	TurnstileToken string `json:"turnstileToken"`
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveContact("invalid")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Process(r.Context(), contact.Submission{
		Name:           req.Name,
		Email:          req.Email,
		Subject:        req.Subject,
		Message:        req.Message,
		TurnstileToken: req.TurnstileToken,
		RemoteIP:       remoteIP(r),
	})
	if err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			h.metrics.ObserveContact("invalid")
			writeError(w, http.StatusBadRequest, verr.Reason)
			return
		}
		h.metrics.ObserveContact("error")
		h.logger.Error("contact relay failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to send email")
		return
	}

	h.metrics.ObserveContact("success")
	if result.DevMode {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "dev": true})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
