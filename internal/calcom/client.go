// Package calcom is a REST client for the Cal.com v2 scheduling API, covering
// the two calls the booking widget needs: slot availability and booking creation.
package calcom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kingluffyxx/portfolio/pkg/logging"
)

const (
	defaultBaseURL = "https://api.cal.com/v2"
	defaultTimeout = 15 * time.Second

	// apiVersion pins the Cal.com API revision the payload shapes were written against.
	apiVersion = "2024-08-13"
)

// ErrNotConfigured is returned when no API key is set. Callers treat it as
// "feature disabled", not as a failure.
var ErrNotConfigured = errors.New("calcom: api key not configured")

// APIError carries a non-2xx upstream status so handlers can pass it through.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("calcom: api returned %d: %s", e.StatusCode, e.Message)
}

// Client wraps the Cal.com v2 REST endpoints used by the booking widget.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
}

// NewClient constructs a Cal.com client. An empty apiKey produces a client
// whose calls fail with ErrNotConfigured.
func NewClient(baseURL, apiKey string, logger *logging.Logger) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

// GetAvailableSlots fetches availability for an event type between two
// calendar days (YYYY-MM-DD, inclusive) in the given timezone. The returned
// map is keyed by day in that timezone.
func (c *Client) GetAvailableSlots(ctx context.Context, eventTypeID, startDate, endDate, timeZone string) (MonthSlots, error) {
	q := url.Values{}
	q.Set("eventTypeId", eventTypeID)
	q.Set("startTime", startDate+"T00:00:00.000Z")
	q.Set("endTime", endDate+"T23:59:59.999Z")
	if timeZone != "" {
		q.Set("timeZone", timeZone)
	}

	var envelope slotsEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/slots/available?"+q.Encode(), nil, &envelope); err != nil {
		return nil, fmt.Errorf("get available slots: %w", err)
	}

	slots := make(MonthSlots, len(envelope.Data.Slots))
	for day, daySlots := range envelope.Data.Slots {
		converted := make([]Slot, 0, len(daySlots))
		for _, s := range daySlots {
			if start := s.startTime(); start != "" {
				converted = append(converted, Slot{Time: start})
			}
		}
		slots[day] = converted
	}
	return slots, nil
}

// CreateBooking creates a booking and normalizes the response across the
// envelope variants Cal.com v2 returns.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (*Booking, error) {
	payload := map[string]any{
		"eventTypeId": req.EventTypeID,
		"start":       req.Start,
		"attendee": map[string]string{
			"name":     req.Name,
			"email":    req.Email,
			"timeZone": req.TimeZone,
			"language": req.Language,
		},
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		// Custom "notes" booking field when the event type defines one,
		// metadata as the fallback.
		payload["bookingFieldsResponses"] = map[string]string{"notes": notes}
		payload["metadata"] = map[string]string{"guestNotes": notes}
	}

	var envelope bookingEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/bookings", payload, &envelope); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	raw := envelope.Data
	if raw.UID == "" && raw.ID == 0 {
		raw = envelope.rawBooking
	}

	booking := &Booking{
		UID:       raw.UID,
		Title:     raw.Title,
		StartTime: raw.Start,
		EndTime:   raw.End,
		Attendees: raw.Attendees,
	}
	if booking.UID == "" && raw.ID != 0 {
		booking.UID = fmt.Sprintf("%d", raw.ID)
	}
	if booking.Title == "" {
		booking.Title = "Booking"
	}
	if booking.StartTime == "" {
		booking.StartTime = raw.StartTime
	}
	if booking.EndTime == "" {
		booking.EndTime = raw.EndTime
	}
	if len(booking.Attendees) == 0 {
		booking.Attendees = []Attendee{{Name: req.Name, Email: req.Email}}
	}
	return booking, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("cal-api-version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := upstreamMessage(respBody)
		c.logger.Warn("cal.com API non-2xx response", "status", resp.StatusCode, "path", path, "message", msg)
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if len(respBody) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func upstreamMessage(body []byte) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}
	}
	msg := string(body)
	if len(msg) > 300 {
		msg = msg[:300]
	}
	return msg
}
