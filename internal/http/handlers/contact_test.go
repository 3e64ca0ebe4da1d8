package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kingluffyxx/portfolio/internal/contact"
	"github.com/kingluffyxx/portfolio/internal/notify"
)

type recordingSender struct {
	sent []notify.EmailMessage
	err  error
}

func (s *recordingSender) Send(ctx context.Context, msg notify.EmailMessage) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func postContact(t *testing.T, h *ContactHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Real-Ip", "203.0.113.7")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

const validContact = `{"name":"Jane","email":"jane@example.com","subject":"Hello","message":"Hi there"}`

func TestContactSubmit_Success(t *testing.T) {
	sender := &recordingSender{}
	svc := contact.NewService(sender, nil, "owner@example.com", nil)
	h := NewContactHandler(svc, nil, nil)

	rec := postContact(t, h, validContact)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != true {
		t.Fatalf("expected success, got %v", body)
	}
	if _, hasDev := body["dev"]; hasDev {
		t.Fatalf("did not expect dev flag: %v", body)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected owner + confirmation emails, got %d", len(sender.sent))
	}
}

func TestContactSubmit_DevMode(t *testing.T) {
	svc := contact.NewService(nil, nil, "owner@example.com", nil)
	h := NewContactHandler(svc, nil, nil)

	rec := postContact(t, h, validContact)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["success"] != true || body["dev"] != true {
		t.Fatalf("expected dev-mode success, got %v", body)
	}
}

func TestContactSubmit_MissingFields(t *testing.T) {
	svc := contact.NewService(nil, nil, "owner@example.com", nil)
	h := NewContactHandler(svc, nil, nil)

	rec := postContact(t, h, `{"name":"Jane","email":"jane@example.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "All fields are required" {
		t.Fatalf("unexpected error message %q", body["error"])
	}
}

func TestContactSubmit_InvalidEmail(t *testing.T) {
	svc := contact.NewService(nil, nil, "owner@example.com", nil)
	h := NewContactHandler(svc, nil, nil)

	rec := postContact(t, h, `{"name":"Jane","email":"not-an-email","subject":"Hello","message":"Hi"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "Invalid email format" {
		t.Fatalf("unexpected error message %q", body["error"])
	}
}

func TestContactSubmit_RelayFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	svc := contact.NewService(sender, nil, "owner@example.com", nil)
	h := NewContactHandler(svc, nil, nil)

	rec := postContact(t, h, validContact)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "Failed to send email" {
		t.Fatalf("unexpected error message %q", body["error"])
	}
}

func TestContactSubmit_InvalidBody(t *testing.T) {
	svc := contact.NewService(nil, nil, "owner@example.com", nil)
	h := NewContactHandler(svc, nil, nil)

	rec := postContact(t, h, `{"name":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
