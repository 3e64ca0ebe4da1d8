// Package contact relays validated contact-form submissions to the site owner
// through a transactional email provider, optionally behind a Turnstile check.
package contact

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/kingluffyxx/portfolio/internal/notify"
	"github.com/kingluffyxx/portfolio/pkg/logging"
)

// emailPattern is the same permissive shape check the form applies client-side.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Verifier abstracts the bot-mitigation check.
type Verifier interface {
	Enabled() bool
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// Submission is one contact-form post.
type Submission struct {
	Name           string
	Email          string
	Subject        string
	Message        string
	TurnstileToken string
	RemoteIP       string
}

// Result reports a processed submission. DevMode is set when no email
// provider is configured and the message was accepted without sending.
type Result struct {
	DevMode bool
}

// ValidationError marks user-correctable input problems.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Service validates and relays contact submissions.
type Service struct {
	sender   notify.EmailSender
	verifier Verifier
	toEmail  string
	logger   *logging.Logger
}

// NewService constructs the relay. A nil sender puts the service in dev mode;
// a nil or disabled verifier skips bot mitigation.
func NewService(sender notify.EmailSender, verifier Verifier, toEmail string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		sender:   sender,
		verifier: verifier,
		toEmail:  toEmail,
		logger:   logger,
	}
}

// Process validates a submission, verifies the challenge token when enabled,
// and relays the message. A best-effort confirmation copy goes back to the
// sender; its failure is logged and never surfaced.
func (s *Service) Process(ctx context.Context, sub Submission) (*Result, error) {
	if err := validate(sub); err != nil {
		return nil, err
	}

	if s.verifier != nil && s.verifier.Enabled() {
		if strings.TrimSpace(sub.TurnstileToken) == "" {
			return nil, &ValidationError{Reason: "CAPTCHA verification required"}
		}
		ok, err := s.verifier.Verify(ctx, sub.TurnstileToken, sub.RemoteIP)
		if err != nil {
			s.logger.Error("turnstile verification error", "error", err)
		}
		if !ok {
			return nil, &ValidationError{Reason: "CAPTCHA verification failed"}
		}
	}

	if s.sender == nil {
		s.logger.Warn("email provider not configured, message not sent", "from", sub.Email)
		return &Result{DevMode: true}, nil
	}

	if err := s.sender.Send(ctx, ownerMessage(s.toEmail, sub)); err != nil {
		return nil, fmt.Errorf("contact: relay message: %w", err)
	}

	if err := s.sender.Send(ctx, confirmationMessage(sub)); err != nil {
		// Best effort only.
		s.logger.Warn("confirmation email failed", "error", err, "to", sub.Email)
	}

	return &Result{}, nil
}

func validate(sub Submission) error {
	if strings.TrimSpace(sub.Name) == "" ||
		strings.TrimSpace(sub.Email) == "" ||
		strings.TrimSpace(sub.Subject) == "" ||
		strings.TrimSpace(sub.Message) == "" {
		return &ValidationError{Reason: "All fields are required"}
	}
	if !emailPattern.MatchString(sub.Email) {
		return &ValidationError{Reason: "Invalid email format"}
	}
	return nil
}

func ownerMessage(to string, sub Submission) notify.EmailMessage {
	body := fmt.Sprintf(
		"New message from your portfolio\n\nFrom: %s\nEmail: %s\nSubject: %s\n\n%s\n",
		sub.Name, sub.Email, sub.Subject, sub.Message,
	)
	htmlBody := fmt.Sprintf(
		`<h2>New message from your portfolio</h2>
<p><strong>From:</strong> %s</p>
<p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
<p><strong>Subject:</strong> %s</p>
<div style="background-color:#f4f4f5;padding:20px;border-radius:8px;">
<p style="white-space:pre-wrap;">%s</p>
</div>`,
		html.EscapeString(sub.Name),
		html.EscapeString(sub.Email), html.EscapeString(sub.Email),
		html.EscapeString(sub.Subject),
		html.EscapeString(sub.Message),
	)
	return notify.EmailMessage{
		To:      to,
		Subject: "[Portfolio] " + sub.Subject,
		Body:    body,
		HTML:    htmlBody,
		ReplyTo: sub.Email,
	}
}

func confirmationMessage(sub Submission) notify.EmailMessage {
	body := fmt.Sprintf(
		"Hi %s,\n\nI have received your message and will get back to you as soon as possible.\n\nYour message:\nSubject: %s\n\n%s\n",
		sub.Name, sub.Subject, sub.Message,
	)
	htmlBody := fmt.Sprintf(
		`<h2>Thank you for your message!</h2>
<p>Hi %s,</p>
<p>I have received your message and will get back to you as soon as possible.</p>
<div style="background-color:#f4f4f5;padding:20px;border-radius:8px;">
<p><strong>Subject:</strong> %s</p>
<p style="white-space:pre-wrap;">%s</p>
</div>`,
		html.EscapeString(sub.Name),
		html.EscapeString(sub.Subject),
		html.EscapeString(sub.Message),
	)
	return notify.EmailMessage{
		To:      sub.Email,
		ToName:  sub.Name,
		Subject: "Message received",
		Body:    body,
		HTML:    htmlBody,
	}
}
