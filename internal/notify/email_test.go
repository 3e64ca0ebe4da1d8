package notify

import (
	"context"
	"testing"

	"github.com/kingluffyxx/portfolio/pkg/logging"
)

func TestNewResendSender_RequiresAPIKey(t *testing.T) {
	if sender := NewResendSender("", "from@example.com", logging.Default()); sender != nil {
		t.Fatal("expected nil sender without API key")
	}
}

func TestNewResendSender_DefaultFrom(t *testing.T) {
	sender := NewResendSender("re_test_key", "", logging.Default())
	if sender == nil {
		t.Fatal("expected sender")
	}
	if sender.from == "" {
		t.Fatal("expected default from address")
	}
}

func TestResendSender_NilSend(t *testing.T) {
	var sender *ResendSender
	if err := sender.Send(context.Background(), EmailMessage{To: "a@b.c"}); err == nil {
		t.Fatal("expected error from nil sender")
	}
}

func TestNewSESSender_RequiresClient(t *testing.T) {
	if sender := NewSESSender(nil, SESConfig{FromEmail: "from@example.com"}, logging.Default()); sender != nil {
		t.Fatal("expected nil sender without client")
	}
}

func TestStubEmailSender(t *testing.T) {
	sender := NewStubEmailSender(nil)
	err := sender.Send(context.Background(), EmailMessage{
		To:      "visitor@example.com",
		Subject: "hello",
		Body:    "test",
	})
	if err != nil {
		t.Fatalf("stub send error = %v", err)
	}
}
