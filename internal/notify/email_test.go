package notify

import (
	"context"
	"strings"
	"testing"
)

func TestNewSendGridSender_NilWithoutAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "",
		FromEmail: "test@example.com",
	}, nil)

	if sender != nil {
		t.Error("expected nil sender when API key is empty")
	}
}

func TestNewSendGridSender_DefaultFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "test@example.com",
	}, nil)

	if sender == nil {
		t.Fatal("expected non-nil sender")
	}
	if sender.fromName != "Technosurge" {
		t.Errorf("expected default from name 'Technosurge', got %q", sender.fromName)
	}
}

func TestNewSMTPSender_NilWithoutCredentials(t *testing.T) {
	if s := NewSMTPSender(SMTPConfig{}, nil); s != nil {
		t.Error("expected nil sender without credentials")
	}
	if s := NewSMTPSender(SMTPConfig{Username: "user@gmail.com"}, nil); s != nil {
		t.Error("expected nil sender without password")
	}
}

func TestNewSMTPSender_Defaults(t *testing.T) {
	sender := NewSMTPSender(SMTPConfig{
		Username: "user@gmail.com",
		Password: "app-password",
	}, nil)

	if sender == nil {
		t.Fatal("expected non-nil sender")
	}
	if sender.host != "smtp.gmail.com" {
		t.Errorf("expected default host smtp.gmail.com, got %q", sender.host)
	}
	if sender.port != 465 {
		t.Errorf("expected default port 465, got %d", sender.port)
	}
}

func TestSMTPSender_BuildMessage(t *testing.T) {
	sender := NewSMTPSender(SMTPConfig{
		Username: "user@gmail.com",
		Password: "app-password",
		FromName: "Technosurge",
	}, nil)

	raw := sender.buildMessage(EmailMessage{
		To:      "alice@example.com",
		Subject: "Thanks for your interest",
		Body:    "See you at the demo.",
	})

	for _, want := range []string{
		"From: Technosurge <user@gmail.com>\r\n",
		"To: alice@example.com\r\n",
		"Subject: Thanks for your interest\r\n",
		"\r\n\r\nSee you at the demo.",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q:\n%s", want, raw)
		}
	}
}

func TestNewSESSender_NilWithoutClient(t *testing.T) {
	if s := NewSESSender(nil, SESConfig{FromEmail: "x@y.z"}, nil); s != nil {
		t.Error("expected nil sender without SES client")
	}
}

func TestStubEmailSender_Send(t *testing.T) {
	s := NewStubEmailSender(nil)
	if err := s.Send(context.Background(), EmailMessage{To: "x@y.z"}); err != nil {
		t.Errorf("stub send returned error: %v", err)
	}
}
