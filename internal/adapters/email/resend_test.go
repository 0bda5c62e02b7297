package email

import "testing"

func TestReplyToDefaultsFromSender(t *testing.T) {
	s := NewResendSender("key", "SIU Portal <noreply@siuportal.example>", "ukm@kampus.ac.id")

	if got := s.replyToFor(SendRequest{}); got != "ukm@kampus.ac.id" {
		t.Errorf("got reply-to %q, want sender default", got)
	}
	if got := s.replyToFor(SendRequest{ReplyTo: "pembina@kampus.ac.id"}); got != "pembina@kampus.ac.id" {
		t.Errorf("got reply-to %q, want per-message override", got)
	}
}

func TestReplyToEmptyWhenUnconfigured(t *testing.T) {
	s := NewResendSender("key", "SIU Portal <noreply@siuportal.example>", "")
	if got := s.replyToFor(SendRequest{}); got != "" {
		t.Errorf("got reply-to %q, want empty", got)
	}
}
