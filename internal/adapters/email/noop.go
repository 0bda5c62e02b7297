package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopSender stands in for Resend when SIU_RESEND_API_KEY is unset,
// so registration and decision mail can be exercised locally without
// delivering anything. Each send is logged instead.
type NoopSender struct{}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send logs the email but does not deliver it.
// PRE: req is a valid SendRequest
// POST: Returns a synthetic result without actual delivery
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	slog.Info("noop_email_send", "to", req.To, "subject", req.Subject)
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}

// SendBatch logs each email but delivers none of them. Used for the
// admin decision notifications, which go out one per applicant.
// PRE: reqs is a slice of SendRequests
// POST: Returns one synthetic result per request
func (s *NoopSender) SendBatch(_ context.Context, reqs []SendRequest) ([]SendResult, error) {
	var results []SendResult
	for i, req := range reqs {
		slog.Info("noop_email_batch", "index", i, "to", req.To, "subject", req.Subject)
		results = append(results, SendResult{
			MessageID: fmt.Sprintf("noop-batch-%d-%d", time.Now().UnixNano(), i),
			SentAt:    time.Now(),
		})
	}
	return results, nil
}
