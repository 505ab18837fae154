package worker

// email_worker.go
// Mails finished report PDFs. Sends go through the mailer's circuit breaker;
// a job that still fails after the in-process retries goes to the DLQ and is
// picked up again by the retry cron.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

// ReporteSender is implemented by infra.Mailer.
type ReporteSender interface {
	SendReporte(to, subject, body, pdfPath string) error
}

type EmailWorker struct {
	sender   ReporteSender
	attempts int
	backoff  time.Duration
}

func NewEmailWorker(sender ReporteSender) *EmailWorker {
	return &EmailWorker{sender: sender, attempts: 3, backoff: time.Second}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: invalid payload: %w", err)
	}
	if payload.ToEmail == "" {
		log.Warn().Str("job", JobEmail).Msg("email_worker: empty to_email, skipping")
		return nil
	}

	err := withRetry(ctx, w.attempts, w.backoff, func(attempt int) error {
		err := w.sender.SendReporte(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).Str("to", payload.ToEmail).Msg("email_worker: send failed")
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("email_worker: send to %s: %w", payload.ToEmail, err)
	}
	log.Info().Str("job", JobEmail).Str("to", payload.ToEmail).Msg("email_worker: report sent")
	return nil
}
