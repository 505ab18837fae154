package worker

// dlq.go: dead letter queue.
// Failed jobs land in dlq:{original_queue} for inspection and, for e-mail,
// automatic requeue by the retry cron. Jobs that used up every requeue move
// to dlq:{original_queue}:agotados.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DLQPrefix       = "dlq:"
	ExhaustedSuffix = ":agotados"
)

// DLQEntry wraps a failed job with metadata for debugging.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"` // RFC 3339
	Attempts      int             `json:"attempts"`
}

// SendToDLQ pushes a failed job to the dead letter queue.
func SendToDLQ(ctx context.Context, q Queue, queue string, job Job, reason string) {
	pushDLQ(ctx, q, DLQPrefix+queue, DLQEntry{
		OriginalQueue: queue,
		JobType:       job.Type,
		Payload:       job.Payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
		Attempts:      job.Attempts,
	})
	log.Warn().
		Str("queue", queue).
		Str("job", job.Type).
		Str("reason", reason).
		Int("attempts", job.Attempts).
		Msg("dlq: job moved to dead letter queue")
}

func pushDLQ(ctx context.Context, q Queue, key string, entry DLQEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("dlq_key", key).Msg("dlq: failed to marshal entry")
		return
	}
	if err := q.LPush(ctx, key, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", key).Msg("dlq: failed to push entry")
	}
}

// DLQLength returns the number of entries waiting in a queue's DLQ.
func DLQLength(ctx context.Context, q Queue, queue string) (int64, error) {
	return q.LLen(ctx, DLQPrefix+queue).Result()
}
