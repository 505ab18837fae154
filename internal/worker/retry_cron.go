package worker

// retry_cron.go
// Background goroutine that gives dead-lettered e-mail jobs another chance.
// It skips ticks while the SMTP circuit breaker is open, and parks jobs that
// already used MaxEmailAttempts in the exhausted list.

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"posmejia/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
	MaxEmailAttempts  = 5
)

type RetryCronConfig struct {
	Queue    Queue
	CB       *infra.CircuitBreaker
	Interval time.Duration
}

// StartRetryCron ticks until ctx is cancelled.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = retryTickInterval
	}
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

// processRetries moves up to retryBatchSize e-mail jobs out of the DLQ and
// returns how many went back to the queue.
func processRetries(ctx context.Context, cfg RetryCronConfig) int {
	if cfg.CB != nil && cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return 0
	}

	dlqKey := DLQPrefix + QueueEmail
	requeued := 0
	for i := 0; i < retryBatchSize; i++ {
		raw, err := cfg.Queue.RPop(ctx, dlqKey).Result()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to read DLQ")
			break
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Msg("retry_cron: dropping malformed DLQ entry")
			continue
		}
		if entry.Attempts >= MaxEmailAttempts {
			pushDLQ(ctx, cfg.Queue, dlqKey+ExhaustedSuffix, entry)
			log.Error().Str("job", entry.JobType).Int("attempts", entry.Attempts).Msg("retry_cron: max attempts exceeded")
			continue
		}

		job := Job{Type: entry.JobType, Payload: entry.Payload, Attempts: entry.Attempts}
		if err := pushJob(ctx, cfg.Queue, QueueEmail, job); err != nil {
			log.Error().Err(err).Msg("retry_cron: requeue failed")
			pushDLQ(ctx, cfg.Queue, dlqKey, entry)
			break
		}
		requeued++
	}
	if requeued > 0 {
		log.Info().Int("count", requeued).Msg("retry_cron: e-mail jobs requeued")
	}
	return requeued
}
