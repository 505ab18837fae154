package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueReportes = "jobs:reportes"
	QueueEmail    = "jobs:email"

	JobReportePDF = "reporte_pdf"
	JobEmail      = "email"
)

// Queue is the subset of go-redis the pool needs; *redis.Client satisfies it.
type Queue interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	RPop(ctx context.Context, key string) *redis.StringCmd
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
	LLen(ctx context.Context, key string) *redis.IntCmd
}

// Job is the generic envelope for all async tasks. Attempts counts earlier
// failed runs and survives a trip through the dead letter queue.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts,omitempty"`
}

// Handler processes one job payload. A returned error sends the job to the
// dead letter queue.
type Handler interface {
	Process(ctx context.Context, raw json.RawMessage) error
}

// Dispatcher enqueues async jobs into Redis lists.
type Dispatcher struct {
	q Queue
}

func NewDispatcher(q Queue) *Dispatcher {
	return &Dispatcher{q: q}
}

func (d *Dispatcher) EnqueueReportePDF(ctx context.Context, p ReportePDFPayload) error {
	return d.enqueue(ctx, QueueReportes, JobReportePDF, p)
}

func (d *Dispatcher) EnqueueEmail(ctx context.Context, p EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, JobEmail, p)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return pushJob(ctx, d.q, queue, Job{Type: jobType, Payload: data})
}

func pushJob(ctx context.Context, q Queue, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if err := q.LPush(ctx, queue, encoded).Err(); err != nil {
		return fmt.Errorf("enqueue %s: %w", queue, err)
	}
	return nil
}

// Pool consumes the job queues with BRPOP and routes each job by type.
type Pool struct {
	q        Queue
	handlers map[string]Handler
	wg       sync.WaitGroup
}

func NewPool(q Queue, handlers map[string]Handler) *Pool {
	return &Pool{q: q, handlers: handlers}
}

// Start launches n goroutines; each blocks on BRPOP so idle workers cost
// nothing. They stop when ctx is cancelled; Wait blocks until they have.
func (p *Pool) Start(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			p.run(ctx, id)
		}(i)
	}
	log.Info().Msgf("worker pool started with %d workers", n)
}

func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	queues := []string{QueueReportes, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Waits up to 5s, then loops to check ctx.
			result, err := p.q.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
					log.Warn().Err(err).Int("worker", id).Msg("worker: BRPOP failed")
					time.Sleep(time.Second)
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			p.processJob(ctx, result[0], result[1])
		}
	}
}

func (p *Pool) processJob(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	h, ok := p.handlers[job.Type]
	if !ok {
		SendToDLQ(ctx, p.q, queue, job, "no handler for job type")
		return
	}

	start := time.Now()
	if err := h.Process(ctx, job.Payload); err != nil {
		job.Attempts++
		SendToDLQ(ctx, p.q, queue, job, err.Error())
		return
	}
	log.Info().
		Str("job", job.Type).
		Str("queue", queue).
		Dur("took", time.Since(start)).
		Msg("job processed")
}

// withRetry calls fn up to maxAttempts times, sleeping base, 2*base, ...
// between attempts. Returns the last error when every attempt fails.
func withRetry(ctx context.Context, maxAttempts int, base time.Duration, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := base * time.Duration(1<<uint(i-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
