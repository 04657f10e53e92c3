package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/dnadash-backend/internal/config"
	"github.com/stemsi/dnadash-backend/internal/repository"
	"github.com/stemsi/dnadash-backend/internal/service"
)

const (
	// MaxAttemptRetries bounds re-queueing before a payload moves to the
	// dead list.
	MaxAttemptRetries = 3

	attemptPollTimeout = 1 * time.Second
	attemptRetryDelay  = 5 * time.Second
)

// AttemptWorker consumes persist_attempts_queue and inserts attempt rows
// into PostgreSQL. Inserts that keep failing land on persist_attempts_dead
// so teacher data is recoverable after an outage.
type AttemptWorker struct {
	rdb         *redis.Client
	attemptRepo *repository.AttemptRepository
	log         zerolog.Logger
}

func NewAttemptWorker(rdb *redis.Client, attemptRepo *repository.AttemptRepository, log zerolog.Logger) *AttemptWorker {
	return &AttemptWorker{
		rdb:         rdb,
		attemptRepo: attemptRepo,
		log:         log.With().Str("component", "attempt_worker").Logger(),
	}
}

// Start begins the worker loop. Call in a goroutine; cancel ctx to stop.
func (w *AttemptWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *AttemptWorker) processNext(ctx context.Context) {
	result, err := w.rdb.BLPop(ctx, attemptPollTimeout, config.WorkerKey.PersistAttemptsQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}
	if len(result) < 2 {
		return
	}

	if retry := w.handlePayload(ctx, []byte(result[1])); retry {
		time.Sleep(attemptRetryDelay)
	}
}

// handlePayload inserts one queued attempt. Returns true when the payload
// was re-queued and the loop should back off.
func (w *AttemptWorker) handlePayload(ctx context.Context, raw []byte) bool {
	var env service.AttemptEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error, payload dropped to dead list")
		w.rdb.RPush(ctx, config.WorkerKey.PersistAttemptsDead, raw)
		return false
	}

	if err := w.attemptRepo.Create(ctx, &env.Attempt); err != nil {
		env.Retries++
		w.log.Error().Err(err).
			Str("attempt_id", env.Attempt.ID).
			Int("retries", env.Retries).
			Msg("Persist error")

		requeued, merr := json.Marshal(env)
		if merr != nil {
			requeued = raw
		}
		if env.Retries >= MaxAttemptRetries {
			w.rdb.RPush(ctx, config.WorkerKey.PersistAttemptsDead, requeued)
			return false
		}
		w.rdb.RPush(ctx, config.WorkerKey.PersistAttemptsQueue, requeued)
		return true
	}
	return false
}

// drain empties what is left of the queue during shutdown, one no-retry
// pass: anything that fails now goes straight to the dead list.
func (w *AttemptWorker) drain(ctx context.Context) {
	for {
		raw, err := w.rdb.LPop(ctx, config.WorkerKey.PersistAttemptsQueue).Result()
		if err != nil {
			return
		}

		var env service.AttemptEnvelope
		if jerr := json.Unmarshal([]byte(raw), &env); jerr != nil {
			w.rdb.RPush(ctx, config.WorkerKey.PersistAttemptsDead, raw)
			continue
		}
		if perr := w.attemptRepo.Create(ctx, &env.Attempt); perr != nil {
			w.rdb.RPush(ctx, config.WorkerKey.PersistAttemptsDead, raw)
		}
	}
}
