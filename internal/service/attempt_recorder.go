package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/dnadash-backend/internal/config"
	"github.com/stemsi/dnadash-backend/internal/model"
	"github.com/stemsi/dnadash-backend/internal/repository"
)

// AttemptEnvelope wraps a queued attempt with its retry count. The worker
// re-queues failed inserts and moves them to the dead list after
// MaxAttemptRetries.
type AttemptEnvelope struct {
	Attempt model.GameAttempt `json:"attempt"`
	Retries int               `json:"retries"`
}

// AttemptRecorder implements game.AttemptSink by queueing attempts in
// Redis for the background worker. Failures never propagate: if the queue
// is down it falls back to a direct insert, and if that fails too the
// attempt is logged and dropped — gameplay must not notice.
type AttemptRecorder struct {
	rdb         *redis.Client
	attemptRepo *repository.AttemptRepository
	log         zerolog.Logger
}

func NewAttemptRecorder(rdb *redis.Client, attemptRepo *repository.AttemptRepository, log zerolog.Logger) *AttemptRecorder {
	return &AttemptRecorder{
		rdb:         rdb,
		attemptRepo: attemptRepo,
		log:         log.With().Str("component", "attempt_recorder").Logger(),
	}
}

// Record queues one attempt for persistence.
func (r *AttemptRecorder) Record(ctx context.Context, attempt model.GameAttempt) {
	payload, err := json.Marshal(AttemptEnvelope{Attempt: attempt})
	if err != nil {
		r.log.Error().Err(err).Str("attempt_id", attempt.ID).Msg("marshal attempt failed")
		return
	}

	err = r.rdb.LPush(ctx, config.WorkerKey.PersistAttemptsQueue, payload).Err()
	if err == nil {
		return
	}
	r.log.Warn().Err(err).Str("attempt_id", attempt.ID).Msg("queue push failed, inserting directly")

	if err := r.attemptRepo.Create(ctx, &attempt); err != nil {
		r.log.Error().Err(err).Str("attempt_id", attempt.ID).Msg("direct insert failed, attempt lost")
	}
}
