package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/dnadash-backend/internal/genetics"
	"github.com/stemsi/dnadash-backend/internal/model"
	"github.com/stemsi/dnadash-backend/internal/repository"
	"github.com/stemsi/dnadash-backend/internal/roster"
)

// AttemptService covers the attempt read/delete surface and the direct
// ingest path used by clients syncing locally buffered attempts.
type AttemptService struct {
	attemptRepo *repository.AttemptRepository
	resolver    *roster.Resolver
	log         zerolog.Logger
}

func NewAttemptService(attemptRepo *repository.AttemptRepository, resolver *roster.Resolver, log zerolog.Logger) *AttemptService {
	return &AttemptService{
		attemptRepo: attemptRepo,
		resolver:    resolver,
		log:         log.With().Str("component", "attempt_service").Logger(),
	}
}

// Ingest stores an attempt submitted directly over the API. The teacher
// name is re-resolved server-side so offline-recorded attempts group under
// the same key as live ones.
func (s *AttemptService) Ingest(ctx context.Context, req *model.CreateAttemptRequest) (*model.GameAttempt, error) {
	ts := time.Now().UTC()
	if req.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339, req.Timestamp); err == nil {
			ts = parsed.UTC()
		}
	}

	attempt := &model.GameAttempt{
		ID:                    uuid.New().String(),
		UserFirstName:         req.UserFirstName,
		TeacherName:           s.resolver.FindClosestMatch(req.TeacherName),
		NormalizedTeacherName: s.resolver.Normalize(req.TeacherName),
		QuestionType:          genetics.QuestionType(req.QuestionType),
		OriginalStrand:        req.OriginalStrand,
		UserAnswer:            req.UserAnswer,
		CorrectAnswer:         req.CorrectAnswer,
		IsCorrect:             req.IsCorrect,
		Level:                 req.Level,
		Score:                 req.Score,
		Timestamp:             ts,
	}

	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		s.log.Error().Err(err).Msg("direct attempt insert failed")
		return nil, err
	}
	return attempt, nil
}

// ListGroupedByTeacher returns all attempts grouped by normalized key.
func (s *AttemptService) ListGroupedByTeacher(ctx context.Context) (map[string][]model.GameAttempt, error) {
	grouped, err := s.attemptRepo.ListGroupedByTeacher(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list attempts")
		return nil, err
	}
	return grouped, nil
}

// DeleteForTeacher clears one teacher's group. Idempotent: a key with no
// attempts deletes zero rows and succeeds.
func (s *AttemptService) DeleteForTeacher(ctx context.Context, normalizedTeacherName string) (int64, error) {
	deleted, err := s.attemptRepo.DeleteByTeacher(ctx, normalizedTeacherName)
	if err != nil {
		s.log.Error().Err(err).Str("teacher", normalizedTeacherName).Msg("failed to delete attempts")
		return 0, err
	}
	s.log.Info().Str("teacher", normalizedTeacherName).Int64("deleted", deleted).Msg("teacher attempts cleared")
	return deleted, nil
}
