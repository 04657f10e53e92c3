package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/dnadash-backend/internal/model"
)

type AttemptRepository struct {
	pool *pgxpool.Pool
}

func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// Create inserts one attempt row. Attempts are append-only; there is no
// update path.
func (r *AttemptRepository) Create(ctx context.Context, a *model.GameAttempt) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO game_attempts (
			id, user_first_name, teacher_name, normalized_teacher_name,
			question_type, original_strand, user_answer, correct_answer,
			is_correct, level, score, timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, a.UserFirstName, a.TeacherName, a.NormalizedTeacherName,
		a.QuestionType, a.OriginalStrand, a.UserAnswer, a.CorrectAnswer,
		a.IsCorrect, a.Level, a.Score, a.Timestamp)
	return err
}

// ListGroupedByTeacher returns all attempts keyed by normalized teacher
// name. Groups come back in key order; within a group attempts are newest
// first.
func (r *AttemptRepository) ListGroupedByTeacher(ctx context.Context) (map[string][]model.GameAttempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_first_name, teacher_name, normalized_teacher_name,
		        question_type, original_strand, user_answer, correct_answer,
		        is_correct, level, score, timestamp
		 FROM game_attempts
		 ORDER BY normalized_teacher_name ASC, timestamp DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grouped := make(map[string][]model.GameAttempt)
	for rows.Next() {
		var a model.GameAttempt
		if err := rows.Scan(
			&a.ID, &a.UserFirstName, &a.TeacherName, &a.NormalizedTeacherName,
			&a.QuestionType, &a.OriginalStrand, &a.UserAnswer, &a.CorrectAnswer,
			&a.IsCorrect, &a.Level, &a.Score, &a.Timestamp,
		); err != nil {
			return nil, err
		}
		grouped[a.NormalizedTeacherName] = append(grouped[a.NormalizedTeacherName], a)
	}
	return grouped, rows.Err()
}

// DeleteByTeacher removes every attempt for a normalized teacher key.
// Deleting a key with no rows is a successful no-op.
func (r *AttemptRepository) DeleteByTeacher(ctx context.Context, normalizedTeacherName string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM game_attempts WHERE normalized_teacher_name = $1`,
		normalizedTeacherName)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
