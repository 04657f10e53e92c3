package model

import (
	"time"

	"github.com/stemsi/dnadash-backend/internal/genetics"
)

// GameAttempt is an immutable record of a single answer submission,
// correct or not. One row per submission, never updated.
type GameAttempt struct {
	ID                    string                `json:"id"`
	UserFirstName         string                `json:"user_first_name"`
	TeacherName           string                `json:"teacher_name"`
	NormalizedTeacherName string                `json:"normalized_teacher_name"`
	QuestionType          genetics.QuestionType `json:"question_type"`
	OriginalStrand        string                `json:"original_strand"`
	UserAnswer            string                `json:"user_answer"`
	CorrectAnswer         string                `json:"correct_answer"`
	IsCorrect             bool                  `json:"is_correct"`
	Level                 int                   `json:"level"`
	Score                 int                   `json:"score"`
	Timestamp             time.Time             `json:"timestamp"`
}

// CreateAttemptRequest is the payload for the direct ingest endpoint used
// by clients syncing attempts recorded while the backend was unreachable.
type CreateAttemptRequest struct {
	UserFirstName  string `json:"user_first_name" binding:"required,max=100"`
	TeacherName    string `json:"teacher_name" binding:"required,max=100"`
	QuestionType   string `json:"question_type" binding:"required,oneof=DNA_COMPLEMENT MRNA_TRANSCRIPTION"`
	OriginalStrand string `json:"original_strand" binding:"required,max=64,dna"`
	UserAnswer     string `json:"user_answer" binding:"max=64"`
	CorrectAnswer  string `json:"correct_answer" binding:"required,max=64"`
	IsCorrect      bool   `json:"is_correct"`
	Level          int    `json:"level" binding:"required,min=1"`
	Score          int    `json:"score" binding:"min=0"`
	Timestamp      string `json:"timestamp" binding:"omitempty"`
}
