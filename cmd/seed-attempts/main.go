package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/dnadash-backend/internal/config"
	"github.com/stemsi/dnadash-backend/internal/database"
	"github.com/stemsi/dnadash-backend/internal/genetics"
	"github.com/stemsi/dnadash-backend/internal/logger"
	"github.com/stemsi/dnadash-backend/internal/model"
	"github.com/stemsi/dnadash-backend/internal/repository"
)

// Seeds demo attempt rows so the teacher review dashboard has data to
// show during classroom setup.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	attemptRepo := repository.NewAttemptRepository(pool)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	students := []string{
		"Ava", "Ben", "Chloe", "Diego", "Emma",
		"Finn", "Grace", "Hector", "Isla", "Jayden",
	}
	teachers := cfg.TeacherNames
	questionTypes := []genetics.QuestionType{
		genetics.QuestionDNAComplement,
		genetics.QuestionMRNA,
	}

	fmt.Println("=== Seeding 40 Demo Attempts ===")

	successCount := 0
	for i := 0; i < 40; i++ {
		level := 1 + rng.Intn(len(cfg.Levels))
		levelCfg, _ := cfg.Level(level)
		strand := genetics.GenerateStrand(rng, levelCfg.Length)
		questionType := questionTypes[rng.Intn(len(questionTypes))]
		correct := genetics.ExpectedAnswer(strand, questionType)
		teacher := teachers[rng.Intn(len(teachers))]

		answer := correct
		isCorrect := true
		score := len(strand)*cfg.BasePointsPerBase + rng.Intn(levelCfg.Time)*cfg.TimeBonusMultiplier
		if i%3 == 0 {
			// Every third attempt fails with a scrambled answer.
			answer = correct[1:] + correct[:1]
			isCorrect = false
			score = 0
		}

		attempt := &model.GameAttempt{
			ID:                    uuid.NewString(),
			UserFirstName:         students[rng.Intn(len(students))],
			TeacherName:           teacher,
			NormalizedTeacherName: strings.ToLower(teacher),
			QuestionType:          questionType,
			OriginalStrand:        strand,
			UserAnswer:            answer,
			CorrectAnswer:         correct,
			IsCorrect:             isCorrect,
			Level:                 level,
			Score:                 score,
			Timestamp:             time.Now().Add(-time.Duration(rng.Intn(72)) * time.Hour),
		}

		if err := attemptRepo.Create(ctx, attempt); err != nil {
			log.Error().Err(err).Int("index", i).Msg("Failed to insert attempt")
			continue
		}
		successCount++
	}

	fmt.Printf("Seeded %d/40 attempts\n", successCount)
}
