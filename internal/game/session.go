// Package game holds the per-player session state machine: level
// progression, lives, score, the countdown timer, and the attempt records
// emitted on every submission.
//
// A session is mutated by discrete events only (start, begin, tick, submit,
// advance), one at a time under the session mutex. Asynchronous work —
// flavor-text fetches and the ticker goroutine — re-enters through methods
// that carry the round token of the round they were started for; a stale
// token means the session moved on and the event is discarded.
package game

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/dnadash-backend/internal/config"
	"github.com/stemsi/dnadash-backend/internal/flavor"
	"github.com/stemsi/dnadash-backend/internal/genetics"
	"github.com/stemsi/dnadash-backend/internal/model"
)

// Phase is the session's position in the game flow.
type Phase string

const (
	PhaseStart         Phase = "START"
	PhaseBriefing      Phase = "MISSION_BRIEFING"
	PhasePlaying       Phase = "PLAYING"
	PhaseLevelComplete Phase = "LEVEL_COMPLETE"
	PhaseGameOver      Phase = "GAME_OVER"
)

// OverReason distinguishes the two game-over variants.
type OverReason string

const (
	OverLivesExhausted OverReason = "LIVES_EXHAUSTED"
	OverCompleted      OverReason = "COMPLETED"
)

const (
	feedbackIncorrect = "Incorrect sequence!"
	feedbackTimeUp    = "Time's up!"
	feedbackCompleted = "Congratulations! You've completed all sequences!"
)

// Player identifies who is playing this session.
type Player struct {
	FirstName             string
	TeacherName           string
	NormalizedTeacherName string
}

// AttemptSink receives one record per submission. Implementations must be
// non-fatal: a sink failure is logged by the implementation and never
// reaches gameplay.
type AttemptSink interface {
	Record(ctx context.Context, attempt model.GameAttempt)
}

// HighScoreStore is the injected high-score persistence. The session never
// touches storage except through this interface.
type HighScoreStore interface {
	Get(ctx context.Context, player Player) (int, error)
	Set(ctx context.Context, player Player, score int) error
}

// Deps groups the session's external collaborators.
type Deps struct {
	Flavor     flavor.Provider
	Attempts   AttemptSink
	HighScores HighScoreStore
	Rand       *rand.Rand
	Log        zerolog.Logger
}

// Session is one player's game. Safe for concurrent use; every public
// method takes the session lock.
type Session struct {
	ID     string
	Player Player

	cfg  *config.Config
	deps Deps
	log  zerolog.Logger

	mu            sync.Mutex
	phase         Phase
	level         int
	lives         int
	score         int
	highScore     int
	strand        string
	answer        string
	questionType  genetics.QuestionType
	remaining     int
	round         uint64
	briefing      flavor.Result
	funFact       flavor.Result
	feedback      string
	overReason    OverReason
	subscribers   map[chan Event]struct{}
}

// NewSession creates a session in the START phase and loads the player's
// stored high score. A store failure just means the high score shows as 0.
func NewSession(ctx context.Context, player Player, cfg *config.Config, deps Deps) *Session {
	s := &Session{
		ID:          uuid.New().String(),
		Player:      player,
		cfg:         cfg,
		deps:        deps,
		phase:       PhaseStart,
		level:       1,
		lives:       cfg.InitialLives,
		subscribers: make(map[chan Event]struct{}),
	}
	s.log = deps.Log.With().
		Str("component", "game_session").
		Str("session_id", s.ID).
		Logger()

	if hs, err := deps.HighScores.Get(ctx, player); err == nil {
		s.highScore = hs
	} else {
		s.log.Warn().Err(err).Msg("high score load failed")
	}
	return s
}

// Round returns the current round token. Ticker goroutines capture it once
// and pass it back on every tick.
func (s *Session) Round() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// StartGame resets lives, score, and level, then prepares level 1. Any
// outstanding async work from a previous round is invalidated by the round
// bump. Valid from START and GAME_OVER (replay); calling it mid-game is a
// restart by design, matching the reset semantics of a new play-through.
func (s *Session) StartGame(ctx context.Context) Snapshot {
	s.mu.Lock()
	s.score = 0
	s.lives = s.cfg.InitialLives
	s.overReason = ""
	s.feedback = ""
	s.funFact = flavor.Result{}
	round := s.prepareLevelLocked(1)
	s.mu.Unlock()

	s.fetchBriefing(ctx, round)
	return s.State()
}

// AdvanceLevel moves LEVEL_COMPLETE to the next level's briefing, or to the
// COMPLETED game over when the last level was just cleared.
func (s *Session) AdvanceLevel(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	if s.phase != PhaseLevelComplete {
		s.mu.Unlock()
		return s.State(), ErrWrongPhase
	}

	next := s.level + 1
	if next > s.cfg.MaxLevel() {
		s.gameOverLocked(OverCompleted, feedbackCompleted)
		s.mu.Unlock()
		return s.State(), nil
	}

	round := s.prepareLevelLocked(next)
	s.mu.Unlock()

	s.fetchBriefing(ctx, round)
	return s.State(), nil
}

// BeginPlaying moves MISSION_BRIEFING to PLAYING. The caller (session
// manager) starts the ticker for the returned round.
func (s *Session) BeginPlaying() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseBriefing {
		return s.snapshotLocked(), ErrWrongPhase
	}
	s.phase = PhasePlaying
	s.feedback = ""
	s.publishLocked(Event{Type: EventPhase, Snapshot: s.snapshotLocked()})
	return s.snapshotLocked(), nil
}

// Tick consumes one second of the countdown. Ticks carrying a stale round
// token, or arriving outside PLAYING, are discarded; without the token a
// tick scheduled for a finished round would corrupt the next round's clock.
// Returns false once the ticker that delivered the tick should stop.
func (s *Session) Tick(ctx context.Context, round uint64) bool {
	s.mu.Lock()
	if round != s.round || s.phase != PhasePlaying {
		s.mu.Unlock()
		return false
	}

	s.remaining--
	if s.remaining > 0 {
		s.publishLocked(Event{Type: EventTick, Snapshot: s.snapshotLocked()})
		s.mu.Unlock()
		return true
	}

	// Time expired: counts as an automatic incorrect submission.
	s.remaining = 0
	attempt := s.buildAttemptLocked("", false, 0)
	s.failLocked(feedbackTimeUp)
	stillPlaying := s.phase == PhasePlaying
	s.mu.Unlock()

	s.deps.Attempts.Record(ctx, attempt)
	return stillPlaying
}

// Submit checks an answer during PLAYING. Correct answers score
// length×basePoints + remaining×timeBonus and complete the level; wrong
// answers cost a life and reset the clock. Either way exactly one attempt
// record goes to the sink.
func (s *Session) Submit(ctx context.Context, answer string) (Snapshot, error) {
	s.mu.Lock()
	if s.phase != PhasePlaying {
		s.mu.Unlock()
		return s.State(), ErrWrongPhase
	}

	upper := strings.ToUpper(strings.TrimSpace(answer))
	correct := upper == s.answer

	points := 0
	if correct {
		points = len(s.strand)*s.cfg.BasePointsPerBase + s.remaining*s.cfg.TimeBonusMultiplier
	}
	attempt := s.buildAttemptLocked(upper, correct, points)

	var round uint64
	if correct {
		s.score += points
		s.phase = PhaseLevelComplete
		s.feedback = ""
		round = s.round
		s.publishLocked(Event{Type: EventPhase, Snapshot: s.snapshotLocked()})
	} else {
		s.failLocked(feedbackIncorrect)
	}
	s.mu.Unlock()

	s.deps.Attempts.Record(ctx, attempt)
	if correct {
		s.fetchFunFact(ctx, round)
	}
	return s.State(), nil
}

// State returns a copy of the current session state.
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ─── Internal transitions (lock held) ───────────────────────────────

// prepareLevelLocked generates the next round's content and returns its
// round token. The level number is validated against the table; an
// out-of-range level here is a bug in the caller, not player input.
func (s *Session) prepareLevelLocked(level int) uint64 {
	s.round++ // New round: outstanding ticks and fetches become stale.

	lvl, ok := s.cfg.Level(level)
	if !ok {
		// Invariant violation: callers gate on MaxLevel before calling.
		s.log.Error().Int("level", level).Msg("level outside configured range")
		lvl = s.cfg.Levels[len(s.cfg.Levels)-1]
		level = s.cfg.MaxLevel()
	}

	s.level = level
	s.strand = genetics.GenerateStrand(s.deps.Rand, lvl.Length)
	if s.deps.Rand.Intn(2) == 0 {
		s.questionType = genetics.QuestionDNAComplement
	} else {
		s.questionType = genetics.QuestionMRNA
	}
	s.answer = genetics.ExpectedAnswer(s.strand, s.questionType)
	s.remaining = lvl.Time
	s.briefing = flavor.Result{}
	s.funFact = flavor.Result{}
	s.feedback = ""
	s.phase = PhaseBriefing
	return s.round
}

// failLocked handles a wrong answer or expired clock.
func (s *Session) failLocked(message string) {
	s.lives--
	if s.lives <= 0 {
		s.lives = 0
		s.gameOverLocked(OverLivesExhausted, message)
		return
	}

	// Another try on the same strand, with a fresh clock.
	if lvl, ok := s.cfg.Level(s.level); ok {
		s.remaining = lvl.Time
	}
	s.feedback = message
	s.publishLocked(Event{Type: EventResult, Snapshot: s.snapshotLocked()})
}

func (s *Session) gameOverLocked(reason OverReason, message string) {
	s.phase = PhaseGameOver
	s.overReason = reason
	s.feedback = message
	s.round++ // Invalidate outstanding ticks and fetches.

	if s.score > s.highScore {
		s.highScore = s.score
		score, player := s.score, s.Player
		// Store write happens off the lock path; failures only cost the
		// persisted copy, the in-session high score is already updated.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := s.deps.HighScores.Set(ctx, player, score); err != nil {
				s.log.Warn().Err(err).Int("score", score).Msg("high score save failed")
			}
		}()
	}

	s.publishLocked(Event{Type: EventPhase, Snapshot: s.snapshotLocked()})
}

func (s *Session) buildAttemptLocked(answer string, correct bool, points int) model.GameAttempt {
	return model.GameAttempt{
		ID:                    uuid.New().String(),
		UserFirstName:         s.Player.FirstName,
		TeacherName:           s.Player.TeacherName,
		NormalizedTeacherName: s.Player.NormalizedTeacherName,
		QuestionType:          s.questionType,
		OriginalStrand:        s.strand,
		UserAnswer:            answer,
		CorrectAnswer:         s.answer,
		IsCorrect:             correct,
		Level:                 s.level,
		Score:                 points,
		Timestamp:             time.Now().UTC(),
	}
}

// ─── Async flavor fetches (round-token checked) ─────────────────────

// fetchBriefing fills in the briefing for the round prepared under the
// token. A round that went stale before the fetch starts skips the call
// entirely; one that goes stale while the fetch is in flight has its
// result dropped on arrival.
func (s *Session) fetchBriefing(ctx context.Context, round uint64) {
	level, ok := s.levelForRound(round)
	if !ok {
		return
	}

	res := s.deps.Flavor.MissionBriefing(ctx, level)

	s.mu.Lock()
	defer s.mu.Unlock()
	if round != s.round || s.phase != PhaseBriefing {
		return
	}
	s.briefing = res
	s.publishLocked(Event{Type: EventBriefing, Snapshot: s.snapshotLocked()})
}

func (s *Session) fetchFunFact(ctx context.Context, round uint64) {
	if _, ok := s.levelForRound(round); !ok {
		return
	}

	res := s.deps.Flavor.FunFact(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if round != s.round || s.phase != PhaseLevelComplete {
		return
	}
	s.funFact = res
	s.publishLocked(Event{Type: EventFunFact, Snapshot: s.snapshotLocked()})
}

func (s *Session) levelForRound(round uint64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if round != s.round {
		return 0, false
	}
	return s.level, true
}
