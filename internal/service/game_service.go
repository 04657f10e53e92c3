package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/dnadash-backend/internal/config"
	"github.com/stemsi/dnadash-backend/internal/flavor"
	"github.com/stemsi/dnadash-backend/internal/game"
	"github.com/stemsi/dnadash-backend/internal/roster"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("game session not found")

// sessionTTL is how long an idle session survives before the janitor
// collects it.
const sessionTTL = 2 * time.Hour

type sessionEntry struct {
	session  *game.Session
	lastSeen time.Time
}

// GameService owns the in-memory session table and drives session timers.
// One ticker goroutine runs per playing round and stops itself as soon as
// the session reports its round is over.
type GameService struct {
	cfg      *config.Config
	resolver *roster.Resolver
	flavor   flavor.Provider
	attempts game.AttemptSink
	scores   game.HighScoreStore
	log      zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	rng      *rand.Rand
	rngMu    sync.Mutex
}

func NewGameService(
	cfg *config.Config,
	resolver *roster.Resolver,
	flavorProvider flavor.Provider,
	attempts game.AttemptSink,
	scores game.HighScoreStore,
	log zerolog.Logger,
) *GameService {
	return &GameService{
		cfg:      cfg,
		resolver: resolver,
		flavor:   flavorProvider,
		attempts: attempts,
		scores:   scores,
		log:      log.With().Str("component", "game_service").Logger(),
		sessions: make(map[string]*sessionEntry),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Login resolves the teacher name and creates a fresh session in START.
func (s *GameService) Login(ctx context.Context, firstName, teacherName string) *game.Session {
	player := game.Player{
		FirstName:             firstName,
		TeacherName:           s.resolver.FindClosestMatch(teacherName),
		NormalizedTeacherName: s.resolver.Normalize(teacherName),
	}

	sess := game.NewSession(ctx, player, s.cfg, game.Deps{
		Flavor:     s.flavor,
		Attempts:   s.attempts,
		HighScores: s.scores,
		Rand:       s.lockedRand(),
		Log:        s.log,
	})

	s.mu.Lock()
	s.sessions[sess.ID] = &sessionEntry{session: sess, lastSeen: time.Now()}
	s.mu.Unlock()

	s.log.Info().
		Str("session_id", sess.ID).
		Str("teacher", player.NormalizedTeacherName).
		Msg("player logged in")
	return sess
}

// Get returns a live session and refreshes its idle timer.
func (s *GameService) Get(sessionID string) (*game.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.lastSeen = time.Now()
	return entry.session, nil
}

// StartGame resets the session and prepares level 1.
func (s *GameService) StartGame(ctx context.Context, sessionID string) (game.Snapshot, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return sess.StartGame(ctx), nil
}

// BeginPlaying moves the briefing to the live round and starts its ticker.
func (s *GameService) BeginPlaying(sessionID string) (game.Snapshot, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return game.Snapshot{}, err
	}
	snap, err := sess.BeginPlaying()
	if err != nil {
		return snap, err
	}
	go s.runTicker(sess, sess.Round())
	return snap, nil
}

// Submit forwards an answer to the session.
func (s *GameService) Submit(ctx context.Context, sessionID, answer string) (game.Snapshot, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return sess.Submit(ctx, answer)
}

// AdvanceLevel moves a completed level to the next briefing.
func (s *GameService) AdvanceLevel(ctx context.Context, sessionID string) (game.Snapshot, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return sess.AdvanceLevel(ctx)
}

// State returns the session snapshot.
func (s *GameService) State(sessionID string) (game.Snapshot, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return sess.State(), nil
}

// runTicker delivers one tick per second for a single round. The round
// token makes the ticker self-cancelling: the first tick after the session
// leaves the round comes back false and the goroutine exits, so a ticker
// can never outlive its round and touch a newer one.
func (s *GameService) runTicker(sess *game.Session, round uint64) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		alive := sess.Tick(ctx, round)
		cancel()
		if !alive {
			return
		}
	}
}

// StartJanitor sweeps idle sessions until ctx is cancelled. Call in a
// goroutine.
func (s *GameService) StartJanitor(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *GameService) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.sessions {
		if time.Since(entry.lastSeen) > sessionTTL {
			delete(s.sessions, id)
		}
	}
}

// lockedRand hands each session the shared seeded source. Sessions call it
// only from inside their own lock, but two sessions can generate at once,
// so the accessor serialises construction-time use.
func (s *GameService) lockedRand() *rand.Rand {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return rand.New(rand.NewSource(s.rng.Int63()))
}
