package game

import (
	"errors"

	"github.com/stemsi/dnadash-backend/internal/flavor"
	"github.com/stemsi/dnadash-backend/internal/genetics"
)

// ErrWrongPhase is returned when an event arrives in a phase that does not
// accept it (e.g. submitting outside PLAYING).
var ErrWrongPhase = errors.New("game: action not valid in current phase")

// EventType tags the session events pushed to stream subscribers.
type EventType string

const (
	EventTick     EventType = "tick"
	EventPhase    EventType = "phase"
	EventResult   EventType = "result"
	EventBriefing EventType = "briefing"
	EventFunFact  EventType = "fun_fact"
)

// Event is one state-change notification with the state that produced it.
type Event struct {
	Type     EventType `json:"type"`
	Snapshot Snapshot  `json:"snapshot"`
}

// Snapshot is an externally safe copy of session state. The expected
// answer is deliberately absent: the strand is the question, the answer
// stays server-side.
type Snapshot struct {
	SessionID        string                `json:"session_id"`
	Phase            Phase                 `json:"phase"`
	Level            int                   `json:"level"`
	Lives            int                   `json:"lives"`
	Score            int                   `json:"score"`
	HighScore        int                   `json:"high_score"`
	Strand           string                `json:"strand"`
	QuestionType     genetics.QuestionType `json:"question_type"`
	RemainingSeconds int                   `json:"remaining_seconds"`
	Briefing         flavor.Result         `json:"briefing"`
	FunFact          flavor.Result         `json:"fun_fact"`
	Feedback         string                `json:"feedback,omitempty"`
	OverReason       OverReason            `json:"over_reason,omitempty"`
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID:        s.ID,
		Phase:            s.phase,
		Level:            s.level,
		Lives:            s.lives,
		Score:            s.score,
		HighScore:        s.highScore,
		Strand:           s.strand,
		QuestionType:     s.questionType,
		RemainingSeconds: s.remaining,
		Briefing:         s.briefing,
		FunFact:          s.funFact,
		Feedback:         s.feedback,
		OverReason:       s.overReason,
	}
}

// Subscribe registers a buffered event channel and returns it with an
// unsubscribe func. Slow consumers lose events instead of blocking the
// game loop.
func (s *Session) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	unsubscribe := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, unsubscribe
}

func (s *Session) publishLocked(ev Event) {
	for ch := range s.subscribers {
		select {
		case ch <- ev:
		default: // Drop rather than stall a transition.
		}
	}
}
