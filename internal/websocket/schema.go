package websocket

import "github.com/stemsi/dnadash-backend/internal/game"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const ActionPing Action = "ping"

// RequestEnvelope is the only client payload: the stream is push-based,
// clients just keep the connection alive.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventState Event = "state"
	EventGame  Event = "game"
	EventError Event = "error"
	EventPong  Event = "pong"
)

// StateResponse carries the full snapshot sent on connect.
type StateResponse struct {
	Event    Event         `json:"event"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// GameResponse wraps one session event (tick, phase change, result).
type GameResponse struct {
	Event   Event      `json:"event"`
	Payload game.Event `json:"payload"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
