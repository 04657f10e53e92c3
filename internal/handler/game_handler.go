package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/dnadash-backend/internal/game"
	"github.com/stemsi/dnadash-backend/internal/response"
	"github.com/stemsi/dnadash-backend/internal/service"
	"github.com/stemsi/dnadash-backend/internal/validator"
)

type GameHandler struct {
	gameService *service.GameService
}

func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// submitRequest is the answer payload. Length is capped generously above
// the longest configured strand; the session rejects mismatches anyway.
type submitRequest struct {
	Answer string `json:"answer" binding:"required,max=64"`
}

// GetState godoc
// GET /api/v1/game/:session_id
func (h *GameHandler) GetState(c *gin.Context) {
	snap, err := h.gameService.State(c.Param("session_id"))
	if err != nil {
		h.failGame(c, err)
		return
	}
	response.Success(c, http.StatusOK, snap)
}

// StartGame godoc
// POST /api/v1/game/:session_id/start
// Starts a new play-through (or replays after game over).
func (h *GameHandler) StartGame(c *gin.Context) {
	snap, err := h.gameService.StartGame(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.failGame(c, err)
		return
	}
	response.Success(c, http.StatusOK, snap)
}

// BeginPlaying godoc
// POST /api/v1/game/:session_id/begin
// Leaves the mission briefing and starts the countdown.
func (h *GameHandler) BeginPlaying(c *gin.Context) {
	snap, err := h.gameService.BeginPlaying(c.Param("session_id"))
	if err != nil {
		h.failGame(c, err)
		return
	}
	response.Success(c, http.StatusOK, snap)
}

// Submit godoc
// POST /api/v1/game/:session_id/submit
func (h *GameHandler) Submit(c *gin.Context) {
	var req submitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	snap, err := h.gameService.Submit(c.Request.Context(), c.Param("session_id"), req.Answer)
	if err != nil {
		h.failGame(c, err)
		return
	}
	response.Success(c, http.StatusOK, snap)
}

// AdvanceLevel godoc
// POST /api/v1/game/:session_id/next
func (h *GameHandler) AdvanceLevel(c *gin.Context) {
	snap, err := h.gameService.AdvanceLevel(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.failGame(c, err)
		return
	}
	response.Success(c, http.StatusOK, snap)
}

// failGame maps service errors onto API error codes.
func (h *GameHandler) failGame(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
	case errors.Is(err, game.ErrWrongPhase):
		response.Fail(c, http.StatusConflict, response.ErrWrongPhase)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
