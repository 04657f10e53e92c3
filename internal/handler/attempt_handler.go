package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/dnadash-backend/internal/middleware"
	"github.com/stemsi/dnadash-backend/internal/model"
	"github.com/stemsi/dnadash-backend/internal/response"
	"github.com/stemsi/dnadash-backend/internal/service"
	"github.com/stemsi/dnadash-backend/internal/validator"
)

type AttemptHandler struct {
	attemptService *service.AttemptService
	log            zerolog.Logger
}

func NewAttemptHandler(attemptService *service.AttemptService, log zerolog.Logger) *AttemptHandler {
	return &AttemptHandler{
		attemptService: attemptService,
		log:            log.With().Str("component", "attempt_handler").Logger(),
	}
}

// CreateAttempt godoc
// POST /api/v1/attempts
// Direct ingest for clients syncing attempts buffered while offline.
func (h *AttemptHandler) CreateAttempt(c *gin.Context) {
	var req model.CreateAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	attempt, err := h.attemptService.Ingest(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"id": attempt.ID})
}

// ListAttempts godoc
// GET /api/v1/teacher/attempts
// Returns every attempt grouped by normalized teacher key for review.
func (h *AttemptHandler) ListAttempts(c *gin.Context) {
	grouped, err := h.attemptService.ListGroupedByTeacher(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, grouped)
}

// DeleteTeacherAttempts godoc
// DELETE /api/v1/teacher/attempts/:teacher_key
// Clears one teacher's group; deleting an empty group still succeeds.
func (h *AttemptHandler) DeleteTeacherAttempts(c *gin.Context) {
	deleted, err := h.attemptService.DeleteForTeacher(c.Request.Context(), c.Param("teacher_key"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	// Audit trail: which review token cleared the group.
	tokenID := ""
	if claims := middleware.GetClaims(c); claims != nil {
		tokenID = claims.ID
	}
	h.log.Info().
		Str("teacher", c.Param("teacher_key")).
		Str("token_id", tokenID).
		Int64("deleted", deleted).
		Msg("review delete")

	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}
