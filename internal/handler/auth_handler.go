package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/dnadash-backend/internal/model"
	"github.com/stemsi/dnadash-backend/internal/response"
	"github.com/stemsi/dnadash-backend/internal/service"
	"github.com/stemsi/dnadash-backend/internal/validator"
)

type AuthHandler struct {
	authService *service.AuthService
	gameService *service.GameService
}

func NewAuthHandler(authService *service.AuthService, gameService *service.GameService) *AuthHandler {
	return &AuthHandler{authService: authService, gameService: gameService}
}

// StudentLogin godoc
// POST /api/v1/auth/login
// Resolves the typed teacher name against the roster and opens a session.
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	var req model.StudentLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sess := h.gameService.Login(c.Request.Context(), req.FirstName, req.TeacherName)

	response.Success(c, http.StatusOK, model.StudentLoginResponse{
		SessionID:             sess.ID,
		FirstName:             sess.Player.FirstName,
		TeacherName:           sess.Player.TeacherName,
		NormalizedTeacherName: sess.Player.NormalizedTeacherName,
	})
}

// TeacherLogin godoc
// POST /api/v1/auth/teacher/login
// Exchanges the shared review password for a JWT.
func (h *AuthHandler) TeacherLogin(c *gin.Context) {
	var req model.TeacherLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.authService.VerifyTeacherPassword(req.Password); err != nil {
		if errors.Is(err, service.ErrReviewDisabled) {
			response.Fail(c, http.StatusServiceUnavailable, response.ErrReviewDisabled)
			return
		}
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidPassword)
		return
	}

	token, err := h.authService.GenerateTeacherToken()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, model.TeacherLoginResponse{Token: token})
}
