package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/dnadash-backend/internal/config"
	"github.com/stemsi/dnadash-backend/internal/response"
	"github.com/stemsi/dnadash-backend/internal/service"
)

func protectedRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := service.NewAuthService(&config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	})

	r := gin.New()
	r.GET("/protected", RequireTeacherJWT(auth), func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || claims.TokenType != service.TokenTypeTeacher {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	return r, auth
}

func errCode(t *testing.T, body []byte) response.ErrCode {
	t.Helper()
	var env struct {
		Error *struct {
			Code response.ErrCode `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if env.Error == nil {
		t.Fatal("no error in body")
	}
	return env.Error.Code
}

func TestMissingTokenReportsTokenRequired(t *testing.T) {
	r, _ := protectedRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errCode(t, w.Body.Bytes()); code != response.ErrTokenRequired {
		t.Errorf("code = %s, want %s", code, response.ErrTokenRequired)
	}
}

func TestGarbageTokenReportsTokenInvalid(t *testing.T) {
	r, _ := protectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errCode(t, w.Body.Bytes()); code != response.ErrTokenInvalid {
		t.Errorf("code = %s, want %s", code, response.ErrTokenInvalid)
	}
}

func TestValidTokenExposesClaims(t *testing.T) {
	r, auth := protectedRouter(t)

	token, err := auth.GenerateTeacherToken()
	if err != nil {
		t.Fatalf("GenerateTeacherToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with claims in context", w.Code)
	}
}

func TestTokenAcceptedFromQueryParam(t *testing.T) {
	r, auth := protectedRouter(t)

	token, err := auth.GenerateTeacherToken()
	if err != nil {
		t.Fatalf("GenerateTeacherToken: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
