package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lawai/backend/internal/infrastructure/auth"
	"github.com/lawai/backend/internal/infrastructure/config"
	"github.com/lawai/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: expiration,
		Issuer:                "lawai-test",
	})
}

func newProtectedRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/api/auth/user", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":     GetJWTUserID(c),
			"ctx_user_id": logger.GetUserID(c.Request.Context()),
			"email":       GetJWTClaims(c).Email,
		})
	})
	router.POST("/api/auth/token", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doGet(router http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	if header != "" {
		req.Header.Set(AuthHeaderKey, header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	issued, err := jwtService.GenerateAccessToken("user-1", "ana@example.com")
	require.NoError(t, err)

	w := doGet(newProtectedRouter(JWTMiddlewareConfig{JWTService: jwtService}), "Bearer "+issued.AccessToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"user-1","ctx_user_id":"user-1","email":"ana@example.com"}`, w.Body.String())
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := newProtectedRouter(JWTMiddlewareConfig{JWTService: jwtService})

	tests := []struct {
		name     string
		header   string
		wantCode string
	}{
		{"missing header", "", "ERR_UNAUTHORIZED"},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "ERR_UNAUTHORIZED"},
		{"empty bearer", "Bearer ", "ERR_UNAUTHORIZED"},
		{"garbage token", "Bearer not-a-jwt", "ERR_TOKEN_INVALID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(router, tt.header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	jwtService := newTestJWTService(-time.Minute)
	issued, err := jwtService.GenerateAccessToken("user-1", "")
	require.NoError(t, err)

	w := doGet(newProtectedRouter(JWTMiddlewareConfig{JWTService: jwtService}), "Bearer "+issued.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_TOKEN_EXPIRED")
}

func TestJWTAuthMiddleware_RevokedToken(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	blacklist := auth.NewInMemoryTokenBlacklist()
	router := newProtectedRouter(JWTMiddlewareConfig{JWTService: jwtService, TokenBlacklist: blacklist})

	issued, err := jwtService.GenerateAccessToken("user-1", "")
	require.NoError(t, err)
	claims, err := jwtService.ValidateAccessToken(issued.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doGet(router, "Bearer "+issued.AccessToken).Code)

	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Now().Add(time.Hour)))

	w := doGet(router, "Bearer "+issued.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_TOKEN_REVOKED")
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	router := newProtectedRouter(JWTMiddlewareConfig{
		JWTService: newTestJWTService(time.Hour),
		SkipPaths:  []string{"/api/auth/token"},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/token", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_LowercaseScheme(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	issued, err := jwtService.GenerateAccessToken("user-1", "")
	require.NoError(t, err)

	w := doGet(newProtectedRouter(JWTMiddlewareConfig{JWTService: jwtService}), "bearer "+issued.AccessToken)

	assert.Equal(t, http.StatusOK, w.Code)
}
