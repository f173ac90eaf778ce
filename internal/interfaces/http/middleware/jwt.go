package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lawai/backend/internal/infrastructure/auth"
	"github.com/lawai/backend/internal/infrastructure/logger"
	"github.com/lawai/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

var errMissingBearer = errors.New("missing bearer token")

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// TokenBlacklist rejects revoked tokens when set
	TokenBlacklist auth.TokenBlacklist
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// JWTAuthMiddleware creates JWT authentication middleware without a blacklist
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: jwtService})
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware.
// On success the claims are stored in the gin context and the user id is
// attached to the request context for logging.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if slices.Contains(cfg.SkipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, log, errMissingBearer)
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, log, err)
			return
		}

		if cfg.TokenBlacklist != nil {
			revoked, err := cfg.TokenBlacklist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// Fail open when the blacklist is unreachable.
				log.Error("Failed to check token blacklist", zap.String("jti", claims.ID), zap.Error(err))
			} else if revoked {
				abortUnauthorized(c, log, auth.ErrTokenRevoked)
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(logger.GinUserIDKey, claims.UserID())
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID()))

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if len(header) < len(BearerPrefix) || !strings.EqualFold(header[:len(BearerPrefix)], BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(BearerPrefix):])
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, log *zap.Logger, err error) {
	code, message := dto.ErrCodeUnauthorized, "Não autenticado"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.ErrCodeTokenExpired, "Token expirado"
	case errors.Is(err, auth.ErrTokenRevoked):
		code, message = dto.ErrCodeTokenRevoked, "Token revogado"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrMissingSubject), errors.Is(err, auth.ErrMissingTokenID),
		errors.Is(err, auth.ErrTokenNotYetValid):
		code, message = dto.ErrCodeTokenInvalid, "Token inválido"
	}

	log.Debug("JWT authentication failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
	)
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the authenticated user id
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(logger.GinUserIDKey)
}
