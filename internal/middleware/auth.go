package middleware

import (
	"net/http"
	"strings"

	"github.com/notemind/notemind/internal/constants"
	"github.com/notemind/notemind/internal/repository"
	"github.com/notemind/notemind/internal/service"
	"github.com/notemind/notemind/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionMiddleware authenticates requests. The credential is read from the
// Authorization header first and the jwt cookie second; every failure mode
// produces the same 401 body so callers cannot probe which check failed.
type SessionMiddleware struct {
	tokens *service.TokenService
	users  repository.UserRepository
}

func NewSessionMiddleware(tokens *service.TokenService, users repository.UserRepository) *SessionMiddleware {
	return &SessionMiddleware{
		tokens: tokens,
		users:  users,
	}
}

// extractToken returns the bearer credential, preferring the Authorization
// header over the cookie.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		// A malformed header does not fall through to the cookie.
		return ""
	}

	cookie, err := c.Cookie(constants.CookieToken)
	if err != nil {
		return ""
	}
	return cookie
}

// RequireAuth validates the session token and sets the current user in the
// Gin context.
func (m *SessionMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			logger.GetLogger().Warn("Missing credentials",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			m.reject(c)
			return
		}

		userID, err := m.tokens.Verify(tokenString)
		if err != nil {
			logger.GetLogger().Warn("Invalid or expired token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			m.reject(c)
			return
		}

		user, err := m.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			logger.GetLogger().Warn("Token subject no longer exists",
				zap.String("path", c.Request.URL.Path),
				zap.Uint("user_id", userID))
			m.reject(c)
			return
		}

		// Best effort; the request proceeds even if the write fails.
		if err := m.users.UpdateLastActive(c.Request.Context(), user.ID); err != nil {
			logger.GetLogger().Warn("Failed to update last active",
				zap.Uint("user_id", user.ID),
				zap.Error(err))
		}

		c.Set(constants.GinKeyUser, user)
		c.Set(constants.GinKeyUserID, user.ID)

		logger.GetLogger().Debug("User authenticated",
			zap.Uint("user_id", user.ID),
			zap.String("path", c.Request.URL.Path))

		c.Next()
	}
}

func (m *SessionMiddleware) reject(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
	c.Abort()
}

// CurrentUserID reads the authenticated user's ID from the Gin context.
// It is only meaningful behind RequireAuth.
func CurrentUserID(c *gin.Context) uint {
	id, _ := c.Get(constants.GinKeyUserID)
	userID, _ := id.(uint)
	return userID
}
