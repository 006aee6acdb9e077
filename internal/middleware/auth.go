package middleware

import (
	"strings"

	"gigflow_backend/internal/logger"
	"gigflow_backend/pkg/apperrors"
	"gigflow_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// Verifier resolves a bearer credential to a user id.
type Verifier interface {
	Verify(credential string) (string, error)
}

// AuthMiddleware rejects the request unless it carries a valid JWT in the
// Authorization header or the token cookie.
func AuthMiddleware(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := verifier.Verify(credential(c))
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Authentication failed", "error", err.Error(), "path", c.Request.URL.Path)
			apperrors.HandleError(c, err)
			return
		}

		setUser(c, userID)
		c.Next()
	}
}

// OptionalAuth sets the user when a valid credential is present and lets
// anonymous requests through. A credential that is present but invalid is
// still rejected.
func OptionalAuth(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred := credential(c)
		if cred == "" {
			c.Next()
			return
		}

		userID, err := verifier.Verify(cred)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		setUser(c, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated user id or "".
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(contextkeys.UserIDKey)
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}

func credential(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(contextkeys.TokenCookie); err == nil {
		return cookie
	}
	return ""
}

func setUser(c *gin.Context, userID string) {
	c.Set(contextkeys.UserIDKey, userID)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), userID))
}
