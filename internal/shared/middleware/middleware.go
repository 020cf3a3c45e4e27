package middleware

import (
	"net/http"

	"busly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHeader carries the rider's session identifier. All transient
// state (the in-progress seat selection) is scoped to this value and is
// discarded when the session expires.
const SessionHeader = "X-Session-ID"

// ContextKeySessionID is the gin context key the session middleware sets.
const ContextKeySessionID = "session_id"

// Session assigns a session ID to requests that do not carry one and
// echoes it back so the client can keep using it. Sessions are anonymous;
// there are no accounts in this system.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		c.Set(ContextKeySessionID, sessionID)
		c.Header(SessionHeader, sessionID)
		c.Next()
	}
}

// RequireSession rejects requests without an explicit session header.
// Used on endpoints that mutate selection state: an implicit fresh
// session there would silently operate on an empty selection.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(SessionHeader) == "" {
			response.Error(c, http.StatusBadRequest, "X-Session-ID header is required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionID returns the session ID the Session middleware stored on the
// context. Empty when the middleware did not run.
func SessionID(c *gin.Context) string {
	return c.GetString(ContextKeySessionID)
}
