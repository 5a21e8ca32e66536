package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/manish9869/onehealth-api/internal/core/port"
	"github.com/manish9869/onehealth-api/internal/usecase"
)

// SessionIDHeader carries the session identifier issued at login.
const SessionIDHeader = "X-Session-ID"

// apiPrefix is stripped before the guard sees the path, so the guard's
// public-path rules match what the SPA router uses.
const apiPrefix = "/api/v1"

// ErrorResponse matches the handlers.ErrorResponse structure
type ErrorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
	TraceID  string `json:"trace_id,omitempty"`
}

// newErrorResponse creates an error response with trace ID
func newErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	return ErrorResponse{
		Error:   errorMsg,
		TraceID: GetTraceID(c),
	}
}

// SessionGuard asks the access guard whether the request may proceed. Denied
// requests get 401 with the login redirect the SPA should navigate to; the
// guard itself decides public paths, expiry and stale-session cleanup.
func SessionGuard(guard *usecase.AccessGuard, sessions port.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := sessionIDFromRequest(c)

		path := strings.TrimPrefix(c.Request.URL.Path, apiPrefix)
		decision := guard.Decide(c.Request.Context(), path, sessionID)
		if !decision.Allowed {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:    "session expired or missing",
				Redirect: decision.RedirectPath,
				TraceID:  GetTraceID(c),
			})
			return
		}

		if sessionID == "" {
			c.Next()
			return
		}

		session, err := sessions.Get(c.Request.Context(), sessionID)
		if err != nil || session == nil {
			c.Next()
			return
		}

		c.Set(SessionIDKey, sessionID)
		c.Set(UserIDKey, session.UserID)

		if reqCtx := GetRequestContext(c); reqCtx != nil {
			reqCtx.UserID = session.UserID
			reqCtx.SessionID = sessionID
		}

		c.Next()
	}
}

// RequireUser rejects requests that passed the guard on a public path but
// still need an authenticated user, such as menu resolution.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				newErrorResponse(c, "authentication required"))
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the authenticated user ID from the context.
func GetUserID(c *gin.Context) string {
	if userID, exists := c.Get(UserIDKey); exists {
		if id, ok := userID.(string); ok {
			return id
		}
	}
	return ""
}

// GetSessionID retrieves the session ID backing the request.
func GetSessionID(c *gin.Context) string {
	if sessionID, exists := c.Get(SessionIDKey); exists {
		if id, ok := sessionID.(string); ok {
			return id
		}
	}
	return ""
}

// sessionIDFromRequest reads the session ID from the dedicated header,
// falling back to a bearer-style Authorization value for older clients.
func sessionIDFromRequest(c *gin.Context) string {
	if sessionID := c.GetHeader(SessionIDHeader); sessionID != "" {
		return sessionID
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Session") {
		return strings.TrimSpace(parts[1])
	}

	return ""
}
