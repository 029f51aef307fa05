package devserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-ID"
	// SessionCookie is the cookie that carries the signed session token.
	SessionCookie = "JSESSIONID"

	ctxUsername = "username"
	ctxRole     = "role"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, apiError{Error: code, Message: message})
}

// requestLogger echoes or assigns X-Request-ID and logs every request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)

		c.Next()

		s.log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"request_id", id,
			"duration", time.Since(start),
		)
	}
}

// requireSession rejects requests without a valid session cookie.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err != nil || raw == "" {
			writeError(c, http.StatusUnauthorized, "unauthorized", "missing session")
			return
		}
		claims, err := ParseToken(raw, s.secret)
		if err != nil {
			writeError(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		c.Set(ctxUsername, claims.Subject)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}
