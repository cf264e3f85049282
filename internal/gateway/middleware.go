package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/horao-cloud/horao/internal/auth"
	"github.com/horao-cloud/horao/internal/observability"
)

// RequestID assigns each request a unique ID, echoed in the X-Request-Id
// response header and carried in the request context for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-Id", id)
		c.Request = c.Request.WithContext(
			observability.ContextWithRequestID(c.Request.Context(), id),
		)
		c.Next()
	}
}

// Authentication runs the backend chain for each request and attaches the
// resulting session to the request context. A request with no recognized
// credential proceeds without a session; authorization gates deny it later.
// Terminal failures stop the request with a minimal unauthorized response
// and count toward the per-origin failure throttle.
func Authentication(backend auth.Backend, throttle *FailureThrottle, logger observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.ClientIP()

		if throttle != nil && throttle.Blocked(origin) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many failed attempts"})
			return
		}

		req := &auth.Request{
			Authorization: c.GetHeader("Authorization"),
			Origin:        origin,
		}

		session, err := backend.Authenticate(c.Request.Context(), req)
		switch {
		case err == nil:
			c.Request = c.Request.WithContext(
				auth.ContextWithSession(c.Request.Context(), session),
			)
		case errors.Is(err, auth.ErrNoCredentials):
			// Anonymous request; gates downstream will deny anything
			// that requires a permission.
		default:
			if throttle != nil {
				throttle.RecordFailure(origin)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Next()
	}
}
