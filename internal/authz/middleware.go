package authz

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/horao-cloud/horao/internal/rbac"
)

// RequirePermission returns a gin middleware enforcing the given namespace
// and level for a route. The operation name appears in denial records; the
// client receives a minimal forbidden response without it.
func RequirePermission(namespace rbac.Namespace, level rbac.Level, operation string, opts ...GateOption) gin.HandlerFunc {
	gate := NewGate(namespace, level, operation, opts...)

	return func(c *gin.Context) {
		if err := gate.Check(c.Request.Context(), c.Request.URL.Path); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
