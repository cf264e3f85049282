package gateway

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/horao-cloud/horao/internal/authz"
	"github.com/horao-cloud/horao/internal/observability"
	"github.com/horao-cloud/horao/internal/rbac"
)

// handlers holds the route handlers and their guarded operations.
type handlers struct {
	logger observability.Logger

	// applyState is the state synchronization operation, guarded so only
	// verified peers with Write on the peer namespace can invoke it.
	applyState authz.Operation[map[string]any, int]
}

func newHandlers(logger observability.Logger) *handlers {
	h := &handlers{logger: logger}

	syncGate := authz.NewGate(
		rbac.NamespacePeer, rbac.LevelWrite, "synchronize",
		authz.WithGateLogger(logger),
	)
	h.applyState = authz.Wrap(syncGate, h.applyStateUnguarded)

	return h
}

// registerRoutes attaches the gateway routes. Reservation routes enforce
// their requirement as route middleware; synchronization enforces it at the
// operation itself via the gate combinator.
func registerRoutes(engine *gin.Engine, h *handlers) {
	engine.GET("/alive", h.alive)
	engine.POST("/synchronize", h.synchronize)

	engine.GET("/reservations",
		authz.RequirePermission(rbac.NamespaceSystem, rbac.LevelRead, "list reservations"),
		h.listReservations,
	)
	engine.POST("/reservations",
		authz.RequirePermission(rbac.NamespaceSystem, rbac.LevelWrite, "create reservation"),
		h.createReservation,
	)
}

// alive is the unauthenticated liveness probe.
func (h *handlers) alive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// synchronize accepts a cluster state snapshot from a verified peer.
func (h *handlers) synchronize(c *gin.Context) {
	var state map[string]any
	if err := c.ShouldBindJSON(&state); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state payload"})
		return
	}

	applied, err := h.applyState(c.Request.Context(), state)
	if err != nil {
		if authz.IsDenied(err) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "synchronization failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

// applyStateUnguarded is the synchronization stub. Merging the snapshot into
// shared infrastructure state belongs to the synchronization subsystem, not
// the trust core.
func (h *handlers) applyStateUnguarded(ctx context.Context, state map[string]any) (int, error) {
	h.logger.WithContext(ctx).Info("state snapshot accepted",
		observability.Int("entries", len(state)),
	)
	return len(state), nil
}

// listReservations is a stub for reading reserved infrastructure.
func (h *handlers) listReservations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reservations": []string{}})
}

// createReservation is a stub for claiming infrastructure.
func (h *handlers) createReservation(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"status": "created"})
}
