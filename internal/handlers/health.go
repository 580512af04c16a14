package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/makaka119911-oss/Tatiana-Server/internal/storage"
)

// HealthHandler reports liveness and which store backs the service.
type HealthHandler struct {
	log   *zap.Logger
	store storage.Store
}

func NewHealthHandler(log *zap.Logger, store storage.Store) *HealthHandler {
	return &HealthHandler{log: log, store: store}
}

// Check handles GET /health. A failing store ping reports 503 so a load
// balancer can rotate the instance out, but the process stays up.
func (h *HealthHandler) Check(c *gin.Context) {
	status := "ok"
	code := http.StatusOK
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.log.Warn("Health check: store unreachable", zap.Error(err))
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":  status,
		"storage": h.store.Kind(),
	})
}
