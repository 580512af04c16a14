package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/makaka119911-oss/Tatiana-Server/internal/models"
	"github.com/makaka119911-oss/Tatiana-Server/internal/storage"
)

// ArchiveHandler serves the joined export view. Authorization happens in
// the router middleware before this handler runs.
type ArchiveHandler struct {
	log   *zap.Logger
	store storage.Store
}

func NewArchiveHandler(log *zap.Logger, store storage.Store) *ArchiveHandler {
	return &ArchiveHandler{log: log, store: store}
}

// List handles GET /archive: every registration joined with its test
// results, newest registrations first. An empty archive responds with an
// empty records array, not an error.
func (h *ArchiveHandler) List(c *gin.Context) {
	records, err := h.store.ListArchive(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to query archive", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load archive"})
		return
	}

	c.JSON(http.StatusOK, models.ArchiveResponse{
		Success: true,
		Count:   len(records),
		Records: records,
	})
}
