package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/fe8rguide/importer"
	"gorm.io/gorm"
)

// AdminHandler serves the operator endpoints. Routes should sit behind
// IPWhitelist.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// LastRefresh returns the most recent refresh run and its report.
// GET /api/admin/refresh
func (h *AdminHandler) LastRefresh(c *gin.Context) {
	run, err := importer.LastRun(c.Request.Context(), h.db)
	if err != nil {
		fail(c, err, "refresh run")
		return
	}
	c.JSON(http.StatusOK, gin.H{"run": run})
}

// Health reports liveness.
// GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
