package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"battleships/internal/reminder"
	"battleships/internal/util"
)

// Sweeper runs one reminder sweep
type Sweeper interface {
	Run(ctx context.Context) (reminder.Report, error)
}

// Pinger reports whether storage is reachable
type Pinger interface {
	Ping() error
}

type AdminHandler struct {
	sweeper Sweeper
	store   Pinger
}

func NewAdminHandler(sweeper Sweeper, store Pinger) *AdminHandler {
	return &AdminHandler{sweeper: sweeper, store: store}
}

// Sweep godoc
// @Summary Run the idle-game sweep now
// @Description Reminds players of idle games and cancels abandoned ones, the same as the scheduled job
// @Tags admin
// @Produce json
// @Param X-Admin-Key header string true "Admin key"
// @Success 200 {object} reminder.Report
// @Failure 401 {object} map[string]string "Admin access required"
// @Router /api/admin/sweep [post]
func (h *AdminHandler) Sweep(c *gin.Context) {
	report, err := h.sweeper.Run(c.Request.Context())
	if err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Sweep failed", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Health godoc
// @Summary Health check
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/health [get]
func (h *AdminHandler) Health(c *gin.Context) {
	if err := h.store.Ping(); err != nil {
		util.SafeErrorResponse(c, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
