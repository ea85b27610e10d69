package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/response"
)

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Healthcheck
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.Healthcheck{
		Status:  "ok",
		Service: "relief-api",
	})
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type StatusHandler struct {
	db      Pinger
	version string
	started time.Time
}

func NewStatusHandler(db Pinger, version string) *StatusHandler {
	return &StatusHandler{
		db:      db,
		version: version,
		started: time.Now(),
	}
}

// HandleStatus godoc
// @Summary      Service status including database connectivity
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Status
// @Failure      503  {object}  response.Status
// @Router       /status [get]
func (h *StatusHandler) HandleStatus(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	status := response.Status{
		Status:   "ok",
		Version:  h.version,
		Database: "up",
		Uptime:   time.Since(h.started).Round(time.Second).String(),
	}
	code := http.StatusOK
	if err := h.db.PingContext(pingCtx); err != nil {
		status.Status = "degraded"
		status.Database = "down"
		code = http.StatusServiceUnavailable
	}

	ctx.JSON(code, status)
}
