package controller

import (
	"context"
	"net/http"
	"report_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

// PingFunc checks one backing component.
type PingFunc func(ctx context.Context) error

type HealthController struct {
	driver string
	ping   PingFunc
}

func NewHealthController(driver string, ping PingFunc) *HealthController {
	return &HealthController{driver: driver, ping: ping}
}

// Awake answers the keep-alive probe of the hosting platform.
func (c *HealthController) Awake(ctx *gin.Context) {
	ctx.String(http.StatusOK, "Server is awake!")
}

// @Summary Health check
// @Description Reports whether the document store answers
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	if err := c.ping(pingCtx); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
			"driver":   c.driver,
		},
	})
}
