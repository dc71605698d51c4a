package controller

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/util"
)

type HealthController struct {
	startedAt time.Time
}

func NewHealthController() *HealthController {
	return &HealthController{startedAt: time.Now()}
}

// @Summary Health check
// @Description Reports service status
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"status": "ok",
		"uptime": time.Since(c.startedAt).String(),
	})
}
