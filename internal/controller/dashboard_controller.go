package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/bank"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/repository"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/service"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/util"
)

type DashboardController struct {
	Service  *service.DashboardService
	UserRepo *repository.UserRepository
}

func NewDashboardController(svc *service.DashboardService, userRepo *repository.UserRepository) *DashboardController {
	return &DashboardController{Service: svc, UserRepo: userRepo}
}

// @Summary Admin dashboard stats
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/dashboard [get]
func (c *DashboardController) AdminStats(ctx *gin.Context) {
	util.Success(ctx, c.Service.AdminStats())
}

// @Summary Engineer dashboard stats
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/dashboard [get]
func (c *DashboardController) EngineerStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.Service.EngineerStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary Engineer roster for the assignment form
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/engineers [get]
func (c *DashboardController) ListEngineers(ctx *gin.Context) {
	util.Success(ctx, c.UserRepo.ListEngineers())
}

// @Summary Available assessment topics
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/topics [get]
func (c *DashboardController) ListTopics(ctx *gin.Context) {
	util.Success(ctx, bank.Topics())
}
