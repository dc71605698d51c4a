package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/service"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/util"
)

type ResumeController struct {
	Service *service.ResumeService
}

func NewResumeController(svc *service.ResumeService) *ResumeController {
	return &ResumeController{Service: svc}
}

// @Summary Trigger a resume mailbox scan
// @Tags resumes
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/resumes/scan [post]
func (c *ResumeController) Scan(ctx *gin.Context) {
	report, err := c.Service.Scan(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary Latest resume scan report
// @Tags resumes
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/resumes/report [get]
func (c *ResumeController) LastReport(ctx *gin.Context) {
	report := c.Service.LastReport()
	if report == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, report)
}
