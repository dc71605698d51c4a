package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/model"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/repository"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/service"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/util"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

// callerFromContext converts the verified JWT claims into the identity the
// lifecycle service expects.
func callerFromContext(ctx *gin.Context) (service.Caller, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return service.Caller{}, false
	}
	return service.Caller{ID: claims.UserID, Role: claims.Role}, true
}

// writeAssessmentError maps the core error taxonomy onto HTTP statuses.
func writeAssessmentError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUnknownTopic):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrUserNotFound), errors.Is(err, util.ErrAssessmentNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrInvalidState):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInsufficientAnswers):
		util.UnprocessableEntity(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

type CreateAssessmentRequest struct {
	EngineerID string `json:"engineerId" binding:"required"`
	Topic      string `json:"topic" binding:"required"`
}

// @Summary Assign an assessment to an engineer
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateAssessmentRequest true "engineer and topic"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/admin/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	caller, ok := callerFromContext(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	var req CreateAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.Create(caller, req.EngineerID, model.Topic(req.Topic))
	if err != nil {
		writeAssessmentError(ctx, err)
		return
	}

	util.Created(ctx, a)
}

// @Summary List assessments
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param engineerId query string false "filter by engineer (admin only)"
// @Param status query string false "filter by status"
// @Success 200 {object} util.Response
// @Router /api/assessments [get]
func (c *AssessmentController) List(ctx *gin.Context) {
	caller, ok := callerFromContext(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	filter := repository.ListFilter{
		EngineerID: ctx.Query("engineerId"),
		Status:     model.AssessmentStatus(ctx.Query("status")),
	}
	util.Success(ctx, c.Service.List(caller, filter))
}

// @Summary Get one assessment
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "assessment id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	caller, ok := callerFromContext(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	a, err := c.Service.Get(caller, ctx.Param("id"))
	if err != nil {
		writeAssessmentError(ctx, err)
		return
	}

	util.Success(ctx, a)
}

type SubmitAnswersRequest struct {
	// Answers maps question index (as a string key) to answer text.
	Answers map[string]string `json:"answers" binding:"required"`
}

// @Summary Submit answers for a pending assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "assessment id"
// @Param body body SubmitAnswersRequest true "answers keyed by question index"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/assessments/{id}/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	caller, ok := callerFromContext(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answers := make(map[int]string, len(req.Answers))
	for k, v := range req.Answers {
		i, err := strconv.Atoi(k)
		if err != nil {
			util.BadRequest(ctx, "answer keys must be question indices")
			return
		}
		answers[i] = v
	}

	a, err := c.Service.Submit(caller, ctx.Param("id"), answers)
	if err != nil {
		writeAssessmentError(ctx, err)
		return
	}

	util.Success(ctx, a)
}

// @Summary Review queue of submitted assessments
// @Tags review
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/review [get]
func (c *AssessmentController) ReviewQueue(ctx *gin.Context) {
	caller, ok := callerFromContext(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.Service.List(caller, repository.ListFilter{Status: model.StatusSubmitted}))
}

type GradeRequest struct {
	// Scores maps question index (as a string key) to the confirmed score.
	Scores map[string]int `json:"scores" binding:"required"`
}

// @Summary Grade a submitted assessment
// @Tags review
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "assessment id"
// @Param body body GradeRequest true "final scores keyed by question index"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/admin/assessments/{id}/grade [post]
func (c *AssessmentController) Grade(ctx *gin.Context) {
	caller, ok := callerFromContext(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	scores := make(map[int]int, len(req.Scores))
	for k, v := range req.Scores {
		i, err := strconv.Atoi(k)
		if err != nil {
			util.BadRequest(ctx, "score keys must be question indices")
			return
		}
		scores[i] = v
	}

	a, err := c.Service.Grade(caller, ctx.Param("id"), scores)
	if err != nil {
		writeAssessmentError(ctx, err)
		return
	}

	util.Success(ctx, a)
}
