package controller

import (
	"course_hub_backend/internal/service"
	"course_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	ExamService    *service.ExamService
	AttemptService *service.AttemptService
}

func NewAttemptController(examService *service.ExamService, attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{ExamService: examService, AttemptService: attemptService}
}

// @Summary Get an exam for taking, without correct answers
// @Tags attempts
// @Security BearerAuth
// @Produce json
// @Param id path int true "exam ID"
// @Success 200 {object} util.Response
// @Router /api/exams/{id} [get]
func (c *AttemptController) GetExam(ctx *gin.Context) {
	payload, err := c.ExamService.GetExamForStudent(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, payload)
}

// @Summary Start an attempt against an exam
// @Tags attempts
// @Security BearerAuth
// @Produce json
// @Param id path int true "exam ID"
// @Success 201 {object} util.Response
// @Router /api/exams/{id}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	status, err := c.AttemptService.StartAttempt(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Created(ctx, status)
}

type answerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
}

// @Summary Record or overwrite an answer on an in-progress attempt
// @Tags attempts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "attempt ID"
// @Param body body answerRequest true "answer payload"
// @Success 200 {object} util.Response
// @Router /api/attempts/{id}/answers [put]
func (c *AttemptController) RecordAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req answerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	status, err := c.AttemptService.RecordAnswer(ctx.Param("id"), claims.UserID, req.QuestionID, req.Answer)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// @Summary Poll the remaining time of an attempt
// @Tags attempts
// @Security BearerAuth
// @Produce json
// @Param id path string true "attempt ID"
// @Success 200 {object} util.Response
// @Router /api/attempts/{id}/tick [get]
func (c *AttemptController) Tick(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	status, err := c.AttemptService.Tick(ctx.Param("id"), claims.UserID)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// @Summary Submit an attempt and receive its score
// @Tags attempts
// @Security BearerAuth
// @Produce json
// @Param id path string true "attempt ID"
// @Success 200 {object} util.Response
// @Router /api/attempts/{id}/submit [post]
func (c *AttemptController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	status, err := c.AttemptService.Submit(ctx.Param("id"), claims.UserID)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// @Summary Get the per-question breakdown of a submitted attempt
// @Tags attempts
// @Security BearerAuth
// @Produce json
// @Param id path string true "attempt ID"
// @Success 200 {object} util.Response
// @Router /api/attempts/{id}/detail [get]
func (c *AttemptController) Detail(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.AttemptService.Detail(ctx.Param("id"), claims.UserID)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}
