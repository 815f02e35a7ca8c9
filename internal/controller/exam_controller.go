package controller

import (
	"course_hub_backend/internal/service"
	"course_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// @Summary Create an exam in a course
// @Tags exams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "course ID"
// @Param body body service.ExamCreateRequest true "exam payload"
// @Success 201 {object} util.Response
// @Router /api/instructor/courses/{id}/exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ExamCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.CreateExam(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

// @Summary List a course's exams
// @Tags exams
// @Security BearerAuth
// @Produce json
// @Param id path int true "course ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id}/exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	exams, err := c.ExamService.ListExams(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// @Summary Get an exam with questions and correct flags
// @Tags exams
// @Security BearerAuth
// @Produce json
// @Param id path int true "exam ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/exams/{id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	payload, err := c.ExamService.GetExamForInstructor(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, payload)
}

// @Summary Update an exam's settings
// @Tags exams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "exam ID"
// @Param body body service.ExamUpdateRequest true "fields to change"
// @Success 200 {object} util.Response
// @Router /api/instructor/exams/{id} [put]
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ExamUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ExamService.UpdateExam(claims.UserID, util.MustParseUint(ctx.Param("id")), req); err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "exam updated"})
}

// @Summary Delete an exam with its questions and options
// @Tags exams
// @Security BearerAuth
// @Produce json
// @Param id path int true "exam ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/exams/{id} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ExamService.DeleteExam(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "exam deleted"})
}

// @Summary Add a question to an exam
// @Tags exams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "exam ID"
// @Param body body service.QuestionRequest true "question payload"
// @Success 201 {object} util.Response
// @Router /api/instructor/exams/{id}/questions [post]
func (c *ExamController) AddQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.ExamService.AddQuestion(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// @Summary Update a question's text, points or order
// @Tags exams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "question ID"
// @Param body body service.QuestionUpdateRequest true "fields to change"
// @Success 200 {object} util.Response
// @Router /api/instructor/questions/{id} [put]
func (c *ExamController) UpdateQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuestionUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ExamService.UpdateQuestion(claims.UserID, util.MustParseUint(ctx.Param("id")), req); err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "question updated"})
}

// @Summary Delete a question and its options
// @Tags exams
// @Security BearerAuth
// @Produce json
// @Param id path int true "question ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/questions/{id} [delete]
func (c *ExamController) DeleteQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ExamService.DeleteQuestion(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "question deleted"})
}

type replaceOptionsRequest struct {
	Options []service.OptionRequest `json:"options" binding:"required"`
}

// @Summary Replace a question's options
// @Tags exams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "question ID"
// @Param body body replaceOptionsRequest true "full option set"
// @Success 200 {object} util.Response
// @Router /api/instructor/questions/{id}/options [put]
func (c *ExamController) ReplaceOptions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req replaceOptionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	options, err := c.ExamService.ReplaceQuestionOptions(claims.UserID, util.MustParseUint(ctx.Param("id")), req.Options)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, options)
}
