package controller

import (
	"strconv"

	"course_hub_backend/internal/service"
	"course_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	ModuleService *service.ModuleService
}

func NewModuleController(moduleService *service.ModuleService) *ModuleController {
	return &ModuleController{ModuleService: moduleService}
}

// @Summary Create a module in a course
// @Tags modules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "course ID"
// @Param body body service.ModuleCreateRequest true "module payload"
// @Success 201 {object} util.Response
// @Router /api/instructor/courses/{id}/modules [post]
func (c *ModuleController) CreateModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ModuleCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ModuleService.CreateModule(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// @Summary List a course's modules with their lessons
// @Tags modules
// @Security BearerAuth
// @Produce json
// @Param id path int true "course ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id}/modules [get]
func (c *ModuleController) ListModules(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	modules, err := c.ModuleService.ListModules(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// @Summary Update a module
// @Tags modules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "module ID"
// @Param body body service.ModuleUpdateRequest true "fields to change"
// @Success 200 {object} util.Response
// @Router /api/instructor/modules/{id} [put]
func (c *ModuleController) UpdateModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ModuleUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ModuleService.UpdateModule(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// @Summary Delete a module
// @Tags modules
// @Security BearerAuth
// @Produce json
// @Param id path int true "module ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/modules/{id} [delete]
func (c *ModuleController) DeleteModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ModuleService.DeleteModule(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "module deleted"})
}

// @Summary Create a lesson in a module
// @Tags lessons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "module ID"
// @Param body body service.LessonCreateRequest true "lesson payload"
// @Success 201 {object} util.Response
// @Router /api/instructor/modules/{id}/lessons [post]
func (c *ModuleController) CreateLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.LessonCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.ModuleService.CreateLesson(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// @Summary Update a lesson
// @Tags lessons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "lesson ID"
// @Param body body service.LessonUpdateRequest true "fields to change"
// @Success 200 {object} util.Response
// @Router /api/instructor/lessons/{id} [put]
func (c *ModuleController) UpdateLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.LessonUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.ModuleService.UpdateLesson(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// @Summary Delete a lesson
// @Tags lessons
// @Security BearerAuth
// @Produce json
// @Param id path int true "lesson ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/lessons/{id} [delete]
func (c *ModuleController) DeleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ModuleService.DeleteLesson(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "lesson deleted"})
}

func lessonOrderFromForm(ctx *gin.Context) int {
	order, _ := strconv.Atoi(ctx.PostForm("order"))
	return order
}

// @Summary Upload a document and create a document lesson for it
// @Tags lessons
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "module ID"
// @Param file formData file true "PDF or Word document"
// @Param title formData string false "lesson title, defaults to the file name"
// @Param order formData int false "lesson order"
// @Success 201 {object} util.Response
// @Router /api/instructor/modules/{id}/documents [post]
func (c *ModuleController) UploadDocument(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	lesson, err := c.ModuleService.UploadDocument(
		claims.UserID,
		util.MustParseUint(ctx.Param("id")),
		ctx.PostForm("title"),
		lessonOrderFromForm(ctx),
		file,
	)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// @Summary Upload a video and create a video lesson for it
// @Tags lessons
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "module ID"
// @Param file formData file true "video file"
// @Param title formData string false "lesson title, defaults to the file name"
// @Param order formData int false "lesson order"
// @Success 201 {object} util.Response
// @Router /api/instructor/modules/{id}/videos [post]
func (c *ModuleController) UploadVideo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	lesson, err := c.ModuleService.UploadVideo(
		claims.UserID,
		util.MustParseUint(ctx.Param("id")),
		ctx.PostForm("title"),
		lessonOrderFromForm(ctx),
		file,
	)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}
