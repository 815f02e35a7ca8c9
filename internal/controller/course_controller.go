package controller

import (
	"fmt"
	"mime/multipart"

	"course_hub_backend/internal/config"
	"course_hub_backend/internal/service"
	"course_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
	Config        *config.Config
}

func NewCourseController(courseService *service.CourseService, cfg *config.Config) *CourseController {
	return &CourseController{CourseService: courseService, Config: cfg}
}

func (c *CourseController) coverFromForm(ctx *gin.Context) (*multipart.FileHeader, bool) {
	file, err := ctx.FormFile("cover")
	if err != nil {
		return nil, true
	}
	if file.Size > int64(c.Config.Upload.MaxCoverMB)*1024*1024 {
		util.BadRequest(ctx, fmt.Sprintf("cover image exceeds the %dMB limit", c.Config.Upload.MaxCoverMB))
		return nil, false
	}
	return file, true
}

// @Summary Create a course
// @Tags courses
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "course title"
// @Param cover formData file false "cover image"
// @Success 201 {object} util.Response
// @Router /api/instructor/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CourseCreateRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	cover, ok := c.coverFromForm(ctx)
	if !ok {
		return
	}

	course, err := c.CourseService.CreateCourse(claims.UserID, req, cover)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary List the instructor's courses with content counts
// @Tags courses
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/instructor/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.ListCourses(claims.UserID)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary Get a course with its modules, lessons and exams
// @Tags courses
// @Security BearerAuth
// @Produce json
// @Param id path int true "course ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.CourseService.GetCourse(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary Update a course
// @Tags courses
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "course ID"
// @Param cover formData file false "replacement cover image"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CourseUpdateRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	cover, ok := c.coverFromForm(ctx)
	if !ok {
		return
	}

	if err := c.CourseService.UpdateCourse(claims.UserID, util.MustParseUint(ctx.Param("id")), req, cover); err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "course updated"})
}

// @Summary Delete a course
// @Tags courses
// @Security BearerAuth
// @Produce json
// @Param id path int true "course ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.DeleteCourse(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "course deleted"})
}

// @Summary List all available badges
// @Tags badges
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/badges [get]
func (c *CourseController) ListBadges(ctx *gin.Context) {
	badges, err := c.CourseService.ListBadges()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

// @Summary List the badges assigned to a course
// @Tags badges
// @Security BearerAuth
// @Produce json
// @Param id path int true "course ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id}/badges [get]
func (c *CourseController) ListCourseBadges(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	badges, err := c.CourseService.ListCourseBadges(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

type assignBadgesRequest struct {
	BadgeIDs []uint `json:"badgeIds"`
}

// @Summary Replace the badges assigned to a course
// @Tags badges
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "course ID"
// @Param body body assignBadgesRequest true "badge IDs"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id}/badges [put]
func (c *CourseController) AssignBadges(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req assignBadgesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.AssignBadges(claims.UserID, util.MustParseUint(ctx.Param("id")), req.BadgeIDs); err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "badges updated"})
}
