package controller

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"course_hub_backend/internal/config"
	"course_hub_backend/internal/model"
	"course_hub_backend/internal/service"
	"course_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthController struct {
	AuthService *service.AuthService
	Storage     *service.StorageService
	Config      *config.Config
}

func NewAuthController(authService *service.AuthService, storage *service.StorageService, cfg *config.Config) *AuthController {
	return &AuthController{AuthService: authService, Storage: storage, Config: cfg}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "registration payload"
// @Success 201 {object} util.Response
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
		Role:     model.UserRole(req.Role),
	}
	if err := c.AuthService.Register(user); err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Created(ctx, user)
}

// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Success 200 {object} util.Response
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, gin.H{"token": token, "user": user})
}

// @Summary Get the authenticated user's profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}

// @Summary Update the authenticated user's profile
// @Tags auth
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string false "display name"
// @Param bio formData string false "short bio, at most 100 words"
// @Param avatar formData file false "avatar image"
// @Success 200 {object} util.Response
// @Router /api/auth/profile [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	name := ctx.PostForm("name")
	bio := ctx.PostForm("bio")

	avatarURL := ""
	if file, err := ctx.FormFile("avatar"); err == nil {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !util.HasAllowedExtension(ext, util.AllowedImageExtensions) {
			util.BadRequest(ctx, "avatar must be an image (jpeg, jpg, png, gif, webp)")
			return
		}
		if file.Size > int64(c.Config.Upload.MaxAvatarMB)*1024*1024 {
			util.BadRequest(ctx, fmt.Sprintf("avatar exceeds the %dMB limit", c.Config.Upload.MaxAvatarMB))
			return
		}

		src, err := file.Open()
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		defer src.Close()

		if _, err := util.ValidateMimeType(src, []string{util.MimeImage}); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
		if _, err := src.Seek(0, 0); err != nil {
			util.LogInternalError(ctx, err)
			return
		}

		objectName := fmt.Sprintf("avatars/avatar-%s%s", uuid.New().String(), ext)
		avatarURL, err = c.Storage.Upload(context.Background(), objectName, src, file.Size, file.Header.Get("Content-Type"))
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}

	if err := c.AuthService.UpdateProfile(claims.UserID, name, bio, avatarURL); err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "profile updated"})
}
