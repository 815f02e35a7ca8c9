package service

import (
	"context"
	"course_hub_backend/internal/config"
	"course_hub_backend/internal/model"
	"course_hub_backend/internal/repository"
	"course_hub_backend/internal/util"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ModuleService struct {
	ModuleRepo *repository.ModuleRepository
	LessonRepo *repository.LessonRepository
	CourseRepo *repository.CourseRepository
	Storage    *StorageService
	Config     *config.Config
	Logger     *zap.Logger
}

func NewModuleService(
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	storage *StorageService,
	cfg *config.Config,
	logger *zap.Logger,
) *ModuleService {
	return &ModuleService{
		ModuleRepo: moduleRepo,
		LessonRepo: lessonRepo,
		CourseRepo: courseRepo,
		Storage:    storage,
		Config:     cfg,
		Logger:     logger,
	}
}

type ModuleCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type ModuleUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

func (s *ModuleService) CreateModule(instructorID, courseID uint, req ModuleCreateRequest) (*model.CourseModule, error) {
	if _, err := s.CourseRepo.FindOwned(courseID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, util.NewValidationError("title is required")
	}

	module := &model.CourseModule{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.ModuleRepo.Create(module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *ModuleService) UpdateModule(instructorID, moduleID uint, req ModuleUpdateRequest) (*model.CourseModule, error) {
	module, err := s.ModuleRepo.FindOwned(moduleID, instructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, util.NewValidationError("title cannot be empty")
		}
		module.Title = *req.Title
	}
	if req.Description != nil {
		module.Description = *req.Description
	}
	if req.Order != nil {
		module.Order = *req.Order
	}

	if err := s.ModuleRepo.Update(module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *ModuleService) DeleteModule(instructorID, moduleID uint) error {
	if _, err := s.ModuleRepo.FindOwned(moduleID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrModuleNotFound
		}
		return err
	}
	return s.ModuleRepo.Delete(moduleID)
}

func (s *ModuleService) ListModules(instructorID, courseID uint) ([]model.CourseModule, error) {
	if _, err := s.CourseRepo.FindOwned(courseID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return s.ModuleRepo.ListByCourse(courseID)
}

type LessonCreateRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	ContentType     string `json:"contentType"`
	ContentURL      string `json:"contentUrl"`
	DurationMinutes int    `json:"durationMinutes"`
	Order           int    `json:"order"`
}

type LessonUpdateRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	ContentType     *string `json:"contentType"`
	ContentURL      *string `json:"contentUrl"`
	DurationMinutes *int    `json:"durationMinutes"`
	Order           *int    `json:"order"`
}

func (s *ModuleService) CreateLesson(instructorID, moduleID uint, req LessonCreateRequest) (*model.Lesson, error) {
	if _, err := s.ModuleRepo.FindOwned(moduleID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, util.NewValidationError("title is required")
	}

	lesson := &model.Lesson{
		ModuleID:        moduleID,
		Title:           req.Title,
		Description:     req.Description,
		ContentURL:      req.ContentURL,
		DurationMinutes: req.DurationMinutes,
		Order:           req.Order,
	}
	if req.ContentType != "" {
		lesson.ContentType = model.LessonContentType(req.ContentType)
	} else {
		lesson.ContentType = model.ContentVideo
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *ModuleService) UpdateLesson(instructorID, lessonID uint, req LessonUpdateRequest) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindOwned(lessonID, instructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, util.NewValidationError("title cannot be empty")
		}
		lesson.Title = *req.Title
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.ContentType != nil {
		lesson.ContentType = model.LessonContentType(*req.ContentType)
	}
	if req.ContentURL != nil {
		lesson.ContentURL = *req.ContentURL
	}
	if req.DurationMinutes != nil {
		lesson.DurationMinutes = *req.DurationMinutes
	}
	if req.Order != nil {
		lesson.Order = *req.Order
	}

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *ModuleService) DeleteLesson(instructorID, lessonID uint) error {
	if _, err := s.LessonRepo.FindOwned(lessonID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}
	return s.LessonRepo.Delete(lessonID)
}

// UploadDocument stores a PDF or Word file and creates a document lesson
// pointing at it.
func (s *ModuleService) UploadDocument(instructorID, moduleID uint, title string, order int, file *multipart.FileHeader) (*model.Lesson, error) {
	if _, err := s.ModuleRepo.FindOwned(moduleID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !util.HasAllowedExtension(ext, util.AllowedDocumentExtensions) {
		return nil, util.NewValidationError("only PDF and Word documents are allowed")
	}
	if file.Size > int64(s.Config.Upload.MaxDocumentMB)*1024*1024 {
		return nil, util.NewValidationError(fmt.Sprintf("document exceeds the %dMB limit", s.Config.Upload.MaxDocumentMB))
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, _ := util.ValidateMimeType(src, nil)
	if !util.IsDocument(mimeType) {
		return nil, util.NewValidationError("file content does not look like a PDF or Word document")
	}
	if _, err := src.Seek(0, 0); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("documents/doc-%s%s", uuid.New().String(), ext)
	url, err := s.Storage.Upload(context.Background(), objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = strings.TrimSuffix(file.Filename, ext)
	}
	lesson := &model.Lesson{
		ModuleID:    moduleID,
		Title:       title,
		ContentType: model.ContentDocument,
		ContentURL:  url,
		Order:       order,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// UploadVideo stores a video file, probes its duration with ffprobe and
// creates a video lesson. A failed probe still creates the lesson with a
// zero duration.
func (s *ModuleService) UploadVideo(instructorID, moduleID uint, title string, order int, file *multipart.FileHeader) (*model.Lesson, error) {
	if _, err := s.ModuleRepo.FindOwned(moduleID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !util.HasAllowedExtension(ext, util.AllowedVideoExtensions) {
		return nil, util.NewValidationError("unsupported video format")
	}
	if file.Size > int64(s.Config.Upload.MaxVideoMB)*1024*1024 {
		return nil, util.NewValidationError(fmt.Sprintf("video exceeds the %dMB limit", s.Config.Upload.MaxVideoMB))
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// ffprobe needs a path, so the upload is staged on disk first
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	durationMinutes := 0
	if info, err := util.GetVideoInfo(tmpPath); err != nil {
		s.Logger.Warn("video probe failed", zap.String("file", file.Filename), zap.Error(err))
	} else {
		durationMinutes = int(math.Ceil(info.Duration / 60))
	}

	objectName := fmt.Sprintf("videos/video-%s%s", uuid.New().String(), ext)
	url, err := s.Storage.UploadFile(context.Background(), objectName, tmpPath, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = strings.TrimSuffix(file.Filename, ext)
	}
	lesson := &model.Lesson{
		ModuleID:        moduleID,
		Title:           title,
		ContentType:     model.ContentVideo,
		ContentURL:      url,
		DurationMinutes: durationMinutes,
		Order:           order,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}
