package service

import (
	"context"
	"course_hub_backend/internal/model"
	"course_hub_backend/internal/repository"
	"course_hub_backend/internal/util"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	ModuleRepo *repository.ModuleRepository
	BadgeRepo  *repository.BadgeRepository
	ExamRepo   *repository.ExamRepository
	Storage    *StorageService
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	badgeRepo *repository.BadgeRepository,
	examRepo *repository.ExamRepository,
	storage *StorageService,
) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		ModuleRepo: moduleRepo,
		BadgeRepo:  badgeRepo,
		ExamRepo:   examRepo,
		Storage:    storage,
	}
}

type CourseCreateRequest struct {
	Title         string  `json:"title" form:"title" binding:"required"`
	Description   string  `json:"description" form:"description"`
	CategoryID    *uint   `json:"categoryId" form:"categoryId"`
	Price         float64 `json:"price" form:"price"`
	Level         string  `json:"level" form:"level"`
	DurationHours int     `json:"durationHours" form:"durationHours"`
	Language      string  `json:"language" form:"language"`
	Status        string  `json:"status" form:"status"`
}

// CourseUpdateRequest carries a partial update; nil fields are preserved.
type CourseUpdateRequest struct {
	Title         *string  `json:"title" form:"title"`
	Description   *string  `json:"description" form:"description"`
	CategoryID    *uint    `json:"categoryId" form:"categoryId"`
	Price         *float64 `json:"price" form:"price"`
	Level         *string  `json:"level" form:"level"`
	DurationHours *int     `json:"durationHours" form:"durationHours"`
	Language      *string  `json:"language" form:"language"`
	Status        *string  `json:"status" form:"status"`
}

// CourseSummary is a list row with content aggregates.
type CourseSummary struct {
	model.Course
	TotalModules int64 `json:"totalModules"`
	TotalLessons int64 `json:"totalLessons"`
}

func (s *CourseService) CreateCourse(instructorID uint, req CourseCreateRequest, cover *multipart.FileHeader) (*model.Course, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, util.NewValidationError("title is required")
	}

	course := &model.Course{
		InstructorID:  instructorID,
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Price:         req.Price,
		DurationHours: req.DurationHours,
	}
	if req.Level != "" {
		course.Level = model.CourseLevel(req.Level)
	} else {
		course.Level = model.LevelBeginner
	}
	if req.Language != "" {
		course.Language = req.Language
	} else {
		course.Language = "English"
	}
	if req.Status != "" {
		course.Status = model.CourseStatus(req.Status)
	} else {
		course.Status = model.StatusDraft
	}

	if cover != nil {
		url, err := s.uploadCover(cover)
		if err != nil {
			return nil, err
		}
		course.CoverImage = url
	}

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(instructorID, courseID uint, req CourseUpdateRequest, cover *multipart.FileHeader) error {
	course, err := s.CourseRepo.FindOwned(courseID, instructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Level != nil {
		updates["level"] = *req.Level
	}
	if req.DurationHours != nil {
		updates["duration_hours"] = *req.DurationHours
	}
	if req.Language != nil {
		updates["language"] = *req.Language
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if cover != nil {
		url, err := s.uploadCover(cover)
		if err != nil {
			return err
		}
		updates["cover_image"] = url

		// best-effort cleanup, a stale object is not worth failing the update
		if course.CoverImage != "" {
			old := strings.TrimPrefix(course.CoverImage, "/uploads/")
			_ = s.Storage.Delete(context.Background(), old)
		}
	}

	return s.CourseRepo.UpdateFields(courseID, updates)
}

func (s *CourseService) DeleteCourse(instructorID, courseID uint) error {
	if _, err := s.CourseRepo.FindOwned(courseID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	return s.CourseRepo.Delete(courseID)
}

func (s *CourseService) ListCourses(instructorID uint) ([]CourseSummary, error) {
	courses, err := s.CourseRepo.ListByInstructor(instructorID)
	if err != nil {
		return nil, err
	}

	summaries := make([]CourseSummary, 0, len(courses))
	for _, course := range courses {
		modules, lessons, err := s.CourseRepo.CountContent(course.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, CourseSummary{
			Course:       course,
			TotalModules: modules,
			TotalLessons: lessons,
		})
	}
	return summaries, nil
}

// ModuleContent is a module with its lessons and, when present, the
// module's exam payload.
type ModuleContent struct {
	model.CourseModule
	Exam *ExamPayload `json:"exam,omitempty"`
}

type CourseDetail struct {
	model.Course
	ModuleContents []ModuleContent `json:"moduleContents"`
}

func (s *CourseService) GetCourse(instructorID, courseID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindOwnedWithContent(courseID, instructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	detail := &CourseDetail{Course: *course}
	for _, module := range course.Modules {
		content := ModuleContent{CourseModule: module}

		exam, err := s.ExamRepo.FindByModule(module.ID)
		if err == nil {
			questions, err := s.ExamRepo.QuestionsWithOptions(exam.ID)
			if err != nil {
				return nil, err
			}
			payload := buildExamPayload(exam, questions, true)
			content.Exam = &payload
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		detail.ModuleContents = append(detail.ModuleContents, content)
	}
	return detail, nil
}

func (s *CourseService) ListBadges() ([]model.Badge, error) {
	return s.BadgeRepo.ListAll()
}

func (s *CourseService) ListCourseBadges(instructorID, courseID uint) ([]model.Badge, error) {
	if _, err := s.CourseRepo.FindOwned(courseID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return s.BadgeRepo.ListByCourse(courseID)
}

// AssignBadges replaces a course's badge set with a diff-based sync in a
// single transaction, so a partial failure changes nothing.
func (s *CourseService) AssignBadges(instructorID, courseID uint, badgeIDs []uint) error {
	if _, err := s.CourseRepo.FindOwned(courseID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	return s.CourseRepo.SyncBadges(courseID, badgeIDs)
}

func (s *CourseService) uploadCover(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !util.HasAllowedExtension(ext, util.AllowedImageExtensions) {
		return "", util.NewValidationError("only images are allowed (jpeg, jpg, png, gif, webp)")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeImage}); err != nil {
		return "", util.NewValidationError(err.Error())
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("courses/course-%s%s", uuid.New().String(), ext)
	return s.Storage.Upload(context.Background(), objectName, src, file.Size, file.Header.Get("Content-Type"))
}
