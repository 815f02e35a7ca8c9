package service

import (
	"course_hub_backend/internal/model"
	"course_hub_backend/internal/repository"
	"course_hub_backend/internal/util"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type ExamService struct {
	ExamRepo   *repository.ExamRepository
	CourseRepo *repository.CourseRepository
	ModuleRepo *repository.ModuleRepository
}

func NewExamService(
	examRepo *repository.ExamRepository,
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
) *ExamService {
	return &ExamService{
		ExamRepo:   examRepo,
		CourseRepo: courseRepo,
		ModuleRepo: moduleRepo,
	}
}

type ExamCreateRequest struct {
	Title            string  `json:"title" binding:"required"`
	Description      string  `json:"description"`
	ModuleID         *uint   `json:"moduleId"`
	TimeLimitMinutes *int    `json:"timeLimitMinutes"`
	AllowedAttempts  int     `json:"allowedAttempts"`
	PassPercentage   float64 `json:"passPercentage"`
	Active           *bool   `json:"active"`
}

type ExamUpdateRequest struct {
	Title            *string  `json:"title"`
	Description      *string  `json:"description"`
	ModuleID         *uint    `json:"moduleId"`
	TimeLimitMinutes *int     `json:"timeLimitMinutes"`
	AllowedAttempts  *int     `json:"allowedAttempts"`
	PassPercentage   *float64 `json:"passPercentage"`
	Active           *bool    `json:"active"`
}

type QuestionRequest struct {
	Text    string          `json:"text" binding:"required"`
	Type    string          `json:"type"`
	Points  float64         `json:"points"`
	Order   int             `json:"order"`
	Options []OptionRequest `json:"options"`
}

// OptionRequest updates an existing option when ID is set and creates a
// new one when it is zero.
type OptionRequest struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
	Order     int    `json:"order"`
}

func validateExamSettings(timeLimit *int, attempts int, pass float64) error {
	if timeLimit != nil && *timeLimit <= 0 {
		return util.NewValidationError("time limit must be a positive number of minutes")
	}
	if attempts < 1 {
		return util.NewValidationError("allowed attempts must be at least 1")
	}
	if pass < 0 || pass > 100 {
		return util.NewValidationError("pass percentage must be between 0 and 100")
	}
	return nil
}

func validateOptions(questionType model.QuestionType, options []OptionRequest) error {
	if questionType != model.MultipleChoice {
		if len(options) > 0 {
			return util.NewValidationError("free text questions cannot have options")
		}
		return nil
	}
	if len(options) < 2 {
		return util.NewValidationError("multiple choice questions need at least 2 options")
	}
	hasCorrect := false
	for _, o := range options {
		if strings.TrimSpace(o.Text) == "" {
			return util.NewValidationError("option text cannot be empty")
		}
		if o.IsCorrect {
			hasCorrect = true
		}
	}
	if !hasCorrect {
		return util.NewValidationError("multiple choice questions need at least one correct option")
	}
	return nil
}

func (s *ExamService) CreateExam(instructorID, courseID uint, req ExamCreateRequest) (*model.Exam, error) {
	if _, err := s.CourseRepo.FindOwned(courseID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, util.NewValidationError("title is required")
	}

	attempts := req.AllowedAttempts
	if attempts == 0 {
		attempts = 1
	}
	pass := req.PassPercentage
	if pass == 0 {
		pass = 70
	}
	if err := validateExamSettings(req.TimeLimitMinutes, attempts, pass); err != nil {
		return nil, err
	}

	if req.ModuleID != nil {
		module, err := s.ModuleRepo.FindOwned(*req.ModuleID, instructorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrModuleNotFound
			}
			return nil, err
		}
		if module.CourseID != courseID {
			return nil, util.NewValidationError("module does not belong to this course")
		}
	}

	exam := &model.Exam{
		CourseID:         courseID,
		ModuleID:         req.ModuleID,
		Title:            req.Title,
		Description:      req.Description,
		TimeLimitMinutes: req.TimeLimitMinutes,
		AllowedAttempts:  attempts,
		PassPercentage:   pass,
		Active:           true,
	}
	if req.Active != nil {
		exam.Active = *req.Active
	}
	if err := s.ExamRepo.Create(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) UpdateExam(instructorID, examID uint, req ExamUpdateRequest) error {
	exam, err := s.ExamRepo.FindOwned(examID, instructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrExamNotFound
		}
		return err
	}

	timeLimit := exam.TimeLimitMinutes
	if req.TimeLimitMinutes != nil {
		timeLimit = req.TimeLimitMinutes
	}
	attempts := exam.AllowedAttempts
	if req.AllowedAttempts != nil {
		attempts = *req.AllowedAttempts
	}
	pass := exam.PassPercentage
	if req.PassPercentage != nil {
		pass = *req.PassPercentage
	}
	if err := validateExamSettings(timeLimit, attempts, pass); err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return util.NewValidationError("title cannot be empty")
		}
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ModuleID != nil {
		module, err := s.ModuleRepo.FindOwned(*req.ModuleID, instructorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrModuleNotFound
			}
			return err
		}
		if module.CourseID != exam.CourseID {
			return util.NewValidationError("module does not belong to this course")
		}
		updates["module_id"] = *req.ModuleID
	}
	if req.TimeLimitMinutes != nil {
		updates["time_limit_minutes"] = *req.TimeLimitMinutes
	}
	if req.AllowedAttempts != nil {
		updates["allowed_attempts"] = *req.AllowedAttempts
	}
	if req.PassPercentage != nil {
		updates["pass_percentage"] = *req.PassPercentage
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		return nil
	}
	return s.ExamRepo.UpdateFields(examID, updates)
}

func (s *ExamService) DeleteExam(instructorID, examID uint) error {
	if _, err := s.ExamRepo.FindOwned(examID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrExamNotFound
		}
		return err
	}
	return s.ExamRepo.Delete(examID)
}

func (s *ExamService) ListExams(instructorID, courseID uint) ([]model.Exam, error) {
	if _, err := s.CourseRepo.FindOwned(courseID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return s.ExamRepo.ListByCourse(courseID)
}

// GetExamForInstructor assembles an owned exam with the correct flags
// included.
func (s *ExamService) GetExamForInstructor(instructorID, examID uint) (*ExamPayload, error) {
	exam, err := s.ExamRepo.FindOwned(examID, instructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	questions, err := s.ExamRepo.QuestionsWithOptions(examID)
	if err != nil {
		return nil, err
	}
	payload := buildExamPayload(exam, questions, true)
	return &payload, nil
}

// GetExamForStudent assembles an exam for taking. Inactive exams are not
// deliverable and the correct flags are never included.
func (s *ExamService) GetExamForStudent(examID uint) (*ExamPayload, error) {
	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	if !exam.Active {
		return nil, util.ErrExamInactive
	}
	questions, err := s.ExamRepo.QuestionsWithOptions(examID)
	if err != nil {
		return nil, err
	}
	payload := buildExamPayload(exam, questions, false)
	return &payload, nil
}

func (s *ExamService) AddQuestion(instructorID, examID uint, req QuestionRequest) (*model.Question, error) {
	if _, err := s.ExamRepo.FindOwned(examID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, util.NewValidationError("question text is required")
	}

	questionType := model.MultipleChoice
	if req.Type != "" {
		questionType = model.QuestionType(req.Type)
	}
	if questionType != model.MultipleChoice && questionType != model.FreeText {
		return nil, util.NewValidationError("question type must be multiple_choice or free_text")
	}
	if req.Points < 0 {
		return nil, util.NewValidationError("points cannot be negative")
	}
	if err := validateOptions(questionType, req.Options); err != nil {
		return nil, err
	}

	points := req.Points
	if points == 0 {
		points = 1
	}
	question := &model.Question{
		ExamID: examID,
		Text:   req.Text,
		Type:   questionType,
		Points: points,
		Order:  req.Order,
	}
	for _, o := range req.Options {
		question.Options = append(question.Options, model.Option{
			Text:      o.Text,
			IsCorrect: o.IsCorrect,
			Order:     o.Order,
		})
	}
	if err := s.ExamRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

type QuestionUpdateRequest struct {
	Text   *string  `json:"text"`
	Points *float64 `json:"points"`
	Order  *int     `json:"order"`
}

func (s *ExamService) UpdateQuestion(instructorID, questionID uint, req QuestionUpdateRequest) error {
	if _, err := s.ExamRepo.FindOwnedQuestion(questionID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}

	updates := map[string]interface{}{}
	if req.Text != nil {
		if strings.TrimSpace(*req.Text) == "" {
			return util.NewValidationError("question text cannot be empty")
		}
		updates["text"] = *req.Text
	}
	if req.Points != nil {
		if *req.Points <= 0 {
			return util.NewValidationError("points must be positive")
		}
		updates["points"] = *req.Points
	}
	if req.Order != nil {
		updates["order"] = *req.Order
	}
	if len(updates) == 0 {
		return nil
	}
	return s.ExamRepo.UpdateQuestionFields(questionID, updates)
}

func (s *ExamService) DeleteQuestion(instructorID, questionID uint) error {
	if _, err := s.ExamRepo.FindOwnedQuestion(questionID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.ExamRepo.DeleteQuestion(questionID)
}

// ReplaceQuestionOptions syncs a question's options against the incoming
// set in one transaction. Options with a known ID are updated in place,
// new ones are created and absent ones are deleted, so concurrent readers
// never observe an empty option list.
func (s *ExamService) ReplaceQuestionOptions(instructorID, questionID uint, options []OptionRequest) ([]model.Option, error) {
	question, err := s.ExamRepo.FindOwnedQuestion(questionID, instructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if err := validateOptions(question.Type, options); err != nil {
		return nil, err
	}

	incoming := make([]model.Option, 0, len(options))
	for _, o := range options {
		opt := model.Option{
			QuestionID: questionID,
			Text:       o.Text,
			IsCorrect:  o.IsCorrect,
			Order:      o.Order,
		}
		opt.ID = o.ID
		incoming = append(incoming, opt)
	}
	if err := s.ExamRepo.ReplaceOptions(questionID, incoming); err != nil {
		return nil, err
	}
	return s.ExamRepo.OptionsByQuestion(questionID)
}
