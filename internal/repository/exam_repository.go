package repository

import (
	"course_hub_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) UpdateFields(examID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.DB.Model(&model.Exam{}).Where("id = ?", examID).Updates(updates).Error
}

func (r *ExamRepository) Delete(examID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("exam_id = ?", examID).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Option{}).Error; err != nil {
				return err
			}
			if err := tx.Where("exam_id = ?", examID).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Exam{}, examID).Error
	})
}

// FindOwned resolves an exam through its course's instructor.
func (r *ExamRepository) FindOwned(examID, instructorID uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.
		Joins("INNER JOIN courses c ON c.id = exams.course_id").
		Where("exams.id = ? AND c.instructor_id = ? AND c.deleted_at IS NULL", examID, instructorID).
		First(&exam).Error
	return &exam, err
}

func (r *ExamRepository) FindByID(examID uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.First(&exam, examID).Error
	return &exam, err
}

func (r *ExamRepository) ListByCourse(courseID uint) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Where("course_id = ?", courseID).Order("created_at desc").Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) FindByModule(moduleID uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.Where("module_id = ?", moduleID).First(&exam).Error
	return &exam, err
}

// QuestionsWithOptions returns an exam's questions ordered by `order` asc,
// each with its options in option order.
func (r *ExamRepository) QuestionsWithOptions(examID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.`order` asc")
		}).
		Where("exam_id = ?", examID).
		Order("`order` asc").
		Find(&questions).Error
	return questions, err
}

func (r *ExamRepository) CreateQuestion(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *ExamRepository) UpdateQuestionFields(questionID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.DB.Model(&model.Question{}).Where("id = ?", questionID).Updates(updates).Error
}

func (r *ExamRepository) DeleteQuestion(questionID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, questionID).Error
	})
}

// FindOwnedQuestion resolves a question through its exam and course to the instructor.
func (r *ExamRepository) FindOwnedQuestion(questionID, instructorID uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.
		Joins("INNER JOIN exams e ON e.id = questions.exam_id").
		Joins("INNER JOIN courses c ON c.id = e.course_id").
		Where("questions.id = ? AND c.instructor_id = ? AND e.deleted_at IS NULL AND c.deleted_at IS NULL", questionID, instructorID).
		First(&question).Error
	return &question, err
}

func (r *ExamRepository) OptionsByQuestion(questionID uint) ([]model.Option, error) {
	var options []model.Option
	err := r.DB.Where("question_id = ?", questionID).Order("`order` asc").Find(&options).Error
	return options, err
}

// ReplaceOptions syncs a question's option set in one transaction: options
// present in the incoming set are updated in place, missing ones deleted,
// new ones created.
func (r *ExamRepository) ReplaceOptions(questionID uint, options []model.Option) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var current []model.Option
		if err := tx.Where("question_id = ?", questionID).Find(&current).Error; err != nil {
			return err
		}

		keep := make(map[uint]bool, len(options))
		for i := range options {
			options[i].QuestionID = questionID
			if options[i].ID != 0 {
				keep[options[i].ID] = true
			}
		}

		for _, existing := range current {
			if !keep[existing.ID] {
				if err := tx.Delete(&model.Option{}, existing.ID).Error; err != nil {
					return err
				}
			}
		}

		for i := range options {
			if options[i].ID != 0 {
				if err := tx.Model(&model.Option{}).Where("id = ? AND question_id = ?", options[i].ID, questionID).
					Updates(map[string]interface{}{
						"text":       options[i].Text,
						"is_correct": options[i].IsCorrect,
						"order":      options[i].Order,
					}).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Create(&options[i]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
