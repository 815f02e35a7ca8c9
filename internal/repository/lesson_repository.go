package repository

import (
	"course_hub_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) Delete(lessonID uint) error {
	return r.DB.Delete(&model.Lesson{}, lessonID).Error
}

// FindOwned resolves a lesson through its module and course to the instructor.
func (r *LessonRepository) FindOwned(lessonID, instructorID uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.
		Joins("INNER JOIN course_modules m ON m.id = lessons.module_id").
		Joins("INNER JOIN courses c ON c.id = m.course_id").
		Where("lessons.id = ? AND c.instructor_id = ? AND m.deleted_at IS NULL AND c.deleted_at IS NULL", lessonID, instructorID).
		First(&lesson).Error
	return &lesson, err
}

func (r *LessonRepository) ListByModule(moduleID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("module_id = ?", moduleID).Order("`order` asc").Find(&lessons).Error
	return lessons, err
}
