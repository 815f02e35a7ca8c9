package repository

import (
	"course_hub_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(module *model.CourseModule) error {
	return r.DB.Create(module).Error
}

func (r *ModuleRepository) Update(module *model.CourseModule) error {
	return r.DB.Save(module).Error
}

func (r *ModuleRepository) Delete(moduleID uint) error {
	return r.DB.Delete(&model.CourseModule{}, moduleID).Error
}

// FindOwned resolves a module through its course's instructor.
func (r *ModuleRepository) FindOwned(moduleID, instructorID uint) (*model.CourseModule, error) {
	var module model.CourseModule
	err := r.DB.
		Joins("INNER JOIN courses c ON c.id = course_modules.course_id").
		Where("course_modules.id = ? AND c.instructor_id = ? AND c.deleted_at IS NULL", moduleID, instructorID).
		First(&module).Error
	return &module, err
}

func (r *ModuleRepository) ListByCourse(courseID uint) ([]model.CourseModule, error) {
	var modules []model.CourseModule
	err := r.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.`order` asc")
		}).
		Where("course_id = ?", courseID).
		Order("`order` asc").
		Find(&modules).Error
	return modules, err
}
