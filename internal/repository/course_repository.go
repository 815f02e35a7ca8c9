package repository

import (
	"course_hub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) UpdateFields(courseID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.DB.Model(&model.Course{}).Where("id = ?", courseID).Updates(updates).Error
}

func (r *CourseRepository) Delete(courseID uint) error {
	return r.DB.Delete(&model.Course{}, courseID).Error
}

// FindOwned resolves a course only when it belongs to the instructor.
// A miss for either reason is gorm.ErrRecordNotFound, so callers cannot
// distinguish "absent" from "not yours".
func (r *CourseRepository) FindOwned(courseID, instructorID uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("id = ? AND instructor_id = ?", courseID, instructorID).First(&course).Error
	return &course, err
}

func (r *CourseRepository) ListByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Preload("Category").
		Preload("Badges").
		Where("instructor_id = ?", instructorID).
		Order("created_at desc").
		Find(&courses).Error
	return courses, err
}

// CountContent returns module and lesson counts for a course.
func (r *CourseRepository) CountContent(courseID uint) (modules int64, lessons int64, err error) {
	if err = r.DB.Model(&model.CourseModule{}).Where("course_id = ?", courseID).Count(&modules).Error; err != nil {
		return
	}
	err = r.DB.Model(&model.Lesson{}).
		Joins("INNER JOIN course_modules m ON m.id = lessons.module_id").
		Where("m.course_id = ? AND m.deleted_at IS NULL", courseID).
		Count(&lessons).Error
	return
}

// FindOwnedWithContent loads a course with nested modules, lessons and exams.
func (r *CourseRepository) FindOwnedWithContent(courseID, instructorID uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Category").
		Preload("Badges").
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_modules.`order` asc")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.`order` asc")
		}).
		Where("id = ? AND instructor_id = ?", courseID, instructorID).
		First(&course).Error
	return &course, err
}

func (r *CourseRepository) SyncBadges(courseID uint, badgeIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var current []model.CourseBadge
		if err := tx.Where("course_id = ?", courseID).Find(&current).Error; err != nil {
			return err
		}

		want := make(map[uint]bool, len(badgeIDs))
		for _, id := range badgeIDs {
			want[id] = true
		}

		have := make(map[uint]bool, len(current))
		for _, link := range current {
			have[link.BadgeID] = true
			if !want[link.BadgeID] {
				if err := tx.Delete(&model.CourseBadge{}, link.ID).Error; err != nil {
					return err
				}
			}
		}

		var add []model.CourseBadge
		for _, id := range badgeIDs {
			if !have[id] {
				add = append(add, model.CourseBadge{CourseID: courseID, BadgeID: id})
			}
		}
		if len(add) > 0 {
			if err := tx.Create(&add).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
