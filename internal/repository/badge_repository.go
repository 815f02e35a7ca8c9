package repository

import (
	"course_hub_backend/internal/model"

	"gorm.io/gorm"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) ListAll() ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Order("name asc").Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) ListByCourse(courseID uint) ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.
		Joins("INNER JOIN course_badges cb ON cb.badge_id = badges.id").
		Where("cb.course_id = ?", courseID).
		Order("badges.name asc").
		Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) ListAssignments(courseID uint) ([]model.CourseBadge, error) {
	var links []model.CourseBadge
	err := r.DB.Where("course_id = ?", courseID).Find(&links).Error
	return links, err
}
