package model

import "time"

// swagger:model Badge
type Badge struct {
	BaseModel
	Name        string `gorm:"size:100;unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IconURL     string `gorm:"size:255" json:"iconUrl"`
}

func (Badge) TableName() string {
	return "badges"
}

// CourseBadge links a badge to a course. Rows are hard-deleted so a
// removed badge can be reassigned without tripping the unique index.
type CourseBadge struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CourseID   uint      `gorm:"index;type:bigint unsigned;uniqueIndex:idx_course_badge" json:"courseId"`
	BadgeID    uint      `gorm:"index;type:bigint unsigned;uniqueIndex:idx_course_badge" json:"badgeId"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assignedAt"`
}

func (CourseBadge) TableName() string {
	return "course_badges"
}
