package model

// swagger:model CourseModule
type CourseModule struct {
	BaseModel
	CourseID    uint   `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Order       int    `gorm:"default:0" json:"order"`

	Lessons []Lesson `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
