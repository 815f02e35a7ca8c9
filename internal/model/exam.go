package model

// swagger:model Exam
type Exam struct {
	BaseModel
	CourseID         uint    `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	ModuleID         *uint   `gorm:"index;type:bigint unsigned" json:"moduleId"`
	Title            string  `gorm:"size:255;not null" json:"title"`
	Description      string  `gorm:"type:text" json:"description"`
	TimeLimitMinutes *int    `json:"timeLimitMinutes"`
	AllowedAttempts  int     `gorm:"default:1" json:"allowedAttempts"`
	PassPercentage   float64 `gorm:"type:decimal(5,2);default:70" json:"passPercentage"`
	Active           bool    `gorm:"default:true" json:"active"`

	Questions []Question `gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}
