package model

type LessonContentType string

const (
	ContentVideo    LessonContentType = "video"
	ContentDocument LessonContentType = "document"
	ContentResource LessonContentType = "resource"
)

// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID        uint              `gorm:"index;type:bigint unsigned;not null" json:"moduleId"`
	Title           string            `gorm:"size:255;not null" json:"title"`
	Description     string            `gorm:"type:text" json:"description"`
	ContentType     LessonContentType `gorm:"type:enum('video','document','resource');default:'video'" json:"contentType"`
	ContentURL      string            `gorm:"size:512" json:"contentUrl"`
	DurationMinutes int               `gorm:"default:0" json:"durationMinutes"`
	Order           int               `gorm:"default:0" json:"order"`
}

func (Lesson) TableName() string {
	return "lessons"
}
