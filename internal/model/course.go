package model

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

type CourseStatus string

const (
	StatusDraft     CourseStatus = "draft"
	StatusPublished CourseStatus = "published"
	StatusArchived  CourseStatus = "archived"
)

// swagger:model Course
type Course struct {
	BaseModel
	InstructorID  uint         `gorm:"index;type:bigint unsigned;not null" json:"instructorId"`
	Title         string       `gorm:"size:255;not null" json:"title"`
	Description   string       `gorm:"type:text" json:"description"`
	CategoryID    *uint        `gorm:"index;type:bigint unsigned" json:"categoryId"`
	Price         float64      `gorm:"type:decimal(10,2);default:0" json:"price"`
	Level         CourseLevel  `gorm:"type:enum('beginner','intermediate','advanced');default:'beginner'" json:"level"`
	DurationHours int          `gorm:"default:0" json:"durationHours"`
	Language      string       `gorm:"size:50;default:'English'" json:"language"`
	Status        CourseStatus `gorm:"type:enum('draft','published','archived');default:'draft'" json:"status"`
	CoverImage    string       `gorm:"size:255" json:"coverImage"`

	Category *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Modules  []CourseModule `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"modules,omitempty"`
	Badges   []Badge        `gorm:"many2many:course_badges" json:"badges,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
