package database

import (
	"course_hub_backend/internal/config"
	"course_hub_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Badge{},
		&model.CourseBadge{},
		&model.Course{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.Exam{},
		&model.Question{},
		&model.Option{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDefaults(db)

	return db, nil
}

// seedDefaults inserts the fixture rows the platform ships with.
func seedDefaults(db *gorm.DB) {
	var catCount int64
	db.Model(&model.Category{}).Count(&catCount)
	if catCount == 0 {
		defaultCategories := []model.Category{
			{Name: "Programming", Description: "Software development and coding"},
			{Name: "Design", Description: "Graphic, UX and product design"},
			{Name: "Business", Description: "Management, entrepreneurship and finance"},
			{Name: "Marketing", Description: "Digital marketing and growth"},
			{Name: "Languages", Description: "Foreign language learning"},
			{Name: "Personal Development", Description: "Productivity and soft skills"},
		}
		for _, c := range defaultCategories {
			db.Create(&c)
		}
	}

	var badgeCount int64
	db.Model(&model.Badge{}).Count(&badgeCount)
	if badgeCount == 0 {
		defaultBadges := []model.Badge{
			{Name: "Certified", Description: "Course grants a completion certificate"},
			{Name: "Hands-on", Description: "Built around practical exercises"},
			{Name: "Beginner Friendly", Description: "No prior knowledge required"},
			{Name: "Intensive", Description: "Fast-paced, high workload"},
			{Name: "Community", Description: "Includes an active student community"},
		}
		for _, b := range defaultBadges {
			db.Create(&b)
		}
	}
}
