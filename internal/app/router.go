package app

import (
	"course_hub_backend/docs"
	"course_hub_backend/internal/config"
	"course_hub_backend/internal/middleware"
	"course_hub_backend/internal/model"
	"course_hub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/categories", c.category.ListCategories)
		public.GET("/badges", c.course.ListBadges)
	}

	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		authed.GET("/auth/me", c.auth.Me)
		authed.PUT("/auth/profile", c.auth.UpdateProfile)

		// exam taking, any authenticated role
		authed.GET("/exams/:id", c.attempt.GetExam)
		authed.POST("/exams/:id/attempts", c.attempt.StartAttempt)
		authed.PUT("/attempts/:id/answers", c.attempt.RecordAnswer)
		authed.GET("/attempts/:id/tick", c.attempt.Tick)
		authed.POST("/attempts/:id/submit", c.attempt.Submit)
		authed.GET("/attempts/:id/detail", c.attempt.Detail)
	}

	instructor := router.Group("/api/instructor")
	instructor.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Instructor))
	{
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.GET("/courses", c.course.ListCourses)
		instructor.GET("/courses/:id", c.course.GetCourse)
		instructor.PUT("/courses/:id", c.course.UpdateCourse)
		instructor.DELETE("/courses/:id", c.course.DeleteCourse)
		instructor.GET("/courses/:id/badges", c.course.ListCourseBadges)
		instructor.PUT("/courses/:id/badges", c.course.AssignBadges)

		instructor.POST("/courses/:id/modules", c.module.CreateModule)
		instructor.GET("/courses/:id/modules", c.module.ListModules)
		instructor.PUT("/modules/:id", c.module.UpdateModule)
		instructor.DELETE("/modules/:id", c.module.DeleteModule)

		instructor.POST("/modules/:id/lessons", c.module.CreateLesson)
		instructor.POST("/modules/:id/documents", c.module.UploadDocument)
		instructor.POST("/modules/:id/videos", c.module.UploadVideo)
		instructor.PUT("/lessons/:id", c.module.UpdateLesson)
		instructor.DELETE("/lessons/:id", c.module.DeleteLesson)

		instructor.POST("/courses/:id/exams", c.exam.CreateExam)
		instructor.GET("/courses/:id/exams", c.exam.ListExams)
		instructor.GET("/exams/:id", c.exam.GetExam)
		instructor.PUT("/exams/:id", c.exam.UpdateExam)
		instructor.DELETE("/exams/:id", c.exam.DeleteExam)

		instructor.POST("/exams/:id/questions", c.exam.AddQuestion)
		instructor.PUT("/questions/:id", c.exam.UpdateQuestion)
		instructor.DELETE("/questions/:id", c.exam.DeleteQuestion)
		instructor.PUT("/questions/:id/options", c.exam.ReplaceOptions)
	}
}
