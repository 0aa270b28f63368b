package http

import (
	"net/http"

	"learnloop-backend/internal/domain"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRouter(handler *Handler) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public Routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", handler.GetAllCourses)
		courses.GET("/catalog", handler.GetCatalog)
		courses.GET("/mine", AuthMiddleware(domain.RoleInstructor), handler.GetMyCourse)
		courses.GET("/:id", handler.GetCourseDetail)

		// Instructor Only
		courses.POST("", AuthMiddleware(domain.RoleInstructor), handler.CreateCourse)
		courses.DELETE("/:id", AuthMiddleware(domain.RoleInstructor), handler.DeleteCourse)
		courses.POST("/:id/lectures", AuthMiddleware(domain.RoleInstructor), handler.AddLecture)
		courses.PUT("/:id/lectures/:lectureId", AuthMiddleware(domain.RoleInstructor), handler.UpdateLecture)
		courses.DELETE("/:id/lectures/:lectureId", AuthMiddleware(domain.RoleInstructor), handler.DeleteLecture)

		// Any authenticated user; answers hidden unless owner
		courses.GET("/:id/lectures", AuthMiddleware(), handler.ListLectures)
	}

	lectures := api.Group("/lectures")
	lectures.Use(AuthMiddleware())
	{
		lectures.GET("/:id", handler.GetLecture)
		lectures.POST("/:id/complete", handler.CompleteLecture)
		lectures.POST("/:id/submit", handler.SubmitQuiz)
	}

	api.GET("/progress/:courseId", AuthMiddleware(), handler.GetCourseProgress)

	return r
}
