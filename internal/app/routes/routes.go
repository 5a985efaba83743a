package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/marksheet/internal/app/controllers"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/middleware"
	"github.com/yigit/marksheet/internal/pkg/websocket"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth    *controllers.AuthController
	Student *controllers.StudentController
	Marks   *controllers.MarksController
	Teacher *controllers.TeacherController
	Health  *controllers.HealthController
	Events  *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", c.Health.Health)

	api := router.Group("/api")

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.GET("/session", authMiddleware.JWTAuth(), c.Auth.Session)
	}

	// --- Authenticated Routes Group ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)
	staffOnly := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleTeacher)

	students := authenticated.Group("/students")
	{
		students.GET("", c.Student.ListStudents)
		students.GET("/search", c.Student.SearchStudent)
		students.GET("/byClassSection", c.Student.ListByClassSection)
		students.GET("/count", c.Student.CountStudents)
		// students may read their own grid; the controller enforces ownership
		students.GET("/:id/marks", c.Marks.GetStudentMarks)
		students.POST("/marks", staffOnly, c.Marks.UpsertMarks)

		students.POST("", adminOnly, c.Student.AddStudent)
		students.DELETE("/:id", adminOnly, c.Student.RemoveStudent)
	}

	teachers := authenticated.Group("/teachers")
	{
		teachers.GET("", c.Teacher.ListTeachers)
		teachers.GET("/count", c.Teacher.CountTeachers)
		teachers.GET("/:id", c.Teacher.GetTeacher)

		teachers.POST("", adminOnly, c.Teacher.AddTeacher)
		teachers.DELETE("/:id", adminOnly, c.Teacher.RemoveTeacher)
	}

	authenticated.GET("/events/ws", c.Events.HandleConnection)
}
