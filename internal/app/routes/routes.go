package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ekinkaya/classtrack/internal/app/controllers"
	"github.com/ekinkaya/classtrack/internal/app/models"
	"github.com/ekinkaya/classtrack/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	timetableController *controllers.TimetableController,
	attendanceController *controllers.AttendanceController,
	studentController *controllers.StudentController,
	promotionController *controllers.PromotionController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// --- Instructor-facing timetable routes ---
	instructorOnly := authenticated.Group("")
	instructorOnly.Use(authMiddleware.RoleRequired(string(models.RoleInstructor)))
	{
		instructorOnly.POST("/instructors/:instructorId/slots", timetableController.AddSlot)
		instructorOnly.DELETE("/instructors/:instructorId/slots/:slotId", timetableController.RemoveSlot)
		instructorOnly.POST("/slots/:slotId/attendance", attendanceController.MarkAttendance)
		instructorOnly.GET("/slots/:slotId/sessions", attendanceController.ListSessions)
	}

	// --- Read projections (any authenticated role) ---
	{
		authenticated.GET("/instructors/:instructorId/timetable", timetableController.GetTimetable)
		authenticated.GET("/timetable/cohort", studentController.GetCohortDay)
		authenticated.GET("/students/:studentId/attendance", studentController.GetAttendance)
	}

	// --- Admin batch operations ---
	adminOnly := authenticated.Group("/admin")
	adminOnly.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
	{
		adminOnly.POST("/promote", promotionController.Promote)
	}
}
