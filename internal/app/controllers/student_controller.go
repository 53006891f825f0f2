package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekinkaya/classtrack/internal/app/models"
	"github.com/ekinkaya/classtrack/internal/app/models/dto"
	"github.com/ekinkaya/classtrack/internal/app/services"
	"github.com/ekinkaya/classtrack/internal/middleware"
)

// StudentController handles the student-facing read projections
type StudentController struct {
	attendanceService services.AttendanceService
	timetableService  services.TimetableService
}

// NewStudentController creates a new StudentController
func NewStudentController(attendanceService services.AttendanceService, timetableService services.TimetableService) *StudentController {
	return &StudentController{
		attendanceService: attendanceService,
		timetableService:  timetableService,
	}
}

// GetAttendance returns a student's derived attendance counters
// @Summary Get student attendance
// @Description Returns the per-subject counters and the global summary for one student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentAttendanceResponse} "Attendance aggregate"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{studentId}/attendance [get]
func (c *StudentController) GetAttendance(ctx *gin.Context) {
	studentID := ctx.Param("studentId")

	attendance, err := c.attendanceService.GetStudentAttendance(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      attendance,
		Timestamp: time.Now(),
	})
}

// GetCohortDay returns the cohort's slots for one weekday
// @Summary Get cohort timetable for a day
// @Description Lists all slots matching a cohort on the given weekday, across instructors
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param branch query string true "Branch"
// @Param year query int true "Year (1-4)"
// @Param section query string true "Section"
// @Param day query string true "Weekday name"
// @Success 200 {object} dto.APIResponse{data=dto.CohortDayResponse} "Cohort slots"
// @Failure 400 {object} dto.ErrorResponse "Invalid cohort or day"
// @Router /timetable/cohort [get]
func (c *StudentController) GetCohortDay(ctx *gin.Context) {
	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid year")
		errorDetail = errorDetail.WithField("year").WithDetails("Year must be a number between 1 and 4")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	cohort := models.Cohort{
		Branch:  ctx.Query("branch"),
		Year:    year,
		Section: ctx.Query("section"),
	}
	day := ctx.Query("day")

	slots, err := c.timetableService.GetCohortDay(ctx, cohort, day)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.CohortDayResponse{Cohort: cohort, Day: day, Slots: slots},
		Timestamp: time.Now(),
	})
}
