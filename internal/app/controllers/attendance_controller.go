package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekinkaya/classtrack/internal/app/models/dto"
	"github.com/ekinkaya/classtrack/internal/app/services"
	"github.com/ekinkaya/classtrack/internal/middleware"
	"github.com/ekinkaya/classtrack/internal/pkg/helpers"
)

// AttendanceController handles attendance marking and session history
type AttendanceController struct {
	attendanceService services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// MarkAttendance handles attendance submission for one session of a slot
// @Summary Mark attendance
// @Description Creates the session on first mark, corrects it on re-submission for the same date
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slotId path string true "Slot ID"
// @Param request body dto.MarkAttendanceRequest true "Per-student statuses for the whole cohort"
// @Success 200 {object} dto.APIResponse{data=dto.MarkAttendanceResponse} "Attendance recorded"
// @Failure 400 {object} dto.ErrorResponse "Submission does not match the cohort roster"
// @Failure 404 {object} dto.ErrorResponse "Slot not found"
// @Router /slots/{slotId}/attendance [post]
func (c *AttendanceController) MarkAttendance(ctx *gin.Context) {
	slotID := ctx.Param("slotId")

	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attendance data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid date")
		errorDetail = errorDetail.WithField("date").WithDetails("Date must be formatted as YYYY-MM-DD")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.attendanceService.MarkAttendance(ctx, slotID, date, req.Entries)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// ListSessions returns the marked session history of a slot
// @Summary List slot sessions
// @Description Returns the dates a slot has been marked with absentee counts, newest first
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param slotId path string true "Slot ID"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.SessionListResponse} "Session history"
// @Failure 404 {object} dto.ErrorResponse "Slot not found"
// @Router /slots/{slotId}/sessions [get]
func (c *AttendanceController) ListSessions(ctx *gin.Context) {
	slotID := ctx.Param("slotId")
	page, size := helpers.ParsePaginationParams(ctx)

	sessions, err := c.attendanceService.ListSessions(ctx, slotID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      sessions,
		Timestamp: time.Now(),
	})
}
