package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekinkaya/classtrack/internal/app/models/dto"
	"github.com/ekinkaya/classtrack/internal/app/services"
	"github.com/ekinkaya/classtrack/internal/middleware"
)

// TimetableController handles timetable slot operations
type TimetableController struct {
	timetableService services.TimetableService
}

// NewTimetableController creates a new TimetableController
func NewTimetableController(timetableService services.TimetableService) *TimetableController {
	return &TimetableController{timetableService: timetableService}
}

// AddSlot handles slot creation
// @Summary Add a timetable slot
// @Description Adds a recurring weekly slot to the instructor's timetable, rejecting overlaps
// @Tags timetable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param instructorId path string true "Instructor ID"
// @Param request body dto.CreateSlotRequest true "Slot details"
// @Success 201 {object} dto.APIResponse{data=models.TimetableSlot} "Slot created"
// @Failure 400 {object} dto.ErrorResponse "Invalid slot data"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Failure 409 {object} dto.ErrorResponse "Slot overlaps an existing slot"
// @Router /instructors/{instructorId}/slots [post]
func (c *TimetableController) AddSlot(ctx *gin.Context) {
	instructorID := ctx.Param("instructorId")

	var req dto.CreateSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid slot data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	slot, err := c.timetableService.AddSlot(ctx, instructorID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      slot,
		Timestamp: time.Now(),
	})
}

// RemoveSlot handles slot removal
// @Summary Remove a timetable slot
// @Description Removes a slot from the instructor's timetable by id
// @Tags timetable
// @Produce json
// @Security BearerAuth
// @Param instructorId path string true "Instructor ID"
// @Param slotId path string true "Slot ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Slot removed"
// @Failure 404 {object} dto.ErrorResponse "Slot or instructor not found"
// @Router /instructors/{instructorId}/slots/{slotId} [delete]
func (c *TimetableController) RemoveSlot(ctx *gin.Context) {
	instructorID := ctx.Param("instructorId")
	slotID := ctx.Param("slotId")

	if err := c.timetableService.RemoveSlot(ctx, instructorID, slotID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Slot removed"},
		Timestamp: time.Now(),
	})
}

// GetTimetable returns the instructor's weekly timetable
// @Summary Get instructor timetable
// @Description Returns the instructor's slots grouped by weekday, ordered by period index
// @Tags timetable
// @Produce json
// @Security BearerAuth
// @Param instructorId path string true "Instructor ID"
// @Success 200 {object} dto.APIResponse{data=dto.TimetableResponse} "Timetable"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Router /instructors/{instructorId}/timetable [get]
func (c *TimetableController) GetTimetable(ctx *gin.Context) {
	instructorID := ctx.Param("instructorId")

	timetable, err := c.timetableService.GetTimetable(ctx, instructorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      timetable,
		Timestamp: time.Now(),
	})
}
