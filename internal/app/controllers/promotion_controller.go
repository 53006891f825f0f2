package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekinkaya/classtrack/internal/app/models/dto"
	"github.com/ekinkaya/classtrack/internal/app/services"
	"github.com/ekinkaya/classtrack/internal/middleware"
)

// PromotionController handles the admin cohort promotion job
type PromotionController struct {
	promotionService services.PromotionService
}

// NewPromotionController creates a new PromotionController
func NewPromotionController(promotionService services.PromotionService) *PromotionController {
	return &PromotionController{promotionService: promotionService}
}

// Promote runs the cohort promotion job for one target year
// @Summary Promote a cohort year
// @Description Advances every non-graduated student of the target year; year 4 graduates
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PromoteRequest true "Target year"
// @Success 200 {object} dto.APIResponse{data=dto.PromoteResponse} "Promotion result"
// @Failure 400 {object} dto.ErrorResponse "Year out of range"
// @Router /admin/promote [post]
func (c *PromotionController) Promote(ctx *gin.Context) {
	var req dto.PromoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid promotion request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.promotionService.Promote(ctx, req.Year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
