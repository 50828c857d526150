package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	"github.com/noah-isme/sma-enrollment-api/internal/service"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
	"github.com/noah-isme/sma-enrollment-api/pkg/response"
)

type feeScheduleService interface {
	Require(ctx context.Context, levelID, yearID string) (*models.FeeSchedule, error)
	ListByYear(ctx context.Context, yearID string) ([]models.FeeSchedule, error)
	Create(ctx context.Context, req service.CreateFeeScheduleRequest) (*models.FeeSchedule, error)
	CopyForward(ctx context.Context, fromYearID, toYearID string) (*service.CopyForwardReport, error)
	CopyForwardFromPrevious(ctx context.Context, toYearID string) (*service.CopyForwardReport, error)
}

// CopyForwardRequest copies fee schedules into a target year. An empty source
// defaults to the year preceding the target.
type CopyForwardRequest struct {
	FromAcademicYearID string `json:"from_academic_year_id"`
	ToAcademicYearID   string `json:"to_academic_year_id" binding:"required"`
}

// FeeScheduleHandler exposes fee schedule endpoints.
type FeeScheduleHandler struct {
	fees feeScheduleService
	view referenceReloader
}

// NewFeeScheduleHandler constructs FeeScheduleHandler. view may be nil.
func NewFeeScheduleHandler(fees feeScheduleService, view referenceReloader) *FeeScheduleHandler {
	return &FeeScheduleHandler{fees: fees, view: view}
}

// List godoc
// @Summary List fee schedules
// @Description Returns the schedules of a year, or the single schedule of a level when levelId is given.
// @Tags FeeSchedules
// @Produce json
// @Param yearId query string true "Academic year ID"
// @Param levelId query string false "Level ID"
// @Success 200 {object} response.Envelope
// @Router /fee-schedules [get]
func (h *FeeScheduleHandler) List(c *gin.Context) {
	yearID := c.Query("yearId")
	if yearID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "yearId is required"))
		return
	}
	if levelID := c.Query("levelId"); levelID != "" {
		schedule, err := h.fees.Require(c.Request.Context(), levelID, yearID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, schedule, nil)
		return
	}
	schedules, err := h.fees.ListByYear(c.Request.Context(), yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, nil)
}

// Create godoc
// @Summary Create fee schedule
// @Tags FeeSchedules
// @Accept json
// @Produce json
// @Param payload body service.CreateFeeScheduleRequest true "Fee schedule payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /fee-schedules [post]
func (h *FeeScheduleHandler) Create(c *gin.Context) {
	var req service.CreateFeeScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	schedule, err := h.fees.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	reloadReferenceData(c, h.view)
	response.Created(c, schedule)
}

// CopyForward godoc
// @Summary Copy fee schedules into another academic year
// @Tags FeeSchedules
// @Accept json
// @Produce json
// @Param payload body CopyForwardRequest true "Copy payload"
// @Success 200 {object} response.Envelope
// @Router /fee-schedules/copy-forward [post]
func (h *FeeScheduleHandler) CopyForward(c *gin.Context) {
	var req CopyForwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	var (
		report *service.CopyForwardReport
		err    error
	)
	if req.FromAcademicYearID == "" {
		report, err = h.fees.CopyForwardFromPrevious(c.Request.Context(), req.ToAcademicYearID)
	} else {
		report, err = h.fees.CopyForward(c.Request.Context(), req.FromAcademicYearID, req.ToAcademicYearID)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	reloadReferenceData(c, h.view)
	response.JSON(c, http.StatusOK, report, nil)
}
