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

type academicYearService interface {
	List(ctx context.Context) ([]models.AcademicYear, error)
	Get(ctx context.Context, id string) (*models.AcademicYear, error)
	Create(ctx context.Context, req service.CreateAcademicYearRequest) (*models.AcademicYear, error)
	Advance(ctx context.Context, id string, req service.AdvanceAcademicYearRequest) (*models.AcademicYear, error)
}

type activeYearSelector interface {
	Active() (*models.AcademicYear, bool)
	SetActive(ctx context.Context, yearID string) (*models.AcademicYear, error)
	Refresh(ctx context.Context) ([]models.AcademicYear, error)
}

// SetActiveYearRequest selects the academic year the engine operates on.
type SetActiveYearRequest struct {
	AcademicYearID string `json:"academic_year_id" binding:"required"`
}

// AcademicYearHandler exposes academic year endpoints.
type AcademicYearHandler struct {
	years    academicYearService
	registry activeYearSelector
}

// NewAcademicYearHandler constructs AcademicYearHandler.
func NewAcademicYearHandler(years academicYearService, registry activeYearSelector) *AcademicYearHandler {
	return &AcademicYearHandler{years: years, registry: registry}
}

// List godoc
// @Summary List academic years
// @Tags AcademicYears
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /academic-years [get]
func (h *AcademicYearHandler) List(c *gin.Context) {
	years, err := h.years.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, years, nil)
}

// Get godoc
// @Summary Get academic year
// @Tags AcademicYears
// @Produce json
// @Param id path string true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Router /academic-years/{id} [get]
func (h *AcademicYearHandler) Get(c *gin.Context) {
	year, err := h.years.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, year, nil)
}

// Create godoc
// @Summary Plan a new academic year
// @Tags AcademicYears
// @Accept json
// @Produce json
// @Param payload body service.CreateAcademicYearRequest true "Academic year payload"
// @Success 201 {object} response.Envelope
// @Router /academic-years [post]
func (h *AcademicYearHandler) Create(c *gin.Context) {
	var req service.CreateAcademicYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	year, err := h.years.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, year)
}

// Advance godoc
// @Summary Move an academic year forward in its lifecycle
// @Tags AcademicYears
// @Accept json
// @Produce json
// @Param id path string true "Academic year ID"
// @Param payload body service.AdvanceAcademicYearRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Router /academic-years/{id}/status [patch]
func (h *AcademicYearHandler) Advance(c *gin.Context) {
	var req service.AdvanceAcademicYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	year, err := h.years.Advance(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, year, nil)
}

// Activate godoc
// @Summary Promote an academic year to CURRENT
// @Description The previously CURRENT year is finished in the same transaction.
// @Tags AcademicYears
// @Produce json
// @Param id path string true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Router /academic-years/{id}/activate [patch]
func (h *AcademicYearHandler) Activate(c *gin.Context) {
	year, err := h.years.Advance(c.Request.Context(), c.Param("id"), service.AdvanceAcademicYearRequest{Status: models.AcademicYearCurrent})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, year, nil)
}

// Active godoc
// @Summary Get the active academic year
// @Tags AcademicYears
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /academic-years/active [get]
func (h *AcademicYearHandler) Active(c *gin.Context) {
	year, ok := h.registry.Active()
	if !ok {
		response.Error(c, appErrors.ErrNoActiveYear)
		return
	}
	response.JSON(c, http.StatusOK, year, nil)
}

// SetActive godoc
// @Summary Switch the active academic year
// @Tags AcademicYears
// @Accept json
// @Produce json
// @Param payload body SetActiveYearRequest true "Academic year selection"
// @Success 200 {object} response.Envelope
// @Router /academic-years/active [put]
func (h *AcademicYearHandler) SetActive(c *gin.Context) {
	var req SetActiveYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	year, err := h.registry.SetActive(c.Request.Context(), req.AcademicYearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, year, nil)
}

// Refresh godoc
// @Summary Reload academic years from storage
// @Tags AcademicYears
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /academic-years/refresh [post]
func (h *AcademicYearHandler) Refresh(c *gin.Context) {
	years, err := h.registry.Refresh(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{}
	if active, ok := h.registry.Active(); ok {
		meta["active_academic_year_id"] = active.ID
	}
	response.JSON(c, http.StatusOK, years, nil, meta)
}
