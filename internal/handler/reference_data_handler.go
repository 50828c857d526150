package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	"github.com/noah-isme/sma-enrollment-api/internal/service"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
	"github.com/noah-isme/sma-enrollment-api/pkg/response"
)

type referenceView interface {
	Reload(ctx context.Context) error
	LevelsWithFeeCoverage(yearID string) []models.Level
	LevelsWithEligibleClasses() []models.Level
	ClassesWithDetails(excludingEnrollmentID string) []models.ClassSectionDetail
	AvailableClasses(excludingEnrollmentID string) []models.ClassSectionDetail
	PreviousYear() *models.AcademicYear
}

type levelLister interface {
	List(ctx context.Context) ([]models.Level, error)
}

// ReferenceDataHandler serves the lists the enrollment forms are built from,
// always scoped to the active academic year.
type ReferenceDataHandler struct {
	view   referenceView
	levels levelLister
}

// NewReferenceDataHandler constructs ReferenceDataHandler.
func NewReferenceDataHandler(view referenceView, levels levelLister) *ReferenceDataHandler {
	return &ReferenceDataHandler{view: view, levels: levels}
}

// Classes godoc
// @Summary List class sections of the active year with level, fees and seats
// @Tags Reference
// @Produce json
// @Param excludingEnrollmentId query string false "Enrollment whose held class stays selectable"
// @Success 200 {object} response.Envelope
// @Router /reference/classes [get]
func (h *ReferenceDataHandler) Classes(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.view.ClassesWithDetails(excludingEnrollment(c)), nil)
}

// AvailableClasses godoc
// @Summary List fee-covered class sections of the active year
// @Tags Reference
// @Produce json
// @Param excludingEnrollmentId query string false "Enrollment whose held class stays selectable"
// @Success 200 {object} response.Envelope
// @Router /reference/available-classes [get]
func (h *ReferenceDataHandler) AvailableClasses(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.view.AvailableClasses(excludingEnrollment(c)), nil)
}

// Levels godoc
// @Summary List levels
// @Description Without yearId returns all levels; with yearId returns the levels that have a fee schedule in that year.
// @Tags Reference
// @Produce json
// @Param yearId query string false "Academic year ID"
// @Success 200 {object} response.Envelope
// @Router /reference/levels [get]
func (h *ReferenceDataHandler) Levels(c *gin.Context) {
	if yearID, ok := c.GetQuery("yearId"); ok {
		response.JSON(c, http.StatusOK, h.view.LevelsWithFeeCoverage(yearID), nil)
		return
	}
	levels, err := h.levels.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, levels, nil)
}

// EligibleLevels godoc
// @Summary List levels with at least one open, fee-covered class
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reference/eligible-levels [get]
func (h *ReferenceDataHandler) EligibleLevels(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.view.LevelsWithEligibleClasses(), nil)
}

// PreviousYear godoc
// @Summary Get the academic year preceding the active one
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reference/previous-year [get]
func (h *ReferenceDataHandler) PreviousYear(c *gin.Context) {
	year := h.view.PreviousYear()
	if year == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "no previous academic year"))
		return
	}
	response.JSON(c, http.StatusOK, year, nil)
}

// Reload godoc
// @Summary Rebuild the reference data of the active year
// @Tags Reference
// @Produce json
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /reference/reload [post]
func (h *ReferenceDataHandler) Reload(c *gin.Context) {
	if err := h.view.Reload(c.Request.Context()); err != nil {
		if errors.Is(err, service.ErrScopeSuperseded) {
			err = appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "active academic year changed during reload")
		}
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
