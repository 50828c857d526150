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

type classSectionService interface {
	ListByYear(ctx context.Context, yearID string) ([]models.ClassSection, error)
	Get(ctx context.Context, id string) (*models.ClassSection, error)
	Create(ctx context.Context, req service.CreateClassSectionRequest) (*models.ClassSection, error)
}

type seatCounter interface {
	RemainingSeats(ctx context.Context, classID string) (int, error)
}

// ClassSectionHandler exposes class section endpoints.
type ClassSectionHandler struct {
	classes   classSectionService
	occupancy seatCounter
	view      referenceReloader
}

// NewClassSectionHandler constructs ClassSectionHandler. view may be nil.
func NewClassSectionHandler(classes classSectionService, occupancy seatCounter, view referenceReloader) *ClassSectionHandler {
	return &ClassSectionHandler{classes: classes, occupancy: occupancy, view: view}
}

// List godoc
// @Summary List class sections of an academic year
// @Tags ClassSections
// @Produce json
// @Param yearId query string true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Router /class-sections [get]
func (h *ClassSectionHandler) List(c *gin.Context) {
	classes, err := h.classes.ListByYear(c.Request.Context(), c.Query("yearId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, nil)
}

// Get godoc
// @Summary Get class section with remaining seats
// @Tags ClassSections
// @Produce json
// @Param id path string true "Class section ID"
// @Success 200 {object} response.Envelope
// @Router /class-sections/{id} [get]
func (h *ClassSectionHandler) Get(c *gin.Context) {
	class, err := h.classes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	var meta map[string]interface{}
	if h.occupancy != nil {
		if remaining, err := h.occupancy.RemainingSeats(c.Request.Context(), class.ID); err == nil {
			meta = map[string]interface{}{"remaining_seats": remaining}
		}
	}
	response.JSON(c, http.StatusOK, class, nil, meta)
}

// Create godoc
// @Summary Create class section
// @Tags ClassSections
// @Accept json
// @Produce json
// @Param payload body service.CreateClassSectionRequest true "Class section payload"
// @Success 201 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /class-sections [post]
func (h *ClassSectionHandler) Create(c *gin.Context) {
	var req service.CreateClassSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	class, err := h.classes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	reloadReferenceData(c, h.view)
	response.Created(c, class)
}
