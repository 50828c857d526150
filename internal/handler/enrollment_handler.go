package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	"github.com/noah-isme/sma-enrollment-api/internal/service"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
	"github.com/noah-isme/sma-enrollment-api/pkg/export"
	"github.com/noah-isme/sma-enrollment-api/pkg/response"
)

type enrollmentService interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Enrollment, error)
	Roster(ctx context.Context, yearID string) ([]models.Enrollment, error)
	Create(ctx context.Context, req service.CreateEnrollmentRequest) (*service.EnrollmentResult, error)
	Renew(ctx context.Context, req service.RenewEnrollmentRequest) (*service.EnrollmentResult, error)
	Edit(ctx context.Context, id string, req service.EditEnrollmentRequest) (*service.EnrollmentResult, error)
	Cancel(ctx context.Context, id string, req service.StatusChangeRequest) (*models.Enrollment, error)
	Transfer(ctx context.Context, id string, req service.StatusChangeRequest) (*models.Enrollment, error)
	SuggestRenewalClass(ctx context.Context, priorEnrollmentID, yearID string) (*service.RenewalSuggestion, error)
	Statement(ctx context.Context, id string) (*service.EnrollmentStatement, error)
}

// EnrollmentHandler exposes enrollment endpoints.
type EnrollmentHandler struct {
	enrollments enrollmentService
	view        referenceReloader
}

// NewEnrollmentHandler constructs EnrollmentHandler. view may be nil.
func NewEnrollmentHandler(enrollments enrollmentService, view referenceReloader) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, view: view}
}

// List godoc
// @Summary List enrollments
// @Tags Enrollments
// @Produce json
// @Param studentId query string false "Filter by student"
// @Param classSectionId query string false "Filter by class section"
// @Param yearId query string false "Filter by academic year"
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	var filter models.EnrollmentFilter
	filter.StudentID = c.Query("studentId")
	filter.ClassSectionID = c.Query("classSectionId")
	filter.AcademicYearID = c.Query("yearId")
	filter.Status = models.EnrollmentStatus(strings.ToUpper(c.Query("status")))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	enrollments, pagination, err := h.enrollments.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments, pagination)
}

// Get godoc
// @Summary Get enrollment
// @Tags Enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{id} [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	enrollment, err := h.enrollments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollment, nil)
}

// Create godoc
// @Summary Enroll student in a class of the active year
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body service.CreateEnrollmentRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req service.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.enrollments.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	reloadReferenceData(c, h.view)
	response.Created(c, result)
}

// Renew godoc
// @Summary Re-enroll a returning student
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body service.RenewEnrollmentRequest true "Renewal payload"
// @Success 201 {object} response.Envelope
// @Router /enrollments/renew [post]
func (h *EnrollmentHandler) Renew(c *gin.Context) {
	var req service.RenewEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.enrollments.Renew(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	reloadReferenceData(c, h.view)
	response.Created(c, result)
}

// RenewalSuggestion godoc
// @Summary Suggest the class for renewing an enrollment
// @Tags Enrollments
// @Produce json
// @Param id path string true "Prior enrollment ID"
// @Param yearId query string false "Target academic year, defaults to the active year"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{id}/renewal-suggestion [get]
func (h *EnrollmentHandler) RenewalSuggestion(c *gin.Context) {
	suggestion, err := h.enrollments.SuggestRenewalClass(c.Request.Context(), c.Param("id"), c.Query("yearId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, suggestion, nil)
}

// Update godoc
// @Summary Edit enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID"
// @Param payload body service.EditEnrollmentRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{id} [put]
func (h *EnrollmentHandler) Update(c *gin.Context) {
	var req service.EditEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.enrollments.Edit(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !result.Unchanged {
		reloadReferenceData(c, h.view)
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Cancel godoc
// @Summary Withdraw enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID"
// @Param payload body service.StatusChangeRequest false "Reason"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{id}/cancel [post]
func (h *EnrollmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.enrollments.Cancel)
}

// Transfer godoc
// @Summary Mark enrollment as transferred out
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID"
// @Param payload body service.StatusChangeRequest false "Reason"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{id}/transfer [post]
func (h *EnrollmentHandler) Transfer(c *gin.Context) {
	h.changeStatus(c, h.enrollments.Transfer)
}

func (h *EnrollmentHandler) changeStatus(c *gin.Context, apply func(context.Context, string, service.StatusChangeRequest) (*models.Enrollment, error)) {
	var req service.StatusChangeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
	}
	enrollment, err := apply(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	reloadReferenceData(c, h.view)
	response.JSON(c, http.StatusOK, enrollment, nil)
}

// Statement godoc
// @Summary Financial statement of an enrollment
// @Tags Enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{id}/statement [get]
func (h *EnrollmentHandler) Statement(c *gin.Context) {
	statement, err := h.enrollments.Statement(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, statement, nil)
}

var rosterHeaders = []string{
	"id", "student_id", "class_section_id", "academic_year_id", "status", "enrollment_date",
	"payment_plan", "registration_fee", "tuition_fee", "discount", "amount_due", "amount_paid",
}

// Export godoc
// @Summary Export the enrollment roster of a year as CSV
// @Tags Enrollments
// @Produce text/csv
// @Param yearId query string false "Academic year ID, defaults to the active year"
// @Success 200 {file} file
// @Router /enrollments/export [get]
func (h *EnrollmentHandler) Export(c *gin.Context) {
	roster, err := h.enrollments.Roster(c.Request.Context(), c.Query("yearId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	table := export.Table{Headers: rosterHeaders, Rows: make([][]string, 0, len(roster))}
	for _, e := range roster {
		table.Rows = append(table.Rows, []string{
			e.ID, e.StudentID, e.ClassSectionID, e.AcademicYearID, string(e.Status),
			e.EnrollmentDate.Format("2006-01-02"), string(e.PaymentPlan),
			e.RegistrationFee.String(), e.TuitionFee.String(), e.Discount.String(),
			e.AmountDue.String(), e.AmountPaid.String(),
		})
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="enrollments.csv"`)
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, table); err != nil {
		_ = c.Error(err)
	}
}
