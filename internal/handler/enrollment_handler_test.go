package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	"github.com/noah-isme/sma-enrollment-api/internal/service"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

type enrollmentServiceMock struct {
	createResp  *service.EnrollmentResult
	createErr   error
	editResp    *service.EnrollmentResult
	statusResp  *models.Enrollment
	lastCreate  service.CreateEnrollmentRequest
	lastFilter  models.EnrollmentFilter
	lastReason  string
	lastYearID  string
	cancelCalls int
}

func (m *enrollmentServiceMock) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, *models.Pagination, error) {
	m.lastFilter = filter
	return []models.Enrollment{{ID: "enr-1"}}, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: 1}, nil
}

func (m *enrollmentServiceMock) Get(ctx context.Context, id string) (*models.Enrollment, error) {
	return &models.Enrollment{ID: id}, nil
}

func (m *enrollmentServiceMock) Roster(ctx context.Context, yearID string) ([]models.Enrollment, error) {
	m.lastYearID = yearID
	return []models.Enrollment{{ID: "enr-1", StudentID: "S1", Status: models.EnrollmentStatusEnrolled, AmountDue: decimal.NewFromInt(300000)}}, nil
}

func (m *enrollmentServiceMock) Create(ctx context.Context, req service.CreateEnrollmentRequest) (*service.EnrollmentResult, error) {
	m.lastCreate = req
	return m.createResp, m.createErr
}

func (m *enrollmentServiceMock) Renew(ctx context.Context, req service.RenewEnrollmentRequest) (*service.EnrollmentResult, error) {
	return m.createResp, m.createErr
}

func (m *enrollmentServiceMock) Edit(ctx context.Context, id string, req service.EditEnrollmentRequest) (*service.EnrollmentResult, error) {
	return m.editResp, nil
}

func (m *enrollmentServiceMock) Cancel(ctx context.Context, id string, req service.StatusChangeRequest) (*models.Enrollment, error) {
	m.cancelCalls++
	m.lastReason = req.Reason
	return m.statusResp, nil
}

func (m *enrollmentServiceMock) Transfer(ctx context.Context, id string, req service.StatusChangeRequest) (*models.Enrollment, error) {
	m.lastReason = req.Reason
	return m.statusResp, nil
}

func (m *enrollmentServiceMock) SuggestRenewalClass(ctx context.Context, priorEnrollmentID, yearID string) (*service.RenewalSuggestion, error) {
	m.lastYearID = yearID
	return &service.RenewalSuggestion{ClassSectionID: "class-2"}, nil
}

func (m *enrollmentServiceMock) Statement(ctx context.Context, id string) (*service.EnrollmentStatement, error) {
	return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
}

type reloaderMock struct {
	calls int
	err   error
}

func (m *reloaderMock) Reload(ctx context.Context) error {
	m.calls++
	return m.err
}

func newJSONContext(method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, _ := json.Marshal(v)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestEnrollmentHandlerCreateReloadsReferenceData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &enrollmentServiceMock{createResp: &service.EnrollmentResult{Enrollment: &models.Enrollment{ID: "enr-1", AmountDue: decimal.NewFromInt(300000)}}}
	view := &reloaderMock{}
	handler := NewEnrollmentHandler(svc, view)

	c, w := newJSONContext(http.MethodPost, "/enrollments", `{"student_id":"S1","class_section_id":"class-1","discount":"5000"}`)
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, view.calls)
	assert.Equal(t, "S1", svc.lastCreate.StudentID)
	require.NotNil(t, svc.lastCreate.Discount)
	assert.True(t, svc.lastCreate.Discount.Equal(decimal.NewFromInt(5000)))
	assert.Nil(t, svc.lastCreate.TuitionFee)
}

func TestEnrollmentHandlerCreateCapacityConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &enrollmentServiceMock{createErr: appErrors.Clone(appErrors.ErrCapacityExceeded, "")}
	view := &reloaderMock{}
	handler := NewEnrollmentHandler(svc, view)

	c, w := newJSONContext(http.MethodPost, "/enrollments", `{"student_id":"S2","class_section_id":"class-1"}`)
	handler.Create(c)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Zero(t, view.calls)
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "CAPACITY_EXCEEDED", payload.Error.Code)
}

func TestEnrollmentHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewEnrollmentHandler(&enrollmentServiceMock{}, nil)

	c, w := newJSONContext(http.MethodPost, "/enrollments", `invalid`)
	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnrollmentHandlerUnchangedEditSkipsReload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &enrollmentServiceMock{editResp: &service.EnrollmentResult{Enrollment: &models.Enrollment{ID: "enr-1"}, Unchanged: true}}
	view := &reloaderMock{}
	handler := NewEnrollmentHandler(svc, view)

	c, w := newJSONContext(http.MethodPut, "/enrollments/enr-1", `{}`)
	c.Params = gin.Params{{Key: "id", Value: "enr-1"}}
	handler.Update(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, view.calls)
}

func TestEnrollmentHandlerCancelWithoutBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &enrollmentServiceMock{statusResp: &models.Enrollment{ID: "enr-1", Status: models.EnrollmentStatusWithdrawn}}
	view := &reloaderMock{}
	handler := NewEnrollmentHandler(svc, view)

	c, w := newJSONContext(http.MethodPost, "/enrollments/enr-1/cancel", nil)
	c.Params = gin.Params{{Key: "id", Value: "enr-1"}}
	handler.Cancel(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.cancelCalls)
	assert.Empty(t, svc.lastReason)
	assert.Equal(t, 1, view.calls)
}

func TestEnrollmentHandlerTransferWithReason(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &enrollmentServiceMock{statusResp: &models.Enrollment{ID: "enr-1", Status: models.EnrollmentStatusTransferred}}
	handler := NewEnrollmentHandler(svc, nil)

	c, w := newJSONContext(http.MethodPost, "/enrollments/enr-1/transfer", `{"reason":"moved city"}`)
	c.Params = gin.Params{{Key: "id", Value: "enr-1"}}
	handler.Transfer(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "moved city", svc.lastReason)
}

func TestEnrollmentHandlerListParsesFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &enrollmentServiceMock{}
	handler := NewEnrollmentHandler(svc, nil)

	c, w := newJSONContext(http.MethodGet, "/enrollments?yearId=year-1&status=enrolled&page=2&limit=5", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "year-1", svc.lastFilter.AcademicYearID)
	assert.Equal(t, models.EnrollmentStatusEnrolled, svc.lastFilter.Status)
	assert.Equal(t, 2, svc.lastFilter.Page)
	assert.Equal(t, 5, svc.lastFilter.PageSize)
}

func TestEnrollmentHandlerRenewalSuggestionAndStatement(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &enrollmentServiceMock{}
	handler := NewEnrollmentHandler(svc, nil)

	c, w := newJSONContext(http.MethodGet, "/enrollments/enr-1/renewal-suggestion?yearId=year-2", nil)
	c.Params = gin.Params{{Key: "id", Value: "enr-1"}}
	handler.RenewalSuggestion(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "year-2", svc.lastYearID)

	c, w = newJSONContext(http.MethodGet, "/enrollments/missing/statement", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	handler.Statement(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEnrollmentHandlerExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &enrollmentServiceMock{}
	handler := NewEnrollmentHandler(svc, nil)

	c, w := newJSONContext(http.MethodGet, "/enrollments/export?yearId=year-1", nil)
	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "year-1", svc.lastYearID)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,student_id,class_section_id"))
	assert.True(t, strings.HasPrefix(lines[1], "enr-1,S1,"))
	assert.Contains(t, lines[1], ",ENROLLED,")
	assert.Contains(t, lines[1], ",300000,")
}
