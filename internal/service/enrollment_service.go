package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	"github.com/noah-isme/sma-enrollment-api/internal/repository"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

type enrollmentRepository interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, int, error)
	FindByID(ctx context.Context, id string) (*models.Enrollment, error)
	ExistsActiveForStudent(ctx context.Context, studentID, yearID, excludeID string) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Update(ctx context.Context, enrollment *models.Enrollment, moveClass bool) error
	UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus, reason *string) error
}

type activeYearProvider interface {
	Active() (*models.AcademicYear, bool)
}

type levelCatalog interface {
	List(ctx context.Context) ([]models.Level, error)
	Get(ctx context.Context, id string) (*models.Level, error)
}

type feeResolver interface {
	Resolve(ctx context.Context, levelID, yearID string) (*models.FeeSchedule, error)
}

type occupancyLoader interface {
	Load(ctx context.Context, yearID string) Occupancy
	EligibleClasses(ctx context.Context, yearID, excludingEnrollmentID string) ([]models.ClassSection, error)
}

type paymentLister interface {
	ListByEnrollment(ctx context.Context, enrollmentID string) ([]models.PaymentRecord, error)
}

// CreateEnrollmentRequest describes a new enrollment. Fees left empty are
// resolved from the fee schedule of the class level.
type CreateEnrollmentRequest struct {
	StudentID       string             `json:"student_id" validate:"required"`
	ClassSectionID  string             `json:"class_section_id" validate:"required"`
	AcademicYearID  string             `json:"academic_year_id"`
	EnrollmentDate  *time.Time         `json:"enrollment_date"`
	RegistrationFee *decimal.Decimal   `json:"registration_fee"`
	TuitionFee      *decimal.Decimal   `json:"tuition_fee"`
	Discount        *decimal.Decimal   `json:"discount"`
	PaymentPlan     models.PaymentPlan `json:"payment_plan" validate:"omitempty,oneof=MONTHLY QUARTERLY ANNUAL"`
}

// RenewEnrollmentRequest re-enrolls a returning student from a prior enrollment.
type RenewEnrollmentRequest struct {
	PriorEnrollmentID string `json:"prior_enrollment_id" validate:"required"`
	CreateEnrollmentRequest
}

// EditEnrollmentRequest patches an enrollment. Nil fields are left unchanged.
type EditEnrollmentRequest struct {
	ClassSectionID  *string             `json:"class_section_id"`
	EnrollmentDate  *time.Time          `json:"enrollment_date"`
	RegistrationFee *decimal.Decimal    `json:"registration_fee"`
	TuitionFee      *decimal.Decimal    `json:"tuition_fee"`
	Discount        *decimal.Decimal    `json:"discount"`
	PaymentPlan     *models.PaymentPlan `json:"payment_plan" validate:"omitempty,oneof=MONTHLY QUARTERLY ANNUAL"`
}

// StatusChangeRequest carries the reason of a cancel or transfer.
type StatusChangeRequest struct {
	Reason string `json:"reason"`
}

// EnrollmentResult is the outcome of a create, edit or renew.
type EnrollmentResult struct {
	Enrollment             *models.Enrollment `json:"enrollment"`
	Summary                FinancialSummary   `json:"summary"`
	Changes                []string           `json:"changes,omitempty"`
	Unchanged              bool               `json:"unchanged"`
	NegativeBalanceWarning bool               `json:"negative_balance_warning"`
}

// RenewalSuggestion is the pre-filled class for a renewal form.
type RenewalSuggestion struct {
	ClassSectionID string `json:"class_section_id"`
	LevelID        string `json:"level_id,omitempty"`
	Fallback       bool   `json:"fallback"`
}

// EnrollmentStatement is the financial statement of one enrollment.
type EnrollmentStatement struct {
	Enrollment *models.Enrollment     `json:"enrollment"`
	Payments   []models.PaymentRecord `json:"payments"`
	Summary    FinancialSummary       `json:"summary"`
}

// EnrollmentService runs the enrollment lifecycle against the active academic year.
type EnrollmentService struct {
	repo         enrollmentRepository
	years        activeYearProvider
	classes      classSectionReader
	levels       levelCatalog
	fees         feeResolver
	occupancy    occupancyLoader
	payments     paymentLister
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	monthsInYear int
	defaultPlan  models.PaymentPlan
}

// EnrollmentServiceConfig carries the tunables of the enrollment service.
type EnrollmentServiceConfig struct {
	MonthsInYear       int
	DefaultPaymentPlan models.PaymentPlan
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, years activeYearProvider, classes classSectionReader, levels levelCatalog, fees feeResolver, occupancy occupancyLoader, payments paymentLister, metrics *MetricsService, cfg EnrollmentServiceConfig, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MonthsInYear <= 0 {
		cfg.MonthsInYear = DefaultMonthsInYear
	}
	if cfg.DefaultPaymentPlan == "" {
		cfg.DefaultPaymentPlan = models.PaymentPlanMonthly
	}
	return &EnrollmentService{
		repo:         repo,
		years:        years,
		classes:      classes,
		levels:       levels,
		fees:         fees,
		occupancy:    occupancy,
		payments:     payments,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		monthsInYear: cfg.MonthsInYear,
		defaultPlan:  cfg.DefaultPaymentPlan,
	}
}

// List returns paginated enrollments.
func (s *EnrollmentService) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, *models.Pagination, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return items, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

const rosterPageSize = 100

// Roster returns every enrollment of a year in creation order. An empty
// yearID selects the active year.
func (s *EnrollmentService) Roster(ctx context.Context, yearID string) ([]models.Enrollment, error) {
	if yearID == "" {
		active, ok := s.years.Active()
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNoActiveYear, "")
		}
		yearID = active.ID
	}
	roster := []models.Enrollment{}
	for page := 1; ; page++ {
		items, total, err := s.repo.List(ctx, models.EnrollmentFilter{
			AcademicYearID: yearID,
			Page:           page,
			PageSize:       rosterPageSize,
			SortBy:         "created_at",
			SortOrder:      "ASC",
		})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
		}
		roster = append(roster, items...)
		if len(items) == 0 || len(roster) >= total {
			return roster, nil
		}
	}
}

// Get returns an enrollment by ID.
func (s *EnrollmentService) Get(ctx context.Context, id string) (*models.Enrollment, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	return enrollment, nil
}

// Create enrolls a student into a class of the active academic year.
func (s *EnrollmentService) Create(ctx context.Context, req CreateEnrollmentRequest) (*EnrollmentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordEnrollmentMutation("create", "rejected")
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	enrollment, err := s.prepare(ctx, req, "")
	if err != nil {
		s.metrics.RecordEnrollmentMutation("create", "rejected")
		return nil, err
	}
	enrollment.Status = models.EnrollmentStatusEnrolled
	return s.persistNew(ctx, "create", enrollment)
}

// Renew enrolls a returning student for a new year. The renewal starts its own
// payment history and keeps a link to the prior enrollment.
func (s *EnrollmentService) Renew(ctx context.Context, req RenewEnrollmentRequest) (*EnrollmentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordEnrollmentMutation("renew", "rejected")
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid renewal payload")
	}
	prior, err := s.Get(ctx, req.PriorEnrollmentID)
	if err != nil {
		s.metrics.RecordEnrollmentMutation("renew", "rejected")
		return nil, err
	}
	if prior.StudentID != req.StudentID {
		s.metrics.RecordEnrollmentMutation("renew", "rejected")
		return nil, appErrors.Clone(appErrors.ErrValidation, "prior enrollment belongs to another student")
	}

	enrollment, err := s.prepare(ctx, req.CreateEnrollmentRequest, "")
	if err != nil {
		s.metrics.RecordEnrollmentMutation("renew", "rejected")
		return nil, err
	}
	if enrollment.AcademicYearID == prior.AcademicYearID {
		s.metrics.RecordEnrollmentMutation("renew", "rejected")
		return nil, appErrors.Clone(appErrors.ErrValidation, "renewal must target a different academic year than the prior enrollment")
	}
	priorID := prior.ID
	enrollment.PriorEnrollmentID = &priorID
	enrollment.Status = models.EnrollmentStatusRenewed
	enrollment.AmountPaid = decimal.Zero
	return s.persistNew(ctx, "renew", enrollment)
}

// prepare checks every create/renew precondition and builds the record to insert.
func (s *EnrollmentService) prepare(ctx context.Context, req CreateEnrollmentRequest, excludeID string) (*models.Enrollment, error) {
	active, err := s.activeYear(req.AcademicYearID)
	if err != nil {
		return nil, err
	}

	class, err := s.loadClass(ctx, req.ClassSectionID, active.ID)
	if err != nil {
		return nil, err
	}
	if !s.occupancy.Load(ctx, active.ID).Selectable(*class, "") {
		return nil, appErrors.Clone(appErrors.ErrCapacityExceeded, "class section has no seat left")
	}

	exists, err := s.repo.ExistsActiveForStudent(ctx, req.StudentID, active.ID, excludeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing enrollment")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student already holds an active enrollment for this academic year")
	}

	fees, err := s.resolveFees(ctx, class, req.RegistrationFee, req.TuitionFee)
	if err != nil {
		return nil, err
	}
	discount := decimal.Zero
	if req.Discount != nil {
		discount = *req.Discount
	}
	if discount.IsNegative() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "discount must not be negative")
	}

	plan := req.PaymentPlan
	if plan == "" {
		plan = s.defaultPlan
	}
	enrollment := &models.Enrollment{
		StudentID:       req.StudentID,
		ClassSectionID:  class.ID,
		AcademicYearID:  active.ID,
		RegistrationFee: fees.RegistrationFee,
		TuitionFee:      fees.TuitionFee,
		Discount:        discount,
		PaymentPlan:     plan,
		AmountDue:       AmountDue(fees.RegistrationFee, fees.TuitionFee, discount),
		AmountPaid:      decimal.Zero,
	}
	if req.EnrollmentDate != nil {
		enrollment.EnrollmentDate = *req.EnrollmentDate
	}
	return enrollment, nil
}

func (s *EnrollmentService) persistNew(ctx context.Context, operation string, enrollment *models.Enrollment) (*EnrollmentResult, error) {
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, s.mapWriteError(operation, err)
	}
	s.metrics.RecordEnrollmentMutation(operation, "success")
	s.logger.Info("enrollment saved",
		zap.String("operation", operation),
		zap.String("enrollment_id", enrollment.ID),
		zap.String("student_id", enrollment.StudentID),
		zap.String("class_section_id", enrollment.ClassSectionID),
		zap.String("academic_year_id", enrollment.AcademicYearID))
	return s.result(enrollment, nil), nil
}

// Edit applies a patch. An empty diff is reported as Unchanged and nothing is
// written. Moving class re-validates capacity excluding the enrollment itself
// and reprices from the target level's fee schedule unless both fees are given.
func (s *EnrollmentService) Edit(ctx context.Context, id string, req EditEnrollmentRequest) (*EnrollmentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordEnrollmentMutation("edit", "rejected")
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.activeYear(current.AcademicYearID); err != nil {
		s.metrics.RecordEnrollmentMutation("edit", "rejected")
		return nil, err
	}
	if !current.Status.HoldsSeat() {
		s.metrics.RecordEnrollmentMutation("edit", "rejected")
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "only enrolled or renewed enrollments can be edited")
	}

	updated := *current
	changes := applyEnrollmentPatch(&updated, req)
	if len(changes) == 0 {
		s.metrics.RecordEnrollmentMutation("edit", "unchanged")
		result := s.result(current, nil)
		result.Unchanged = true
		return result, nil
	}

	if _, err := models.NewFeeAmounts(updated.RegistrationFee, updated.TuitionFee); err != nil {
		s.metrics.RecordEnrollmentMutation("edit", "rejected")
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if updated.Discount.IsNegative() {
		s.metrics.RecordEnrollmentMutation("edit", "rejected")
		return nil, appErrors.Clone(appErrors.ErrValidation, "discount must not be negative")
	}

	moveClass := updated.ClassSectionID != current.ClassSectionID
	if moveClass {
		class, err := s.loadClass(ctx, updated.ClassSectionID, current.AcademicYearID)
		if err != nil {
			s.metrics.RecordEnrollmentMutation("edit", "rejected")
			return nil, err
		}
		if !s.occupancy.Load(ctx, current.AcademicYearID).Selectable(*class, current.ClassSectionID) {
			s.metrics.RecordEnrollmentMutation("edit", "rejected")
			return nil, appErrors.Clone(appErrors.ErrCapacityExceeded, "class section has no seat left")
		}
		fees, err := s.resolveFees(ctx, class, req.RegistrationFee, req.TuitionFee)
		if err != nil {
			s.metrics.RecordEnrollmentMutation("edit", "rejected")
			return nil, err
		}
		changes = repriceEnrollment(&updated, current, fees, changes)
	}

	updated.AmountDue = AmountDue(updated.RegistrationFee, updated.TuitionFee, updated.Discount)
	if err := s.repo.Update(ctx, &updated, moveClass); err != nil {
		return nil, s.mapWriteError("edit", err)
	}
	s.metrics.RecordEnrollmentMutation("edit", "success")
	s.logger.Info("enrollment edited", zap.String("enrollment_id", id), zap.Strings("changes", changes))
	return s.result(&updated, changes), nil
}

// Cancel withdraws an enrollment. It is always permitted and idempotent.
func (s *EnrollmentService) Cancel(ctx context.Context, id string, req StatusChangeRequest) (*models.Enrollment, error) {
	enrollment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if enrollment.Status == models.EnrollmentStatusWithdrawn {
		return enrollment, nil
	}
	return s.changeStatus(ctx, "cancel", enrollment, models.EnrollmentStatusWithdrawn, req.Reason)
}

// Transfer marks a seat-holding enrollment as transferred out of the school.
func (s *EnrollmentService) Transfer(ctx context.Context, id string, req StatusChangeRequest) (*models.Enrollment, error) {
	enrollment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !enrollment.Status.HoldsSeat() {
		s.metrics.RecordEnrollmentMutation("transfer", "rejected")
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "only enrolled or renewed enrollments can be transferred")
	}
	return s.changeStatus(ctx, "transfer", enrollment, models.EnrollmentStatusTransferred, req.Reason)
}

func (s *EnrollmentService) changeStatus(ctx context.Context, operation string, enrollment *models.Enrollment, status models.EnrollmentStatus, reason string) (*models.Enrollment, error) {
	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}
	if err := s.repo.UpdateStatus(ctx, enrollment.ID, status, reasonPtr); err != nil {
		return nil, s.mapWriteError(operation, err)
	}
	s.metrics.RecordEnrollmentMutation(operation, "success")
	s.logger.Info("enrollment status changed",
		zap.String("enrollment_id", enrollment.ID),
		zap.String("from", string(enrollment.Status)),
		zap.String("to", string(status)))
	enrollment.Status = status
	enrollment.CancelReason = reasonPtr
	return enrollment, nil
}

// SuggestRenewalClass proposes a class of yearID one level above the prior
// enrollment's level, falling back to the prior class.
func (s *EnrollmentService) SuggestRenewalClass(ctx context.Context, priorEnrollmentID, yearID string) (*RenewalSuggestion, error) {
	prior, err := s.Get(ctx, priorEnrollmentID)
	if err != nil {
		return nil, err
	}
	if yearID == "" {
		active, ok := s.years.Active()
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNoActiveYear, "")
		}
		yearID = active.ID
	}
	fallback := &RenewalSuggestion{ClassSectionID: prior.ClassSectionID, Fallback: true}

	priorClass, err := s.classes.FindByID(ctx, prior.ClassSectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fallback, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class section")
	}
	fallback.LevelID = priorClass.LevelID

	levels, err := s.levels.List(ctx)
	if err != nil {
		return nil, err
	}
	order := make(map[string]int, len(levels))
	for _, level := range levels {
		order[level.ID] = level.Order
	}
	priorOrder, ok := order[priorClass.LevelID]
	if !ok {
		return fallback, nil
	}

	eligible, err := s.occupancy.EligibleClasses(ctx, yearID, "")
	if err != nil {
		return nil, err
	}
	for _, class := range eligible {
		if levelOrder, ok := order[class.LevelID]; ok && levelOrder == priorOrder+1 {
			return &RenewalSuggestion{ClassSectionID: class.ID, LevelID: class.LevelID}, nil
		}
	}
	return fallback, nil
}

// Statement returns the enrollment with its payments and derived balances.
func (s *EnrollmentService) Statement(ctx context.Context, id string) (*EnrollmentStatement, error) {
	enrollment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListByEnrollment(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list payments")
	}
	if payments == nil {
		payments = []models.PaymentRecord{}
	}
	return &EnrollmentStatement{
		Enrollment: enrollment,
		Payments:   payments,
		Summary:    Summarize(*enrollment, payments, s.monthsInYear),
	}, nil
}

// activeYear returns the session-active year and rejects any other requested year.
func (s *EnrollmentService) activeYear(requestedYearID string) (*models.AcademicYear, error) {
	active, ok := s.years.Active()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNoActiveYear, "")
	}
	if requestedYearID != "" && requestedYearID != active.ID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "academic year is not the active academic year")
	}
	return active, nil
}

func (s *EnrollmentService) loadClass(ctx context.Context, classID, yearID string) (*models.ClassSection, error) {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class section")
	}
	if class.AcademicYearID != yearID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class section does not belong to the academic year")
	}
	return class, nil
}

// resolveFees uses explicit fees when both are given and the fee schedule otherwise.
func (s *EnrollmentService) resolveFees(ctx context.Context, class *models.ClassSection, registration, tuition *decimal.Decimal) (models.FeeAmounts, error) {
	if registration == nil || tuition == nil {
		schedule, err := s.fees.Resolve(ctx, class.LevelID, class.AcademicYearID)
		if err != nil {
			return models.FeeAmounts{}, err
		}
		if schedule == nil {
			return models.FeeAmounts{}, appErrors.Clone(appErrors.ErrFeeScheduleMissing, "no fee schedule defined for this level in the academic year")
		}
		fees := schedule.Fees()
		if registration == nil {
			registration = &fees.RegistrationFee
		}
		if tuition == nil {
			tuition = &fees.TuitionFee
		}
	}
	amounts, err := models.NewFeeAmounts(*registration, *tuition)
	if err != nil {
		return models.FeeAmounts{}, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	return amounts, nil
}

func (s *EnrollmentService) mapWriteError(operation string, err error) error {
	switch {
	case errors.Is(err, repository.ErrCapacityExceeded):
		s.metrics.RecordCapacityConflict()
		s.metrics.RecordEnrollmentMutation(operation, "capacity_conflict")
		return appErrors.Clone(appErrors.ErrCapacityExceeded, "class section filled up before the enrollment was saved")
	case errors.Is(err, sql.ErrNoRows):
		s.metrics.RecordEnrollmentMutation(operation, "rejected")
		return appErrors.Clone(appErrors.ErrNotFound, "class section not found")
	default:
		s.metrics.RecordEnrollmentMutation(operation, "error")
		s.logger.Error("failed to persist enrollment", zap.String("operation", operation), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save enrollment")
	}
}

func (s *EnrollmentService) result(enrollment *models.Enrollment, changes []string) *EnrollmentResult {
	summary := FinancialSummary{
		RegistrationFee: enrollment.RegistrationFee,
		TuitionFee:      enrollment.TuitionFee,
		Discount:        enrollment.Discount,
		AmountDue:       enrollment.AmountDue,
		AmountPaid:      enrollment.AmountPaid,
		Balance:         Balance(enrollment.AmountDue, enrollment.AmountPaid),
		MonthlyEstimate: MonthlyEstimate(enrollment.TuitionFee, s.monthsInYear),
		Overpaid:        IsOverpaid(enrollment.AmountDue, enrollment.AmountPaid),
		NegativeDue:     enrollment.AmountDue.IsNegative(),
	}
	return &EnrollmentResult{
		Enrollment:             enrollment,
		Summary:                summary,
		Changes:                changes,
		NegativeBalanceWarning: enrollment.AmountPaid.IsPositive() && enrollment.AmountDue.LessThan(enrollment.AmountPaid),
	}
}

// applyEnrollmentPatch writes the non-nil patch fields into e and returns the
// names of the fields whose value actually changed.
// repriceEnrollment applies the fees of the target class and records the
// charges that differ from the stored enrollment.
func repriceEnrollment(e *models.Enrollment, current *models.Enrollment, fees models.FeeAmounts, changes []string) []string {
	e.RegistrationFee = fees.RegistrationFee
	e.TuitionFee = fees.TuitionFee
	if !e.RegistrationFee.Equal(current.RegistrationFee) && !containsChange(changes, "registration_fee") {
		changes = append(changes, "registration_fee")
	}
	if !e.TuitionFee.Equal(current.TuitionFee) && !containsChange(changes, "tuition_fee") {
		changes = append(changes, "tuition_fee")
	}
	return changes
}

func containsChange(changes []string, field string) bool {
	for _, c := range changes {
		if c == field {
			return true
		}
	}
	return false
}

func applyEnrollmentPatch(e *models.Enrollment, req EditEnrollmentRequest) []string {
	var changes []string
	if req.ClassSectionID != nil && *req.ClassSectionID != e.ClassSectionID {
		e.ClassSectionID = *req.ClassSectionID
		changes = append(changes, "class_section_id")
	}
	if req.EnrollmentDate != nil && !req.EnrollmentDate.Equal(e.EnrollmentDate) {
		e.EnrollmentDate = *req.EnrollmentDate
		changes = append(changes, "enrollment_date")
	}
	if req.RegistrationFee != nil && !req.RegistrationFee.Equal(e.RegistrationFee) {
		e.RegistrationFee = *req.RegistrationFee
		changes = append(changes, "registration_fee")
	}
	if req.TuitionFee != nil && !req.TuitionFee.Equal(e.TuitionFee) {
		e.TuitionFee = *req.TuitionFee
		changes = append(changes, "tuition_fee")
	}
	if req.Discount != nil && !req.Discount.Equal(e.Discount) {
		e.Discount = *req.Discount
		changes = append(changes, "discount")
	}
	if req.PaymentPlan != nil && *req.PaymentPlan != e.PaymentPlan {
		e.PaymentPlan = *req.PaymentPlan
		changes = append(changes, "payment_plan")
	}
	return changes
}
