package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	"github.com/noah-isme/sma-enrollment-api/internal/repository"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

type feeScheduleRepository interface {
	FindByLevelAndYear(ctx context.Context, levelID, yearID string) (*models.FeeSchedule, error)
	ListByYear(ctx context.Context, yearID string) ([]models.FeeSchedule, error)
	Create(ctx context.Context, schedule *models.FeeSchedule) error
	CopyForward(ctx context.Context, fromYearID, toYearID string) (int, int, error)
}

type classSectionReader interface {
	FindByID(ctx context.Context, id string) (*models.ClassSection, error)
}

type academicYearReader interface {
	FindByID(ctx context.Context, id string) (*models.AcademicYear, error)
	List(ctx context.Context) ([]models.AcademicYear, error)
}

type levelReader interface {
	Get(ctx context.Context, id string) (*models.Level, error)
}

// CreateFeeScheduleRequest defines the fees of one level for one academic year.
type CreateFeeScheduleRequest struct {
	LevelID         string          `json:"level_id" validate:"required"`
	AcademicYearID  string          `json:"academic_year_id" validate:"required"`
	TuitionAmount   decimal.Decimal `json:"tuition_amount"`
	RegistrationFee decimal.Decimal `json:"registration_fee"`
	FileFee         decimal.Decimal `json:"file_fee"`
}

// CopyForwardReport summarises a copy-forward run.
type CopyForwardReport struct {
	FromYearID string `json:"from_year_id"`
	ToYearID   string `json:"to_year_id"`
	Copied     int    `json:"copied"`
	Skipped    int    `json:"skipped"`
}

// FeeScheduleService resolves and maintains fee schedules keyed by (level, year).
type FeeScheduleService struct {
	repo      feeScheduleRepository
	classes   classSectionReader
	years     academicYearReader
	levels    levelReader
	cache     *CacheService
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeeScheduleService creates a fee schedule service. cache may be nil.
func NewFeeScheduleService(repo feeScheduleRepository, classes classSectionReader, years academicYearReader, levels levelReader, cache *CacheService, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *FeeScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeScheduleService{
		repo:      repo,
		classes:   classes,
		years:     years,
		levels:    levels,
		cache:     cache,
		cacheTTL:  cacheTTL,
		validator: validate,
		logger:    logger,
	}
}

func feeScheduleCacheKey(yearID, levelID string) string {
	return fmt.Sprintf("fee_schedule:%s:%s", yearID, levelID)
}

// Resolve returns the schedule for (level, year) or nil when none exists.
func (s *FeeScheduleService) Resolve(ctx context.Context, levelID, yearID string) (*models.FeeSchedule, error) {
	key := feeScheduleCacheKey(yearID, levelID)
	var cached models.FeeSchedule
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	schedule, err := s.repo.FindByLevelAndYear(ctx, levelID, yearID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve fee schedule")
	}
	_ = s.cache.Set(ctx, key, schedule, s.cacheTTL)
	return schedule, nil
}

// ResolveForClass looks up the class's level and resolves its schedule.
func (s *FeeScheduleService) ResolveForClass(ctx context.Context, classSectionID string) (*models.FeeSchedule, error) {
	class, err := s.classes.FindByID(ctx, classSectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class section")
	}
	return s.Resolve(ctx, class.LevelID, class.AcademicYearID)
}

// Require resolves a schedule and fails with FeeScheduleMissing when absent.
func (s *FeeScheduleService) Require(ctx context.Context, levelID, yearID string) (*models.FeeSchedule, error) {
	schedule, err := s.Resolve(ctx, levelID, yearID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, appErrors.Clone(appErrors.ErrFeeScheduleMissing, "no fee schedule defined for this level in the academic year")
	}
	return schedule, nil
}

// ListByYear returns all schedules defined for a year.
func (s *FeeScheduleService) ListByYear(ctx context.Context, yearID string) ([]models.FeeSchedule, error) {
	schedules, err := s.repo.ListByYear(ctx, yearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list fee schedules")
	}
	return schedules, nil
}

// Create defines a new schedule. Duplicates for the same (level, year) conflict.
func (s *FeeScheduleService) Create(ctx context.Context, req CreateFeeScheduleRequest) (*models.FeeSchedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fee schedule payload")
	}
	if _, err := models.NewFeeAmounts(req.RegistrationFee, req.TuitionAmount); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if req.FileFee.IsNegative() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file_fee must not be negative")
	}
	if _, err := s.findYear(ctx, req.AcademicYearID); err != nil {
		return nil, err
	}
	if _, err := s.levels.Get(ctx, req.LevelID); err != nil {
		return nil, err
	}

	schedule := &models.FeeSchedule{
		LevelID:         req.LevelID,
		AcademicYearID:  req.AcademicYearID,
		TuitionAmount:   req.TuitionAmount,
		RegistrationFee: req.RegistrationFee,
		FileFee:         req.FileFee,
	}
	if err := s.repo.Create(ctx, schedule); err != nil {
		if errors.Is(err, repository.ErrDuplicateFeeSchedule) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "fee schedule already exists for level and academic year")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create fee schedule")
	}
	s.invalidateYear(ctx, req.AcademicYearID)
	return schedule, nil
}

// CopyForward copies every schedule of fromYearID into toYearID, skipping
// levels already covered there. Existing schedules are never overwritten.
func (s *FeeScheduleService) CopyForward(ctx context.Context, fromYearID, toYearID string) (*CopyForwardReport, error) {
	if fromYearID == "" || toYearID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "source and target academic years are required")
	}
	if fromYearID == toYearID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "source and target academic years must differ")
	}
	if _, err := s.findYear(ctx, fromYearID); err != nil {
		return nil, err
	}
	if _, err := s.findYear(ctx, toYearID); err != nil {
		return nil, err
	}

	copied, skipped, err := s.repo.CopyForward(ctx, fromYearID, toYearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to copy fee schedules")
	}
	s.invalidateYear(ctx, toYearID)
	s.logger.Info("fee schedules copied forward",
		zap.String("from_year_id", fromYearID),
		zap.String("to_year_id", toYearID),
		zap.Int("copied", copied),
		zap.Int("skipped", skipped))
	return &CopyForwardReport{FromYearID: fromYearID, ToYearID: toYearID, Copied: copied, Skipped: skipped}, nil
}

// CopyForwardFromPrevious copies from the year that immediately precedes toYearID.
func (s *FeeScheduleService) CopyForwardFromPrevious(ctx context.Context, toYearID string) (*CopyForwardReport, error) {
	target, err := s.findYear(ctx, toYearID)
	if err != nil {
		return nil, err
	}
	years, err := s.years.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list academic years")
	}
	previous := PreviousYear(years, *target)
	if previous == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no academic year precedes the target year")
	}
	return s.CopyForward(ctx, previous.ID, toYearID)
}

func (s *FeeScheduleService) findYear(ctx context.Context, id string) (*models.AcademicYear, error) {
	year, err := s.years.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academic year not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic year")
	}
	return year, nil
}

func (s *FeeScheduleService) invalidateYear(ctx context.Context, yearID string) {
	_ = s.cache.Invalidate(ctx, feeScheduleCacheKey(yearID, "*"))
}
