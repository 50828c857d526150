package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

type academicYearRepository interface {
	List(ctx context.Context) ([]models.AcademicYear, error)
	FindByID(ctx context.Context, id string) (*models.AcademicYear, error)
	Create(ctx context.Context, year *models.AcademicYear) error
	UpdateStatus(ctx context.Context, id string, status models.AcademicYearStatus) error
}

type academicYearRefresher interface {
	Refresh(ctx context.Context) ([]models.AcademicYear, error)
}

// CreateAcademicYearRequest describes the payload for planning a new academic year.
type CreateAcademicYearRequest struct {
	Label     string    `json:"label" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// AdvanceAcademicYearRequest moves a year forward in its lifecycle.
type AdvanceAcademicYearRequest struct {
	Status models.AcademicYearStatus `json:"status" validate:"required,oneof=CURRENT FINISHED ARCHIVED"`
}

// AcademicYearService manages the persisted academic year lifecycle.
type AcademicYearService struct {
	repo      academicYearRepository
	registry  academicYearRefresher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAcademicYearService creates a new academic year service. registry may be nil.
func NewAcademicYearService(repo academicYearRepository, registry academicYearRefresher, validate *validator.Validate, logger *zap.Logger) *AcademicYearService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcademicYearService{repo: repo, registry: registry, validator: validate, logger: logger}
}

// List returns every academic year ordered by start date.
func (s *AcademicYearService) List(ctx context.Context) ([]models.AcademicYear, error) {
	years, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list academic years")
	}
	return years, nil
}

// Get returns an academic year by ID.
func (s *AcademicYearService) Get(ctx context.Context, id string) (*models.AcademicYear, error) {
	year, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academic year not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic year")
	}
	return year, nil
}

// Create plans a new academic year. New years always start as PLANNED.
func (s *AcademicYearService) Create(ctx context.Context, req CreateAcademicYearRequest) (*models.AcademicYear, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid academic year payload")
	}
	if !req.StartDate.Before(req.EndDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date must be before end_date")
	}

	year := &models.AcademicYear{
		Label:     req.Label,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    models.AcademicYearPlanned,
	}
	if err := s.repo.Create(ctx, year); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create academic year")
	}
	s.refresh(ctx)
	return year, nil
}

// Advance moves a year strictly forward. Promoting a year to CURRENT finishes
// the previously current year in the same transaction.
func (s *AcademicYearService) Advance(ctx context.Context, id string, req AdvanceAcademicYearRequest) (*models.AcademicYear, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid academic year status")
	}
	year, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !year.Status.CanTransitionTo(req.Status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "academic year status can only move forward")
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academic year not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update academic year status")
	}
	s.logger.Info("academic year advanced",
		zap.String("academic_year_id", id),
		zap.String("from", string(year.Status)),
		zap.String("to", string(req.Status)))

	year.Status = req.Status
	s.refresh(ctx)
	return year, nil
}

func (s *AcademicYearService) refresh(ctx context.Context) {
	if s.registry == nil {
		return
	}
	if _, err := s.registry.Refresh(ctx); err != nil {
		s.logger.Warn("failed to refresh academic year registry", zap.Error(err))
	}
}
