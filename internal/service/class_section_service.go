package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

type classSectionRepository interface {
	ListByYear(ctx context.Context, yearID string) ([]models.ClassSection, error)
	FindByID(ctx context.Context, id string) (*models.ClassSection, error)
	Create(ctx context.Context, class *models.ClassSection) error
}

type feeScheduleRequirer interface {
	Require(ctx context.Context, levelID, yearID string) (*models.FeeSchedule, error)
}

// CreateClassSectionRequest describes a new class for an academic year.
type CreateClassSectionRequest struct {
	Name              string  `json:"name" validate:"required"`
	LevelID           string  `json:"level_id" validate:"required"`
	AcademicYearID    string  `json:"academic_year_id" validate:"required"`
	Capacity          int     `json:"capacity" validate:"required,gt=0"`
	HomeroomTeacherID *string `json:"homeroom_teacher_id"`
	SupervisorID      *string `json:"supervisor_id"`
}

// ClassSectionService manages the classes offered in each academic year.
type ClassSectionService struct {
	repo      classSectionRepository
	years     academicYearReader
	levels    levelReader
	fees      feeScheduleRequirer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassSectionService constructs a class section service.
func NewClassSectionService(repo classSectionRepository, years academicYearReader, levels levelReader, fees feeScheduleRequirer, validate *validator.Validate, logger *zap.Logger) *ClassSectionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassSectionService{repo: repo, years: years, levels: levels, fees: fees, validator: validate, logger: logger}
}

// ListByYear returns the classes of a year ordered by name.
func (s *ClassSectionService) ListByYear(ctx context.Context, yearID string) ([]models.ClassSection, error) {
	if yearID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "yearId is required")
	}
	classes, err := s.repo.ListByYear(ctx, yearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class sections")
	}
	return classes, nil
}

// Get returns a class section by ID.
func (s *ClassSectionService) Get(ctx context.Context, id string) (*models.ClassSection, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class section")
	}
	return class, nil
}

// Create opens a class. The level must have a fee schedule in the year.
func (s *ClassSectionService) Create(ctx context.Context, req CreateClassSectionRequest) (*models.ClassSection, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class section payload")
	}
	if _, err := s.years.FindByID(ctx, req.AcademicYearID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academic year not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic year")
	}
	if _, err := s.levels.Get(ctx, req.LevelID); err != nil {
		return nil, err
	}
	if _, err := s.fees.Require(ctx, req.LevelID, req.AcademicYearID); err != nil {
		return nil, err
	}

	class := &models.ClassSection{
		Name:              req.Name,
		LevelID:           req.LevelID,
		AcademicYearID:    req.AcademicYearID,
		Capacity:          req.Capacity,
		HomeroomTeacherID: req.HomeroomTeacherID,
		SupervisorID:      req.SupervisorID,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class section")
	}
	s.logger.Info("class section created",
		zap.String("class_section_id", class.ID),
		zap.String("academic_year_id", class.AcademicYearID),
		zap.Int("capacity", class.Capacity))
	return class, nil
}
