package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
)

const academicYearColumns = `id, label, start_date, end_date, status, created_at, updated_at`

// AcademicYearRepository handles persistence for academic years.
type AcademicYearRepository struct {
	db *sqlx.DB
}

// NewAcademicYearRepository instantiates an academic year repository.
func NewAcademicYearRepository(db *sqlx.DB) *AcademicYearRepository {
	return &AcademicYearRepository{db: db}
}

// List returns every academic year ordered by start date ascending.
func (r *AcademicYearRepository) List(ctx context.Context) ([]models.AcademicYear, error) {
	query := fmt.Sprintf("SELECT %s FROM academic_years ORDER BY start_date ASC", academicYearColumns)
	var years []models.AcademicYear
	if err := r.db.SelectContext(ctx, &years, query); err != nil {
		return nil, fmt.Errorf("list academic years: %w", err)
	}
	return years, nil
}

// FindByID loads an academic year by identifier.
func (r *AcademicYearRepository) FindByID(ctx context.Context, id string) (*models.AcademicYear, error) {
	query := fmt.Sprintf("SELECT %s FROM academic_years WHERE id = $1", academicYearColumns)
	var year models.AcademicYear
	if err := r.db.GetContext(ctx, &year, query, id); err != nil {
		return nil, err
	}
	return &year, nil
}

// Create inserts a new academic year.
func (r *AcademicYearRepository) Create(ctx context.Context, year *models.AcademicYear) error {
	if year.ID == "" {
		year.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if year.CreatedAt.IsZero() {
		year.CreatedAt = now
	}
	year.UpdatedAt = now
	if year.Status == "" {
		year.Status = models.AcademicYearPlanned
	}

	const query = `INSERT INTO academic_years (id, label, start_date, end_date, status, created_at, updated_at) VALUES (:id, :label, :start_date, :end_date, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, year); err != nil {
		return fmt.Errorf("create academic year: %w", err)
	}
	return nil
}

// UpdateStatus moves a year to the given status. Promoting a year to CURRENT
// finishes the previously current year inside the same transaction.
func (r *AcademicYearRepository) UpdateStatus(ctx context.Context, id string, status models.AcademicYearStatus) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin academic year status tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	if status == models.AcademicYearCurrent {
		if _, err = tx.ExecContext(ctx, `UPDATE academic_years SET status = $1, updated_at = $2 WHERE status = $3 AND id <> $4`,
			models.AcademicYearFinished, now, models.AcademicYearCurrent, id); err != nil {
			return fmt.Errorf("finish current academic year: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `UPDATE academic_years SET status = $2, updated_at = $3 WHERE id = $1`, id, status, now); err != nil {
		return fmt.Errorf("update academic year status: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit academic year status tx: %w", err)
	}
	return nil
}
