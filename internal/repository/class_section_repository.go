package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
)

const classSectionColumns = `id, name, level_id, academic_year_id, capacity, homeroom_teacher_id, supervisor_id, created_at, updated_at`

// ClassSectionRepository handles persistence of class sections.
type ClassSectionRepository struct {
	db *sqlx.DB
}

// NewClassSectionRepository constructs the repository.
func NewClassSectionRepository(db *sqlx.DB) *ClassSectionRepository {
	return &ClassSectionRepository{db: db}
}

// ListByYear returns the classes of one academic year ordered by name.
func (r *ClassSectionRepository) ListByYear(ctx context.Context, yearID string) ([]models.ClassSection, error) {
	query := fmt.Sprintf("SELECT %s FROM class_sections WHERE academic_year_id = $1 ORDER BY name ASC", classSectionColumns)
	var classes []models.ClassSection
	if err := r.db.SelectContext(ctx, &classes, query, yearID); err != nil {
		return nil, fmt.Errorf("list class sections: %w", err)
	}
	return classes, nil
}

// FindByID loads a class section.
func (r *ClassSectionRepository) FindByID(ctx context.Context, id string) (*models.ClassSection, error) {
	query := fmt.Sprintf("SELECT %s FROM class_sections WHERE id = $1", classSectionColumns)
	var class models.ClassSection
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// Create inserts a class section.
func (r *ClassSectionRepository) Create(ctx context.Context, class *models.ClassSection) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if class.CreatedAt.IsZero() {
		class.CreatedAt = now
	}
	class.UpdatedAt = now

	const query = `INSERT INTO class_sections (id, name, level_id, academic_year_id, capacity, homeroom_teacher_id, supervisor_id, created_at, updated_at)
        VALUES (:id, :name, :level_id, :academic_year_id, :capacity, :homeroom_teacher_id, :supervisor_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class section: %w", err)
	}
	return nil
}
