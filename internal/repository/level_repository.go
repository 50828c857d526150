package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
)

// LevelRepository reads the immutable level catalogue.
type LevelRepository struct {
	db *sqlx.DB
}

// NewLevelRepository constructs a level repository.
func NewLevelRepository(db *sqlx.DB) *LevelRepository {
	return &LevelRepository{db: db}
}

// List returns levels in progression order.
func (r *LevelRepository) List(ctx context.Context) ([]models.Level, error) {
	const query = `SELECT id, name, cycle, sort_order FROM levels ORDER BY sort_order ASC`
	var levels []models.Level
	if err := r.db.SelectContext(ctx, &levels, query); err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	return levels, nil
}

// FindByID loads a single level.
func (r *LevelRepository) FindByID(ctx context.Context, id string) (*models.Level, error) {
	const query = `SELECT id, name, cycle, sort_order FROM levels WHERE id = $1`
	var level models.Level
	if err := r.db.GetContext(ctx, &level, query, id); err != nil {
		return nil, err
	}
	return &level, nil
}
