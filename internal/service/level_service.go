package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

const levelsCacheKey = "reference:levels"

type levelRepository interface {
	List(ctx context.Context) ([]models.Level, error)
	FindByID(ctx context.Context, id string) (*models.Level, error)
}

// LevelCatalog serves the immutable level list, cached when caching is enabled.
type LevelCatalog struct {
	repo     levelRepository
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewLevelCatalog constructs a level catalog. cache may be nil.
func NewLevelCatalog(repo levelRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *LevelCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LevelCatalog{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// List returns all levels ordered by progression.
func (c *LevelCatalog) List(ctx context.Context) ([]models.Level, error) {
	var cached []models.Level
	if hit, _ := c.cache.Get(ctx, levelsCacheKey, &cached); hit {
		return cached, nil
	}
	levels, err := c.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list levels")
	}
	_ = c.cache.Set(ctx, levelsCacheKey, levels, c.cacheTTL)
	return levels, nil
}

// Get returns a level by ID.
func (c *LevelCatalog) Get(ctx context.Context, id string) (*models.Level, error) {
	level, err := c.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "level not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load level")
	}
	return level, nil
}
