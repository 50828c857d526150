package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)

	var dest []string
	err := repo.Get(context.Background(), "levels:all", &dest)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))
	require.NoError(t, repo.Set(context.Background(), "levels:all", []string{"a"}, time.Minute))
	require.NoError(t, repo.DeleteByPattern(context.Background(), "fee_schedule:*"))
	require.NoError(t, repo.Close())
}
