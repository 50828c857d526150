package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelRepositoryListOrdersByProgression(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLevelRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM levels ORDER BY sort_order ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "cycle", "sort_order"}).
			AddRow("level-1", "Grade 1", "primary", 1).
			AddRow("level-2", "Grade 2", "primary", 2))

	levels, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, "level-1", levels[0].ID)
	assert.Equal(t, 2, levels[1].Order)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLevelRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLevelRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM levels WHERE id = $1")).
		WithArgs("level-2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "cycle", "sort_order"}).
			AddRow("level-2", "Grade 2", "primary", 2))
	mock.ExpectQuery(regexp.QuoteMeta("FROM levels WHERE id = $1")).
		WithArgs("level-9").
		WillReturnError(sql.ErrNoRows)

	level, err := repo.FindByID(context.Background(), "level-2")
	require.NoError(t, err)
	assert.Equal(t, "Grade 2", level.Name)

	_, err = repo.FindByID(context.Background(), "level-9")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
