package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
)

func feeScheduleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "level_id", "academic_year_id", "tuition_amount", "registration_fee", "file_fee", "created_at", "updated_at"})
}

func TestFeeScheduleRepositoryCopyForwardSkipsExisting(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeeScheduleRepository(db)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM fee_schedules WHERE academic_year_id = $1 ORDER BY level_id")).
		WithArgs("year-1").
		WillReturnRows(feeScheduleRows().
			AddRow("fee-1", "level-1", "year-1", "250000", "50000", "10000", now, now).
			AddRow("fee-2", "level-2", "year-1", "260000", "50000", "10000", now, now).
			AddRow("fee-3", "level-3", "year-1", "270000", "50000", "10000", now, now))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (level_id, academic_year_id) DO NOTHING")).
		WithArgs(sqlmock.AnyArg(), "level-1", "year-2", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (level_id, academic_year_id) DO NOTHING")).
		WithArgs(sqlmock.AnyArg(), "level-2", "year-2", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (level_id, academic_year_id) DO NOTHING")).
		WithArgs(sqlmock.AnyArg(), "level-3", "year-2", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	copied, skipped, err := repo.CopyForward(context.Background(), "year-1", "year-2")
	require.NoError(t, err)
	assert.Equal(t, 2, copied)
	assert.Equal(t, 1, skipped)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeScheduleRepositoryCreateDuplicate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeeScheduleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO fee_schedules")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.FeeSchedule{LevelID: "level-1", AcademicYearID: "year-1", TuitionAmount: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, ErrDuplicateFeeSchedule)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeScheduleRepositoryFindByLevelAndYear(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeeScheduleRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM fee_schedules WHERE level_id = $1 AND academic_year_id = $2")).
		WithArgs("level-1", "year-1").
		WillReturnRows(feeScheduleRows().AddRow("fee-1", "level-1", "year-1", "250000", "50000", "10000", now, now))

	schedule, err := repo.FindByLevelAndYear(context.Background(), "level-1", "year-1")
	require.NoError(t, err)
	assert.True(t, schedule.TuitionAmount.Equal(decimal.NewFromInt(250000)))
	assert.True(t, schedule.FileFee.Equal(decimal.NewFromInt(10000)))
	require.NoError(t, mock.ExpectationsWereMet())
}
