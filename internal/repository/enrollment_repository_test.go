package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() { _ = sqlxDB.Close() }
}

func newEnrollment() *models.Enrollment {
	return &models.Enrollment{
		StudentID:       "stu-1",
		ClassSectionID:  "class-1",
		AcademicYearID:  "year-1",
		RegistrationFee: decimal.NewFromInt(50000),
		TuitionFee:      decimal.NewFromInt(250000),
		Discount:        decimal.Zero,
		PaymentPlan:     models.PaymentPlanMonthly,
		AmountDue:       decimal.NewFromInt(300000),
		AmountPaid:      decimal.Zero,
	}
}

func TestEnrollmentRepositoryCreateReservesSeat(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT capacity FROM class_sections WHERE id = $1 FOR UPDATE")).
		WithArgs("class-1").
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM enrollments WHERE class_section_id = $1 AND status IN ($2, $3)")).
		WithArgs("class-1", models.EnrollmentStatusEnrolled, models.EnrollmentStatusRenewed).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO enrollments")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	enrollment := newEnrollment()
	require.NoError(t, repo.Create(context.Background(), enrollment))
	assert.NotEmpty(t, enrollment.ID)
	assert.Equal(t, models.EnrollmentStatusEnrolled, enrollment.Status)
	assert.False(t, enrollment.EnrollmentDate.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryCreateCapacityExceeded(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT capacity FROM class_sections")).
		WithArgs("class-1").
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM enrollments")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), newEnrollment())
	require.ErrorIs(t, err, ErrCapacityExceeded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryUpdateMoveExcludesSelf(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	enrollment := newEnrollment()
	enrollment.ID = "enr-1"
	enrollment.ClassSectionID = "class-2"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT capacity FROM class_sections")).
		WithArgs("class-2").
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM enrollments WHERE class_section_id = $1 AND status IN ($2, $3) AND id <> $4")).
		WithArgs("class-2", models.EnrollmentStatusEnrolled, models.EnrollmentStatusRenewed, "enr-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET class_section_id")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), enrollment, true))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryUpdateWithoutMoveSkipsCapacity(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	enrollment := newEnrollment()
	enrollment.ID = "enr-1"

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET class_section_id")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), enrollment, false))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListSeatCounts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT class_section_id, COUNT(*) AS active_count FROM enrollments")).
		WithArgs("year-1", models.EnrollmentStatusEnrolled, models.EnrollmentStatusRenewed).
		WillReturnRows(sqlmock.NewRows([]string{"class_section_id", "active_count"}).
			AddRow("class-1", 3).
			AddRow("class-2", 1))

	counts, err := repo.ListSeatCounts(context.Background(), "year-1")
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, 3, counts[0].Active)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "student_id", "class_section_id", "academic_year_id", "prior_enrollment_id", "enrollment_date",
		"registration_fee", "tuition_fee", "discount", "payment_plan", "status", "amount_due", "amount_paid", "cancel_reason", "created_at", "updated_at"}).
		AddRow("enr-1", "stu-1", "class-1", "year-1", nil, now, "50000", "250000", "0", "MONTHLY", "ENROLLED", "300000", "50000", nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM enrollments WHERE id = $1")).
		WithArgs("enr-1").
		WillReturnRows(rows)

	enrollment, err := repo.FindByID(context.Background(), "enr-1")
	require.NoError(t, err)
	assert.True(t, enrollment.AmountDue.Equal(decimal.NewFromInt(300000)))
	assert.True(t, enrollment.AmountPaid.Equal(decimal.NewFromInt(50000)))
	assert.Nil(t, enrollment.PriorEnrollmentID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListAppliesFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM enrollments WHERE academic_year_id = $1 AND status = $2 ORDER BY enrollment_date DESC LIMIT 20 OFFSET 0")).
		WithArgs("year-1", models.EnrollmentStatusEnrolled).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM enrollments WHERE academic_year_id = $1 AND status = $2")).
		WithArgs("year-1", models.EnrollmentStatusEnrolled).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	items, total, err := repo.List(context.Background(), models.EnrollmentFilter{AcademicYearID: "year-1", Status: models.EnrollmentStatusEnrolled})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryExistsActiveForStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM enrollments WHERE student_id = $1 AND academic_year_id = $2 AND status IN ($3, $4))")).
		WithArgs("stu-1", "year-1", models.EnrollmentStatusEnrolled, models.EnrollmentStatusRenewed).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsActiveForStudent(context.Background(), "stu-1", "year-1", "")
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}
