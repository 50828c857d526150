package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
)

func TestPaymentRepositoryCreateBumpsAmountPaid(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payment_records")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET amount_paid = amount_paid + $2")).
		WithArgs("enr-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payment := &models.PaymentRecord{EnrollmentID: "enr-1", Amount: decimal.NewFromInt(50000), Date: time.Now()}
	require.NoError(t, repo.Create(context.Background(), payment))
	assert.NotEmpty(t, payment.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryListByEnrollment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM payment_records WHERE enrollment_id = $1")).
		WithArgs("enr-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "enrollment_id", "amount", "paid_on", "created_at"}).
			AddRow("pay-1", "enr-1", "20000", now, now).
			AddRow("pay-2", "enr-1", "30000", now, now))

	payments, err := repo.ListByEnrollment(context.Background(), "enr-1")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.True(t, payments[1].Amount.Equal(decimal.NewFromInt(30000)))
	require.NoError(t, mock.ExpectationsWereMet())
}
