package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

func TestPaymentRecordAccumulatesAmountPaid(t *testing.T) {
	e := newEngine(t)
	created, err := e.enrollments.Create(context.Background(), CreateEnrollmentRequest{StudentID: "S1", ClassSectionID: "class-1"})
	require.NoError(t, err)

	paidOn := day(2025, time.August, 1)
	payment, err := e.payments.Record(context.Background(), created.Enrollment.ID, RecordPaymentRequest{Amount: dec(75000), Date: &paidOn})
	require.NoError(t, err)
	assert.NotEmpty(t, payment.ID)
	assert.True(t, payment.Date.Equal(paidOn))

	payments, err := e.payments.List(context.Background(), created.Enrollment.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)

	stored, err := e.enrollments.Get(context.Background(), created.Enrollment.ID)
	require.NoError(t, err)
	assert.True(t, stored.AmountPaid.Equal(AmountPaid(payments)))
}

func TestPaymentRecordValidation(t *testing.T) {
	e := newEngine(t)
	created, err := e.enrollments.Create(context.Background(), CreateEnrollmentRequest{StudentID: "S1", ClassSectionID: "class-1"})
	require.NoError(t, err)

	_, err = e.payments.Record(context.Background(), created.Enrollment.ID, RecordPaymentRequest{Amount: dec(0)})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = e.payments.Record(context.Background(), created.Enrollment.ID, RecordPaymentRequest{Amount: dec(-10)})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = e.payments.Record(context.Background(), "missing", RecordPaymentRequest{Amount: dec(10)})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	_, err = e.payments.List(context.Background(), "missing")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestPaymentAcceptedAfterWithdrawal(t *testing.T) {
	e := newEngine(t)
	created, err := e.enrollments.Create(context.Background(), CreateEnrollmentRequest{StudentID: "S1", ClassSectionID: "class-1"})
	require.NoError(t, err)
	_, err = e.enrollments.Cancel(context.Background(), created.Enrollment.ID, StatusChangeRequest{})
	require.NoError(t, err)

	_, err = e.payments.Record(context.Background(), created.Enrollment.ID, RecordPaymentRequest{Amount: dec(10)})
	require.NoError(t, err)
}
