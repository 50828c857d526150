package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestAmountDueDoesNotClamp(t *testing.T) {
	assert.True(t, AmountDue(dec(50000), dec(250000), dec(0)).Equal(dec(300000)))
	assert.True(t, AmountDue(dec(50000), dec(250000), dec(300000)).Equal(dec(0)))
	assert.True(t, AmountDue(dec(50000), dec(250000), dec(400000)).Equal(dec(-100000)))
}

func TestAmountPaidAndBalance(t *testing.T) {
	payments := []models.PaymentRecord{{Amount: dec(20000)}, {Amount: dec(30000)}}
	paid := AmountPaid(payments)
	assert.True(t, paid.Equal(dec(50000)))
	assert.True(t, AmountPaid(nil).IsZero())

	assert.True(t, Balance(dec(300000), paid).Equal(dec(250000)))
	assert.True(t, Balance(dec(0), paid).Equal(dec(-50000)))
	assert.True(t, IsOverpaid(dec(0), paid))
	assert.False(t, IsOverpaid(dec(50000), paid))
}

func TestMonthlyEstimate(t *testing.T) {
	assert.True(t, MonthlyEstimate(dec(250000), 10).Equal(dec(25000)))
	assert.True(t, MonthlyEstimate(dec(250000), 0).Equal(dec(25000)))
	assert.Equal(t, "33333.33", MonthlyEstimate(dec(100000), 3).StringFixed(2))
}

func TestSummarizeFinancialIdentity(t *testing.T) {
	enrollment := models.Enrollment{RegistrationFee: dec(50000), TuitionFee: dec(250000), Discount: dec(300000)}
	summary := Summarize(enrollment, []models.PaymentRecord{{Amount: dec(50000)}}, 10)

	assert.True(t, summary.AmountDue.Equal(dec(0)))
	assert.True(t, summary.Balance.Equal(summary.AmountDue.Sub(summary.AmountPaid)))
	assert.True(t, summary.Balance.Equal(dec(-50000)))
	assert.True(t, summary.Overpaid)
	assert.False(t, summary.NegativeDue)
}
