package service

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
)

// DefaultMonthsInYear is the number of billable months used for monthly estimates.
const DefaultMonthsInYear = 10

// FinancialSummary is the derived money state of an enrollment.
type FinancialSummary struct {
	RegistrationFee decimal.Decimal `json:"registration_fee"`
	TuitionFee      decimal.Decimal `json:"tuition_fee"`
	Discount        decimal.Decimal `json:"discount"`
	AmountDue       decimal.Decimal `json:"amount_due"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	Balance         decimal.Decimal `json:"balance"`
	MonthlyEstimate decimal.Decimal `json:"monthly_estimate"`
	Overpaid        bool            `json:"overpaid"`
	NegativeDue     bool            `json:"negative_due"`
}

// AmountDue is registration + tuition - discount. A negative total is returned
// as is so callers can warn on the data-entry mistake.
func AmountDue(registrationFee, tuitionFee, discount decimal.Decimal) decimal.Decimal {
	return registrationFee.Add(tuitionFee).Sub(discount)
}

// AmountPaid sums the recorded payments.
func AmountPaid(payments []models.PaymentRecord) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Balance is what remains to be paid; negative means overpaid.
func Balance(amountDue, amountPaid decimal.Decimal) decimal.Decimal {
	return amountDue.Sub(amountPaid)
}

// IsOverpaid reports a negative balance.
func IsOverpaid(amountDue, amountPaid decimal.Decimal) bool {
	return Balance(amountDue, amountPaid).IsNegative()
}

// MonthlyEstimate spreads the tuition over monthsInYear, rounded to cents.
// Non-positive month counts fall back to DefaultMonthsInYear.
func MonthlyEstimate(tuitionFee decimal.Decimal, monthsInYear int) decimal.Decimal {
	if monthsInYear <= 0 {
		monthsInYear = DefaultMonthsInYear
	}
	return tuitionFee.Div(decimal.NewFromInt(int64(monthsInYear))).Round(2)
}

// Summarize derives the financial summary of an enrollment from its fees and payments.
func Summarize(enrollment models.Enrollment, payments []models.PaymentRecord, monthsInYear int) FinancialSummary {
	due := AmountDue(enrollment.RegistrationFee, enrollment.TuitionFee, enrollment.Discount)
	paid := AmountPaid(payments)
	return FinancialSummary{
		RegistrationFee: enrollment.RegistrationFee,
		TuitionFee:      enrollment.TuitionFee,
		Discount:        enrollment.Discount,
		AmountDue:       due,
		AmountPaid:      paid,
		Balance:         Balance(due, paid),
		MonthlyEstimate: MonthlyEstimate(enrollment.TuitionFee, monthsInYear),
		Overpaid:        IsOverpaid(due, paid),
		NegativeDue:     due.IsNegative(),
	}
}
