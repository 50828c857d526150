package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is an append-only payment against an enrollment.
type PaymentRecord struct {
	ID           string          `db:"id" json:"id"`
	EnrollmentID string          `db:"enrollment_id" json:"enrollment_id"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	Date         time.Time       `db:"paid_on" json:"date"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// NewPaymentRecord validates a payment before it is persisted.
func NewPaymentRecord(enrollmentID string, amount decimal.Decimal, date time.Time) (*PaymentRecord, error) {
	if enrollmentID == "" {
		return nil, &FieldError{Field: "enrollment_id", Reason: "is required"}
	}
	if !amount.IsPositive() {
		return nil, &FieldError{Field: "amount", Reason: "must be greater than zero"}
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return &PaymentRecord{EnrollmentID: enrollmentID, Amount: amount, Date: date}, nil
}
