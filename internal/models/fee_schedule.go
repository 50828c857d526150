package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeSchedule defines fees for one level in one academic year.
type FeeSchedule struct {
	ID              string          `db:"id" json:"id"`
	LevelID         string          `db:"level_id" json:"level_id"`
	AcademicYearID  string          `db:"academic_year_id" json:"academic_year_id"`
	TuitionAmount   decimal.Decimal `db:"tuition_amount" json:"tuition_amount"`
	RegistrationFee decimal.Decimal `db:"registration_fee" json:"registration_fee"`
	FileFee         decimal.Decimal `db:"file_fee" json:"file_fee"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// Fees returns the enrollment-facing amounts carried by the schedule.
func (f FeeSchedule) Fees() FeeAmounts {
	return FeeAmounts{RegistrationFee: f.RegistrationFee, TuitionFee: f.TuitionAmount}
}

// FeeAmounts is the pair of charges an enrollment is billed.
type FeeAmounts struct {
	RegistrationFee decimal.Decimal `json:"registration_fee"`
	TuitionFee      decimal.Decimal `json:"tuition_fee"`
}

// NewFeeAmounts validates that neither charge is negative.
func NewFeeAmounts(registration, tuition decimal.Decimal) (FeeAmounts, error) {
	if registration.IsNegative() {
		return FeeAmounts{}, &FieldError{Field: "registration_fee", Reason: "must not be negative"}
	}
	if tuition.IsNegative() {
		return FeeAmounts{}, &FieldError{Field: "tuition_fee", Reason: "must not be negative"}
	}
	return FeeAmounts{RegistrationFee: registration, TuitionFee: tuition}, nil
}

// FieldError reports an invalid field value detected at construction time.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Reason
}
