package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses. Draft only exists client side and is never persisted.
const (
	EnrollmentStatusEnrolled    EnrollmentStatus = "ENROLLED"
	EnrollmentStatusRenewed     EnrollmentStatus = "RENEWED"
	EnrollmentStatusTransferred EnrollmentStatus = "TRANSFERRED"
	EnrollmentStatusWithdrawn   EnrollmentStatus = "WITHDRAWN"
)

// ActiveEnrollmentStatuses hold a seat in their class.
var ActiveEnrollmentStatuses = []EnrollmentStatus{EnrollmentStatusEnrolled, EnrollmentStatusRenewed}

// HoldsSeat reports whether the status occupies a class seat.
func (s EnrollmentStatus) HoldsSeat() bool {
	return s == EnrollmentStatusEnrolled || s == EnrollmentStatusRenewed
}

// PaymentPlan describes how the tuition is spread.
type PaymentPlan string

const (
	PaymentPlanMonthly   PaymentPlan = "MONTHLY"
	PaymentPlanQuarterly PaymentPlan = "QUARTERLY"
	PaymentPlanAnnual    PaymentPlan = "ANNUAL"
)

// Enrollment is one student's seat in one class for one academic year.
type Enrollment struct {
	ID                string           `db:"id" json:"id"`
	StudentID         string           `db:"student_id" json:"student_id"`
	ClassSectionID    string           `db:"class_section_id" json:"class_section_id"`
	AcademicYearID    string           `db:"academic_year_id" json:"academic_year_id"`
	PriorEnrollmentID *string          `db:"prior_enrollment_id" json:"prior_enrollment_id,omitempty"`
	EnrollmentDate    time.Time        `db:"enrollment_date" json:"enrollment_date"`
	RegistrationFee   decimal.Decimal  `db:"registration_fee" json:"registration_fee"`
	TuitionFee        decimal.Decimal  `db:"tuition_fee" json:"tuition_fee"`
	Discount          decimal.Decimal  `db:"discount" json:"discount"`
	PaymentPlan       PaymentPlan      `db:"payment_plan" json:"payment_plan"`
	Status            EnrollmentStatus `db:"status" json:"status"`
	AmountDue         decimal.Decimal  `db:"amount_due" json:"amount_due"`
	AmountPaid        decimal.Decimal  `db:"amount_paid" json:"amount_paid"`
	CancelReason      *string          `db:"cancel_reason" json:"cancel_reason,omitempty"`
	CreatedAt         time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time        `db:"updated_at" json:"updated_at"`
}

// EnrollmentFilter provides filters for listing enrollments.
type EnrollmentFilter struct {
	StudentID      string
	ClassSectionID string
	AcademicYearID string
	Status         EnrollmentStatus
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}

// SeatCount is the number of seat-holding enrollments per class.
type SeatCount struct {
	ClassSectionID string `db:"class_section_id" json:"class_section_id"`
	Active         int    `db:"active_count" json:"active_count"`
}

// SeatHolder maps a seat-holding enrollment to its class.
type SeatHolder struct {
	EnrollmentID   string `db:"id" json:"enrollment_id"`
	ClassSectionID string `db:"class_section_id" json:"class_section_id"`
}
