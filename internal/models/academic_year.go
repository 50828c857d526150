package models

import "time"

// AcademicYearStatus tracks the institution-wide lifecycle of an academic year.
type AcademicYearStatus string

const (
	AcademicYearPlanned  AcademicYearStatus = "PLANNED"
	AcademicYearCurrent  AcademicYearStatus = "CURRENT"
	AcademicYearFinished AcademicYearStatus = "FINISHED"
	AcademicYearArchived AcademicYearStatus = "ARCHIVED"
)

var academicYearStatusRank = map[AcademicYearStatus]int{
	AcademicYearPlanned:  0,
	AcademicYearCurrent:  1,
	AcademicYearFinished: 2,
	AcademicYearArchived: 3,
}

// Valid reports whether the status is a known value.
func (s AcademicYearStatus) Valid() bool {
	_, ok := academicYearStatusRank[s]
	return ok
}

// CanTransitionTo reports whether moving to next keeps the lifecycle monotonic.
func (s AcademicYearStatus) CanTransitionTo(next AcademicYearStatus) bool {
	from, ok := academicYearStatusRank[s]
	if !ok {
		return false
	}
	to, ok := academicYearStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// AcademicYear scopes classes, fee schedules and enrollments.
type AcademicYear struct {
	ID        string             `db:"id" json:"id"`
	Label     string             `db:"label" json:"label"`
	StartDate time.Time          `db:"start_date" json:"start_date"`
	EndDate   time.Time          `db:"end_date" json:"end_date"`
	Status    AcademicYearStatus `db:"status" json:"status"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}
