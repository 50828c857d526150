package models

import "time"

// ClassSection is a class belonging to exactly one academic year.
type ClassSection struct {
	ID                string    `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	LevelID           string    `db:"level_id" json:"level_id"`
	AcademicYearID    string    `db:"academic_year_id" json:"academic_year_id"`
	Capacity          int       `db:"capacity" json:"capacity"`
	HomeroomTeacherID *string   `db:"homeroom_teacher_id" json:"homeroom_teacher_id,omitempty"`
	SupervisorID      *string   `db:"supervisor_id" json:"supervisor_id,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// ClassSectionDetail joins a class with its level, year and fee coverage for display.
type ClassSectionDetail struct {
	ClassSection
	Level          *Level        `json:"level,omitempty"`
	AcademicYear   *AcademicYear `json:"academic_year,omitempty"`
	FeeSchedule    *FeeSchedule  `json:"fee_schedule,omitempty"`
	ActiveCount    int           `json:"active_count"`
	RemainingSeats int           `json:"remaining_seats"`
	Selectable     bool          `json:"selectable"`
}
