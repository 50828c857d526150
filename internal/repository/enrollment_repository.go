package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
)

const enrollmentColumns = `id, student_id, class_section_id, academic_year_id, prior_enrollment_id, enrollment_date,
        registration_fee, tuition_fee, discount, payment_plan, status, amount_due, amount_paid, cancel_reason, created_at, updated_at`

// ErrCapacityExceeded is returned when a commit would put a class over capacity.
var ErrCapacityExceeded = errors.New("class section capacity exceeded")

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// List returns enrollments filtered by the provided criteria.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, int, error) {
	var conditions []string
	var args []interface{}

	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.ClassSectionID != "" {
		conditions = append(conditions, fmt.Sprintf("class_section_id = $%d", len(args)+1))
		args = append(args, filter.ClassSectionID)
	}
	if filter.AcademicYearID != "" {
		conditions = append(conditions, fmt.Sprintf("academic_year_id = $%d", len(args)+1))
		args = append(args, filter.AcademicYearID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	base := "FROM enrollments"
	if len(conditions) > 0 {
		base += " WHERE " + strings.Join(conditions, " AND ")
	}

	allowedSorts := map[string]bool{
		"enrollment_date": true,
		"created_at":      true,
		"amount_due":      true,
	}
	sortBy := filter.SortBy
	if !allowedSorts[sortBy] {
		sortBy = "enrollment_date"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", enrollmentColumns, base, sortBy, order, size, offset)
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list enrollments: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count enrollments: %w", err)
	}
	return enrollments, total, nil
}

// FindByID returns an enrollment by its ID.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	query := fmt.Sprintf("SELECT %s FROM enrollments WHERE id = $1", enrollmentColumns)
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ListSeatCounts returns seat-holding enrollment counts per class for a year.
func (r *EnrollmentRepository) ListSeatCounts(ctx context.Context, yearID string) ([]models.SeatCount, error) {
	const query = `SELECT class_section_id, COUNT(*) AS active_count FROM enrollments
        WHERE academic_year_id = $1 AND status IN ($2, $3) GROUP BY class_section_id`
	var counts []models.SeatCount
	if err := r.db.SelectContext(ctx, &counts, query, yearID, models.EnrollmentStatusEnrolled, models.EnrollmentStatusRenewed); err != nil {
		return nil, fmt.Errorf("list seat counts: %w", err)
	}
	return counts, nil
}

// ListSeatHolders returns the class held by each seat-holding enrollment of a year.
func (r *EnrollmentRepository) ListSeatHolders(ctx context.Context, yearID string) ([]models.SeatHolder, error) {
	const query = `SELECT id, class_section_id FROM enrollments WHERE academic_year_id = $1 AND status IN ($2, $3)`
	var holders []models.SeatHolder
	if err := r.db.SelectContext(ctx, &holders, query, yearID, models.EnrollmentStatusEnrolled, models.EnrollmentStatusRenewed); err != nil {
		return nil, fmt.Errorf("list seat holders: %w", err)
	}
	return holders, nil
}

// CountActiveByClass counts seat-holding enrollments of a class.
func (r *EnrollmentRepository) CountActiveByClass(ctx context.Context, classID string) (int, error) {
	const query = `SELECT COUNT(*) FROM enrollments WHERE class_section_id = $1 AND status IN ($2, $3)`
	var count int
	if err := r.db.GetContext(ctx, &count, query, classID, models.EnrollmentStatusEnrolled, models.EnrollmentStatusRenewed); err != nil {
		return 0, fmt.Errorf("count class enrollments: %w", err)
	}
	return count, nil
}

// ExistsActiveForStudent reports whether the student already holds a seat in the year.
func (r *EnrollmentRepository) ExistsActiveForStudent(ctx context.Context, studentID, yearID, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM enrollments WHERE student_id = $1 AND academic_year_id = $2 AND status IN ($3, $4)`
	args := []interface{}{studentID, yearID, models.EnrollmentStatusEnrolled, models.EnrollmentStatusRenewed}
	if excludeID != "" {
		query += " AND id <> $5"
		args = append(args, excludeID)
	}
	query += ")"
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("check active enrollment: %w", err)
	}
	return exists, nil
}

// Create inserts an enrollment after re-validating class capacity under a row lock.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) (err error) {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if enrollment.EnrollmentDate.IsZero() {
		enrollment.EnrollmentDate = now
	}
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = now
	}
	enrollment.UpdatedAt = now
	if enrollment.Status == "" {
		enrollment.Status = models.EnrollmentStatusEnrolled
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create enrollment tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = reserveSeat(ctx, tx, enrollment.ClassSectionID, ""); err != nil {
		return err
	}

	const query = `INSERT INTO enrollments (id, student_id, class_section_id, academic_year_id, prior_enrollment_id, enrollment_date,
        registration_fee, tuition_fee, discount, payment_plan, status, amount_due, amount_paid, cancel_reason, created_at, updated_at)
        VALUES (:id, :student_id, :class_section_id, :academic_year_id, :prior_enrollment_id, :enrollment_date,
        :registration_fee, :tuition_fee, :discount, :payment_plan, :status, :amount_due, :amount_paid, :cancel_reason, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create enrollment tx: %w", err)
	}
	return nil
}

// Update persists edited fields. When moveClass is set the target class
// capacity is re-validated, excluding the enrollment itself.
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment, moveClass bool) (err error) {
	enrollment.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update enrollment tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if moveClass {
		if err = reserveSeat(ctx, tx, enrollment.ClassSectionID, enrollment.ID); err != nil {
			return err
		}
	}

	const query = `UPDATE enrollments SET class_section_id = :class_section_id, enrollment_date = :enrollment_date,
        registration_fee = :registration_fee, tuition_fee = :tuition_fee, discount = :discount, payment_plan = :payment_plan,
        amount_due = :amount_due, updated_at = :updated_at WHERE id = :id`
	if _, err = tx.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update enrollment tx: %w", err)
	}
	return nil
}

// UpdateStatus changes the lifecycle status and records the reason.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus, reason *string) error {
	const query = `UPDATE enrollments SET status = $2, cancel_reason = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, reason, time.Now().UTC()); err != nil {
		return fmt.Errorf("update enrollment status: %w", err)
	}
	return nil
}

// reserveSeat locks the class row and fails with ErrCapacityExceeded when no seat is left.
func reserveSeat(ctx context.Context, tx *sqlx.Tx, classID, excludeEnrollmentID string) error {
	var capacity int
	if err := tx.GetContext(ctx, &capacity, `SELECT capacity FROM class_sections WHERE id = $1 FOR UPDATE`, classID); err != nil {
		return fmt.Errorf("lock class section: %w", err)
	}

	query := `SELECT COUNT(*) FROM enrollments WHERE class_section_id = $1 AND status IN ($2, $3)`
	args := []interface{}{classID, models.EnrollmentStatusEnrolled, models.EnrollmentStatusRenewed}
	if excludeEnrollmentID != "" {
		query += " AND id <> $4"
		args = append(args, excludeEnrollmentID)
	}
	var active int
	if err := tx.GetContext(ctx, &active, query, args...); err != nil {
		return fmt.Errorf("count class seats: %w", err)
	}
	if active >= capacity {
		return ErrCapacityExceeded
	}
	return nil
}
