package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
)

// PaymentRepository persists the append-only payment ledger.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// ListByEnrollment returns the payments of an enrollment in chronological order.
func (r *PaymentRepository) ListByEnrollment(ctx context.Context, enrollmentID string) ([]models.PaymentRecord, error) {
	const query = `SELECT id, enrollment_id, amount, paid_on, created_at FROM payment_records WHERE enrollment_id = $1 ORDER BY paid_on ASC, created_at ASC`
	var payments []models.PaymentRecord
	if err := r.db.SelectContext(ctx, &payments, query, enrollmentID); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// Create appends a payment and bumps the enrollment's amount_paid atomically.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.PaymentRecord) (err error) {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin payment tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insert = `INSERT INTO payment_records (id, enrollment_id, amount, paid_on, created_at) VALUES (:id, :enrollment_id, :amount, :paid_on, :created_at)`
	if _, err = tx.NamedExecContext(ctx, insert, payment); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `UPDATE enrollments SET amount_paid = amount_paid + $2, updated_at = $3 WHERE id = $1`, payment.EnrollmentID, payment.Amount, now); err != nil {
		return fmt.Errorf("update enrollment amount paid: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit payment tx: %w", err)
	}
	return nil
}
