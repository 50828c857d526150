package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

type paymentRepository interface {
	ListByEnrollment(ctx context.Context, enrollmentID string) ([]models.PaymentRecord, error)
	Create(ctx context.Context, payment *models.PaymentRecord) error
}

type enrollmentReader interface {
	FindByID(ctx context.Context, id string) (*models.Enrollment, error)
}

// RecordPaymentRequest describes a payment received for an enrollment.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   *time.Time      `json:"date"`
}

// PaymentService appends payments to the ledger of an enrollment.
type PaymentService struct {
	repo        paymentRepository
	enrollments enrollmentReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewPaymentService constructs a payment service.
func NewPaymentService(repo paymentRepository, enrollments enrollmentReader, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{repo: repo, enrollments: enrollments, validator: validate, logger: logger}
}

// List returns the payments of an enrollment in date order.
func (s *PaymentService) List(ctx context.Context, enrollmentID string) ([]models.PaymentRecord, error) {
	if _, err := s.enrollment(ctx, enrollmentID); err != nil {
		return nil, err
	}
	payments, err := s.repo.ListByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list payments")
	}
	if payments == nil {
		payments = []models.PaymentRecord{}
	}
	return payments, nil
}

// Record appends a payment and raises the enrollment's paid amount in the same transaction.
func (s *PaymentService) Record(ctx context.Context, enrollmentID string, req RecordPaymentRequest) (*models.PaymentRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	var date time.Time
	if req.Date != nil {
		date = *req.Date
	}
	payment, err := models.NewPaymentRecord(enrollmentID, req.Amount, date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if _, err := s.enrollment(ctx, enrollmentID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record payment")
	}
	s.logger.Info("payment recorded",
		zap.String("enrollment_id", enrollmentID),
		zap.String("payment_id", payment.ID),
		zap.String("amount", payment.Amount.String()))
	return payment, nil
}

func (s *PaymentService) enrollment(ctx context.Context, id string) (*models.Enrollment, error) {
	enrollment, err := s.enrollments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	return enrollment, nil
}
