package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
)

const feeScheduleColumns = `id, level_id, academic_year_id, tuition_amount, registration_fee, file_fee, created_at, updated_at`

// ErrDuplicateFeeSchedule signals a second schedule for the same level and year.
var ErrDuplicateFeeSchedule = errors.New("fee schedule already exists for level and academic year")

const pqUniqueViolation = "23505"

// FeeScheduleRepository handles persistence of fee schedules.
type FeeScheduleRepository struct {
	db *sqlx.DB
}

// NewFeeScheduleRepository constructs the repository.
func NewFeeScheduleRepository(db *sqlx.DB) *FeeScheduleRepository {
	return &FeeScheduleRepository{db: db}
}

// FindByLevelAndYear returns the schedule for a (level, year) pair.
func (r *FeeScheduleRepository) FindByLevelAndYear(ctx context.Context, levelID, yearID string) (*models.FeeSchedule, error) {
	query := fmt.Sprintf("SELECT %s FROM fee_schedules WHERE level_id = $1 AND academic_year_id = $2", feeScheduleColumns)
	var schedule models.FeeSchedule
	if err := r.db.GetContext(ctx, &schedule, query, levelID, yearID); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ListByYear returns all schedules of an academic year.
func (r *FeeScheduleRepository) ListByYear(ctx context.Context, yearID string) ([]models.FeeSchedule, error) {
	query := fmt.Sprintf("SELECT %s FROM fee_schedules WHERE academic_year_id = $1", feeScheduleColumns)
	var schedules []models.FeeSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, yearID); err != nil {
		return nil, fmt.Errorf("list fee schedules: %w", err)
	}
	return schedules, nil
}

// Create inserts a schedule, reporting ErrDuplicateFeeSchedule on the (level, year) unique key.
func (r *FeeScheduleRepository) Create(ctx context.Context, schedule *models.FeeSchedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = now
	}
	schedule.UpdatedAt = now

	const query = `INSERT INTO fee_schedules (id, level_id, academic_year_id, tuition_amount, registration_fee, file_fee, created_at, updated_at)
        VALUES (:id, :level_id, :academic_year_id, :tuition_amount, :registration_fee, :file_fee, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return ErrDuplicateFeeSchedule
		}
		return fmt.Errorf("create fee schedule: %w", err)
	}
	return nil
}

// CopyForward duplicates every schedule of fromYearID into toYearID without
// overwriting levels already covered there. It returns copied and skipped counts.
func (r *FeeScheduleRepository) CopyForward(ctx context.Context, fromYearID, toYearID string) (copied, skipped int, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin copy forward tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var sources []models.FeeSchedule
	query := fmt.Sprintf("SELECT %s FROM fee_schedules WHERE academic_year_id = $1 ORDER BY level_id", feeScheduleColumns)
	if err = tx.SelectContext(ctx, &sources, query, fromYearID); err != nil {
		return 0, 0, fmt.Errorf("load source fee schedules: %w", err)
	}

	now := time.Now().UTC()
	const insert = `INSERT INTO fee_schedules (id, level_id, academic_year_id, tuition_amount, registration_fee, file_fee, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
        ON CONFLICT (level_id, academic_year_id) DO NOTHING`
	for _, src := range sources {
		res, execErr := tx.ExecContext(ctx, insert, uuid.NewString(), src.LevelID, toYearID, src.TuitionAmount, src.RegistrationFee, src.FileFee, now)
		if execErr != nil {
			err = fmt.Errorf("copy fee schedule for level %s: %w", src.LevelID, execErr)
			return 0, 0, err
		}
		affected, affErr := res.RowsAffected()
		if affErr != nil {
			err = fmt.Errorf("copy fee schedule rows affected: %w", affErr)
			return 0, 0, err
		}
		if affected > 0 {
			copied++
		} else {
			skipped++
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit copy forward tx: %w", err)
	}
	return copied, skipped, nil
}
