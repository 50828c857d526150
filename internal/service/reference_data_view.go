package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

// ErrScopeSuperseded is returned by Reload when the active year changed before
// the fetched data could be committed. The data is discarded.
var ErrScopeSuperseded = errors.New("active academic year changed during reload")

type activeYearScoper interface {
	Scope() (ActiveYearScope, error)
	IsCurrent(epoch uint64) bool
	ListYears() []models.AcademicYear
}

type classSectionSource interface {
	ListByYear(ctx context.Context, yearID string) ([]models.ClassSection, error)
}

type levelSource interface {
	List(ctx context.Context) ([]models.Level, error)
}

type feeScheduleSource interface {
	ListByYear(ctx context.Context, yearID string) ([]models.FeeSchedule, error)
}

type occupancySource interface {
	Load(ctx context.Context, yearID string) Occupancy
}

// ReferenceSnapshot is the reference data fetched for one active-year scope.
type ReferenceSnapshot struct {
	Year         models.AcademicYear
	Epoch        uint64
	Classes      []models.ClassSection
	Levels       []models.Level
	FeeSchedules []models.FeeSchedule
	Occupancy    Occupancy
	LoadedAt     time.Time
}

// ReferenceDataView keeps the class, level and fee lists consistent with the active year.
type ReferenceDataView struct {
	registry  activeYearScoper
	classes   classSectionSource
	levels    levelSource
	fees      feeScheduleSource
	occupancy occupancySource
	metrics   *MetricsService
	logger    *zap.Logger

	mu       sync.RWMutex
	snapshot *ReferenceSnapshot
}

// NewReferenceDataView constructs an empty view; subscribe OnActiveYearChanged to the registry.
func NewReferenceDataView(registry activeYearScoper, classes classSectionSource, levels levelSource, fees feeScheduleSource, occupancy occupancySource, metrics *MetricsService, logger *zap.Logger) *ReferenceDataView {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceDataView{
		registry:  registry,
		classes:   classes,
		levels:    levels,
		fees:      fees,
		occupancy: occupancy,
		metrics:   metrics,
		logger:    logger,
	}
}

// OnActiveYearChanged reloads the view for the new scope.
func (v *ReferenceDataView) OnActiveYearChanged(scope ActiveYearScope) {
	if scope.Year == nil {
		v.mu.Lock()
		v.snapshot = nil
		v.mu.Unlock()
		return
	}
	if err := v.reloadScope(context.Background(), scope); err != nil {
		v.logger.Warn("reference data reload after active year change failed",
			zap.String("academic_year_id", scope.Year.ID), zap.Error(err))
	}
}

// Reload refetches classes, levels, fee schedules and occupancy, in that
// order, for the current active year.
func (v *ReferenceDataView) Reload(ctx context.Context) error {
	scope, err := v.registry.Scope()
	if err != nil {
		v.mu.Lock()
		v.snapshot = nil
		v.mu.Unlock()
		return err
	}
	return v.reloadScope(ctx, scope)
}

func (v *ReferenceDataView) reloadScope(ctx context.Context, scope ActiveYearScope) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if scope.Context != nil {
		stop := context.AfterFunc(scope.Context, cancel)
		defer stop()
	}

	yearID := scope.Year.ID
	snap := &ReferenceSnapshot{Year: *scope.Year, Epoch: scope.Epoch}

	classes, err := v.classes.ListByYear(ctx, yearID)
	if err = v.afterFetch(scope, err, "failed to load class sections"); err != nil {
		return err
	}
	snap.Classes = ClassesForYear(classes, yearID)

	levels, err := v.levels.List(ctx)
	if err = v.afterFetch(scope, err, "failed to load levels"); err != nil {
		return err
	}
	snap.Levels = levels

	fees, err := v.fees.ListByYear(ctx, yearID)
	if err = v.afterFetch(scope, err, "failed to load fee schedules"); err != nil {
		return err
	}
	snap.FeeSchedules = fees

	snap.Occupancy = v.occupancy.Load(ctx, yearID)
	if err = v.afterFetch(scope, nil, ""); err != nil {
		return err
	}
	snap.LoadedAt = time.Now().UTC()

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.registry.IsCurrent(scope.Epoch) || (v.snapshot != nil && v.snapshot.Epoch > scope.Epoch) {
		v.metrics.RecordReferenceReload(ReloadSuperseded)
		return ErrScopeSuperseded
	}
	v.snapshot = snap
	v.metrics.RecordReferenceReload(ReloadCommitted)
	v.logger.Debug("reference data reloaded",
		zap.String("academic_year_id", yearID),
		zap.Uint64("epoch", scope.Epoch),
		zap.Int("classes", len(snap.Classes)),
		zap.Int("fee_schedules", len(snap.FeeSchedules)))
	return nil
}

func (v *ReferenceDataView) afterFetch(scope ActiveYearScope, err error, message string) error {
	if !v.registry.IsCurrent(scope.Epoch) || (scope.Context != nil && scope.Context.Err() != nil) {
		v.metrics.RecordReferenceReload(ReloadSuperseded)
		return ErrScopeSuperseded
	}
	if err != nil {
		v.metrics.RecordReferenceReload(ReloadFailed)
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
	}
	return nil
}

// Snapshot returns the committed snapshot if it belongs to the active year.
func (v *ReferenceDataView) Snapshot() (*ReferenceSnapshot, bool) {
	scope, err := v.registry.Scope()
	if err != nil {
		return nil, false
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.snapshot == nil || v.snapshot.Year.ID != scope.Year.ID {
		return nil, false
	}
	return v.snapshot, true
}

// ClassesForActiveYear returns the classes of the active year.
func (v *ReferenceDataView) ClassesForActiveYear() []models.ClassSection {
	snap, ok := v.Snapshot()
	if !ok {
		return []models.ClassSection{}
	}
	return ClassesForYear(snap.Classes, snap.Year.ID)
}

// LevelsWithFeeCoverage returns levels with a fee schedule in yearID. Only the
// active year is held; other years yield an empty list.
func (v *ReferenceDataView) LevelsWithFeeCoverage(yearID string) []models.Level {
	snap, ok := v.Snapshot()
	if !ok || (yearID != "" && yearID != snap.Year.ID) {
		return []models.Level{}
	}
	return LevelsWithFeeCoverage(snap.Levels, snap.FeeSchedules, snap.Year.ID)
}

// LevelsWithEligibleClasses returns levels with at least one fee-covered class that has a free seat.
func (v *ReferenceDataView) LevelsWithEligibleClasses() []models.Level {
	snap, ok := v.Snapshot()
	if !ok {
		return []models.Level{}
	}
	return LevelsWithEligibleClasses(snap.Levels, snap.Classes, snap.FeeSchedules, snap.Occupancy)
}

// ClassesWithDetails joins every active-year class with its level, year and fees.
func (v *ReferenceDataView) ClassesWithDetails(excludingEnrollmentID string) []models.ClassSectionDetail {
	snap, ok := v.Snapshot()
	if !ok {
		return []models.ClassSectionDetail{}
	}
	return ClassDetails(snap.Classes, snap.Levels, snap.Year, snap.FeeSchedules, snap.Occupancy, excludingEnrollmentID)
}

// AvailableClasses returns the fee-covered classes with details. Full classes
// are included with Selectable=false.
func (v *ReferenceDataView) AvailableClasses(excludingEnrollmentID string) []models.ClassSectionDetail {
	return FeeCovered(v.ClassesWithDetails(excludingEnrollmentID))
}

// PreviousYear returns the year preceding the active one, if any.
func (v *ReferenceDataView) PreviousYear() *models.AcademicYear {
	scope, err := v.registry.Scope()
	if err != nil {
		return nil
	}
	return PreviousYear(v.registry.ListYears(), *scope.Year)
}

// ClassesForYear keeps the classes belonging to yearID.
func ClassesForYear(classes []models.ClassSection, yearID string) []models.ClassSection {
	out := make([]models.ClassSection, 0, len(classes))
	for _, class := range classes {
		if class.AcademicYearID == yearID {
			out = append(out, class)
		}
	}
	return out
}

func feeIndex(fees []models.FeeSchedule, yearID string) map[string]models.FeeSchedule {
	idx := make(map[string]models.FeeSchedule, len(fees))
	for _, fee := range fees {
		if fee.AcademicYearID == yearID {
			idx[fee.LevelID] = fee
		}
	}
	return idx
}

// LevelsWithFeeCoverage keeps levels that have a fee schedule in yearID.
func LevelsWithFeeCoverage(levels []models.Level, fees []models.FeeSchedule, yearID string) []models.Level {
	covered := feeIndex(fees, yearID)
	out := make([]models.Level, 0, len(levels))
	for _, level := range levels {
		if _, ok := covered[level.ID]; ok {
			out = append(out, level)
		}
	}
	return out
}

// LevelsWithEligibleClasses keeps levels owning at least one fee-covered class with a free seat.
func LevelsWithEligibleClasses(levels []models.Level, classes []models.ClassSection, fees []models.FeeSchedule, occ Occupancy) []models.Level {
	covered := feeIndex(fees, occ.YearID)
	withSeats := make(map[string]bool)
	for _, class := range FilterEligible(classes, occ, "") {
		if _, ok := covered[class.LevelID]; ok {
			withSeats[class.LevelID] = true
		}
	}
	out := make([]models.Level, 0, len(withSeats))
	for _, level := range levels {
		if withSeats[level.ID] {
			out = append(out, level)
		}
	}
	return out
}

// ClassDetails joins classes with level, year, fee schedule and seat state.
func ClassDetails(classes []models.ClassSection, levels []models.Level, year models.AcademicYear, fees []models.FeeSchedule, occ Occupancy, excludingEnrollmentID string) []models.ClassSectionDetail {
	levelIdx := make(map[string]models.Level, len(levels))
	for _, level := range levels {
		levelIdx[level.ID] = level
	}
	feeIdx := feeIndex(fees, year.ID)
	held := occ.HeldClass(excludingEnrollmentID)

	out := make([]models.ClassSectionDetail, 0, len(classes))
	for _, class := range classes {
		detail := models.ClassSectionDetail{
			ClassSection:   class,
			ActiveCount:    occ.ActiveCount(class.ID),
			RemainingSeats: occ.RemainingSeats(class),
			Selectable:     occ.Selectable(class, held),
		}
		if class.AcademicYearID == year.ID {
			y := year
			detail.AcademicYear = &y
		}
		if level, ok := levelIdx[class.LevelID]; ok {
			l := level
			detail.Level = &l
		}
		if fee, ok := feeIdx[class.LevelID]; ok {
			f := fee
			detail.FeeSchedule = &f
		}
		out = append(out, detail)
	}
	return out
}

// FeeCovered drops class details without a fee schedule.
func FeeCovered(details []models.ClassSectionDetail) []models.ClassSectionDetail {
	out := make([]models.ClassSectionDetail, 0, len(details))
	for _, d := range details {
		if d.FeeSchedule != nil {
			out = append(out, d)
		}
	}
	return out
}
