package service

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

type academicYearSource interface {
	List(ctx context.Context) ([]models.AcademicYear, error)
}

// ActiveYearScope identifies one selection of the active year. Context is
// cancelled as soon as another year becomes active.
type ActiveYearScope struct {
	Year    *models.AcademicYear
	Epoch   uint64
	Context context.Context
}

// ActiveYearListener is notified synchronously after the active year changes.
// A nil scope.Year means no year is active anymore.
type ActiveYearListener func(scope ActiveYearScope)

type listenerEntry struct {
	id int
	fn ActiveYearListener
}

// AcademicYearRegistry holds the known academic years and the session-active one.
type AcademicYearRegistry struct {
	source academicYearSource
	logger *zap.Logger

	// notifyMu serialises switch+notify rounds so listeners observe years in order.
	notifyMu sync.Mutex

	mu        sync.RWMutex
	years     []models.AcademicYear
	active    *models.AcademicYear
	epoch     uint64
	scopeCtx  context.Context
	cancel    context.CancelFunc
	listeners []listenerEntry
	nextID    int
}

// NewAcademicYearRegistry constructs an empty registry; call Refresh to load years.
func NewAcademicYearRegistry(source academicYearSource, logger *zap.Logger) *AcademicYearRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &AcademicYearRegistry{source: source, logger: logger, scopeCtx: ctx, cancel: cancel}
}

// ListYears returns a copy of the known years ordered by start date.
func (r *AcademicYearRegistry) ListYears() []models.AcademicYear {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.AcademicYear, len(r.years))
	copy(out, r.years)
	return out
}

// Active returns the session-active year, if any.
func (r *AcademicYearRegistry) Active() (*models.AcademicYear, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.active == nil {
		return nil, false
	}
	year := *r.active
	return &year, true
}

// Find returns a known year by id.
func (r *AcademicYearRegistry) Find(id string) (*models.AcademicYear, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.years {
		if r.years[i].ID == id {
			year := r.years[i]
			return &year, true
		}
	}
	return nil, false
}

// Epoch returns the number of active-year switches observed so far.
func (r *AcademicYearRegistry) Epoch() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.epoch
}

// IsCurrent reports whether results fetched under epoch may still be used.
func (r *AcademicYearRegistry) IsCurrent(epoch uint64) bool {
	return r.Epoch() == epoch
}

// Scope returns the current active-year scope or ErrNoActiveYear.
func (r *AcademicYearRegistry) Scope() (ActiveYearScope, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.active == nil {
		return ActiveYearScope{}, appErrors.Clone(appErrors.ErrNoActiveYear, "")
	}
	year := *r.active
	return ActiveYearScope{Year: &year, Epoch: r.epoch, Context: r.scopeCtx}, nil
}

// Subscribe registers a listener and returns a function that removes it.
func (r *AcademicYearRegistry) Subscribe(fn ActiveYearListener) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	r.listeners = append(r.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, l := range r.listeners {
			if l.id == id {
				r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

// SetActive selects the session-active year and notifies subscribers before returning.
func (r *AcademicYearRegistry) SetActive(ctx context.Context, yearID string) (*models.AcademicYear, error) {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.mu.Lock()
	var target *models.AcademicYear
	for i := range r.years {
		if r.years[i].ID == yearID {
			year := r.years[i]
			target = &year
			break
		}
	}
	if target == nil {
		r.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrNotFound, "academic year not found")
	}
	scope, listeners := r.switchLocked(target)
	r.mu.Unlock()

	r.logger.Info("active academic year changed", zap.String("academic_year_id", yearID), zap.Uint64("epoch", scope.Epoch))
	r.notify(scope, listeners)
	year := *target
	return &year, nil
}

// Refresh reloads years from the source and re-selects the active year: same
// id if still present, otherwise the CURRENT year, otherwise the first one.
func (r *AcademicYearRegistry) Refresh(ctx context.Context) ([]models.AcademicYear, error) {
	years, err := r.source.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic years")
	}
	sort.SliceStable(years, func(i, j int) bool { return years[i].StartDate.Before(years[j].StartDate) })

	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.mu.Lock()
	r.years = years
	previousID := ""
	if r.active != nil {
		previousID = r.active.ID
	}
	next := selectActiveYear(years, previousID)

	nextID := ""
	if next != nil {
		nextID = next.ID
	}
	if nextID == previousID {
		r.active = next
		r.mu.Unlock()
		return r.ListYears(), nil
	}
	scope, listeners := r.switchLocked(next)
	r.mu.Unlock()

	r.logger.Info("active academic year re-selected after refresh",
		zap.String("previous_academic_year_id", previousID),
		zap.String("academic_year_id", nextID),
		zap.Uint64("epoch", scope.Epoch))
	r.notify(scope, listeners)
	return r.ListYears(), nil
}

// Close cancels the active scope.
func (r *AcademicYearRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancel()
}

func (r *AcademicYearRegistry) switchLocked(next *models.AcademicYear) (ActiveYearScope, []ActiveYearListener) {
	r.cancel()
	r.scopeCtx, r.cancel = context.WithCancel(context.Background())
	r.active = next
	r.epoch++

	listeners := make([]ActiveYearListener, len(r.listeners))
	for i, l := range r.listeners {
		listeners[i] = l.fn
	}
	scope := ActiveYearScope{Epoch: r.epoch, Context: r.scopeCtx}
	if next != nil {
		year := *next
		scope.Year = &year
	}
	return scope, listeners
}

func (r *AcademicYearRegistry) notify(scope ActiveYearScope, listeners []ActiveYearListener) {
	for _, fn := range listeners {
		fn(scope)
	}
}

func selectActiveYear(years []models.AcademicYear, previousID string) *models.AcademicYear {
	if len(years) == 0 {
		return nil
	}
	if previousID != "" {
		for i := range years {
			if years[i].ID == previousID {
				year := years[i]
				return &year
			}
		}
	}
	for i := range years {
		if years[i].Status == models.AcademicYearCurrent {
			year := years[i]
			return &year
		}
	}
	year := years[0]
	return &year
}

// PreviousYear returns the year with the largest start date strictly before active's.
func PreviousYear(years []models.AcademicYear, active models.AcademicYear) *models.AcademicYear {
	var prev *models.AcademicYear
	for i := range years {
		y := years[i]
		if !y.StartDate.Before(active.StartDate) {
			continue
		}
		if prev == nil || y.StartDate.After(prev.StartDate) {
			candidate := y
			prev = &candidate
		}
	}
	return prev
}
