package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	"github.com/noah-isme/sma-enrollment-api/internal/repository"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

type fakeYearRepo struct {
	mu      sync.Mutex
	years   []models.AcademicYear
	err     error
	lists   int
	updates []string
}

func (f *fakeYearRepo) List(ctx context.Context) ([]models.AcademicYear, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.AcademicYear, len(f.years))
	copy(out, f.years)
	return out, nil
}

func (f *fakeYearRepo) FindByID(ctx context.Context, id string) (*models.AcademicYear, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, y := range f.years {
		if y.ID == id {
			year := y
			return &year, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeYearRepo) Create(ctx context.Context, year *models.AcademicYear) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if year.ID == "" {
		year.ID = fmt.Sprintf("year-new-%d", len(f.years))
	}
	f.years = append(f.years, *year)
	return nil
}

func (f *fakeYearRepo) UpdateStatus(ctx context.Context, id string, status models.AcademicYearStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	found := false
	for i := range f.years {
		if status == models.AcademicYearCurrent && f.years[i].Status == models.AcademicYearCurrent && f.years[i].ID != id {
			f.years[i].Status = models.AcademicYearFinished
		}
		if f.years[i].ID == id {
			f.years[i].Status = status
			found = true
		}
	}
	if !found {
		return sql.ErrNoRows
	}
	f.updates = append(f.updates, id+":"+string(status))
	return nil
}

type fakeClassRepo struct {
	mu        sync.Mutex
	classes   map[string]models.ClassSection
	gates     map[string]chan struct{}
	ignoreCtx bool
	entered   chan string
}

func newFakeClassRepo(classes ...models.ClassSection) *fakeClassRepo {
	f := &fakeClassRepo{classes: make(map[string]models.ClassSection), gates: make(map[string]chan struct{}), entered: make(chan string, 8)}
	for _, c := range classes {
		f.classes[c.ID] = c
	}
	return f
}

func (f *fakeClassRepo) put(class models.ClassSection) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.classes[class.ID] = class
}

func (f *fakeClassRepo) gate(yearID string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[yearID] = ch
	return ch
}

func (f *fakeClassRepo) ListByYear(ctx context.Context, yearID string) ([]models.ClassSection, error) {
	f.mu.Lock()
	gate := f.gates[yearID]
	delete(f.gates, yearID)
	f.mu.Unlock()

	if gate != nil {
		f.entered <- yearID
		if f.ignoreCtx {
			<-gate
		} else {
			select {
			case <-gate:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ClassSection
	for _, c := range f.classes {
		if c.AcademicYearID == yearID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeClassRepo) FindByID(ctx context.Context, id string) (*models.ClassSection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (f *fakeClassRepo) Create(ctx context.Context, class *models.ClassSection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if class.ID == "" {
		class.ID = fmt.Sprintf("class-new-%d", len(f.classes))
	}
	f.classes[class.ID] = *class
	return nil
}

type fakeLevelRepo struct {
	levels []models.Level
	lists  int
}

func (f *fakeLevelRepo) List(ctx context.Context) ([]models.Level, error) {
	f.lists++
	out := make([]models.Level, len(f.levels))
	copy(out, f.levels)
	return out, nil
}

func (f *fakeLevelRepo) FindByID(ctx context.Context, id string) (*models.Level, error) {
	for _, l := range f.levels {
		if l.ID == id {
			level := l
			return &level, nil
		}
	}
	return nil, sql.ErrNoRows
}

type fakeFeeRepo struct {
	mu        sync.Mutex
	schedules map[string]models.FeeSchedule
	finds     int
	seq       int
}

func newFakeFeeRepo(schedules ...models.FeeSchedule) *fakeFeeRepo {
	f := &fakeFeeRepo{schedules: make(map[string]models.FeeSchedule)}
	for _, s := range schedules {
		f.schedules[s.LevelID+"|"+s.AcademicYearID] = s
	}
	return f
}

func (f *fakeFeeRepo) FindByLevelAndYear(ctx context.Context, levelID, yearID string) (*models.FeeSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	s, ok := f.schedules[levelID+"|"+yearID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (f *fakeFeeRepo) ListByYear(ctx context.Context, yearID string) ([]models.FeeSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.FeeSchedule
	for _, s := range f.schedules {
		if s.AcademicYearID == yearID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LevelID < out[j].LevelID })
	return out, nil
}

func (f *fakeFeeRepo) Create(ctx context.Context, schedule *models.FeeSchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := schedule.LevelID + "|" + schedule.AcademicYearID
	if _, ok := f.schedules[key]; ok {
		return repository.ErrDuplicateFeeSchedule
	}
	f.seq++
	schedule.ID = fmt.Sprintf("fee-new-%d", f.seq)
	f.schedules[key] = *schedule
	return nil
}

func (f *fakeFeeRepo) CopyForward(ctx context.Context, fromYearID, toYearID string) (int, int, error) {
	source, _ := f.ListByYear(ctx, fromYearID)
	f.mu.Lock()
	defer f.mu.Unlock()
	copied, skipped := 0, 0
	for _, s := range source {
		key := s.LevelID + "|" + toYearID
		if _, ok := f.schedules[key]; ok {
			skipped++
			continue
		}
		f.seq++
		clone := s
		clone.ID = fmt.Sprintf("fee-copy-%d", f.seq)
		clone.AcademicYearID = toYearID
		f.schedules[key] = clone
		copied++
	}
	return copied, skipped, nil
}

func (f *fakeFeeRepo) count(yearID string) int {
	list, _ := f.ListByYear(context.Background(), yearID)
	return len(list)
}

// fakeEnrollmentStore backs enrollments and payments and enforces capacity at commit.
type fakeEnrollmentStore struct {
	mu          sync.Mutex
	classes     *fakeClassRepo
	enrollments map[string]models.Enrollment
	payments    map[string][]models.PaymentRecord
	seq         int
	seatErr     error
	forceFull   bool
	statusCalls int
}

func newFakeEnrollmentStore(classes *fakeClassRepo) *fakeEnrollmentStore {
	return &fakeEnrollmentStore{classes: classes, enrollments: make(map[string]models.Enrollment), payments: make(map[string][]models.PaymentRecord)}
}

func (f *fakeEnrollmentStore) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Enrollment
	for _, e := range f.enrollments {
		if filter.AcademicYearID != "" && e.AcademicYearID != filter.AcademicYearID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (f *fakeEnrollmentStore) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.enrollments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &e, nil
}

func (f *fakeEnrollmentStore) ExistsActiveForStudent(ctx context.Context, studentID, yearID, excludeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.enrollments {
		if e.StudentID == studentID && e.AcademicYearID == yearID && e.Status.HoldsSeat() && e.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentStore) activeLocked(classID, excludeID string) int {
	n := 0
	for _, e := range f.enrollments {
		if e.ClassSectionID == classID && e.Status.HoldsSeat() && e.ID != excludeID {
			n++
		}
	}
	return n
}

func (f *fakeEnrollmentStore) reserveLocked(classID, excludeID string) error {
	class, err := f.classes.FindByID(context.Background(), classID)
	if err != nil {
		return err
	}
	if f.forceFull || f.activeLocked(classID, excludeID) >= class.Capacity {
		return repository.ErrCapacityExceeded
	}
	return nil
}

func (f *fakeEnrollmentStore) Create(ctx context.Context, enrollment *models.Enrollment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.reserveLocked(enrollment.ClassSectionID, ""); err != nil {
		return err
	}
	f.seq++
	enrollment.ID = fmt.Sprintf("enr-%d", f.seq)
	if enrollment.EnrollmentDate.IsZero() {
		enrollment.EnrollmentDate = day(2025, time.July, 15)
	}
	f.enrollments[enrollment.ID] = *enrollment
	return nil
}

func (f *fakeEnrollmentStore) Update(ctx context.Context, enrollment *models.Enrollment, moveClass bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if moveClass {
		if err := f.reserveLocked(enrollment.ClassSectionID, enrollment.ID); err != nil {
			return err
		}
	}
	f.enrollments[enrollment.ID] = *enrollment
	return nil
}

func (f *fakeEnrollmentStore) UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus, reason *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	e, ok := f.enrollments[id]
	if !ok {
		return sql.ErrNoRows
	}
	e.Status = status
	e.CancelReason = reason
	f.enrollments[id] = e
	return nil
}

func (f *fakeEnrollmentStore) ListSeatCounts(ctx context.Context, yearID string) ([]models.SeatCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seatErr != nil {
		return nil, f.seatErr
	}
	counts := make(map[string]int)
	for _, e := range f.enrollments {
		if e.AcademicYearID == yearID && e.Status.HoldsSeat() {
			counts[e.ClassSectionID]++
		}
	}
	out := make([]models.SeatCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, models.SeatCount{ClassSectionID: id, Active: n})
	}
	return out, nil
}

func (f *fakeEnrollmentStore) ListSeatHolders(ctx context.Context, yearID string) ([]models.SeatHolder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seatErr != nil {
		return nil, f.seatErr
	}
	var out []models.SeatHolder
	for _, e := range f.enrollments {
		if e.AcademicYearID == yearID && e.Status.HoldsSeat() {
			out = append(out, models.SeatHolder{EnrollmentID: e.ID, ClassSectionID: e.ClassSectionID})
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) CountActiveByClass(ctx context.Context, classID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seatErr != nil {
		return 0, f.seatErr
	}
	return f.activeLocked(classID, ""), nil
}

func (f *fakeEnrollmentStore) ListByEnrollment(ctx context.Context, enrollmentID string) ([]models.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.PaymentRecord, len(f.payments[enrollmentID]))
	copy(out, f.payments[enrollmentID])
	return out, nil
}

func (f *fakeEnrollmentStore) recordPayment(payment *models.PaymentRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.enrollments[payment.EnrollmentID]
	if !ok {
		return sql.ErrNoRows
	}
	payment.ID = fmt.Sprintf("pay-%d", len(f.payments[payment.EnrollmentID])+1)
	f.payments[payment.EnrollmentID] = append(f.payments[payment.EnrollmentID], *payment)
	e.AmountPaid = e.AmountPaid.Add(payment.Amount)
	f.enrollments[payment.EnrollmentID] = e
	return nil
}

// fakePaymentRepo adapts the store to the payment repository contract.
type fakePaymentRepo struct {
	store *fakeEnrollmentStore
}

func (f fakePaymentRepo) ListByEnrollment(ctx context.Context, enrollmentID string) ([]models.PaymentRecord, error) {
	return f.store.ListByEnrollment(ctx, enrollmentID)
}

func (f fakePaymentRepo) Create(ctx context.Context, payment *models.PaymentRecord) error {
	return f.store.recordPayment(payment)
}

type fakeCacheRepo struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{data: make(map[string][]byte)}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = raw
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(f.data, key)
		}
	}
	return nil
}

func (f *fakeCacheRepo) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

type testEngine struct {
	years        *fakeYearRepo
	classes      *fakeClassRepo
	levels       *fakeLevelRepo
	fees         *fakeFeeRepo
	store        *fakeEnrollmentStore
	cache        *fakeCacheRepo
	metrics      *MetricsService
	registry     *AcademicYearRegistry
	levelCatalog *LevelCatalog
	feeService   *FeeScheduleService
	occupancy    *ClassOccupancyIndex
	view         *ReferenceDataView
	enrollments  *EnrollmentService
	payments     *PaymentService
	classService *ClassSectionService
}

// newEngine wires every service over in-memory fakes. Year "year-1" is
// CURRENT and active; level-1 has a fee schedule in year-1 (registration
// 50000, tuition 250000) and class-1 (level-1, year-1) has capacity 1.
func newEngine(t *testing.T) *testEngine {
	t.Helper()
	e := &testEngine{
		years: &fakeYearRepo{years: []models.AcademicYear{
			{ID: "year-2", Label: "2026/2027", StartDate: day(2026, time.July, 1), EndDate: day(2027, time.June, 30), Status: models.AcademicYearPlanned},
			{ID: "year-1", Label: "2025/2026", StartDate: day(2025, time.July, 1), EndDate: day(2026, time.June, 30), Status: models.AcademicYearCurrent},
			{ID: "year-0", Label: "2024/2025", StartDate: day(2024, time.July, 1), EndDate: day(2025, time.June, 30), Status: models.AcademicYearFinished},
		}},
		classes: newFakeClassRepo(models.ClassSection{ID: "class-1", Name: "1A", LevelID: "level-1", AcademicYearID: "year-1", Capacity: 1}),
		levels: &fakeLevelRepo{levels: []models.Level{
			{ID: "level-1", Name: "Grade 1", Cycle: "primary", Order: 1},
			{ID: "level-2", Name: "Grade 2", Cycle: "primary", Order: 2},
		}},
		fees: newFakeFeeRepo(models.FeeSchedule{
			ID: "fee-1", LevelID: "level-1", AcademicYearID: "year-1",
			TuitionAmount: decimal.NewFromInt(250000), RegistrationFee: decimal.NewFromInt(50000), FileFee: decimal.NewFromInt(10000),
		}),
		cache:   newFakeCacheRepo(),
		metrics: NewMetricsService(),
	}
	e.store = newFakeEnrollmentStore(e.classes)

	cache := NewCacheService(e.cache, e.metrics, "test", time.Minute, nil, true)
	e.registry = NewAcademicYearRegistry(e.years, nil)
	e.levelCatalog = NewLevelCatalog(e.levels, cache, time.Hour, nil)
	e.feeService = NewFeeScheduleService(e.fees, e.classes, e.years, e.levelCatalog, cache, time.Minute, nil, nil)
	e.occupancy = NewClassOccupancyIndex(e.store, e.classes, nil)
	e.view = NewReferenceDataView(e.registry, e.classes, e.levelCatalog, e.feeService, e.occupancy, e.metrics, nil)
	e.enrollments = NewEnrollmentService(e.store, e.registry, e.classes, e.levelCatalog, e.feeService, e.occupancy, e.store, e.metrics, EnrollmentServiceConfig{}, nil, nil)
	e.payments = NewPaymentService(fakePaymentRepo{store: e.store}, e.store, nil, nil)
	e.classService = NewClassSectionService(e.classes, e.years, e.levelCatalog, e.feeService, nil, nil)

	e.registry.Subscribe(e.view.OnActiveYearChanged)
	_, err := e.registry.Refresh(context.Background())
	require.NoError(t, err)
	t.Cleanup(e.registry.Close)
	return e
}
