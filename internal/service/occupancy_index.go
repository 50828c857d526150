package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

type seatRepository interface {
	ListSeatCounts(ctx context.Context, yearID string) ([]models.SeatCount, error)
	ListSeatHolders(ctx context.Context, yearID string) ([]models.SeatHolder, error)
	CountActiveByClass(ctx context.Context, classID string) (int, error)
}

type classSectionLister interface {
	ListByYear(ctx context.Context, yearID string) ([]models.ClassSection, error)
	FindByID(ctx context.Context, id string) (*models.ClassSection, error)
}

// Occupancy is a point-in-time view of seat-holding enrollments for one year.
// A failed snapshot reports every class as full.
type Occupancy struct {
	YearID  string
	Failed  bool
	counts  map[string]int
	holders map[string]string
}

// NewOccupancy builds a snapshot from seat counts and holders.
func NewOccupancy(yearID string, counts []models.SeatCount, holders []models.SeatHolder) Occupancy {
	occ := Occupancy{YearID: yearID, counts: make(map[string]int, len(counts)), holders: make(map[string]string, len(holders))}
	for _, c := range counts {
		occ.counts[c.ClassSectionID] = c.Active
	}
	for _, h := range holders {
		occ.holders[h.EnrollmentID] = h.ClassSectionID
	}
	return occ
}

// FailedOccupancy is the fail-closed snapshot used when occupancy cannot be loaded.
func FailedOccupancy(yearID string) Occupancy {
	return Occupancy{YearID: yearID, Failed: true}
}

// ActiveCount returns the number of seat-holding enrollments in a class.
func (o Occupancy) ActiveCount(classID string) int {
	return o.counts[classID]
}

// HeldClass returns the class held by a seat-holding enrollment, if known.
func (o Occupancy) HeldClass(enrollmentID string) string {
	if enrollmentID == "" {
		return ""
	}
	return o.holders[enrollmentID]
}

// IsFull reports whether the class has no seat left.
func (o Occupancy) IsFull(class models.ClassSection) bool {
	if o.Failed {
		return true
	}
	return o.counts[class.ID] >= class.Capacity
}

// RemainingSeats is capacity minus active count; zero when the snapshot failed.
func (o Occupancy) RemainingSeats(class models.ClassSection) int {
	if o.Failed {
		return 0
	}
	return class.Capacity - o.counts[class.ID]
}

// Selectable reports whether class can be chosen by an enrollment currently holding heldClassID.
func (o Occupancy) Selectable(class models.ClassSection, heldClassID string) bool {
	if heldClassID != "" && class.ID == heldClassID {
		return true
	}
	return !o.IsFull(class)
}

// ClassOccupancyIndex answers seat questions for an academic year.
type ClassOccupancyIndex struct {
	seats   seatRepository
	classes classSectionLister
	logger  *zap.Logger
}

// NewClassOccupancyIndex constructs an occupancy index.
func NewClassOccupancyIndex(seats seatRepository, classes classSectionLister, logger *zap.Logger) *ClassOccupancyIndex {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassOccupancyIndex{seats: seats, classes: classes, logger: logger}
}

// Load fetches the occupancy snapshot for a year, failing closed on error.
func (i *ClassOccupancyIndex) Load(ctx context.Context, yearID string) Occupancy {
	counts, err := i.seats.ListSeatCounts(ctx, yearID)
	if err != nil {
		i.logger.Warn("occupancy unavailable, treating every class as full", zap.String("academic_year_id", yearID), zap.Error(err))
		return FailedOccupancy(yearID)
	}
	holders, err := i.seats.ListSeatHolders(ctx, yearID)
	if err != nil {
		i.logger.Warn("seat holders unavailable, treating every class as full", zap.String("academic_year_id", yearID), zap.Error(err))
		return FailedOccupancy(yearID)
	}
	return NewOccupancy(yearID, counts, holders)
}

// OccupiedClassIDs returns the ids of classes with no seat left, sorted.
// These are the classes EligibleClasses leaves out for a new enrollment.
func (i *ClassOccupancyIndex) OccupiedClassIDs(ctx context.Context, yearID string) ([]string, error) {
	classes, err := i.listClasses(ctx, yearID)
	if err != nil {
		return nil, err
	}
	occ := i.Load(ctx, yearID)
	ids := make([]string, 0)
	for _, class := range classes {
		if occ.IsFull(class) {
			ids = append(ids, class.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// EnrolledClassIDs returns the ids of classes referenced by any seat-holding
// enrollment, sorted. A failed snapshot reports every class.
func (i *ClassOccupancyIndex) EnrolledClassIDs(ctx context.Context, yearID string) ([]string, error) {
	occ := i.Load(ctx, yearID)
	ids := make([]string, 0)
	if occ.Failed {
		classes, err := i.listClasses(ctx, yearID)
		if err != nil {
			return nil, err
		}
		for _, class := range classes {
			ids = append(ids, class.ID)
		}
	} else {
		for id, count := range occ.counts {
			if count > 0 {
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// EligibleClasses returns the classes of a year with a free seat, plus the
// class held by excludingEnrollmentID when given.
func (i *ClassOccupancyIndex) EligibleClasses(ctx context.Context, yearID, excludingEnrollmentID string) ([]models.ClassSection, error) {
	classes, err := i.listClasses(ctx, yearID)
	if err != nil {
		return nil, err
	}
	return FilterEligible(classes, i.Load(ctx, yearID), excludingEnrollmentID), nil
}

// RemainingSeats returns capacity minus the current active count of a class.
func (i *ClassOccupancyIndex) RemainingSeats(ctx context.Context, classSectionID string) (int, error) {
	class, err := i.classes.FindByID(ctx, classSectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "class section not found")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class section")
	}
	active, err := i.seats.CountActiveByClass(ctx, classSectionID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count class occupancy")
	}
	return class.Capacity - active, nil
}

func (i *ClassOccupancyIndex) listClasses(ctx context.Context, yearID string) ([]models.ClassSection, error) {
	classes, err := i.classes.ListByYear(ctx, yearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class sections")
	}
	return classes, nil
}

// FilterEligible keeps the selectable classes for the given enrollment.
func FilterEligible(classes []models.ClassSection, occ Occupancy, excludingEnrollmentID string) []models.ClassSection {
	held := occ.HeldClass(excludingEnrollmentID)
	out := make([]models.ClassSection, 0, len(classes))
	for _, class := range classes {
		if occ.Selectable(class, held) {
			out = append(out, class)
		}
	}
	return out
}
