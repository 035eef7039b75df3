package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"brokerbook/database"
	availabilityRepo "brokerbook/database/repository/availability"
	"brokerbook/models"
	"brokerbook/services/scheduling"

	"go.uber.org/zap"
)

// ErrForbidden is returned when a user edits someone else's template.
var ErrForbidden = errors.New("brokers can only edit their own availability")

// ValidationError lists every problem found in a submitted template.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid availability: " + strings.Join(e.Problems, "; ")
}

type AvailabilityService interface {
	// Get returns the stored template, or an all-disabled one for brokers who never saved.
	Get(ctx context.Context, brokerID string) (*models.WeeklyAvailability, error)
	Save(ctx context.Context, actingUserID, brokerID string, wa models.WeeklyAvailability) (*models.WeeklyAvailability, error)
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Repo   availabilityRepo.AvailabilityRepository
	Clock  scheduling.Clock
	Logger *zap.Logger
}

func NewDefaultAvailabilityService(repo availabilityRepo.AvailabilityRepository, clock scheduling.Clock, logger *zap.Logger) (*DefaultAvailabilityService, error) {
	if repo == nil || clock == nil {
		return nil, fmt.Errorf("availability service initialization error: repo or clock is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAvailabilityService{Repo: repo, Clock: clock, Logger: logger}, nil
}

func (s *DefaultAvailabilityService) Get(ctx context.Context, brokerID string) (*models.WeeklyAvailability, error) {
	wa, err := s.Repo.GetByBrokerID(ctx, brokerID)
	if errors.Is(err, database.ErrNotFound) {
		return Empty(brokerID), nil
	}
	if err != nil {
		return nil, err
	}
	fillNil(wa)
	return wa, nil
}

func (s *DefaultAvailabilityService) Save(ctx context.Context, actingUserID, brokerID string, wa models.WeeklyAvailability) (*models.WeeklyAvailability, error) {
	if actingUserID == "" || actingUserID != brokerID {
		return nil, ErrForbidden
	}
	if err := Validate(&wa); err != nil {
		return nil, err
	}

	wa.BrokerID = brokerID
	wa.UpdatedAt = s.Clock.Now().UTC()
	for _, wd := range models.Weekdays {
		day := wa.Day(wd)
		sort.SliceStable(day.TimeSlots, func(i, j int) bool { return day.TimeSlots[i].Start < day.TimeSlots[j].Start })
		wa.SetDay(wd, day)
	}
	fillNil(&wa)

	if err := s.Repo.Upsert(ctx, &wa); err != nil {
		return nil, err
	}
	s.Logger.Info("availability saved", zap.String("brokerID", brokerID))
	return &wa, nil
}

// Validate checks every slot of every day, enabled or not, so a day can be
// switched on later without carrying bad data.
func Validate(wa *models.WeeklyAvailability) error {
	var problems []string
	for _, wd := range models.Weekdays {
		name := strings.ToLower(wd.String())
		for i, ts := range wa.Day(wd).TimeSlots {
			start, end, err := scheduling.ParseTimeSlot(ts)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s, slot %d: %v", name, i+1, err))
				continue
			}
			if time.Duration(end-start)*time.Minute < models.SlotLength {
				problems = append(problems, fmt.Sprintf("%s, slot %d: %s-%s is shorter than one %d-minute slot",
					name, i+1, ts.Start, ts.End, int(models.SlotLength/time.Minute)))
			}
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Empty is the template of a broker who has not configured anything.
func Empty(brokerID string) *models.WeeklyAvailability {
	wa := &models.WeeklyAvailability{BrokerID: brokerID}
	fillNil(wa)
	return wa
}

func fillNil(wa *models.WeeklyAvailability) {
	for _, wd := range models.Weekdays {
		day := wa.Day(wd)
		if day.TimeSlots == nil {
			day.TimeSlots = []models.TimeSlot{}
			wa.SetDay(wd, day)
		}
	}
}
