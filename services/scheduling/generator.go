package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brokerbook/database"
	"brokerbook/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const DefaultHorizonDays = 14

var tracer = otel.Tracer("brokerbook/services/scheduling")

// AvailabilityStore reads weekly templates. A broker without one yields database.ErrNotFound.
type AvailabilityStore interface {
	GetByBrokerID(ctx context.Context, brokerID string) (*models.WeeklyAvailability, error)
}

// AppointmentStore reads appointments with date in [fromDate, toDate].
type AppointmentStore interface {
	ListByBrokerInRange(ctx context.Context, brokerID, fromDate, toDate string) ([]models.Appointment, error)
}

// SlotGenerator turns a broker's weekly template and booked appointments into bookable slots.
type SlotGenerator interface {
	// ComputeAvailableSlots never fails: store errors are logged and yield an empty result.
	ComputeAvailableSlots(ctx context.Context, brokerID string, horizonDays int) []models.AvailableSlot
	// Slots is ComputeAvailableSlots with store errors surfaced.
	Slots(ctx context.Context, brokerID string, horizonDays int) ([]models.AvailableSlot, error)
	// NextAvailable returns the first bookable slot in the default horizon, or nil.
	NextAvailable(ctx context.Context, brokerID string) (*models.AvailableSlot, error)
	Now() time.Time
}

// DefaultSlotGenerator is the production implementation.
type DefaultSlotGenerator struct {
	Availability AvailabilityStore
	Appointments AppointmentStore
	Clock        Clock
	Logger       *zap.Logger

	DefaultHorizon int // used when the caller passes <= 0; DefaultHorizonDays if unset
	MaxHorizon     int // upper clamp; unlimited if <= 0
}

func NewDefaultSlotGenerator(availability AvailabilityStore, appointments AppointmentStore, clock Clock, logger *zap.Logger) (*DefaultSlotGenerator, error) {
	if availability == nil || appointments == nil || clock == nil {
		return nil, fmt.Errorf("slot generator initialization error: store or clock is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultSlotGenerator{
		Availability:   availability,
		Appointments:   appointments,
		Clock:          clock,
		Logger:         logger,
		DefaultHorizon: DefaultHorizonDays,
	}, nil
}

func (g *DefaultSlotGenerator) Now() time.Time { return g.Clock.Now() }

func (g *DefaultSlotGenerator) ComputeAvailableSlots(ctx context.Context, brokerID string, horizonDays int) []models.AvailableSlot {
	slots, err := g.Slots(ctx, brokerID, horizonDays)
	if err != nil {
		g.logger().Warn("slot computation failed, returning no slots",
			zap.String("brokerID", brokerID),
			zap.Int("horizonDays", horizonDays),
			zap.Error(err),
		)
		return []models.AvailableSlot{}
	}
	return slots
}

func (g *DefaultSlotGenerator) Slots(ctx context.Context, brokerID string, horizonDays int) ([]models.AvailableSlot, error) {
	horizon := g.horizon(horizonDays)

	ctx, span := tracer.Start(ctx, "scheduling.Slots")
	defer span.End()
	span.SetAttributes(attribute.String("broker.id", brokerID), attribute.Int("horizon.days", horizon))

	wa, err := g.Availability.GetByBrokerID(ctx, brokerID)
	if errors.Is(err, database.ErrNotFound) || (err == nil && wa == nil) {
		return []models.AvailableSlot{}, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load availability")
		return nil, fmt.Errorf("load availability: %w", err)
	}

	now := g.Clock.Now()
	today := startOfDay(now)
	horizonEnd := today.AddDate(0, 0, horizon)

	appts, err := g.Appointments.ListByBrokerInRange(ctx, brokerID,
		today.Format(models.DateLayout), horizonEnd.Format(models.DateLayout))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load appointments")
		return nil, fmt.Errorf("load appointments: %w", err)
	}

	slots := g.build(brokerID, wa, appts, now, horizon)
	span.SetAttributes(attribute.Int("slots.count", len(slots)))
	return slots, nil
}

func (g *DefaultSlotGenerator) NextAvailable(ctx context.Context, brokerID string) (*models.AvailableSlot, error) {
	slots, err := g.Slots(ctx, brokerID, 0)
	if err != nil {
		return nil, err
	}
	for i := range slots {
		if !slots[i].IsEmpty {
			s := slots[i]
			return &s, nil
		}
	}
	return nil, nil
}

// build is the pure part of the computation.
func (g *DefaultSlotGenerator) build(brokerID string, wa *models.WeeklyAvailability, appts []models.Appointment, now time.Time, horizon int) []models.AvailableSlot {
	log := g.logger().With(zap.String("brokerID", brokerID))

	// The template repeats weekly, so normalise each weekday once.
	week := make(map[time.Weekday][]interval, 7)
	for _, wd := range models.Weekdays {
		day := wa.Day(wd)
		if !day.Enabled || len(day.TimeSlots) == 0 {
			continue
		}
		ivs, errs := normalize(day.TimeSlots)
		for _, err := range errs {
			log.Warn("skipping invalid availability slot", zap.Stringer("weekday", wd), zap.Error(err))
		}
		week[wd] = ivs
	}

	busy := busyByDate(appts, log)

	today := startOfDay(now)
	out := make([]models.AvailableSlot, 0, horizon)
	for i := 0; i < horizon; i++ {
		day := today.AddDate(0, 0, i)
		date := day.Format(models.DateLayout)
		label := day.Format(models.FormattedDateLayout)

		emitted := 0
		for _, iv := range week[day.Weekday()] {
			for _, slot := range partition(iv) {
				start := time.Date(day.Year(), day.Month(), day.Day(), slot.start/60, slot.start%60, 0, 0, day.Location())
				if !start.After(now) {
					continue
				}
				if overlapsAny(slot, busy[date]) {
					continue
				}
				out = append(out, models.AvailableSlot{
					Date:          date,
					StartTime:     FormatClock(slot.start),
					EndTime:       FormatClock(slot.end),
					FormattedDate: label,
				})
				emitted++
			}
		}

		// Every day in the horizon is represented, even when nothing is bookable.
		if emitted == 0 {
			out = append(out, models.AvailableSlot{Date: date, FormattedDate: label, IsEmpty: true})
		}
	}
	return out
}

// busyByDate indexes the intervals of active appointments by date.
func busyByDate(appts []models.Appointment, log *zap.Logger) map[string][]interval {
	busy := make(map[string][]interval, len(appts))
	for _, a := range appts {
		if !a.Active() {
			continue
		}
		s, e, err := ParseTimeSlot(models.TimeSlot{Start: a.StartTime, End: a.EndTime})
		if err != nil {
			log.Warn("ignoring appointment with invalid times", zap.String("appointmentID", a.ID), zap.Error(err))
			continue
		}
		busy[a.Date] = append(busy[a.Date], interval{start: s, end: e})
	}
	return busy
}

func overlapsAny(slot interval, appts []interval) bool {
	for _, a := range appts {
		if blockedBy(slot, a) {
			return true
		}
	}
	return false
}

func (g *DefaultSlotGenerator) horizon(n int) int {
	if n <= 0 {
		n = g.DefaultHorizon
		if n <= 0 {
			n = DefaultHorizonDays
		}
	}
	if g.MaxHorizon > 0 && n > g.MaxHorizon {
		n = g.MaxHorizon
	}
	return n
}

func (g *DefaultSlotGenerator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}
