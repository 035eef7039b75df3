package models

import "time"

// SlotLength is the fixed duration of one bookable slot.
const SlotLength = 30 * time.Minute

// Layouts shared by every document that carries a calendar date or clock time.
const (
	DateLayout          = "2006-01-02"
	ClockLayout         = "15:04"
	FormattedDateLayout = "Monday, January 2"
)

// TimeSlot is a recurring interval on a weekday, e.g. {"09:00", "12:00"}.
type TimeSlot struct {
	Start string `bson:"start" json:"start" firestore:"start"` // "HH:mm"
	End   string `bson:"end" json:"end" firestore:"end"`       // "HH:mm", exclusive
}

// AvailableSlot is a computed bookable slot. It is never persisted.
type AvailableSlot struct {
	Date          string `json:"date"`      // "YYYY-MM-DD"
	StartTime     string `json:"startTime"` // empty when IsEmpty
	EndTime       string `json:"endTime"`   // empty when IsEmpty
	FormattedDate string `json:"formattedDate"`
	IsEmpty       bool   `json:"isEmpty,omitempty"` // day is in range but has nothing bookable
}

// DaySlots groups the slots of one calendar day.
type DaySlots struct {
	Date          string          `json:"date"`
	FormattedDate string          `json:"formattedDate"`
	Slots         []AvailableSlot `json:"slots"`
}

// GroupByDate folds a slot sequence into per-day buckets, keeping order.
// Empty-day markers produce a bucket with no slots.
func GroupByDate(slots []AvailableSlot) []DaySlots {
	var days []DaySlots
	for _, s := range slots {
		if len(days) == 0 || days[len(days)-1].Date != s.Date {
			days = append(days, DaySlots{Date: s.Date, FormattedDate: s.FormattedDate, Slots: []AvailableSlot{}})
		}
		if !s.IsEmpty {
			last := &days[len(days)-1]
			last.Slots = append(last.Slots, s)
		}
	}
	return days
}
