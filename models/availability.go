package models

import "time"

// WeeklyAvailability is a broker's recurring week. One document per broker.
type WeeklyAvailability struct {
	BrokerID  string          `bson:"brokerId" json:"brokerId" firestore:"brokerId"`
	Sunday    DayAvailability `bson:"sunday" json:"sunday" firestore:"sunday"`
	Monday    DayAvailability `bson:"monday" json:"monday" firestore:"monday"`
	Tuesday   DayAvailability `bson:"tuesday" json:"tuesday" firestore:"tuesday"`
	Wednesday DayAvailability `bson:"wednesday" json:"wednesday" firestore:"wednesday"`
	Thursday  DayAvailability `bson:"thursday" json:"thursday" firestore:"thursday"`
	Friday    DayAvailability `bson:"friday" json:"friday" firestore:"friday"`
	Saturday  DayAvailability `bson:"saturday" json:"saturday" firestore:"saturday"`
	UpdatedAt time.Time       `bson:"updatedAt" json:"updatedAt" firestore:"updatedAt"`
}

// DayAvailability holds the intervals a broker accepts bookings on one weekday.
type DayAvailability struct {
	Enabled   bool       `bson:"enabled" json:"enabled" firestore:"enabled"`
	TimeSlots []TimeSlot `bson:"timeSlots" json:"timeSlots" firestore:"timeSlots"`
}

// Day returns the availability for a weekday (Sunday-indexed, as time.Weekday).
func (w *WeeklyAvailability) Day(d time.Weekday) DayAvailability {
	switch d {
	case time.Sunday:
		return w.Sunday
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	}
	return DayAvailability{}
}

// SetDay replaces the availability for a weekday.
func (w *WeeklyAvailability) SetDay(d time.Weekday, day DayAvailability) {
	switch d {
	case time.Sunday:
		w.Sunday = day
	case time.Monday:
		w.Monday = day
	case time.Tuesday:
		w.Tuesday = day
	case time.Wednesday:
		w.Wednesday = day
	case time.Thursday:
		w.Thursday = day
	case time.Friday:
		w.Friday = day
	case time.Saturday:
		w.Saturday = day
	}
}

// Weekdays lists the keys of a WeeklyAvailability in Sunday-first order.
var Weekdays = []time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
	time.Thursday, time.Friday, time.Saturday,
}
