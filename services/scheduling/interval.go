package scheduling

import (
	"fmt"
	"sort"
	"time"

	"brokerbook/models"
)

const slotMinutes = int(models.SlotLength / time.Minute)

// interval is a half-open [start, end) range in minutes from midnight.
type interval struct {
	start, end int
}

// ParseClock converts a strict "HH:mm" string to minutes from midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: want HH:mm", s)
	}
	h, okH := twoDigits(s[0], s[1])
	m, okM := twoDigits(s[3], s[4])
	if !okH || !okM || h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: want HH:mm", s)
	}
	return h*60 + m, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// FormatClock renders minutes from midnight as "HH:mm".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseTimeSlot parses both ends of a slot and requires start < end.
func ParseTimeSlot(ts models.TimeSlot) (start, end int, err error) {
	if start, err = ParseClock(ts.Start); err != nil {
		return 0, 0, err
	}
	if end, err = ParseClock(ts.End); err != nil {
		return 0, 0, err
	}
	if start >= end {
		return 0, 0, fmt.Errorf("time slot %s-%s: start must be before end", ts.Start, ts.End)
	}
	return start, end, nil
}

// normalize parses a day's slots, drops the invalid ones (reported through
// the returned errors), sorts by start and merges overlapping or touching
// intervals.
func normalize(slots []models.TimeSlot) ([]interval, []error) {
	var (
		out  []interval
		errs []error
	)
	for _, ts := range slots {
		s, e, err := ParseTimeSlot(ts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, interval{start: s, end: e})
	}
	if len(out) < 2 {
		return out, errs
	}

	sort.Slice(out, func(i, j int) bool { return out[i].start < out[j].start })
	merged := out[:1]
	for _, iv := range out[1:] {
		last := &merged[len(merged)-1]
		if iv.start <= last.end {
			if iv.end > last.end {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged, errs
}

// partition cuts an interval into consecutive full slots; a shorter tail is dropped.
func partition(iv interval) []interval {
	var out []interval
	for s := iv.start; s+slotMinutes <= iv.end; s += slotMinutes {
		out = append(out, interval{start: s, end: s + slotMinutes})
	}
	return out
}

// blockedBy reports whether slot collides with an appointment interval:
// the slot starts inside it, ends inside it, or covers it entirely.
// Both containment checks are half-open on the appointment.
func blockedBy(slot, appt interval) bool {
	if slot.start >= appt.start && slot.start < appt.end {
		return true
	}
	if slot.end >= appt.start && slot.end < appt.end {
		return true
	}
	return slot.start <= appt.start && slot.end >= appt.end
}
