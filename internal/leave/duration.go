package leave

import "time"

// BusinessDays counts the Monday-Friday dates inside [start, end], both
// endpoints included. Callers guarantee start <= end. A range lying entirely
// on a weekend yields 0, which is a valid chargeable-day count: weekend-only
// requests are recorded, not rejected.
//
// The rule is uniform for every leave type, protected leave included.
func BusinessDays(start, end time.Time) int {
	start = truncateToDate(start)
	end = truncateToDate(end)

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
