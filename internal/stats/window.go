package stats

import "time"

// WeekWindow returns the Monday through Sunday span of the most
// recently completed week relative to ref. The week containing ref is
// never part of the window: a Monday reference still steps back a full
// seven days. Both bounds are midnight dates in ref's location.
func WeekWindow(ref time.Time) (start, end time.Time) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())

	// time.Weekday has Sunday = 0; shift so Monday = 0
	sinceMonday := (int(day.Weekday()) + 6) % 7

	start = day.AddDate(0, 0, -sinceMonday-7)
	end = start.AddDate(0, 0, 6)
	return start, end
}
