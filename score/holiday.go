package score

import (
	"time"
)

// isHoliday recognizes the four dates the busyness model boosts:
// New Year's Day, Independence Day, Christmas, and Thanksgiving (the
// fourth Thursday of November). Extending this calendar is a behavior
// change, not a fix; the set is intentionally closed.
func isHoliday(at time.Time) bool {
	month := at.Month()
	day := at.Day()

	switch {
	case month == time.January && day == 1:
		return true
	case month == time.July && day == 4:
		return true
	case month == time.December && day == 25:
		return true
	case month == time.November && day >= 22 && day <= 28 && at.Weekday() == time.Thursday:
		return true
	}

	return false
}
