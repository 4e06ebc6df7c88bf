//go:build unit || e2e

package builder

import "time"

// Now is the fixed clock reading used across unit tests. It is a Monday
// morning in UTC, well before opening hours of the same day.
var Now = time.Date(2030, time.June, 3, 6, 0, 0, 0, time.UTC)

// At returns hh:mm on the day of Now, offset by days.
func At(days, hour, minute int) time.Time {
	return time.Date(Now.Year(), Now.Month(), Now.Day()+days, hour, minute, 0, 0, time.UTC)
}
