package reservation

import (
	"errors"
	"fmt"
	"time"
)

// Window rejection reasons. ValidateWindow wraps exactly one of them.
var (
	ErrNotInFuture      = errors.New("start time must be in the future")
	ErrEndBeforeStart   = errors.New("end time must be after start time")
	ErrTooShort         = errors.New("reservation is too short")
	ErrTooLong          = errors.New("reservation is too long")
	ErrOutsideOpenHours = errors.New("reservation is outside opening hours")
	ErrInvalidPolicy    = errors.New("invalid scheduling policy")
)

const (
	DefaultOpenHour    = 7
	DefaultCloseHour   = 22
	DefaultMinDuration = 15 * time.Minute
	DefaultMaxDuration = 8 * time.Hour
)

// WindowError carries the user-facing reason for a rejected window.
type WindowError struct {
	reason error
	msg    string
}

func (e *WindowError) Error() string { return e.msg }
func (e *WindowError) Unwrap() error { return e.reason }

func newWindowError(reason error, format string, args ...any) error {
	return &WindowError{reason: reason, msg: fmt.Sprintf(format, args...)}
}

// Policy holds the opening hours and duration bounds. Hours are evaluated
// on the wall clock of Location.
type Policy struct {
	Location    *time.Location
	OpenHour    int
	CloseHour   int
	MinDuration time.Duration
	MaxDuration time.Duration
	// SameDayClose additionally requires the end to fall before CloseHour on
	// the start's local day. Off by default, so 21:00 to 01:00 is bookable.
	SameDayClose bool
}

func DefaultPolicy(loc *time.Location) Policy {
	if loc == nil {
		loc = time.Local
	}
	return Policy{
		Location:    loc,
		OpenHour:    DefaultOpenHour,
		CloseHour:   DefaultCloseHour,
		MinDuration: DefaultMinDuration,
		MaxDuration: DefaultMaxDuration,
	}
}

func NewPolicy(loc *time.Location, openHour, closeHour int, minDuration, maxDuration time.Duration) (Policy, error) {
	p := DefaultPolicy(loc)
	p.OpenHour = openHour
	p.CloseHour = closeHour
	p.MinDuration = minDuration
	p.MaxDuration = maxDuration
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

func (p Policy) Validate() error {
	if p.OpenHour < 0 || p.CloseHour > 24 || p.OpenHour >= p.CloseHour {
		return fmt.Errorf("%w: opening hours %d-%d", ErrInvalidPolicy, p.OpenHour, p.CloseHour)
	}
	if p.MinDuration <= 0 || p.MinDuration > p.MaxDuration {
		return fmt.Errorf("%w: duration bounds %s-%s", ErrInvalidPolicy, p.MinDuration, p.MaxDuration)
	}
	return nil
}

// ValidateWindow applies the booking rules in order and reports the first
// one that fails. A nil result means the window is bookable.
func (p Policy) ValidateWindow(slot TimeSlot, now time.Time) error {
	start, end := slot.Start(), slot.End()

	if !start.After(now) {
		return newWindowError(ErrNotInFuture, "start time must be in the future")
	}
	if !end.After(start) {
		return newWindowError(ErrEndBeforeStart, "end time must be after start time")
	}

	d := slot.Duration()
	if d < p.MinDuration {
		return newWindowError(ErrTooShort, "reservation must last at least %s", humanDuration(p.MinDuration))
	}
	if d > p.MaxDuration {
		return newWindowError(ErrTooLong, "reservation cannot exceed %s", humanDuration(p.MaxDuration))
	}

	localStart := start.In(p.location())
	if h := localStart.Hour(); h < p.OpenHour || h >= p.CloseHour {
		return newWindowError(ErrOutsideOpenHours,
			"reservations must start between %02d:00 and %02d:00", p.OpenHour, p.CloseHour)
	}

	localEnd := end.In(p.location())
	if h := localEnd.Hour(); h > p.CloseHour || (h == p.CloseHour && !onTheHour(localEnd)) {
		return newWindowError(ErrOutsideOpenHours, "reservations must end by %02d:00", p.CloseHour)
	}

	if p.SameDayClose {
		y, m, day := localStart.Date()
		closing := time.Date(y, m, day, p.CloseHour, 0, 0, 0, p.location())
		if end.After(closing) {
			return newWindowError(ErrOutsideOpenHours, "reservations must end by %02d:00", p.CloseHour)
		}
	}

	return nil
}

// IsWindowRejection reports whether err came from ValidateWindow.
func IsWindowRejection(err error) bool {
	var we *WindowError
	return errors.As(err, &we)
}

func onTheHour(t time.Time) bool {
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

// DayBounds returns the local calendar day containing t as [start, next day start).
func (p Policy) DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.In(p.location()).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, p.location())
	return start, start.AddDate(0, 0, 1)
}

func humanDuration(d time.Duration) string {
	switch {
	case d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	default:
		return d.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
