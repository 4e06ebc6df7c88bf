package reservation

import (
	"strings"
	"time"
	"unicode/utf8"
)

// TimeSlot is the half-open interval [start, end). It carries no validation;
// Policy.ValidateWindow decides whether a slot is bookable.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{start: start, end: end}
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return IsOverlapping(ts.start, ts.end, other.start, other.end)
}

// Within reports whether ts lies entirely inside [from, to].
func (ts TimeSlot) Within(from, to time.Time) bool {
	return !ts.start.Before(from) && !ts.end.After(to)
}

const MaxPurposeLength = 500

type Purpose struct {
	value string
}

func NewPurpose(value string) (Purpose, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > MaxPurposeLength {
		return Purpose{}, ErrPurposeTooLong
	}
	return Purpose{value: value}, nil
}

// ReconstructPurpose wraps a stored purpose without re-validating it.
func ReconstructPurpose(value string) Purpose {
	return Purpose{value: value}
}

func (p Purpose) String() string {
	return p.value
}

func (p Purpose) IsEmpty() bool {
	return p.value == ""
}

// Ptr returns nil for an empty purpose.
func (p Purpose) Ptr() *string {
	if p.IsEmpty() {
		return nil
	}
	v := p.value
	return &v
}
