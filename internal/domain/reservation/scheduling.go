package reservation

import (
	"time"

	"coworking-reservations/internal/domain/space"

	"github.com/google/uuid"
)

// IsOverlapping reports whether [aStart, aEnd) and [bStart, bEnd) share any
// instant. Intervals that only touch at an endpoint do not overlap.
func IsOverlapping(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FindConflicts returns every non-cancelled reservation on spaceID whose
// slot overlaps the candidate. excludeID (uuid.Nil for none) is skipped so
// a reservation is never reported as conflicting with itself.
func FindConflicts(spaceID uuid.UUID, slot TimeSlot, existing []*Reservation, excludeID uuid.UUID) []*Reservation {
	var conflicts []*Reservation
	for _, r := range existing {
		if r.spaceID != spaceID || r.IsCancelled() {
			continue
		}
		if excludeID != uuid.Nil && r.id == excludeID {
			continue
		}
		if slot.Overlaps(r.timeSlot) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts
}

// AvailableSpaces filters spaces down to the active ones with no conflict
// in the candidate slot. Input order is preserved.
func AvailableSpaces(slot TimeSlot, spaces []*space.Space, existing []*Reservation) []*space.Space {
	available := make([]*space.Space, 0, len(spaces))
	for _, s := range spaces {
		if !s.IsActive() {
			continue
		}
		if len(FindConflicts(s.ID(), slot, existing, uuid.Nil)) == 0 {
			available = append(available, s)
		}
	}
	return available
}
