package commands

import (
	"errors"
	"fmt"

	"coworking-reservations/internal/domain/reservation"
	"coworking-reservations/internal/domain/space"
	"coworking-reservations/internal/domain/user"
)

// Code identifies why a command was rejected. The set is closed.
type Code string

const (
	CodeNotInFuture         Code = "NOT_IN_FUTURE"
	CodeEndBeforeStart      Code = "END_BEFORE_START"
	CodeTooShort            Code = "TOO_SHORT"
	CodeTooLong             Code = "TOO_LONG"
	CodeOutsideOpeningHours Code = "OUTSIDE_OPENING_HOURS"
	CodeSchedulingConflict  Code = "SCHEDULING_CONFLICT"
	CodeNotFound            Code = "NOT_FOUND"
	CodeDuplicateEmail      Code = "DUPLICATE_EMAIL"
	CodeMalformedInput      Code = "MALFORMED_INPUT"
)

// IsWindowRejection reports whether the code stems from the time-window rules.
func (c Code) IsWindowRejection() bool {
	switch c {
	case CodeNotInFuture, CodeEndBeforeStart, CodeTooShort, CodeTooLong, CodeOutsideOpeningHours:
		return true
	default:
		return false
	}
}

const (
	msgReservationCreated   = "Reservation created successfully"
	msgReservationUpdated   = "Reservation updated successfully"
	msgReservationCancelled = "Reservation cancelled successfully"
	msgReservationNotFound  = "Reservation not found"
	msgUserNotFound         = "User not found"
	msgSpaceNotFound        = "Space not found"
	msgSpaceInactive        = "Space is not available for booking"
	msgSpaceCreated         = "Space created successfully"
	msgSpaceUpdated         = "Space updated successfully"
	msgSpaceDeleted         = "Space deleted successfully"
	msgUserCreated          = "User created successfully"
	msgDuplicateEmail       = "A user with this email already exists"
)

// ReservationResult is the outcome of a reservation command. Business
// rejections are results with Success=false; Go errors are reserved for
// internal faults.
type ReservationResult struct {
	Success     bool
	Message     string
	Code        Code
	Reservation *reservation.Reservation
	Conflicts   []*reservation.Reservation
}

func reservationOK(msg string, r *reservation.Reservation) *ReservationResult {
	return &ReservationResult{Success: true, Message: msg, Reservation: r}
}

func reservationRejected(code Code, msg string) *ReservationResult {
	return &ReservationResult{Message: msg, Code: code}
}

func conflictRejected(conflicts []*reservation.Reservation) *ReservationResult {
	return &ReservationResult{
		Message:   conflictMessage(len(conflicts)),
		Code:      CodeSchedulingConflict,
		Conflicts: conflicts,
	}
}

func conflictMessage(n int) string {
	return fmt.Sprintf("Conflict detected with %d existing reservation(s)", n)
}

// windowRejected maps a ValidateWindow error to its result.
func windowRejected(err error) *ReservationResult {
	return reservationRejected(windowCode(err), err.Error())
}

func windowCode(err error) Code {
	switch {
	case errors.Is(err, reservation.ErrNotInFuture):
		return CodeNotInFuture
	case errors.Is(err, reservation.ErrEndBeforeStart):
		return CodeEndBeforeStart
	case errors.Is(err, reservation.ErrTooShort):
		return CodeTooShort
	case errors.Is(err, reservation.ErrTooLong):
		return CodeTooLong
	case errors.Is(err, reservation.ErrOutsideOpenHours):
		return CodeOutsideOpeningHours
	default:
		return CodeMalformedInput
	}
}

type SpaceResult struct {
	Success bool
	Message string
	Code    Code
	Space   *space.Space
}

func spaceRejected(code Code, msg string) *SpaceResult {
	return &SpaceResult{Message: msg, Code: code}
}

type UserResult struct {
	Success bool
	Message string
	Code    Code
	User    *user.User
}

func userRejected(code Code, msg string) *UserResult {
	return &UserResult{Message: msg, Code: code}
}
