package errs

import "errors"

// Sentinel errors shared by the usecase and handler layers
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrSpaceNotFound       = errors.New("space not found")
	ErrReservationNotFound = errors.New("reservation not found")

	ErrMalformedInput          = errors.New("malformed input")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
