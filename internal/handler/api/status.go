package api

import (
	"log/slog"
	"net/http"
	"time"

	"coworking-reservations/internal/handler/httperr"
	"coworking-reservations/internal/handler/middleware"
	"coworking-reservations/internal/pkg/errs"
	"coworking-reservations/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// statusFor maps a command outcome onto an HTTP status. successStatus is
// used when the command went through.
func statusFor(success bool, code commands.Code, successStatus int) int {
	if success {
		return successStatus
	}
	switch {
	case code.IsWindowRejection():
		return http.StatusUnprocessableEntity
	case code == commands.CodeSchedulingConflict, code == commands.CodeDuplicateEmail:
		return http.StatusConflict
	case code == commands.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// abortQueryError translates query failures. Unknown errors are faults.
func abortQueryError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrReservationNotFound):
		httperr.AbortWithCode(c, http.StatusNotFound, err, string(commands.CodeNotFound), "Reservation not found", nil)
	case errs.Is(err, errs.ErrSpaceNotFound):
		httperr.AbortWithCode(c, http.StatusNotFound, err, string(commands.CodeNotFound), "Space not found", nil)
	case errs.Is(err, errs.ErrUserNotFound):
		httperr.AbortWithCode(c, http.StatusNotFound, err, string(commands.CodeNotFound), "User not found", nil)
	case errs.Is(err, errs.ErrMalformedInput):
		httperr.AbortMalformed(c, http.StatusBadRequest, err, "Invalid request")
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func abortCommandError(c *gin.Context, err error) {
	slog.Error("command failed",
		slog.String("path", c.FullPath()),
		slog.String("request_id", middleware.GetRequestID(c)),
		slog.Any("stack", errs.ExtractStackLines(err, 12)),
	)
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortMalformed(c, http.StatusBadRequest, err, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// parseTimeQuery reads an RFC 3339 query parameter. A missing parameter
// yields ok=true with a nil time.
func parseTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		httperr.AbortMalformed(c, http.StatusBadRequest, err, "Invalid "+name+": expected RFC 3339 timestamp")
		return nil, false
	}
	return &t, true
}
