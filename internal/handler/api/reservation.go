package api

import (
	"errors"
	"net/http"

	reqdto "coworking-reservations/internal/handler/dto/request"
	resdto "coworking-reservations/internal/handler/dto/response"
	"coworking-reservations/internal/handler/httperr"
	"coworking-reservations/internal/usecase/commands"
	"coworking-reservations/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errDateRangeIncomplete = errors.New("startDate and endDate must be given together")

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Validate the time window and book the space when no active reservation overlaps
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResultResponse
// @Failure 400 {object} resdto.ReservationResultResponse
// @Failure 404 {object} resdto.ReservationResultResponse
// @Failure 409 {object} resdto.ReservationResultResponse
// @Failure 422 {object} resdto.ReservationResultResponse
// @Router /api/reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortMalformed(c, http.StatusBadRequest, err, "Invalid request")
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		abortCommandError(c, err)
		return
	}
	if result.Success {
		c.Header("Location", "/api/reservations/"+result.Reservation.ID().String())
	}
	c.JSON(statusFor(result.Success, result.Code, http.StatusCreated), resdto.FromReservationResult(result))
}

// @Summary Update reservation
// @Description Partially update a reservation. Changing a time re-runs window and conflict checks
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Fields to change"
// @Success 200 {object} resdto.ReservationResultResponse
// @Failure 400 {object} resdto.ReservationResultResponse
// @Failure 404 {object} resdto.ReservationResultResponse
// @Failure 409 {object} resdto.ReservationResultResponse
// @Failure 422 {object} resdto.ReservationResultResponse
// @Router /api/reservations/{id} [patch]
func (h *ReservationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortMalformed(c, http.StatusBadRequest, err, "Invalid request")
		return
	}
	in, err := req.ToInput(id)
	if err != nil {
		httperr.AbortMalformed(c, http.StatusBadRequest, err, "Invalid status")
		return
	}

	result, err := h.cmds.Update(c.Request.Context(), in)
	if err != nil {
		abortCommandError(c, err)
		return
	}
	c.JSON(statusFor(result.Success, result.Code, http.StatusOK), resdto.FromReservationResult(result))
}

// @Summary Cancel reservation
// @Description Mark a reservation as cancelled. Cancelling twice succeeds
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResultResponse
// @Failure 404 {object} resdto.ReservationResultResponse
// @Router /api/reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.cmds.Cancel(c.Request.Context(), id)
	if err != nil {
		abortCommandError(c, err)
		return
	}
	c.JSON(statusFor(result.Success, result.Code, http.StatusOK), resdto.FromReservationResult(result))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		abortQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description List every reservation, or only those lying entirely within [startDate, endDate]
// @Tags reservations
// @Produce json
// @Param startDate query string false "RFC 3339 lower bound"
// @Param endDate query string false "RFC 3339 upper bound"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Router /api/reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	from, ok := parseTimeQuery(c, "startDate")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "endDate")
	if !ok {
		return
	}

	var (
		views []*queries.ReservationView
		err   error
	)
	switch {
	case from == nil && to == nil:
		views, err = h.q.List(c.Request.Context())
	case from != nil && to != nil:
		views, err = h.q.ListByDateRange(c.Request.Context(), *from, *to)
	default:
		httperr.AbortMalformed(c, http.StatusBadRequest, errDateRangeIncomplete, "Invalid date range")
		return
	}
	if err != nil {
		abortQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}
