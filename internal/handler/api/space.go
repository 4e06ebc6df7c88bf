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

var errAvailabilityWindowRequired = errors.New("startTime and endTime are required")

type SpaceHandler struct {
	cmds         commands.SpaceCommands
	q            queries.SpaceQueries
	reservations queries.ReservationQueries
}

func NewSpaceHandler(cmds commands.SpaceCommands, q queries.SpaceQueries, reservations queries.ReservationQueries) *SpaceHandler {
	return &SpaceHandler{cmds: cmds, q: q, reservations: reservations}
}

// @Summary List spaces
// @Description List active spaces
// @Tags spaces
// @Produce json
// @Success 200 {array} resdto.SpaceResponse
// @Router /api/spaces [get]
func (h *SpaceHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		abortQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSpaceViews(views))
}

// @Summary Get space
// @Tags spaces
// @Produce json
// @Param id path string true "Space ID"
// @Success 200 {object} resdto.SpaceResponse
// @Failure 404 {object} httperr.Response
// @Router /api/spaces/{id} [get]
func (h *SpaceHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		abortQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSpaceView(view))
}

// @Summary Available spaces
// @Description Active spaces with no active reservation overlapping [startTime, endTime)
// @Tags spaces
// @Produce json
// @Param startTime query string true "RFC 3339 start"
// @Param endTime query string true "RFC 3339 end"
// @Success 200 {array} resdto.SpaceResponse
// @Failure 400 {object} httperr.Response
// @Router /api/spaces/available [get]
func (h *SpaceHandler) Available(c *gin.Context) {
	start, ok := parseTimeQuery(c, "startTime")
	if !ok {
		return
	}
	end, ok := parseTimeQuery(c, "endTime")
	if !ok {
		return
	}
	if start == nil || end == nil {
		httperr.AbortMalformed(c, http.StatusBadRequest, errAvailabilityWindowRequired, "Invalid request")
		return
	}

	views, err := h.q.Available(c.Request.Context(), *start, *end)
	if err != nil {
		abortQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSpaceViews(views))
}

// @Summary Space reservations
// @Description Reservations of a space, optionally only those starting on the given local day
// @Tags spaces
// @Produce json
// @Param id path string true "Space ID"
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/spaces/{id}/reservations [get]
func (h *SpaceHandler) Reservations(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var day *queries.Day
	if raw := c.Query("date"); raw != "" {
		d, err := queries.ParseDay(raw)
		if err != nil {
			httperr.AbortMalformed(c, http.StatusBadRequest, err, "Invalid date")
			return
		}
		day = &d
	}

	views, err := h.reservations.ListBySpace(c.Request.Context(), id, day)
	if err != nil {
		abortQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Create space
// @Tags spaces
// @Accept json
// @Produce json
// @Param request body reqdto.SpaceRequest true "Space"
// @Success 201 {object} resdto.SpaceResultResponse
// @Failure 400 {object} resdto.SpaceResultResponse
// @Router /api/spaces [post]
func (h *SpaceHandler) Create(c *gin.Context) {
	var req reqdto.SpaceRequest
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
		c.Header("Location", "/api/spaces/"+result.Space.ID().String())
	}
	c.JSON(statusFor(result.Success, result.Code, http.StatusCreated), resdto.FromSpaceResult(result))
}

// @Summary Replace space
// @Tags spaces
// @Accept json
// @Produce json
// @Param id path string true "Space ID"
// @Param request body reqdto.SpaceRequest true "Space"
// @Success 200 {object} resdto.SpaceResultResponse
// @Failure 400 {object} resdto.SpaceResultResponse
// @Failure 404 {object} resdto.SpaceResultResponse
// @Router /api/spaces/{id} [put]
func (h *SpaceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.SpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortMalformed(c, http.StatusBadRequest, err, "Invalid request")
		return
	}
	result, err := h.cmds.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		abortCommandError(c, err)
		return
	}
	c.JSON(statusFor(result.Success, result.Code, http.StatusOK), resdto.FromSpaceResult(result))
}

// @Summary Deactivate space
// @Description Soft delete. Existing reservations are kept
// @Tags spaces
// @Produce json
// @Param id path string true "Space ID"
// @Success 200 {object} resdto.SpaceResultResponse
// @Failure 404 {object} resdto.SpaceResultResponse
// @Router /api/spaces/{id} [delete]
func (h *SpaceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	result, err := h.cmds.Delete(c.Request.Context(), id)
	if err != nil {
		abortCommandError(c, err)
		return
	}
	c.JSON(statusFor(result.Success, result.Code, http.StatusOK), resdto.FromSpaceResult(result))
}
