package api

import (
	"net/http"

	reqdto "coworking-reservations/internal/handler/dto/request"
	resdto "coworking-reservations/internal/handler/dto/response"
	"coworking-reservations/internal/handler/httperr"
	"coworking-reservations/internal/usecase/commands"
	"coworking-reservations/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	cmds         commands.UserCommands
	q            queries.UserQueries
	reservations queries.ReservationQueries
}

func NewUserHandler(cmds commands.UserCommands, q queries.UserQueries, reservations queries.ReservationQueries) *UserHandler {
	return &UserHandler{cmds: cmds, q: q, reservations: reservations}
}

// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} resdto.UserResponse
// @Router /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		abortQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUserViews(views))
}

// @Summary Get user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} resdto.UserResponse
// @Failure 404 {object} httperr.Response
// @Router /api/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		abortQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUserView(view))
}

// @Summary User reservations
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /api/users/{id}/reservations [get]
func (h *UserHandler) Reservations(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	views, err := h.reservations.ListByUser(c.Request.Context(), id)
	if err != nil {
		abortQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body reqdto.CreateUserRequest true "User"
// @Success 201 {object} resdto.UserResultResponse
// @Failure 400 {object} resdto.UserResultResponse
// @Failure 409 {object} resdto.UserResultResponse
// @Router /api/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req reqdto.CreateUserRequest
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
		c.Header("Location", "/api/users/"+result.User.ID().String())
	}
	c.JSON(statusFor(result.Success, result.Code, http.StatusCreated), resdto.FromUserResult(result))
}
