package response

import (
	"time"

	"coworking-reservations/internal/usecase/commands"
	"coworking-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserResultResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Code    string        `json:"code,omitempty"`
	User    *UserResponse `json:"user,omitempty"`
}

func FromUserView(v *queries.UserView) *UserResponse {
	return &UserResponse{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Role:      v.Role,
		CreatedAt: v.CreatedAt,
	}
}

func FromUserViews(views []*queries.UserView) []*UserResponse {
	res := make([]*UserResponse, len(views))
	for i, v := range views {
		res[i] = FromUserView(v)
	}
	return res
}

func FromUserResult(r *commands.UserResult) *UserResultResponse {
	res := &UserResultResponse{Success: r.Success, Message: r.Message, Code: string(r.Code)}
	if r.User != nil {
		res.User = FromUserView(queries.NewUserView(r.User))
	}
	return res
}
