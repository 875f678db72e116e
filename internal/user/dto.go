// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type UserResponse struct {
	ID                  string     `json:"id"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	Role                string     `json:"role"`
	Membership          string     `json:"membership"`
	MembershipStartDate *time.Time `json:"membershipStartDate"`
	MembershipEndDate   *time.Time `json:"membershipEndDate"`
	TotalAmount         int64      `json:"totalAmount"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

type ListUsersParams struct {
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	Search     string `json:"search"`
	Role       string `json:"role"`
	Membership string `json:"membership"`
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		Role:                u.Role,
		Membership:          u.Membership.String(),
		MembershipStartDate: u.MembershipStartDate,
		MembershipEndDate:   u.MembershipEndDate,
		TotalAmount:         u.TotalAmount,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
