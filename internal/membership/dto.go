// AngelaMos | 2026
// dto.go

package membership

import (
	"time"
)

type SetMembershipRequest struct {
	MembershipType string `json:"membershipType" validate:"required"`
}

type StatusResponse struct {
	Membership          string     `json:"membership"`
	EffectiveMembership string     `json:"effectiveMembership"`
	Active              bool       `json:"active"`
	StartDate           *time.Time `json:"startDate"`
	EndDate             *time.Time `json:"endDate"`
}
