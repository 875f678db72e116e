// AngelaMos | 2026
// dto.go

package address

import (
	"time"
)

type SaveRequest struct {
	ID      string `json:"id"`
	Street  string `json:"street"  validate:"required,max=255"`
	City    string `json:"city"    validate:"required,max=100"`
	State   string `json:"state"   validate:"required,max=100"`
	Pin     string `json:"pin"     validate:"required,max=20"`
	Mobile  string `json:"mobile"  validate:"omitempty,max=30"`
	Country string `json:"country" validate:"required,max=100"`
}

type DeleteRequest struct {
	AddressID string `json:"addressId" validate:"required"`
}

type AddressResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Pin       string    `json:"pin"`
	Mobile    string    `json:"mobile"`
	Country   string    `json:"country"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SaveResponse struct {
	Message string          `json:"message"`
	Address AddressResponse `json:"address"`
}

func ToAddressResponse(a *Address) AddressResponse {
	return AddressResponse{
		ID:        a.ID,
		Type:      a.Type,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		Pin:       a.Pin,
		Mobile:    a.Mobile,
		Country:   a.Country,
		UpdatedAt: a.UpdatedAt,
	}
}
