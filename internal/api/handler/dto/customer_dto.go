package dto

import (
	"strings"

	"lunchly/internal/domain/customer"
	"lunchly/internal/pkg/apperrors"
)

type CustomerRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (r *CustomerRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return apperrors.NewValidationError("firstName", "first name cannot be empty")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return apperrors.NewValidationError("lastName", "last name cannot be empty")
	}
	return nil
}

type CustomerResponse struct {
	CustomerID      int64   `json:"customerId"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	FullName        string  `json:"fullName"`
	Phone           *string `json:"phone,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	NumReservations int64   `json:"numReservations,omitempty"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	return CustomerResponse{
		CustomerID:      cust.ID,
		FirstName:       cust.FirstName,
		LastName:        cust.LastName,
		FullName:        cust.FullName(),
		Phone:           cust.Phone,
		Notes:           cust.Notes,
		NumReservations: cust.NumReservations,
	}
}

func NewCustomerListResponse(customers []*customer.Customer) []CustomerResponse {
	resp := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, NewCustomerResponse(c))
	}
	return resp
}
