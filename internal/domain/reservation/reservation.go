package reservation

import "time"

// Reservation is a booking made by a customer for a party of NumGuests.
type Reservation struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customerId"`
	StartAt    time.Time `json:"startAt"`
	NumGuests  int       `json:"numGuests"`
	Notes      string    `json:"notes"`
}

func NewReservation(customerID int64, startAt time.Time, numGuests int, notes string) *Reservation {
	return &Reservation{
		CustomerID: customerID,
		StartAt:    startAt,
		NumGuests:  numGuests,
		Notes:      notes,
	}
}
