package event

import "time"

type CustomerEventPayload struct {
	CustomerID int64   `json:"customerId"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Phone      *string `json:"phone,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

type CustomerCreatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerUpdatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type ReservationEventPayload struct {
	ReservationID int64     `json:"reservationId"`
	CustomerID    int64     `json:"customerId"`
	StartAt       time.Time `json:"startAt"`
	NumGuests     int       `json:"numGuests"`
	Notes         string    `json:"notes,omitempty"`
}

type ReservationCreatedEvent struct {
	Timestamp time.Time               `json:"timestamp"`
	Payload   ReservationEventPayload `json:"payload"`
}
