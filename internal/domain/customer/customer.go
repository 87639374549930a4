package customer

// Customer of the restaurant. ID is zero until the record is first saved.
type Customer struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone,omitempty"`
	Notes     *string `json:"notes,omitempty"`

	// NumReservations is only filled in by MostReservations and is never persisted.
	NumReservations int64 `json:"numReservations,omitempty"`
}

func NewCustomer(firstName, lastName string, phone, notes *string) *Customer {
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		Notes:     notes,
	}
}

func (c *Customer) IsNew() bool {
	return c.ID == 0
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
