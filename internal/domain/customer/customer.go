package customer

import "time"

// Customer is a guest who owns bookings. Email is the lookup key used when
// resolving a guest on booking creation, but uniqueness is not enforced:
// duplicate emails are tolerated and lookups return the first match.
type Customer struct {
	CustomerID int64     `json:"customerId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CreateDate time.Time `json:"createDate"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewCustomer(name, email string) *Customer {
	now := time.Now()
	return &Customer{
		Name:       name,
		Email:      email,
		CreateDate: now,
		UpdatedAt:  now,
	}
}
