package customer

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("customer not found")

type CustomerRepository interface {
	Save(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	// FindByEmail returns the first customer matching the email.
	FindByEmail(ctx context.Context, email string) (*Customer, error)
}
