package customer

import "context"

type CustomerRepository interface {
	// List returns active customers, optionally filtered by a keyword
	// matching the customer or contact person name.
	List(ctx context.Context, keyword string) ([]Customer, error)
	GetByID(ctx context.Context, id int) (Customer, error)
	Create(ctx context.Context, c Customer) (Customer, error)
	Update(ctx context.Context, c Customer) error
	Deactivate(ctx context.Context, id int) error
}
