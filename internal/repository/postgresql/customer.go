package postgresql

import (
	"context"

	"github.com/nippo-dev/nippo-backend-go/internal/domain/customer"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/database"
)

type customerRepositoryImpl struct {
	db *database.DB
}

func NewCustomerRepository(db *database.DB) customer.CustomerRepository {
	return &customerRepositoryImpl{db: db}
}

const customerColumns = `id, name, address, phone, contact_person, email, notes, is_active, created_at, updated_at`

func scanCustomer(ctx context.Context, q database.Querier, query string, args ...interface{}) (customer.Customer, error) {
	var c customer.Customer
	err := q.QueryRow(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.Address,
		&c.Phone,
		&c.ContactPerson,
		&c.Email,
		&c.Notes,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// List implements customer.CustomerRepository. Soft-deleted customers never
// appear, regardless of who asks.
func (r *customerRepositoryImpl) List(ctx context.Context, keyword string) ([]customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + customerColumns + ` FROM customers WHERE is_active = TRUE`
	var args []interface{}
	if keyword != "" {
		query += ` AND (name ILIKE $1 OR contact_person ILIKE $1)`
		args = append(args, "%"+keyword+"%")
	}
	query += ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []customer.Customer
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Address,
			&c.Phone,
			&c.ContactPerson,
			&c.Email,
			&c.Notes,
			&c.IsActive,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

// GetByID implements customer.CustomerRepository.
func (r *customerRepositoryImpl) GetByID(ctx context.Context, id int) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)
	return scanCustomer(ctx, q, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

// Create implements customer.CustomerRepository.
func (r *customerRepositoryImpl) Create(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO customers (name, address, phone, contact_person, email, notes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW(), NOW())
		RETURNING ` + customerColumns

	return scanCustomer(ctx, q, query, c.Name, c.Address, c.Phone, c.ContactPerson, c.Email, c.Notes)
}

// Update implements customer.CustomerRepository.
func (r *customerRepositoryImpl) Update(ctx context.Context, c customer.Customer) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE customers
		SET name = $1, address = $2, phone = $3, contact_person = $4, email = $5, notes = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query, c.Name, c.Address, c.Phone, c.ContactPerson, c.Email, c.Notes, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}

	return nil
}

// Deactivate implements customer.CustomerRepository (soft delete).
func (r *customerRepositoryImpl) Deactivate(ctx context.Context, id int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE customers SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}

	return nil
}
