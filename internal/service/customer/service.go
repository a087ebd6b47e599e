package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/authz"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/customer"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
)

type CustomerServiceImpl struct {
	customer.CustomerRepository
}

func NewCustomerService(customerRepository customer.CustomerRepository) customer.CustomerService {
	return &CustomerServiceImpl{CustomerRepository: customerRepository}
}

// List implements customer.CustomerService. Every authenticated user may list
// customers; soft-deleted records are excluded by the repository.
func (s *CustomerServiceImpl) List(ctx context.Context, keyword string) ([]customer.CustomerResponse, error) {
	customers, err := s.CustomerRepository.List(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	responses := make([]customer.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		responses = append(responses, customer.NewCustomerResponse(c))
	}

	return responses, nil
}

// Create implements customer.CustomerService. Requires MANAGER or ADMIN.
func (s *CustomerServiceImpl) Create(ctx context.Context, actor user.User, req customer.CreateCustomerRequest) (customer.CustomerResponse, error) {
	if err := authz.CanEditCustomer(actor).Err(); err != nil {
		return customer.CustomerResponse{}, err
	}

	created, err := s.CustomerRepository.Create(ctx, customer.Customer{
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Notes:         req.Notes,
	})
	if err != nil {
		return customer.CustomerResponse{}, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer.NewCustomerResponse(created), nil
}

// Update implements customer.CustomerService. Requires MANAGER or ADMIN.
func (s *CustomerServiceImpl) Update(ctx context.Context, actor user.User, id int, req customer.UpdateCustomerRequest) (customer.CustomerResponse, error) {
	if err := authz.CanEditCustomer(actor).Err(); err != nil {
		return customer.CustomerResponse{}, err
	}

	existing, err := s.CustomerRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customer.CustomerResponse{}, customer.ErrCustomerNotFound
		}
		return customer.CustomerResponse{}, fmt.Errorf("failed to get customer: %w", err)
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Address != nil {
		existing.Address = req.Address
	}
	if req.Phone != nil {
		existing.Phone = req.Phone
	}
	if req.ContactPerson != nil {
		existing.ContactPerson = req.ContactPerson
	}
	if req.Email != nil {
		existing.Email = req.Email
	}
	if req.Notes != nil {
		existing.Notes = req.Notes
	}

	if err := s.CustomerRepository.Update(ctx, existing); err != nil {
		return customer.CustomerResponse{}, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer.NewCustomerResponse(existing), nil
}

// Delete implements customer.CustomerService. ADMIN only; the record is
// soft-deleted so existing visit records keep their reference.
func (s *CustomerServiceImpl) Delete(ctx context.Context, actor user.User, id int) error {
	if err := authz.CanDeleteCustomer(actor).Err(); err != nil {
		return err
	}

	if _, err := s.CustomerRepository.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customer.ErrCustomerNotFound
		}
		return fmt.Errorf("failed to get customer: %w", err)
	}

	if err := s.CustomerRepository.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate customer: %w", err)
	}

	return nil
}
