package customer

import (
	"context"

	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
)

type CustomerService interface {
	List(ctx context.Context, keyword string) ([]CustomerResponse, error)
	Create(ctx context.Context, actor user.User, req CreateCustomerRequest) (CustomerResponse, error)
	Update(ctx context.Context, actor user.User, id int, req UpdateCustomerRequest) (CustomerResponse, error)
	Delete(ctx context.Context, actor user.User, id int) error
}
