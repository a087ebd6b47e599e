package user

import "context"

type UserService interface {
	List(ctx context.Context) ([]UserListItem, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, id int, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id int) error
}
