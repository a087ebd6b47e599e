package user

import (
	"context"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetProfile(ctx context.Context, id int) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Create(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, u User) error
	Deactivate(ctx context.Context, id int) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
