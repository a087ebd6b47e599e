package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/password"
)

// UserServiceImpl assumes the caller has already been gated to ADMIN by the
// route middleware.
type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{UserRepository: userRepository}
}

// List implements user.UserService. Deactivated accounts are excluded.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserListItem, error) {
	profiles, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	items := make([]user.UserListItem, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, user.UserListItem{
			ID:         p.ID,
			Name:       p.Name,
			Email:      p.Email,
			Department: p.Department,
			Role:       p.Role.Lower(),
			Manager:    p.Manager,
			IsActive:   p.IsActive,
		})
	}

	return items, nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	exists, err := s.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return user.UserResponse{}, user.ErrDuplicateEmail
	}

	role, ok := user.ParseRole(req.Role)
	if !ok {
		return user.UserResponse{}, user.ErrInvalidRole
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		DepartmentID: req.DepartmentID,
		ManagerID:    req.ManagerID,
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return newUserResponse(created), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, id int, req user.UpdateUserRequest) (user.UserResponse, error) {
	existing, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if req.Email != nil && *req.Email != existing.Email {
		exists, err := s.UserRepository.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return user.UserResponse{}, user.ErrDuplicateEmail
		}
		existing.Email = *req.Email
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Role != nil {
		role, ok := user.ParseRole(*req.Role)
		if !ok {
			return user.UserResponse{}, user.ErrInvalidRole
		}
		existing.Role = role
	}
	if req.DepartmentID != nil {
		existing.DepartmentID = req.DepartmentID
	}
	if req.ManagerID != nil {
		existing.ManagerID = req.ManagerID
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := s.UserRepository.Update(ctx, existing); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	return newUserResponse(existing), nil
}

// Delete implements user.UserService. Accounts are deactivated, not removed,
// so their reports and comments stay attributed.
func (s *UserServiceImpl) Delete(ctx context.Context, id int) error {
	if _, err := s.UserRepository.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.UserRepository.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	return nil
}

func newUserResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role.Lower(),
		IsActive: u.IsActive,
	}
}
