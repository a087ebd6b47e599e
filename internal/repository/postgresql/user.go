package postgresql

import (
	"context"

	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, name, email, password_hash, role, department_id, manager_id, is_active, created_at, updated_at`

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id int) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	var u user.User
	err := q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.DepartmentID,
		&u.ManagerID,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	var u user.User
	err := q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.DepartmentID,
		&u.ManagerID,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

// GetProfile implements user.UserRepository.
func (r *userRepositoryImpl) GetProfile(ctx context.Context, id int) (user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.name, u.email, u.password_hash, u.role, u.department_id, u.manager_id,
			   u.is_active, u.created_at, u.updated_at,
			   d.id, d.name, m.id, m.name
		FROM users u
		LEFT JOIN departments d ON d.id = u.department_id
		LEFT JOIN users m ON m.id = u.manager_id
		WHERE u.id = $1
	`

	var p user.Profile
	var deptID, managerID *int
	var deptName, managerName *string
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.PasswordHash,
		&p.Role,
		&p.DepartmentID,
		&p.ManagerID,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
		&deptID,
		&deptName,
		&managerID,
		&managerName,
	)
	if err != nil {
		return user.Profile{}, err
	}

	if deptID != nil && deptName != nil {
		p.Department = &user.Ref{ID: *deptID, Name: *deptName}
	}
	if managerID != nil && managerName != nil {
		p.Manager = &user.Ref{ID: *managerID, Name: *managerName}
	}

	return p, nil
}

// List implements user.UserRepository. Deactivated accounts are excluded.
func (r *userRepositoryImpl) List(ctx context.Context) ([]user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.name, u.email, u.password_hash, u.role, u.department_id, u.manager_id,
			   u.is_active, u.created_at, u.updated_at,
			   d.id, d.name, m.id, m.name
		FROM users u
		LEFT JOIN departments d ON d.id = u.department_id
		LEFT JOIN users m ON m.id = u.manager_id
		WHERE u.is_active = TRUE
		ORDER BY u.name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []user.Profile
	for rows.Next() {
		var p user.Profile
		var deptID, managerID *int
		var deptName, managerName *string
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Email,
			&p.PasswordHash,
			&p.Role,
			&p.DepartmentID,
			&p.ManagerID,
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
			&deptID,
			&deptName,
			&managerID,
			&managerName,
		); err != nil {
			return nil, err
		}
		if deptID != nil && deptName != nil {
			p.Department = &user.Ref{ID: *deptID, Name: *deptName}
		}
		if managerID != nil && managerName != nil {
			p.Manager = &user.Ref{ID: *managerID, Name: *managerName}
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (name, email, password_hash, role, department_id, manager_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW(), NOW())
		RETURNING ` + userColumns

	var created user.User
	err := q.QueryRow(ctx, query,
		newUser.Name,
		newUser.Email,
		newUser.PasswordHash,
		string(newUser.Role),
		newUser.DepartmentID,
		newUser.ManagerID,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Email,
		&created.PasswordHash,
		&created.Role,
		&created.DepartmentID,
		&created.ManagerID,
		&created.IsActive,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	return created, nil
}

// Update implements user.UserRepository. The full row is written; the service
// merges partial updates into the loaded entity first.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, role = $4,
			department_id = $5, manager_id = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
	`

	tag, err := q.Exec(ctx, query,
		u.Name,
		u.Email,
		u.PasswordHash,
		string(u.Role),
		u.DepartmentID,
		u.ManagerID,
		u.IsActive,
		u.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// Deactivate implements user.UserRepository (soft delete).
func (r *userRepositoryImpl) Deactivate(ctx context.Context, id int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}
