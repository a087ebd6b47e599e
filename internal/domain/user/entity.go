package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleSales   Role = "SALES"   // Regular sales rep - own reports only
	RoleManager Role = "MANAGER" // Sees department SALES reports, edits customers
	RoleAdmin   Role = "ADMIN"   // Full access including user accounts
)

// ParseRole maps an API-facing lowercase role string to a Role.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(s) {
	case "sales":
		return RoleSales, true
	case "manager":
		return RoleManager, true
	case "admin":
		return RoleAdmin, true
	}
	return "", false
}

func (r Role) Valid() bool {
	return r == RoleSales || r == RoleManager || r == RoleAdmin
}

// Lower returns the role in the lowercase form used by API responses.
func (r Role) Lower() string {
	return strings.ToLower(string(r))
}

type User struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	DepartmentID *int
	ManagerID    *int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Department struct {
	ID   int
	Name string
}

// Ref is a minimal {id, name} reference used when embedding related records
// in responses.
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Profile is a user joined with its department and manager, as returned by
// the login and me endpoints.
type Profile struct {
	User
	Department *Ref
	Manager    *Ref
}
