package fixtures

import (
	"github.com/nippo-dev/nippo-backend-go/internal/domain/customer"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
)

func strPtr(s string) *string { return &s }

// SeedPassword is the plaintext password every seeded account uses.
const SeedPassword = "password123"

// GetDefaultDepartments returns the sales departments seeded into a fresh
// database.
func GetDefaultDepartments() []user.Department {
	return []user.Department{
		{Name: "営業1課"},
		{Name: "営業2課"},
	}
}

// SeedUser describes an account to create. DepartmentName and ManagerEmail
// are resolved to IDs by the seed command after the referenced rows exist.
type SeedUser struct {
	Name           string
	Email          string
	Role           user.Role
	DepartmentName *string
	ManagerEmail   *string
}

// GetDefaultUsers returns one account per role: an admin, a manager for the
// first department and a sales rep reporting to that manager.
func GetDefaultUsers() []SeedUser {
	return []SeedUser{
		{
			Name:  "管理者",
			Email: "admin@example.com",
			Role:  user.RoleAdmin,
		},
		{
			Name:           "鈴木部長",
			Email:          "suzuki@example.com",
			Role:           user.RoleManager,
			DepartmentName: strPtr("営業1課"),
		},
		{
			Name:           "山田太郎",
			Email:          "yamada@example.com",
			Role:           user.RoleSales,
			DepartmentName: strPtr("営業1課"),
			ManagerEmail:   strPtr("suzuki@example.com"),
		},
	}
}

// GetDefaultCustomers returns sample customers for development environments.
func GetDefaultCustomers() []customer.Customer {
	return []customer.Customer{
		{
			Name:          "株式会社ABC商事",
			Address:       strPtr("東京都千代田区丸の内1-1-1"),
			Phone:         strPtr("03-1234-5678"),
			ContactPerson: strPtr("田中様"),
			Email:         strPtr("tanaka@abc-shoji.example.com"),
		},
		{
			Name:          "XYZ工業株式会社",
			Address:       strPtr("大阪府大阪市北区梅田2-2-2"),
			Phone:         strPtr("06-8765-4321"),
			ContactPerson: strPtr("佐藤様"),
		},
		{
			Name:  "有限会社DEFシステムズ",
			Notes: strPtr("新規開拓中"),
		},
	}
}
