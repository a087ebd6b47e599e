package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/nippo-dev/nippo-backend-go/internal/config"
	"github.com/nippo-dev/nippo-backend-go/internal/fixtures"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/database"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/password"
	"github.com/nippo-dev/nippo-backend-go/internal/repository/postgresql"
)

// seed applies the schema and inserts development fixtures. It is idempotent:
// rows that already exist by their natural key are left alone.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	// A short-lived command does not need a sized pool.
	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolConfig{MaxConns: 2, MinConns: 1})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if err := postgresql.ApplySchema(ctx, db); err != nil {
		log.Fatal("Failed to apply schema: ", err)
	}

	departmentIDs := map[string]int{}
	for _, d := range fixtures.GetDefaultDepartments() {
		var id int
		err := db.QueryRow(ctx, `
			SELECT id FROM departments WHERE name = $1
		`, d.Name).Scan(&id)
		if err != nil {
			err = db.QueryRow(ctx, `
				INSERT INTO departments (name) VALUES ($1) RETURNING id
			`, d.Name).Scan(&id)
			if err != nil {
				log.Fatal("Failed to seed department: ", err)
			}
		}
		departmentIDs[d.Name] = id
	}

	hash, err := password.Hash(fixtures.SeedPassword)
	if err != nil {
		log.Fatal("Failed to hash seed password: ", err)
	}

	userIDs := map[string]int{}
	for _, u := range fixtures.GetDefaultUsers() {
		var departmentID *int
		if u.DepartmentName != nil {
			id, ok := departmentIDs[*u.DepartmentName]
			if !ok {
				log.Fatal("Unknown department in seed data: ", *u.DepartmentName)
			}
			departmentID = &id
		}
		var managerID *int
		if u.ManagerEmail != nil {
			id, ok := userIDs[*u.ManagerEmail]
			if !ok {
				log.Fatal("Manager must be seeded before subordinate: ", *u.ManagerEmail)
			}
			managerID = &id
		}

		var id int
		err := db.QueryRow(ctx, `
			SELECT id FROM users WHERE email = $1
		`, u.Email).Scan(&id)
		if err != nil {
			err = db.QueryRow(ctx, `
				INSERT INTO users (name, email, password_hash, role, department_id, manager_id)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id
			`, u.Name, u.Email, hash, string(u.Role), departmentID, managerID).Scan(&id)
			if err != nil {
				log.Fatal("Failed to seed user: ", err)
			}
		}
		userIDs[u.Email] = id
	}

	for _, c := range fixtures.GetDefaultCustomers() {
		var id int
		err := db.QueryRow(ctx, `
			SELECT id FROM customers WHERE name = $1
		`, c.Name).Scan(&id)
		if err != nil {
			err = db.QueryRow(ctx, `
				INSERT INTO customers (name, address, phone, contact_person, email, notes)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id
			`, c.Name, c.Address, c.Phone, c.ContactPerson, c.Email, c.Notes).Scan(&id)
			if err != nil {
				log.Fatal("Failed to seed customer: ", err)
			}
		}
	}

	fmt.Printf("Seeded %d departments, %d users, %d customers\n",
		len(departmentIDs), len(userIDs), len(fixtures.GetDefaultCustomers()))
	fmt.Println("All seeded accounts use password:", fixtures.SeedPassword)
}
