package customer

import "time"

type Customer struct {
	ID            int
	Name          string
	Address       *string
	Phone         *string
	ContactPerson *string
	Email         *string
	Notes         *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
