package postgresql

import (
	"context"

	"github.com/nippo-dev/nippo-backend-go/internal/pkg/database"
)

// Schema is the full DDL for the reporting database. The seed command and the
// repository test setup both apply it; production deployments manage the same
// schema through their own migration tooling.
const Schema = `
CREATE TABLE IF NOT EXISTS departments (
	id SERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(10) NOT NULL CHECK (role IN ('SALES', 'MANAGER', 'ADMIN')),
	department_id INTEGER REFERENCES departments(id),
	manager_id INTEGER REFERENCES users(id),
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS customers (
	id SERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	address TEXT,
	phone VARCHAR(20),
	contact_person VARCHAR(100),
	email VARCHAR(255),
	notes TEXT,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS daily_reports (
	id SERIAL PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id),
	report_date DATE NOT NULL,
	status VARCHAR(10) NOT NULL DEFAULT 'DRAFT' CHECK (status IN ('DRAFT', 'SUBMITTED')),
	submitted_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, report_date)
);

CREATE TABLE IF NOT EXISTS visit_records (
	id SERIAL PRIMARY KEY,
	daily_report_id INTEGER NOT NULL REFERENCES daily_reports(id) ON DELETE CASCADE,
	customer_id INTEGER NOT NULL REFERENCES customers(id),
	visit_datetime TIMESTAMPTZ NOT NULL,
	purpose VARCHAR(255) NOT NULL,
	content TEXT NOT NULL,
	problem TEXT,
	plan TEXT,
	display_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS comments (
	id SERIAL PRIMARY KEY,
	daily_report_id INTEGER NOT NULL REFERENCES daily_reports(id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL REFERENCES users(id),
	content TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_daily_reports_user_date ON daily_reports (user_id, report_date);
CREATE INDEX IF NOT EXISTS idx_visit_records_report ON visit_records (daily_report_id);
CREATE INDEX IF NOT EXISTS idx_comments_report ON comments (daily_report_id);
`

// ApplySchema creates all tables if they do not exist.
func ApplySchema(ctx context.Context, db *database.DB) error {
	_, err := db.Exec(ctx, Schema)
	return err
}
