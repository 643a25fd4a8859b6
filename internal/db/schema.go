package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

// QueryRower is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// NullIfEmpty stores optional strings as NULL.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func HasTable(ctx context.Context, q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

func HasColumn(ctx context.Context, q QueryRower, table, column string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

type tableDDL struct {
	name string
	ddl  string
}

// Order matters: referenced tables come first.
var schema = []tableDDL{
	{"admins", `CREATE TABLE IF NOT EXISTS admins (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role ENUM('super_admin','admin','editor') NOT NULL DEFAULT 'admin',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_login DATETIME NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"properties", `CREATE TABLE IF NOT EXISTS properties (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		property_type ENUM('house','apartment','studio','bedsitter','commercial') NOT NULL,
		listing_type ENUM('rent','buy') NOT NULL,
		price DECIMAL(15,2) NOT NULL,
		location VARCHAR(255) NOT NULL,
		latitude DECIMAL(10,8) NULL,
		longitude DECIMAL(11,8) NULL,
		bedrooms INT NOT NULL DEFAULT 0,
		bathrooms INT NOT NULL DEFAULT 0,
		area_sqm DECIMAL(10,2) NULL,
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		availability ENUM('available','rented','sold','pending') NOT NULL DEFAULT 'available',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NULL ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_properties_location (location),
		INDEX idx_properties_type (property_type),
		INDEX idx_properties_price (price),
		INDEX idx_properties_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"property_images", `CREATE TABLE IF NOT EXISTS property_images (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		property_id BIGINT NOT NULL,
		image_url VARCHAR(500) NOT NULL,
		is_primary BOOLEAN NOT NULL DEFAULT FALSE,
		display_order INT NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_images_property FOREIGN KEY (property_id) REFERENCES properties(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"amenities", `CREATE TABLE IF NOT EXISTS amenities (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		icon VARCHAR(50) NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"property_amenities", `CREATE TABLE IF NOT EXISTS property_amenities (
		property_id BIGINT NOT NULL,
		amenity_id BIGINT NOT NULL,
		PRIMARY KEY (property_id, amenity_id),
		CONSTRAINT fk_pa_property FOREIGN KEY (property_id) REFERENCES properties(id) ON DELETE CASCADE,
		CONSTRAINT fk_pa_amenity FOREIGN KEY (amenity_id) REFERENCES amenities(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
}

// Tables returns the managed table names in creation order.
func Tables() []string {
	out := make([]string, 0, len(schema))
	for _, t := range schema {
		out = append(out, t.name)
	}
	return out
}

// EnsureSchema creates any missing table. Existing tables are left alone.
func EnsureSchema(ctx context.Context, conn *sql.DB, log logrus.FieldLogger) error {
	for _, t := range schema {
		if HasTable(ctx, conn, t.name) {
			continue
		}
		if _, err := conn.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		log.WithField("table", t.name).Info("created table")
	}
	return nil
}
