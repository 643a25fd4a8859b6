package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"househunters/internal/domain"
	"househunters/internal/db"
	"househunters/listing"
)

type AmenitySQLRepository struct {
	DB *sql.DB
}

func (r AmenitySQLRepository) List(ctx context.Context) ([]listing.Amenity, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, COALESCE(icon, '') FROM amenities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list amenities: %w", err)
	}
	defer rows.Close()

	out := []listing.Amenity{}
	for rows.Next() {
		var a listing.Amenity
		if err := rows.Scan(&a.ID, &a.Name, &a.Icon); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r AmenitySQLRepository) get(ctx context.Context, where string, arg any) (listing.Amenity, error) {
	var a listing.Amenity
	err := r.DB.QueryRowContext(ctx, `SELECT id, name, COALESCE(icon, '') FROM amenities WHERE `+where, arg).
		Scan(&a.ID, &a.Name, &a.Icon)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, domain.NotFoundError{Resource: "amenity", Err: err}
		}
		return a, fmt.Errorf("get amenity: %w", err)
	}
	return a, nil
}

func (r AmenitySQLRepository) Get(ctx context.Context, id int64) (listing.Amenity, error) {
	return r.get(ctx, "id = ?", id)
}

func (r AmenitySQLRepository) FindByName(ctx context.Context, name string) (listing.Amenity, error) {
	return r.get(ctx, "name = ?", name)
}

func (r AmenitySQLRepository) Create(ctx context.Context, a listing.Amenity) (listing.Amenity, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO amenities (name, icon) VALUES (?, ?)`, a.Name, db.NullIfEmpty(a.Icon))
	if err != nil {
		if IsDuplicateKey(err) {
			return a, domain.ConflictError{Msg: "Amenity with this name already exists", Err: err}
		}
		return a, fmt.Errorf("insert amenity: %w", err)
	}
	a.ID, err = res.LastInsertId()
	return a, err
}

func (r AmenitySQLRepository) Update(ctx context.Context, a listing.Amenity) (listing.Amenity, error) {
	_, err := r.DB.ExecContext(ctx, `UPDATE amenities SET name = ?, icon = ? WHERE id = ?`,
		a.Name, db.NullIfEmpty(a.Icon), a.ID)
	if err != nil {
		if IsDuplicateKey(err) {
			return a, domain.ConflictError{Msg: "Amenity with this name already exists", Err: err}
		}
		return a, fmt.Errorf("update amenity %d: %w", a.ID, err)
	}
	return a, nil
}

func (r AmenitySQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM amenities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete amenity %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "amenity"}
	}
	return nil
}
