package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"househunters/internal/domain"
	"househunters/listing"
)

type ImageSQLRepository struct {
	DB *sql.DB
}

func (r ImageSQLRepository) NextOrder(ctx context.Context, propertyID int64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(display_order) + 1, 0) FROM property_images WHERE property_id = ?`, propertyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next display order: %w", err)
	}
	return n, nil
}

func (r ImageSQLRepository) HasPrimary(ctx context.Context, propertyID int64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM property_images WHERE property_id = ? AND is_primary = TRUE`, propertyID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("primary image lookup: %w", err)
	}
	return n > 0, nil
}

func (r ImageSQLRepository) Add(ctx context.Context, propertyID int64, url string, isPrimary bool, order int) (listing.PropertyImage, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return listing.PropertyImage{}, err
	}
	defer tx.Rollback()

	if isPrimary {
		if _, err := tx.ExecContext(ctx,
			`UPDATE property_images SET is_primary = FALSE WHERE property_id = ?`, propertyID); err != nil {
			return listing.PropertyImage{}, fmt.Errorf("unset primary: %w", err)
		}
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO property_images (property_id, image_url, is_primary, display_order)
		VALUES (?, ?, ?, ?)`, propertyID, url, isPrimary, order)
	if err != nil {
		return listing.PropertyImage{}, fmt.Errorf("insert image: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return listing.PropertyImage{}, err
	}
	if err := tx.Commit(); err != nil {
		return listing.PropertyImage{}, err
	}
	return listing.PropertyImage{ID: id, ImageURL: url, IsPrimary: isPrimary, DisplayOrder: order}, nil
}

func (r ImageSQLRepository) Get(ctx context.Context, id int64) (listing.PropertyImage, int64, error) {
	var (
		img listing.PropertyImage
		pid int64
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, property_id, image_url, is_primary, display_order
		FROM property_images WHERE id = ?`, id).
		Scan(&img.ID, &pid, &img.ImageURL, &img.IsPrimary, &img.DisplayOrder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return img, 0, domain.NotFoundError{Resource: "image", Err: err}
		}
		return img, 0, fmt.Errorf("get image %d: %w", id, err)
	}
	return img, pid, nil
}

func (r ImageSQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM property_images WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete image %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "image"}
	}
	return nil
}

// SetPrimary flags id and clears the flag on every sibling in one statement.
func (r ImageSQLRepository) SetPrimary(ctx context.Context, id int64) error {
	_, pid, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		`UPDATE property_images SET is_primary = (id = ?) WHERE property_id = ?`, id, pid)
	if err != nil {
		return fmt.Errorf("set primary image %d: %w", id, err)
	}
	return nil
}
