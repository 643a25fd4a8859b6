// Package repositories holds the storage ports used by the services and
// their MySQL implementation. The memory subpackage provides the same ports
// over in-process slices.
package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"househunters/internal/domain/models"
	"househunters/listing"
)

// PropertyRepository stores listings and their image/amenity links.
type PropertyRepository interface {
	// List returns one page of matches plus the total before paging.
	List(ctx context.Context, c listing.Criteria) ([]listing.Property, int, error)
	Get(ctx context.Context, id int64) (listing.Property, error)
	Create(ctx context.Context, p listing.Property, amenityIDs []int64) (listing.Property, error)
	// Update writes p; amenityIDs replaces the links only when non-nil.
	Update(ctx context.Context, p listing.Property, amenityIDs []int64) (listing.Property, error)
	// Delete removes the property and returns the images it had.
	Delete(ctx context.Context, id int64) ([]listing.PropertyImage, error)
	Neighborhoods(ctx context.Context) ([]models.Neighborhood, error)
	Stats(ctx context.Context) (models.DashboardStats, error)
}

// ImageRepository stores property images.
type ImageRepository interface {
	// NextOrder is one past the highest display_order in use, 0 when none.
	NextOrder(ctx context.Context, propertyID int64) (int, error)
	HasPrimary(ctx context.Context, propertyID int64) (bool, error)
	// Add inserts an image; a primary image clears the flag on its siblings.
	Add(ctx context.Context, propertyID int64, url string, isPrimary bool, order int) (listing.PropertyImage, error)
	// Get returns the image and the property it belongs to.
	Get(ctx context.Context, id int64) (listing.PropertyImage, int64, error)
	Delete(ctx context.Context, id int64) error
	SetPrimary(ctx context.Context, id int64) error
}

type AmenityRepository interface {
	List(ctx context.Context) ([]listing.Amenity, error)
	Get(ctx context.Context, id int64) (listing.Amenity, error)
	FindByName(ctx context.Context, name string) (listing.Amenity, error)
	Create(ctx context.Context, a listing.Amenity) (listing.Amenity, error)
	Update(ctx context.Context, a listing.Amenity) (listing.Amenity, error)
	Delete(ctx context.Context, id int64) error
}

type AdminRepository interface {
	List(ctx context.Context) ([]models.Admin, error)
	GetByID(ctx context.Context, id int64) (models.Admin, error)
	GetByUsername(ctx context.Context, username string) (models.Admin, error)
	GetByEmail(ctx context.Context, email string) (models.Admin, error)
	Create(ctx context.Context, a models.Admin) (models.Admin, error)
	Delete(ctx context.Context, id int64) error
	TouchLogin(ctx context.Context, id int64) error
}

// Store bundles the repositories of one storage driver.
type Store struct {
	Properties PropertyRepository
	Images     ImageRepository
	Amenities  AmenityRepository
	Admins     AdminRepository
	// Ping reports storage health; nil means always healthy.
	Ping func(ctx context.Context) error
}

const mysqlDuplicateEntry = 1062

// IsDuplicateKey reports a MySQL unique-constraint violation.
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// NewSQLStore wires the MySQL repositories around one pool.
func NewSQLStore(conn *sql.DB) Store {
	return Store{
		Properties: PropertySQLRepository{DB: conn},
		Images:     ImageSQLRepository{DB: conn},
		Amenities:  AmenitySQLRepository{DB: conn},
		Admins:     AdminSQLRepository{DB: conn},
		Ping:       conn.PingContext,
	}
}
