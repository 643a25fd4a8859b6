package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"

	"househunters/internal/domain"
	"househunters/listing"
)

var propertyCols = []string{"id", "title", "description", "property_type", "listing_type", "price", "location",
	"latitude", "longitude", "bedrooms", "bathrooms", "area_sqm", "featured", "availability", "created_at", "updated_at"}

func newMock(t *testing.T) (PropertySQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return PropertySQLRepository{DB: conn}, mock
}

func TestBuildPropertyWhere(t *testing.T) {
	featured := true
	bed := listing.Bedrooms(4)
	c := listing.Criteria{
		Locations:   []string{"Kilimani", "50%_off"},
		Types:       []listing.PropertyType{listing.TypeHouse, listing.TypeStudio},
		ListingType: listing.ListingRent,
		Bucket:      "50000-100000",
		Bedrooms:    &bed,
		Featured:    &featured,
		Search:      "garden",
	}
	where, args := buildPropertyWhere(c)
	require.Equal(t, " WHERE (location LIKE ? OR location LIKE ?) AND property_type IN (?, ?) AND listing_type = ?"+
		" AND price >= ? AND price < ? AND bedrooms >= ? AND featured = ?"+
		" AND (title LIKE ? OR location LIKE ? OR description LIKE ?)", where)
	require.Equal(t, []any{"%Kilimani%", `%50\%\_off%`, "house", "studio", "rent",
		"50000.00", "100000.00", 4, true, "%garden%", "%garden%", "%garden%"}, args)

	where, args = buildPropertyWhere(listing.Criteria{Bedrooms: func() *listing.BedroomCriterion { b := listing.Bedrooms(2); return &b }()})
	require.Equal(t, " WHERE bedrooms = ?", where)
	require.Equal(t, []any{2}, args)

	where, _ = buildPropertyWhere(listing.Criteria{Bucket: "cheap"})
	require.Equal(t, " WHERE 1 = 0", where)

	where, args = buildPropertyWhere(listing.Criteria{})
	require.Empty(t, where)
	require.Nil(t, args)
}

func TestPropertyListCountsThenLoadsPageWithRelations(t *testing.T) {
	repo, mock := newMock(t)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM properties WHERE listing_type = ?")).
		WithArgs("buy").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(13))
	mock.ExpectQuery(`FROM properties WHERE listing_type = \? ORDER BY price ASC, id DESC LIMIT \? OFFSET \?`).
		WithArgs("buy", 12, 12).
		WillReturnRows(sqlmock.NewRows(propertyCols).
			AddRow(13, "Karen Villa", "desc", "house", "buy", "150000.00", "Karen", nil, nil, 5, 4, "420.50", true, "available", created, nil))
	mock.ExpectQuery("FROM property_images").WithArgs(int64(13)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "property_id", "image_url", "is_primary", "display_order"}).
			AddRow(1, 13, "/uploads/properties/13/a.jpg", false, 0).
			AddRow(2, 13, "/uploads/properties/13/b.jpg", true, 1))
	mock.ExpectQuery("FROM property_amenities").WithArgs(int64(13)).
		WillReturnRows(sqlmock.NewRows([]string{"property_id", "id", "name", "icon"}).AddRow(13, 3, "Pool", ""))

	props, total, err := repo.List(context.Background(), listing.Criteria{ListingType: listing.ListingBuy, Sort: listing.SortPriceAsc, Page: 2})
	require.NoError(t, err)
	require.Equal(t, 13, total)
	require.Len(t, props, 1)
	p := props[0]
	require.Equal(t, listing.NewMoney(150_000), p.Price)
	require.Nil(t, p.Latitude)
	require.InDelta(t, 420.5, *p.AreaSqm, 0.001)
	require.Len(t, p.Images, 2)
	img, _ := p.PrimaryImage()
	require.Equal(t, int64(2), img.ID)
	require.True(t, p.HasAmenity("pool"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyGetNotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("FROM properties WHERE id = ?").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(propertyCols))

	_, err := repo.Get(context.Background(), 9)
	require.True(t, domain.IsNotFound(err))
	require.Equal(t, "Property not found", err.Error())
}

func TestPropertyDeleteReadsImagesUnderRowLock(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM properties WHERE id = ? FOR UPDATE")).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery("FROM property_images").WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "property_id", "image_url", "is_primary", "display_order"}).
			AddRow(7, 4, "/uploads/properties/4/x.png", true, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM properties WHERE id = ?")).WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	imgs, err := repo.Delete(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, imgs, 1)
	require.Equal(t, "/uploads/properties/4/x.png", imgs[0].ImageURL)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM properties WHERE id = ? FOR UPDATE")).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()
	_, err = repo.Delete(context.Background(), 5)
	require.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyCreateLinksAmenitiesInTransaction(t *testing.T) {
	repo, mock := newMock(t)
	p := listing.Property{Title: "Loft", Description: "d", PropertyType: listing.TypeStudio, ListingType: listing.ListingRent,
		Price: listing.NewMoney(40_000), Location: "Westlands", Availability: listing.Available}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO properties").
		WithArgs("Loft", "d", "studio", "rent", "40000.00", "Westlands", nil, nil, 0, 0, nil, false, "available").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec("INSERT IGNORE INTO property_amenities").WithArgs(int64(21), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT IGNORE INTO property_amenities").WithArgs(int64(21), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM properties WHERE id = ?").WithArgs(int64(21)).
		WillReturnRows(sqlmock.NewRows(propertyCols).
			AddRow(21, "Loft", "d", "studio", "rent", "40000.00", "Westlands", nil, nil, 0, 0, nil, false, "available", time.Now(), nil))
	mock.ExpectQuery("FROM property_images").WillReturnRows(sqlmock.NewRows([]string{"id", "property_id", "image_url", "is_primary", "display_order"}))
	mock.ExpectQuery("FROM property_amenities").WillReturnRows(sqlmock.NewRows([]string{"property_id", "id", "name", "icon"}).AddRow(21, 1, "WiFi", "wifi"))

	got, err := repo.Create(context.Background(), p, []int64{1, 99})
	require.NoError(t, err)
	require.Equal(t, int64(21), got.ID)
	require.Equal(t, []listing.Amenity{{ID: 1, Name: "WiFi", Icon: "wifi"}}, got.Amenities)
	require.NotNil(t, got.Images)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsAggregates(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\),").
		WillReturnRows(sqlmock.NewRows([]string{"a", "b", "c", "d", "e"}).AddRow(10, "6", "2", "1", "3"))
	mock.ExpectQuery("GROUP BY property_type").
		WillReturnRows(sqlmock.NewRows([]string{"property_type", "count"}).AddRow("apartment", 7).AddRow("house", 3))
	mock.ExpectQuery("GROUP BY location").WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"location", "cnt"}).AddRow("Kilimani", 4))

	s, err := repo.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, s.TotalProperties)
	require.Equal(t, 6, s.AvailableProperties)
	require.Equal(t, 3, s.FeaturedProperties)
	require.Len(t, s.PropertiesByType, 2)
	require.Equal(t, "Kilimani", s.PropertiesByLocation[0].Location)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsSurfacesRowErrors(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\),").
		WillReturnRows(sqlmock.NewRows([]string{"a", "b", "c", "d", "e"}).AddRow(1, "1", "0", "0", "0"))
	mock.ExpectQuery("GROUP BY property_type").
		WillReturnRows(sqlmock.NewRows([]string{"property_type", "count"}).
			AddRow("house", 1).AddRow("flat", 2).RowError(1, errors.New("connection reset")))

	_, err := repo.Stats(context.Background())
	require.ErrorContains(t, err, "connection reset")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestImageNextOrderUsesHighestOrder(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	repo := ImageSQLRepository{DB: conn}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(display_order) + 1, 0) FROM property_images WHERE property_id = ?")).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(5))

	next, err := repo.NextOrder(context.Background(), 8)
	require.NoError(t, err)
	require.Equal(t, 5, next)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAmenityCreateDuplicateIsConflict(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	repo := AmenitySQLRepository{DB: conn}

	mock.ExpectExec("INSERT INTO amenities").WithArgs("WiFi", nil).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err = repo.Create(context.Background(), listing.Amenity{Name: "WiFi"})
	require.True(t, domain.IsConflict(err))
	require.Equal(t, "Amenity with this name already exists", err.Error())
}

func TestImageSetPrimaryClearsSiblings(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	repo := ImageSQLRepository{DB: conn}

	mock.ExpectQuery("FROM property_images WHERE id = ?").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "property_id", "image_url", "is_primary", "display_order"}).
			AddRow(3, 8, "/u/3.jpg", false, 2))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE property_images SET is_primary = (id = ?) WHERE property_id = ?")).
		WithArgs(int64(3), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.SetPrimary(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}
