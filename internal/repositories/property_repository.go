package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"househunters/internal/domain"
	"househunters/internal/domain/models"
	"househunters/listing"
)

// PropertySQLRepository is the MySQL PropertyRepository.
type PropertySQLRepository struct {
	DB *sql.DB
}

const propertyColumns = `id, title, description, property_type, listing_type, price, location,
	latitude, longitude, bedrooms, bathrooms, area_sqm, featured, availability, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(sc rowScanner) (listing.Property, error) {
	var (
		p                  listing.Property
		lat, lng, area     sql.NullFloat64
		updatedAt          sql.NullTime
		propType, listType string
		availability       string
	)
	err := sc.Scan(&p.ID, &p.Title, &p.Description, &propType, &listType, &p.Price, &p.Location,
		&lat, &lng, &p.Bedrooms, &p.Bathrooms, &area, &p.Featured, &availability, &p.CreatedAt, &updatedAt)
	if err != nil {
		return listing.Property{}, err
	}
	p.PropertyType = listing.PropertyType(propType)
	p.ListingType = listing.ListingType(listType)
	p.Availability = listing.Availability(availability)
	p.Latitude = floatPtr(lat)
	p.Longitude = floatPtr(lng)
	p.AreaSqm = floatPtr(area)
	if updatedAt.Valid {
		t := updatedAt.Time
		p.UpdatedAt = &t
	}
	p.Images = []listing.PropertyImage{}
	p.Amenities = []listing.Amenity{}
	return p, nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func (r PropertySQLRepository) List(ctx context.Context, c listing.Criteria) ([]listing.Property, int, error) {
	c = c.WithDefaults()
	where, args := buildPropertyWhere(c)

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	query := `SELECT ` + propertyColumns + ` FROM properties` + where +
		` ORDER BY ` + orderClause(c.Sort) + ` LIMIT ? OFFSET ?`
	pageArgs := append(append([]any{}, args...), c.PageSize, (c.Page-1)*c.PageSize)

	rows, err := r.DB.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	props := []listing.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan property: %w", err)
		}
		props = append(props, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.attachRelations(ctx, props); err != nil {
		return nil, 0, err
	}
	return props, total, nil
}

func (r PropertySQLRepository) Get(ctx context.Context, id int64) (listing.Property, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id)
	p, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return listing.Property{}, domain.NotFoundError{Resource: "property", Err: err}
		}
		return listing.Property{}, fmt.Errorf("get property %d: %w", id, err)
	}
	props := []listing.Property{p}
	if err := r.attachRelations(ctx, props); err != nil {
		return listing.Property{}, err
	}
	return props[0], nil
}

func (r PropertySQLRepository) Create(ctx context.Context, p listing.Property, amenityIDs []int64) (listing.Property, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return listing.Property{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO properties (title, description, property_type, listing_type, price, location,
			latitude, longitude, bedrooms, bathrooms, area_sqm, featured, availability, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		p.Title, p.Description, string(p.PropertyType), string(p.ListingType), p.Price.String(), p.Location,
		nullFloat(p.Latitude), nullFloat(p.Longitude), p.Bedrooms, p.Bathrooms, nullFloat(p.AreaSqm),
		p.Featured, string(p.Availability))
	if err != nil {
		return listing.Property{}, fmt.Errorf("insert property: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return listing.Property{}, err
	}
	if err := linkAmenities(ctx, tx, id, amenityIDs); err != nil {
		return listing.Property{}, err
	}
	if err := tx.Commit(); err != nil {
		return listing.Property{}, err
	}
	return r.Get(ctx, id)
}

func (r PropertySQLRepository) Update(ctx context.Context, p listing.Property, amenityIDs []int64) (listing.Property, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return listing.Property{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE properties SET title = ?, description = ?, property_type = ?, listing_type = ?, price = ?,
			location = ?, latitude = ?, longitude = ?, bedrooms = ?, bathrooms = ?, area_sqm = ?,
			featured = ?, availability = ?, updated_at = NOW()
		WHERE id = ?`,
		p.Title, p.Description, string(p.PropertyType), string(p.ListingType), p.Price.String(),
		p.Location, nullFloat(p.Latitude), nullFloat(p.Longitude), p.Bedrooms, p.Bathrooms,
		nullFloat(p.AreaSqm), p.Featured, string(p.Availability), p.ID)
	if err != nil {
		return listing.Property{}, fmt.Errorf("update property %d: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return listing.Property{}, domain.NotFoundError{Resource: "property"}
	}

	if amenityIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM property_amenities WHERE property_id = ?`, p.ID); err != nil {
			return listing.Property{}, fmt.Errorf("clear amenities: %w", err)
		}
		if err := linkAmenities(ctx, tx, p.ID, amenityIDs); err != nil {
			return listing.Property{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return listing.Property{}, err
	}
	return r.Get(ctx, p.ID)
}

// linkAmenities links only ids that exist; unknown ids are skipped.
func linkAmenities(ctx context.Context, tx *sql.Tx, propertyID int64, amenityIDs []int64) error {
	for _, aid := range amenityIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT IGNORE INTO property_amenities (property_id, amenity_id)
			SELECT ?, id FROM amenities WHERE id = ?`, propertyID, aid); err != nil {
			return fmt.Errorf("link amenity %d: %w", aid, err)
		}
	}
	return nil
}

// Delete locks the property row before reading its images, so an image
// insert (which needs the parent row) cannot land between the read and the
// delete.
func (r PropertySQLRepository) Delete(ctx context.Context, id int64) ([]listing.PropertyImage, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var locked int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM properties WHERE id = ? FOR UPDATE`, id).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError{Resource: "property"}
	}
	if err != nil {
		return nil, fmt.Errorf("lock property %d: %w", id, err)
	}

	imgs, err := loadImages(ctx, tx, []int64{id})
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete property %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return imgs[id], nil
}

func (r PropertySQLRepository) Neighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT location, COUNT(id) AS cnt
		FROM properties
		GROUP BY location
		ORDER BY cnt DESC, location ASC`)
	if err != nil {
		return nil, fmt.Errorf("neighborhoods: %w", err)
	}
	defer rows.Close()

	out := []models.Neighborhood{}
	for rows.Next() {
		var n models.Neighborhood
		if err := rows.Scan(&n.Name, &n.PropertyCount); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r PropertySQLRepository) Stats(ctx context.Context) (models.DashboardStats, error) {
	var s models.DashboardStats
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(availability = 'available'), 0),
			COALESCE(SUM(availability = 'rented'), 0),
			COALESCE(SUM(availability = 'sold'), 0),
			COALESCE(SUM(featured), 0)
		FROM properties`).Scan(&s.TotalProperties, &s.AvailableProperties, &s.RentedProperties,
		&s.SoldProperties, &s.FeaturedProperties)
	if err != nil {
		return s, fmt.Errorf("stats totals: %w", err)
	}

	s.PropertiesByType = []models.TypeCount{}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT property_type, COUNT(id) FROM properties GROUP BY property_type ORDER BY property_type`)
	if err != nil {
		return s, fmt.Errorf("stats by type: %w", err)
	}
	for rows.Next() {
		var tc models.TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			rows.Close()
			return s, err
		}
		s.PropertiesByType = append(s.PropertiesByType, tc)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return s, fmt.Errorf("stats by type: %w", err)
	}

	s.PropertiesByLocation = []models.LocationCount{}
	rows, err = r.DB.QueryContext(ctx, `
		SELECT location, COUNT(id) AS cnt FROM properties
		GROUP BY location ORDER BY cnt DESC, location ASC LIMIT ?`, models.TopLocations)
	if err != nil {
		return s, fmt.Errorf("stats by location: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var lc models.LocationCount
		if err := rows.Scan(&lc.Location, &lc.Count); err != nil {
			return s, err
		}
		s.PropertiesByLocation = append(s.PropertiesByLocation, lc)
	}
	return s, rows.Err()
}

func (r PropertySQLRepository) attachRelations(ctx context.Context, props []listing.Property) error {
	if len(props) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(props))
	for _, p := range props {
		ids = append(ids, p.ID)
	}
	imgs, err := r.images(ctx, ids)
	if err != nil {
		return err
	}
	amen, err := r.amenities(ctx, ids)
	if err != nil {
		return err
	}
	for i := range props {
		if v, ok := imgs[props[i].ID]; ok {
			props[i].Images = v
		}
		if v, ok := amen[props[i].ID]; ok {
			props[i].Amenities = v
		}
	}
	return nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r PropertySQLRepository) images(ctx context.Context, ids []int64) (map[int64][]listing.PropertyImage, error) {
	return loadImages(ctx, r.DB, ids)
}

func loadImages(ctx context.Context, q queryer, ids []int64) (map[int64][]listing.PropertyImage, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, property_id, image_url, is_primary, display_order
		FROM property_images
		WHERE property_id IN (`+placeholders(len(ids))+`)
		ORDER BY property_id, display_order, id`, int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}
	defer rows.Close()

	out := map[int64][]listing.PropertyImage{}
	for rows.Next() {
		var (
			img listing.PropertyImage
			pid int64
		)
		if err := rows.Scan(&img.ID, &pid, &img.ImageURL, &img.IsPrimary, &img.DisplayOrder); err != nil {
			return nil, err
		}
		out[pid] = append(out[pid], img)
	}
	return out, rows.Err()
}

func (r PropertySQLRepository) amenities(ctx context.Context, ids []int64) (map[int64][]listing.Amenity, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT pa.property_id, a.id, a.name, COALESCE(a.icon, '')
		FROM property_amenities pa
		JOIN amenities a ON a.id = pa.amenity_id
		WHERE pa.property_id IN (`+placeholders(len(ids))+`)
		ORDER BY pa.property_id, a.name`, int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("load amenities: %w", err)
	}
	defer rows.Close()

	out := map[int64][]listing.Amenity{}
	for rows.Next() {
		var (
			a   listing.Amenity
			pid int64
		)
		if err := rows.Scan(&pid, &a.ID, &a.Name, &a.Icon); err != nil {
			return nil, err
		}
		out[pid] = append(out[pid], a)
	}
	return out, rows.Err()
}

// buildPropertyWhere translates criteria into a WHERE clause with the same
// semantics as listing.Match.
func buildPropertyWhere(c listing.Criteria) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if len(c.Locations) > 0 {
		ors := make([]string, 0, len(c.Locations))
		for _, l := range c.Locations {
			ors = append(ors, "location LIKE ?")
			args = append(args, likePattern(l))
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}
	if len(c.Types) > 0 {
		clauses = append(clauses, "property_type IN ("+placeholders(len(c.Types))+")")
		for _, t := range c.Types {
			args = append(args, string(t))
		}
	}
	if c.ListingType != "" {
		clauses = append(clauses, "listing_type = ?")
		args = append(args, string(c.ListingType))
	}

	ranges := []listing.PriceRange{c.Price}
	if c.Bucket != "" {
		b, ok := listing.LookupPriceBucket(c.Bucket)
		if !ok {
			clauses = append(clauses, "1 = 0")
		} else {
			ranges = append(ranges, b.Range)
		}
	}
	for _, pr := range ranges {
		if pr.Min.Valid() {
			clauses = append(clauses, "price >= ?")
			args = append(args, pr.Min.String())
		}
		if pr.Max.Valid() {
			clauses = append(clauses, "price < ?")
			args = append(args, pr.Max.String())
		}
	}

	if c.Bedrooms != nil {
		if c.Bedrooms.AtLeast {
			clauses = append(clauses, "bedrooms >= ?")
		} else {
			clauses = append(clauses, "bedrooms = ?")
		}
		args = append(args, c.Bedrooms.Count)
	}
	if c.MinBathrooms > 0 {
		clauses = append(clauses, "bathrooms >= ?")
		args = append(args, c.MinBathrooms)
	}
	if c.Availability != "" {
		clauses = append(clauses, "availability = ?")
		args = append(args, string(c.Availability))
	}
	if c.Featured != nil {
		clauses = append(clauses, "featured = ?")
		args = append(args, *c.Featured)
	}
	if s := strings.TrimSpace(c.Search); s != "" {
		pat := likePattern(s)
		clauses = append(clauses, "(title LIKE ? OR location LIKE ? OR description LIKE ?)")
		args = append(args, pat, pat, pat)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func orderClause(key listing.SortKey) string {
	switch key {
	case listing.SortOldest:
		return "created_at ASC, id ASC"
	case listing.SortPriceAsc:
		return "price ASC, id DESC"
	case listing.SortPriceDesc:
		return "price DESC, id DESC"
	case listing.SortBedroomsDesc:
		return "bedrooms DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(s)) + "%"
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func int64Args(ids []int64) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
