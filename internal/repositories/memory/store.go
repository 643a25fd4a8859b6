// Package memory implements the repository ports over in-process slices.
// Filtering and paging go through the listing package, so results match the
// MySQL driver for the same criteria.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"househunters/internal/domain"
	"househunters/internal/domain/models"
	"househunters/internal/repositories"
	"househunters/listing"
)

// Store is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	// Now stamps created_at/updated_at; tests may replace it.
	Now func() time.Time

	props     []listing.Property // ascending id; Images kept per property
	links     map[int64][]int64  // property id -> amenity ids
	amenities []listing.Amenity
	admins    []models.Admin

	nextProperty, nextImage, nextAmenity, nextAdmin int64
}

func New() *Store {
	return &Store{
		Now:          time.Now,
		links:        map[int64][]int64{},
		nextProperty: 1, nextImage: 1, nextAmenity: 1, nextAdmin: 1,
	}
}

// Repositories exposes s through the repository ports.
func (s *Store) Repositories() repositories.Store {
	return repositories.Store{
		Properties: propertyRepo{s},
		Images:     imageRepo{s},
		Amenities:  amenityRepo{s},
		Admins:     adminRepo{s},
	}
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.props, func(p listing.Property) bool { return p.ID == id })
}

// view returns a detached copy with amenity links resolved.
func (s *Store) view(p listing.Property) listing.Property {
	p.Images = slices.Clone(p.Images)
	if p.Images == nil {
		p.Images = []listing.PropertyImage{}
	}
	slices.SortStableFunc(p.Images, func(a, b listing.PropertyImage) int {
		return cmp.Or(cmp.Compare(a.DisplayOrder, b.DisplayOrder), cmp.Compare(a.ID, b.ID))
	})
	p.Amenities = []listing.Amenity{}
	for _, aid := range s.links[p.ID] {
		if i := slices.IndexFunc(s.amenities, func(a listing.Amenity) bool { return a.ID == aid }); i >= 0 {
			p.Amenities = append(p.Amenities, s.amenities[i])
		}
	}
	slices.SortFunc(p.Amenities, func(a, b listing.Amenity) int { return strings.Compare(a.Name, b.Name) })
	return p
}

func (s *Store) amenityExists(id int64) bool {
	return slices.ContainsFunc(s.amenities, func(a listing.Amenity) bool { return a.ID == id })
}

func (s *Store) setLinks(propertyID int64, ids []int64) {
	kept := []int64{}
	for _, id := range ids {
		if s.amenityExists(id) && !slices.Contains(kept, id) {
			kept = append(kept, id)
		}
	}
	s.links[propertyID] = kept
}

type propertyRepo struct{ s *Store }

func (r propertyRepo) List(_ context.Context, c listing.Criteria) ([]listing.Property, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c = c.WithDefaults()
	if c.Sort == "" || !c.Sort.Valid() {
		c.Sort = listing.SortNewest
	}
	// newest id first so equal timestamps still read newest first
	all := make([]listing.Property, 0, len(r.s.props))
	for i := len(r.s.props) - 1; i >= 0; i-- {
		all = append(all, r.s.view(r.s.props[i]))
	}
	matched := listing.Filter(all, c)
	page := listing.Paginate(matched, c.Page, c.PageSize)
	return page.Items, page.Total, nil
}

func (r propertyRepo) Get(_ context.Context, id int64) (listing.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := r.s.indexOf(id)
	if i < 0 {
		return listing.Property{}, domain.NotFoundError{Resource: "property"}
	}
	return r.s.view(r.s.props[i]), nil
}

func (r propertyRepo) Create(_ context.Context, p listing.Property, amenityIDs []int64) (listing.Property, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p.ID = r.s.nextProperty
	r.s.nextProperty++
	p.CreatedAt = r.s.Now()
	p.UpdatedAt = nil
	p.Images = nil
	r.s.props = append(r.s.props, p)
	r.s.setLinks(p.ID, amenityIDs)
	return r.s.view(p), nil
}

func (r propertyRepo) Update(_ context.Context, p listing.Property, amenityIDs []int64) (listing.Property, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.indexOf(p.ID)
	if i < 0 {
		return listing.Property{}, domain.NotFoundError{Resource: "property"}
	}
	cur := r.s.props[i]
	p.CreatedAt = cur.CreatedAt
	p.Images = cur.Images
	now := r.s.Now()
	p.UpdatedAt = &now
	r.s.props[i] = p
	if amenityIDs != nil {
		r.s.setLinks(p.ID, amenityIDs)
	}
	return r.s.view(p), nil
}

func (r propertyRepo) Delete(_ context.Context, id int64) ([]listing.PropertyImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.indexOf(id)
	if i < 0 {
		return nil, domain.NotFoundError{Resource: "property"}
	}
	imgs := r.s.view(r.s.props[i]).Images
	r.s.props = slices.Delete(r.s.props, i, i+1)
	delete(r.s.links, id)
	return imgs, nil
}

func (r propertyRepo) Neighborhoods(_ context.Context) ([]models.Neighborhood, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Neighborhood{}
	for _, lc := range r.s.locationCounts() {
		out = append(out, models.Neighborhood{Name: lc.Location, PropertyCount: lc.Count})
	}
	return out, nil
}

// locationCounts groups by exact location, busiest first then by name.
func (s *Store) locationCounts() []models.LocationCount {
	counts := map[string]int{}
	for _, p := range s.props {
		counts[p.Location]++
	}
	out := make([]models.LocationCount, 0, len(counts))
	for loc, n := range counts {
		out = append(out, models.LocationCount{Location: loc, Count: n})
	}
	slices.SortFunc(out, func(a, b models.LocationCount) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), strings.Compare(a.Location, b.Location))
	})
	return out
}

func (r propertyRepo) Stats(_ context.Context) (models.DashboardStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	st := models.DashboardStats{
		TotalProperties:      len(r.s.props),
		PropertiesByType:     []models.TypeCount{},
		PropertiesByLocation: []models.LocationCount{},
	}
	byType := map[listing.PropertyType]int{}
	for _, p := range r.s.props {
		switch p.Availability {
		case listing.Available:
			st.AvailableProperties++
		case listing.Rented:
			st.RentedProperties++
		case listing.Sold:
			st.SoldProperties++
		}
		if p.Featured {
			st.FeaturedProperties++
		}
		byType[p.PropertyType]++
	}
	for t, n := range byType {
		st.PropertiesByType = append(st.PropertiesByType, models.TypeCount{Type: string(t), Count: n})
	}
	slices.SortFunc(st.PropertiesByType, func(a, b models.TypeCount) int { return strings.Compare(a.Type, b.Type) })

	locs := r.s.locationCounts()
	if len(locs) > models.TopLocations {
		locs = locs[:models.TopLocations]
	}
	st.PropertiesByLocation = append(st.PropertiesByLocation, locs...)
	return st, nil
}
