package memory

import (
	"context"
	"slices"
	"strings"

	"househunters/internal/domain"
	"househunters/listing"
)

type amenityRepo struct{ s *Store }

func (r amenityRepo) List(_ context.Context) ([]listing.Amenity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := slices.Clone(r.s.amenities)
	if out == nil {
		out = []listing.Amenity{}
	}
	slices.SortFunc(out, func(a, b listing.Amenity) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (r amenityRepo) find(pred func(listing.Amenity) bool) (listing.Amenity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if i := slices.IndexFunc(r.s.amenities, pred); i >= 0 {
		return r.s.amenities[i], nil
	}
	return listing.Amenity{}, domain.NotFoundError{Resource: "amenity"}
}

func (r amenityRepo) Get(_ context.Context, id int64) (listing.Amenity, error) {
	return r.find(func(a listing.Amenity) bool { return a.ID == id })
}

// FindByName compares case-insensitively, like the default MySQL collation.
func (r amenityRepo) FindByName(_ context.Context, name string) (listing.Amenity, error) {
	return r.find(func(a listing.Amenity) bool { return strings.EqualFold(a.Name, name) })
}

func (r amenityRepo) nameTaken(name string, except int64) bool {
	return slices.ContainsFunc(r.s.amenities, func(a listing.Amenity) bool {
		return a.ID != except && strings.EqualFold(a.Name, name)
	})
}

func (r amenityRepo) Create(_ context.Context, a listing.Amenity) (listing.Amenity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(a.Name, 0) {
		return a, domain.ConflictError{Msg: "Amenity with this name already exists"}
	}
	a.ID = r.s.nextAmenity
	r.s.nextAmenity++
	r.s.amenities = append(r.s.amenities, a)
	return a, nil
}

func (r amenityRepo) Update(_ context.Context, a listing.Amenity) (listing.Amenity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := slices.IndexFunc(r.s.amenities, func(x listing.Amenity) bool { return x.ID == a.ID })
	if i < 0 {
		return a, domain.NotFoundError{Resource: "amenity"}
	}
	if r.nameTaken(a.Name, a.ID) {
		return a, domain.ConflictError{Msg: "Amenity with this name already exists"}
	}
	r.s.amenities[i] = a
	return a, nil
}

func (r amenityRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := slices.IndexFunc(r.s.amenities, func(x listing.Amenity) bool { return x.ID == id })
	if i < 0 {
		return domain.NotFoundError{Resource: "amenity"}
	}
	r.s.amenities = slices.Delete(r.s.amenities, i, i+1)
	for pid, ids := range r.s.links {
		r.s.links[pid] = slices.DeleteFunc(ids, func(x int64) bool { return x == id })
	}
	return nil
}
