package memory

import (
	"context"

	"househunters/internal/domain"
	"househunters/listing"
)

type imageRepo struct{ s *Store }

// findImage returns the property index and image index of id.
func (s *Store) findImage(id int64) (int, int, bool) {
	for pi, p := range s.props {
		for ii, img := range p.Images {
			if img.ID == id {
				return pi, ii, true
			}
		}
	}
	return -1, -1, false
}

func (r imageRepo) NextOrder(_ context.Context, propertyID int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := r.s.indexOf(propertyID)
	if i < 0 {
		return 0, nil
	}
	next := 0
	for _, img := range r.s.props[i].Images {
		next = max(next, img.DisplayOrder+1)
	}
	return next, nil
}

func (r imageRepo) HasPrimary(_ context.Context, propertyID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := r.s.indexOf(propertyID)
	if i < 0 {
		return false, nil
	}
	for _, img := range r.s.props[i].Images {
		if img.IsPrimary {
			return true, nil
		}
	}
	return false, nil
}

func (r imageRepo) Add(_ context.Context, propertyID int64, url string, isPrimary bool, order int) (listing.PropertyImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.indexOf(propertyID)
	if i < 0 {
		return listing.PropertyImage{}, domain.NotFoundError{Resource: "property"}
	}
	p := &r.s.props[i]
	if isPrimary {
		for k := range p.Images {
			p.Images[k].IsPrimary = false
		}
	}
	img := listing.PropertyImage{ID: r.s.nextImage, ImageURL: url, IsPrimary: isPrimary, DisplayOrder: order}
	r.s.nextImage++
	p.Images = append(p.Images, img)
	return img, nil
}

func (r imageRepo) Get(_ context.Context, id int64) (listing.PropertyImage, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	pi, ii, ok := r.s.findImage(id)
	if !ok {
		return listing.PropertyImage{}, 0, domain.NotFoundError{Resource: "image"}
	}
	return r.s.props[pi].Images[ii], r.s.props[pi].ID, nil
}

func (r imageRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pi, ii, ok := r.s.findImage(id)
	if !ok {
		return domain.NotFoundError{Resource: "image"}
	}
	imgs := r.s.props[pi].Images
	r.s.props[pi].Images = append(imgs[:ii:ii], imgs[ii+1:]...)
	return nil
}

func (r imageRepo) SetPrimary(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pi, _, ok := r.s.findImage(id)
	if !ok {
		return domain.NotFoundError{Resource: "image"}
	}
	for k := range r.s.props[pi].Images {
		r.s.props[pi].Images[k].IsPrimary = r.s.props[pi].Images[k].ID == id
	}
	return nil
}
