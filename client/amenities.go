package client

import (
	"context"
	"strconv"

	"househunters/listing"
)

// AmenityService handles amenity reads and admin edits.
type AmenityService struct {
	c *Client
}

func (s *AmenityService) List(ctx context.Context) ([]listing.Amenity, error) {
	var out []listing.Amenity
	if err := s.c.get(ctx, "/amenities", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AmenityService) Create(ctx context.Context, in AmenityInput) (*listing.Amenity, error) {
	var a listing.Amenity
	if err := s.c.post(ctx, "/admin/amenities", in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AmenityService) Update(ctx context.Context, id int64, patch AmenityPatch) (*listing.Amenity, error) {
	var a listing.Amenity
	if err := s.c.put(ctx, "/admin/amenities/"+strconv.FormatInt(id, 10), patch, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AmenityService) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, "/admin/amenities/"+strconv.FormatInt(id, 10))
}
