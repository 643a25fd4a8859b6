package client

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"househunters/listing"
)

// PropertyService handles the public property endpoints.
type PropertyService struct {
	c *Client
}

// List fetches one page of properties matching the criteria. Filtering,
// ordering and paging happen on the server.
func (s *PropertyService) List(ctx context.Context, criteria listing.Criteria) (*ListResponse, error) {
	var resp ListResponse
	if err := s.c.get(ctx, "/properties", criteria.Values(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListAll walks every page for the criteria and returns the concatenated
// properties. criteria.Page is ignored.
func (s *PropertyService) ListAll(ctx context.Context, criteria listing.Criteria) ([]listing.Property, error) {
	criteria.PageSize = listing.MaxPageSize
	var out []listing.Property
	for page := 1; ; page++ {
		criteria.Page = page
		resp, err := s.List(ctx, criteria)
		if err != nil {
			return nil, err
		}
		out = append(out, resp.Properties...)
		if page >= resp.TotalPages || len(resp.Properties) == 0 {
			return out, nil
		}
	}
}

func (s *PropertyService) Get(ctx context.Context, id int64) (*listing.Property, error) {
	var p listing.Property
	if err := s.c.get(ctx, "/properties/"+strconv.FormatInt(id, 10), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Featured returns featured, available properties, newest first.
func (s *PropertyService) Featured(ctx context.Context, limit int) ([]listing.Property, error) {
	return s.shortList(ctx, "/properties/featured/list", limit)
}

// Trending returns the newest available properties.
func (s *PropertyService) Trending(ctx context.Context, limit int) ([]listing.Property, error) {
	return s.shortList(ctx, "/properties/trending/list", limit)
}

func (s *PropertyService) shortList(ctx context.Context, path string, limit int) ([]listing.Property, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var out []listing.Property
	if err := s.c.get(ctx, path, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Neighborhoods returns locations with their listing counts, largest first.
func (s *PropertyService) Neighborhoods(ctx context.Context) ([]Neighborhood, error) {
	var out []Neighborhood
	if err := s.c.get(ctx, "/neighborhoods", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Brochure downloads the PDF flyer of a property and the file name the
// server suggests for it.
func (s *PropertyService) Brochure(ctx context.Context, id int64) ([]byte, string, error) {
	req, err := s.c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/properties/%d/brochure", id), nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/pdf")
	body, header, err := s.c.roundTrip(req)
	if err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("property-%d.pdf", id)
	if _, params, err := mime.ParseMediaType(header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return body, name, nil
}
