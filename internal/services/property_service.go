package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"househunters/internal/domain"
	"househunters/internal/domain/models"
	"househunters/internal/repositories"
	"househunters/internal/utils"
	"househunters/listing"
)

const (
	DefaultShowcaseLimit = 6
	MaxShowcaseLimit     = 20
)

// FileRemover deletes stored uploads by their public URL.
type FileRemover interface {
	Remove(url string) error
}

// PropertyService covers the public listing reads and the admin CRUD.
type PropertyService struct {
	Repo      repositories.PropertyRepository
	Files     FileRemover
	Log       logrus.FieldLogger
	RequestID string
}

func (s PropertyService) log(action, msg string) {
	utils.LogEvent(s.Log, s.RequestID, "properties", action, msg)
}

// NormalizeCriteria applies paging defaults and rejects values the listing
// cannot serve. A zero page or page size means unset; negative values are
// rejected rather than defaulted.
func NormalizeCriteria(c listing.Criteria) (listing.Criteria, error) {
	if c.Page < 0 {
		return c, domain.ValidationError{Field: "page", Msg: "must be >= 1", Err: listing.ErrInvalidPage}
	}
	if c.PageSize < 0 {
		return c, domain.ValidationError{Field: "page_size", Msg: fmt.Sprintf("must be between 1 and %d", listing.MaxPageSize), Err: listing.ErrInvalidPageSize}
	}
	c = c.WithDefaults()
	if c.PageSize > listing.MaxPageSize {
		return c, domain.ValidationError{Field: "page_size", Msg: fmt.Sprintf("must be between 1 and %d", listing.MaxPageSize)}
	}
	if c.Sort != "" && !c.Sort.Valid() {
		return c, domain.ValidationError{Field: "sort", Msg: "must be one of " + joinSortKeys()}
	}
	for _, t := range c.Types {
		if !t.Valid() {
			return c, domain.ValidationError{Field: "property_type", Msg: fmt.Sprintf("unknown type %q", t)}
		}
	}
	if c.ListingType != "" && !c.ListingType.Valid() {
		return c, domain.ValidationError{Field: "listing_type", Msg: "must be rent or buy"}
	}
	if c.Availability != "" && !c.Availability.Valid() {
		return c, domain.ValidationError{Field: "availability", Msg: "must be one of available, rented, sold, pending"}
	}
	if err := c.Validate(); err != nil {
		return c, domain.ValidationError{Msg: err.Error(), Err: err}
	}
	return c, nil
}

func joinSortKeys() string {
	keys := make([]string, 0, len(listing.SortKeys))
	for _, k := range listing.SortKeys {
		keys = append(keys, string(k))
	}
	return strings.Join(keys, ", ")
}

func (s PropertyService) List(ctx context.Context, c listing.Criteria) (models.ListResult, error) {
	c, err := NormalizeCriteria(c)
	if err != nil {
		return models.ListResult{}, err
	}
	props, total, err := s.Repo.List(ctx, c)
	if err != nil {
		return models.ListResult{}, err
	}
	return models.ListResult{
		Total:      total,
		Page:       c.Page,
		PageSize:   c.PageSize,
		TotalPages: listing.TotalPages(total, c.PageSize),
		Properties: props,
	}, nil
}

func (s PropertyService) Get(ctx context.Context, id int64) (listing.Property, error) {
	return s.Repo.Get(ctx, id)
}

func showcaseLimit(limit int) (int, error) {
	if limit == 0 {
		return DefaultShowcaseLimit, nil
	}
	if limit < 1 || limit > MaxShowcaseLimit {
		return 0, domain.ValidationError{Field: "limit", Msg: fmt.Sprintf("must be between 1 and %d", MaxShowcaseLimit)}
	}
	return limit, nil
}

// Featured returns available featured listings, newest first.
func (s PropertyService) Featured(ctx context.Context, limit int) ([]listing.Property, error) {
	n, err := showcaseLimit(limit)
	if err != nil {
		return nil, err
	}
	featured := true
	props, _, err := s.Repo.List(ctx, listing.Criteria{
		Featured: &featured, Availability: listing.Available,
		Sort: listing.SortNewest, Page: 1, PageSize: n,
	})
	return props, err
}

// Trending returns the most recently added available listings.
func (s PropertyService) Trending(ctx context.Context, limit int) ([]listing.Property, error) {
	n, err := showcaseLimit(limit)
	if err != nil {
		return nil, err
	}
	props, _, err := s.Repo.List(ctx, listing.Criteria{
		Availability: listing.Available, Sort: listing.SortNewest, Page: 1, PageSize: n,
	})
	return props, err
}

func (s PropertyService) Neighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	return s.Repo.Neighborhoods(ctx)
}

func (s PropertyService) Stats(ctx context.Context) (models.DashboardStats, error) {
	return s.Repo.Stats(ctx)
}

func (s PropertyService) Create(ctx context.Context, in models.PropertyInput) (listing.Property, error) {
	in.Title = utils.NormalizeSpace(in.Title)
	in.Location = utils.NormalizeSpace(in.Location)
	in.Description = strings.TrimSpace(in.Description)
	if err := validateInput(in); err != nil {
		return listing.Property{}, err
	}
	p, err := s.Repo.Create(ctx, in.ToProperty(), in.AmenityIDs)
	if err != nil {
		return listing.Property{}, err
	}
	s.log("create", fmt.Sprintf("property_id=%d", p.ID))
	return p, nil
}

func (s PropertyService) Update(ctx context.Context, id int64, patch models.PropertyPatch) (listing.Property, error) {
	if err := validateInput(patch); err != nil {
		return listing.Property{}, err
	}
	if patch.Price != nil && !patch.Price.IsPositive() {
		return listing.Property{}, domain.ValidationError{Field: "price", Msg: "must be greater than 0"}
	}
	cur, err := s.Repo.Get(ctx, id)
	if err != nil {
		return listing.Property{}, err
	}
	patch.Apply(&cur)
	p, err := s.Repo.Update(ctx, cur, patch.AmenityIDs)
	if err != nil {
		return listing.Property{}, err
	}
	s.log("update", fmt.Sprintf("property_id=%d", id))
	return p, nil
}

// Delete removes the listing and then its image files. A file that cannot
// be removed is logged, not returned.
func (s PropertyService) Delete(ctx context.Context, id int64) error {
	imgs, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if s.Files != nil {
		for _, img := range imgs {
			if err := s.Files.Remove(img.ImageURL); err != nil && s.Log != nil {
				s.Log.WithError(err).WithField("url", img.ImageURL).Warn("remove image file")
			}
		}
	}
	s.log("delete", fmt.Sprintf("property_id=%d images=%d", id, len(imgs)))
	return nil
}
