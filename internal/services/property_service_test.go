package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"househunters/internal/domain"
	"househunters/internal/domain/models"
	"househunters/internal/repositories"
	"househunters/internal/repositories/memory"
	"househunters/listing"
)

type recordingRemover struct{ removed []string }

func (r *recordingRemover) Remove(url string) error {
	r.removed = append(r.removed, url)
	return nil
}

func newMemoryStore() (*memory.Store, repositories.Store) {
	s := memory.New()
	at := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	s.Now = func() time.Time {
		at = at.Add(time.Minute)
		return at
	}
	return s, s.Repositories()
}

func TestPropertyServiceCreateNormalizesAndLinksAmenities(t *testing.T) {
	ctx := context.Background()
	_, store := newMemoryStore()
	wifi, err := store.Amenities.Create(ctx, listing.Amenity{Name: "WiFi"})
	require.NoError(t, err)

	svc := PropertyService{Repo: store.Properties}
	in := validPropertyInput()
	in.Title = "  Garden   Flat in Kileleshwa "
	in.AmenityIDs = []int64{wifi.ID, 999}

	p, err := svc.Create(ctx, in)
	require.NoError(t, err)
	require.Equal(t, "Garden Flat in Kileleshwa", p.Title)
	require.Equal(t, listing.Available, p.Availability)
	require.Len(t, p.Amenities, 1)
	require.Equal(t, "WiFi", p.Amenities[0].Name)
}

func TestPropertyServiceCreateRejectsInvalidInput(t *testing.T) {
	_, store := newMemoryStore()
	svc := PropertyService{Repo: store.Properties}
	in := validPropertyInput()
	in.Description = "too short"

	_, err := svc.Create(context.Background(), in)
	require.True(t, domain.IsValidation(err))
	require.Equal(t, "description: must be at least 20 characters", err.Error())
}

func TestPropertyServiceUpdatePatchesOnlySetFields(t *testing.T) {
	ctx := context.Background()
	_, store := newMemoryStore()
	svc := PropertyService{Repo: store.Properties}
	p, err := svc.Create(ctx, validPropertyInput())
	require.NoError(t, err)

	price := listing.NewMoney(90_000)
	sold := listing.Rented
	got, err := svc.Update(ctx, p.ID, models.PropertyPatch{Price: &price, Availability: &sold})
	require.NoError(t, err)
	require.Equal(t, 0, got.Price.Cmp(price))
	require.Equal(t, listing.Rented, got.Availability)
	require.Equal(t, p.Title, got.Title)

	zero := listing.MoneyFromMinor(0)
	_, err = svc.Update(ctx, p.ID, models.PropertyPatch{Price: &zero})
	require.True(t, domain.IsValidation(err))

	_, err = svc.Update(ctx, 404, models.PropertyPatch{})
	require.True(t, domain.IsNotFound(err))
}

func TestPropertyServiceDeleteRemovesImageFiles(t *testing.T) {
	ctx := context.Background()
	_, store := newMemoryStore()
	files := &recordingRemover{}
	svc := PropertyService{Repo: store.Properties, Files: files}
	p, err := svc.Create(ctx, validPropertyInput())
	require.NoError(t, err)
	_, err = store.Images.Add(ctx, p.ID, "/uploads/properties/1/a.jpg", true, 0)
	require.NoError(t, err)
	_, err = store.Images.Add(ctx, p.ID, "/uploads/properties/1/b.jpg", false, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))
	require.ElementsMatch(t, []string{"/uploads/properties/1/a.jpg", "/uploads/properties/1/b.jpg"}, files.removed)

	_, err = svc.Get(ctx, p.ID)
	require.True(t, domain.IsNotFound(err))
	require.True(t, domain.IsNotFound(svc.Delete(ctx, p.ID)))
}

func TestPropertyServiceListAndShowcases(t *testing.T) {
	ctx := context.Background()
	_, store := newMemoryStore()
	svc := PropertyService{Repo: store.Properties}

	for i, title := range []string{"First listing", "Second listing", "Third listing"} {
		in := validPropertyInput()
		in.Title = title
		in.Featured = i != 1
		if i == 2 {
			in.Availability = listing.Sold
		}
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	res, err := svc.List(ctx, listing.Criteria{})
	require.NoError(t, err)
	require.Equal(t, 3, res.Total)
	require.Equal(t, 1, res.Page)
	require.Equal(t, listing.DefaultPageSize, res.PageSize)
	require.Equal(t, "Third listing", res.Properties[0].Title)

	featured, err := svc.Featured(ctx, 0)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	require.Equal(t, "First listing", featured[0].Title)

	trending, err := svc.Trending(ctx, 1)
	require.NoError(t, err)
	require.Len(t, trending, 1)
	require.Equal(t, "Second listing", trending[0].Title)

	_, err = svc.Trending(ctx, 21)
	require.True(t, domain.IsValidation(err))

	_, err = svc.List(ctx, listing.Criteria{PageSize: 101})
	require.True(t, domain.IsValidation(err))
	_, err = svc.List(ctx, listing.Criteria{Sort: "cheapest"})
	require.True(t, domain.IsValidation(err))
	_, err = svc.List(ctx, listing.Criteria{Bucket: "free"})
	require.True(t, domain.IsValidation(err))
}
