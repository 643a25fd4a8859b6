package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"househunters/internal/domain"
	"househunters/internal/domain/models"
	"househunters/listing"
)

func fixedClock() func() time.Time {
	t := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func seedProps(t *testing.T, s *Store) {
	t.Helper()
	repo := s.Repositories().Properties
	for _, p := range []listing.Property{
		{Title: "Bedsitter", Location: "Ngara", PropertyType: listing.TypeBedsitter, ListingType: listing.ListingRent, Price: listing.NewMoney(30_000), Availability: listing.Available},
		{Title: "Flat", Location: "Kilimani", PropertyType: listing.TypeApartment, ListingType: listing.ListingRent, Price: listing.NewMoney(75_000), Bedrooms: 2, Availability: listing.Rented},
		{Title: "House", Location: "Karen", PropertyType: listing.TypeHouse, ListingType: listing.ListingBuy, Price: listing.NewMoney(150_000), Bedrooms: 5, Featured: true, Availability: listing.Available},
	} {
		_, err := repo.Create(context.Background(), p, nil)
		require.NoError(t, err)
	}
}

func TestListNewestFirstAndFiltered(t *testing.T) {
	s := New()
	s.Now = fixedClock()
	seedProps(t, s)
	repo := s.Repositories().Properties

	props, total, err := repo.List(context.Background(), listing.Criteria{})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, []int64{3, 2, 1}, ids(props))

	props, total, err = repo.List(context.Background(), listing.Criteria{Bucket: "under-50000"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "Bedsitter", props[0].Title)

	props, total, err = repo.List(context.Background(), listing.Criteria{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, []int64{1}, ids(props))
}

func TestDeleteCascadesImagesAndLinks(t *testing.T) {
	s := New()
	seedProps(t, s)
	st := s.Repositories()
	ctx := context.Background()

	wifi, err := st.Amenities.Create(ctx, listing.Amenity{Name: "WiFi"})
	require.NoError(t, err)
	p, err := st.Properties.Update(ctx, listing.Property{ID: 2, Title: "Flat", Price: listing.NewMoney(1)}, []int64{wifi.ID, 404})
	require.NoError(t, err)
	require.Len(t, p.Amenities, 1)
	require.NotNil(t, p.UpdatedAt)

	a, err := st.Images.Add(ctx, 2, "/u/a.jpg", true, 0)
	require.NoError(t, err)
	b, err := st.Images.Add(ctx, 2, "/u/b.jpg", true, 1)
	require.NoError(t, err)
	got, _ := st.Properties.Get(ctx, 2)
	primary, _ := got.PrimaryImage()
	require.Equal(t, b.ID, primary.ID)

	require.NoError(t, st.Images.SetPrimary(ctx, a.ID))
	got, _ = st.Properties.Get(ctx, 2)
	primary, _ = got.PrimaryImage()
	require.Equal(t, a.ID, primary.ID)

	imgs, err := st.Properties.Delete(ctx, 2)
	require.NoError(t, err)
	require.Len(t, imgs, 2)
	_, err = st.Properties.Get(ctx, 2)
	require.True(t, domain.IsNotFound(err))
	_, _, err = st.Images.Get(ctx, a.ID)
	require.True(t, domain.IsNotFound(err))
}

func TestAmenityNamesAreUnique(t *testing.T) {
	s := New()
	repo := s.Repositories().Amenities
	ctx := context.Background()

	_, err := repo.Create(ctx, listing.Amenity{Name: "Parking"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, listing.Amenity{Name: "parking"})
	require.True(t, domain.IsConflict(err))

	gym, err := repo.Create(ctx, listing.Amenity{Name: "Gym"})
	require.NoError(t, err)
	gym.Name = "PARKING"
	_, err = repo.Update(ctx, gym)
	require.True(t, domain.IsConflict(err))
}

func TestStatsAndNeighborhoods(t *testing.T) {
	s := New()
	seedProps(t, s)
	_, err := s.Repositories().Properties.Create(context.Background(), listing.Property{Location: "Kilimani", PropertyType: listing.TypeStudio, Availability: listing.Sold}, nil)
	require.NoError(t, err)

	st, err := s.Repositories().Properties.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, st.TotalProperties)
	require.Equal(t, 2, st.AvailableProperties)
	require.Equal(t, 1, st.RentedProperties)
	require.Equal(t, 1, st.SoldProperties)
	require.Equal(t, 1, st.FeaturedProperties)
	require.Equal(t, models.LocationCount{Location: "Kilimani", Count: 2}, st.PropertiesByLocation[0])

	n, err := s.Repositories().Properties.Neighborhoods(context.Background())
	require.NoError(t, err)
	require.Equal(t, []models.Neighborhood{
		{Name: "Kilimani", PropertyCount: 2}, {Name: "Karen", PropertyCount: 1}, {Name: "Ngara", PropertyCount: 1},
	}, n)
}

func TestAdminCreateRejectsDuplicates(t *testing.T) {
	repo := New().Repositories().Admins
	ctx := context.Background()
	a, err := repo.Create(ctx, models.Admin{Username: "root", Email: "root@example.com", Role: domain.RoleSuperAdmin})
	require.NoError(t, err)
	require.Equal(t, int64(1), a.ID)

	_, err = repo.Create(ctx, models.Admin{Username: "ROOT", Email: "other@example.com"})
	require.True(t, domain.IsConflict(err))

	require.NoError(t, repo.TouchLogin(ctx, a.ID))
	got, err := repo.GetByUsername(ctx, "root")
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
}

func ids(props []listing.Property) []int64 {
	out := []int64{}
	for _, p := range props {
		out = append(out, p.ID)
	}
	return out
}
