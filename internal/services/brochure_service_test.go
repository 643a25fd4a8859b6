package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"househunters/internal/domain"
	"househunters/listing"
)

func TestBrochureGenerate(t *testing.T) {
	area := 85.5
	lat, lng := -1.2921, 36.8219
	svc := BrochureService{
		Loader: func(_ context.Context, id int64) (listing.Property, error) {
			return listing.Property{
				ID: id, Title: "Garden Flat, Kileleshwa", Location: "Kileleshwa, Nairobi",
				Description:  "Two bedroom flat with a private garden.",
				PropertyType: listing.TypeApartment, ListingType: listing.ListingRent,
				Price: listing.NewMoney(85_000), Bedrooms: 2, Bathrooms: 1, AreaSqm: &area,
				Latitude: &lat, Longitude: &lng, Availability: listing.Available,
				Amenities: []listing.Amenity{{ID: 1, Name: "WiFi"}, {ID: 2, Name: "Parking"}},
			}, nil
		},
		Now: func() time.Time { return time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC) },
	}

	pdf, name, err := svc.Generate(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	require.Equal(t, "LISTING_7_Garden-Flat--Kileleshwa.pdf", name)
}

func TestBrochureMissingProperty(t *testing.T) {
	svc := BrochureService{Loader: func(context.Context, int64) (listing.Property, error) {
		return listing.Property{}, domain.NotFoundError{Resource: "property"}
	}}
	_, _, err := svc.Generate(context.Background(), 1)
	require.True(t, domain.IsNotFound(err))
}
