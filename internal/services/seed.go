package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"househunters/internal/domain"
	"househunters/internal/domain/models"
	"househunters/internal/repositories"
	"househunters/internal/utils"
	"househunters/listing"
)

var demoAmenities = []models.AmenityInput{
	{Name: "WiFi", Icon: "wifi"},
	{Name: "Parking", Icon: "car"},
	{Name: "Swimming Pool", Icon: "pool"},
	{Name: "Gym", Icon: "dumbbell"},
	{Name: "Security", Icon: "shield"},
	{Name: "Backup Generator", Icon: "zap"},
	{Name: "Borehole", Icon: "droplet"},
	{Name: "Garden", Icon: "tree"},
}

func ptr[T any](v T) *T { return &v }

var demoProperties = []models.PropertyInput{
	{
		Title: "Modern Apartment in Kilimani", Location: "Kilimani, Nairobi",
		Description:  "Spacious two bedroom apartment close to Yaya Centre with a balcony and lift access.",
		PropertyType: listing.TypeApartment, ListingType: listing.ListingRent, Price: listing.NewMoney(75_000),
		Bedrooms: 2, Bathrooms: 2, AreaSqm: ptr(110.0), Latitude: ptr(-1.2921), Longitude: ptr(36.7856),
		Featured: true,
	},
	{
		Title: "Family House in Karen", Location: "Karen, Nairobi",
		Description:  "Five bedroom maisonette on half an acre with a mature garden and staff quarters.",
		PropertyType: listing.TypeHouse, ListingType: listing.ListingBuy, Price: listing.NewMoney(45_000_000),
		Bedrooms: 5, Bathrooms: 4, AreaSqm: ptr(420.0), Latitude: ptr(-1.3197), Longitude: ptr(36.7073),
		Featured: true,
	},
	{
		Title: "Studio near Westlands", Location: "Westlands, Nairobi",
		Description:  "Furnished studio within walking distance of Sarit Centre, ideal for young professionals.",
		PropertyType: listing.TypeStudio, ListingType: listing.ListingRent, Price: listing.NewMoney(40_000),
		Bedrooms: 1, Bathrooms: 1, AreaSqm: ptr(38.0),
	},
	{
		Title: "Bedsitter in Ngara", Location: "Ngara, Nairobi",
		Description:  "Affordable bedsitter with a shared compound, reliable water and easy access to town.",
		PropertyType: listing.TypeBedsitter, ListingType: listing.ListingRent, Price: listing.NewMoney(12_000),
		Bathrooms: 1,
	},
	{
		Title: "Office Floor on Mombasa Road", Location: "Mombasa Road, Nairobi",
		Description:  "Open plan commercial floor with ample parking, fibre internet and a backup generator.",
		PropertyType: listing.TypeCommercial, ListingType: listing.ListingRent, Price: listing.NewMoney(180_000),
		Bathrooms: 2, AreaSqm: ptr(300.0),
	},
	{
		Title: "Townhouse in Lavington", Location: "Lavington, Nairobi",
		Description:  "Four bedroom townhouse in a gated community with a shared pool and gym.",
		PropertyType: listing.TypeHouse, ListingType: listing.ListingRent, Price: listing.NewMoney(250_000),
		Bedrooms: 4, Bathrooms: 3, AreaSqm: ptr(260.0), Featured: true,
	},
}

// SeedDemo fills an empty store with sample amenities and listings. A store
// that already holds properties is left alone.
func SeedDemo(ctx context.Context, store repositories.Store, log logrus.FieldLogger) error {
	_, total, err := store.Properties.List(ctx, listing.Criteria{Page: 1, PageSize: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	amen := AmenityService{Repo: store.Amenities, Log: log}
	ids := []int64{}
	for _, in := range demoAmenities {
		a, err := amen.Create(ctx, in)
		if domain.IsConflict(err) {
			a, err = store.Amenities.FindByName(ctx, in.Name)
		}
		if err != nil {
			return fmt.Errorf("seed amenity %s: %w", in.Name, err)
		}
		ids = append(ids, a.ID)
	}

	props := PropertyService{Repo: store.Properties, Log: log}
	for i, in := range demoProperties {
		in.AmenityIDs = []int64{ids[i%len(ids)], ids[(i+1)%len(ids)], ids[(i+4)%len(ids)]}
		if _, err := props.Create(ctx, in); err != nil {
			return fmt.Errorf("seed property %q: %w", in.Title, err)
		}
	}
	utils.LogEvent(log, "", "seed", "demo", fmt.Sprintf("amenities=%d properties=%d", len(ids), len(demoProperties)))
	return nil
}
