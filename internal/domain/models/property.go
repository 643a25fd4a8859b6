package models

import (
	"househunters/listing"
)

// PropertyInput is the create body. Price accepts numbers or formatted strings.
type PropertyInput struct {
	Title        string               `json:"title" validate:"required,min=5,max=255"`
	Description  string               `json:"description" validate:"required,min=20"`
	PropertyType listing.PropertyType `json:"property_type" validate:"required,oneof=house apartment studio bedsitter commercial"`
	ListingType  listing.ListingType  `json:"listing_type" validate:"required,oneof=rent buy"`
	Price        listing.Money        `json:"price" validate:"gt=0"`
	Location     string               `json:"location" validate:"required,min=3,max=255"`
	Latitude     *float64             `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64             `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Bedrooms     int                  `json:"bedrooms" validate:"gte=0,lte=20"`
	Bathrooms    int                  `json:"bathrooms" validate:"gte=0,lte=20"`
	AreaSqm      *float64             `json:"area_sqm" validate:"omitempty,gt=0"`
	Featured     bool                 `json:"featured"`
	Availability listing.Availability `json:"availability" validate:"omitempty,oneof=available rented sold pending"`
	AmenityIDs   []int64              `json:"amenity_ids"`
}

// PropertyPatch is the update body; nil fields stay untouched and a non-nil
// AmenityIDs replaces the amenity links.
type PropertyPatch struct {
	Title        *string               `json:"title" validate:"omitempty,min=5,max=255"`
	Description  *string               `json:"description" validate:"omitempty,min=20"`
	PropertyType *listing.PropertyType `json:"property_type" validate:"omitempty,oneof=house apartment studio bedsitter commercial"`
	ListingType  *listing.ListingType  `json:"listing_type" validate:"omitempty,oneof=rent buy"`
	Price        *listing.Money        `json:"price" validate:"omitempty,gt=0"`
	Location     *string               `json:"location" validate:"omitempty,min=3,max=255"`
	Latitude     *float64              `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64              `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Bedrooms     *int                  `json:"bedrooms" validate:"omitempty,gte=0,lte=20"`
	Bathrooms    *int                  `json:"bathrooms" validate:"omitempty,gte=0,lte=20"`
	AreaSqm      *float64              `json:"area_sqm" validate:"omitempty,gt=0"`
	Featured     *bool                 `json:"featured"`
	Availability *listing.Availability `json:"availability" validate:"omitempty,oneof=available rented sold pending"`
	AmenityIDs   []int64               `json:"amenity_ids"`
}

// Apply copies the set fields of patch onto p.
func (patch PropertyPatch) Apply(p *listing.Property) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.PropertyType != nil {
		p.PropertyType = *patch.PropertyType
	}
	if patch.ListingType != nil {
		p.ListingType = *patch.ListingType
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.Latitude != nil {
		p.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		p.Longitude = patch.Longitude
	}
	if patch.Bedrooms != nil {
		p.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		p.Bathrooms = *patch.Bathrooms
	}
	if patch.AreaSqm != nil {
		p.AreaSqm = patch.AreaSqm
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	if patch.Availability != nil {
		p.Availability = *patch.Availability
	}
}

// ToProperty builds a new property record from a create body.
func (in PropertyInput) ToProperty() listing.Property {
	p := listing.Property{
		Title:        in.Title,
		Description:  in.Description,
		PropertyType: in.PropertyType,
		ListingType:  in.ListingType,
		Price:        in.Price,
		Location:     in.Location,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		AreaSqm:      in.AreaSqm,
		Featured:     in.Featured,
		Availability: in.Availability,
	}
	if p.Availability == "" {
		p.Availability = listing.Available
	}
	return p
}

type AmenityInput struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
	Icon string `json:"icon" validate:"max=50"`
}

type AmenityPatch struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=100"`
	Icon *string `json:"icon" validate:"omitempty,max=50"`
}

// ListResult is one page of the public property listing.
type ListResult struct {
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
	Properties []listing.Property `json:"properties"`
}

// UploadedImage is the per-image part of an upload response.
type UploadedImage struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}
