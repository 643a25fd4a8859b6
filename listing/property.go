// Package listing holds the property model and the pure filtering, sorting,
// pagination and presentation helpers shared by the server and the client.
package listing

import (
	"slices"
	"strings"
	"time"
)

// PropertyType classifies a listing.
type PropertyType string

const (
	TypeHouse      PropertyType = "house"
	TypeApartment  PropertyType = "apartment"
	TypeStudio     PropertyType = "studio"
	TypeBedsitter  PropertyType = "bedsitter"
	TypeCommercial PropertyType = "commercial"
)

// PropertyTypes lists every known property type in display order.
var PropertyTypes = []PropertyType{TypeHouse, TypeApartment, TypeStudio, TypeBedsitter, TypeCommercial}

// Valid reports whether t is a known property type.
func (t PropertyType) Valid() bool {
	return slices.Contains(PropertyTypes, t)
}

// ListingType says whether a property is offered for rent or for sale.
type ListingType string

const (
	ListingRent ListingType = "rent"
	ListingBuy  ListingType = "buy"
)

func (t ListingType) Valid() bool {
	return t == ListingRent || t == ListingBuy
}

// Availability is the commercial status of a listing.
type Availability string

const (
	Available Availability = "available"
	Rented    Availability = "rented"
	Sold      Availability = "sold"
	Pending   Availability = "pending"
)

func (a Availability) Valid() bool {
	switch a {
	case Available, Rented, Sold, Pending:
		return true
	}
	return false
}

// PropertyImage is one picture attached to a property.
type PropertyImage struct {
	ID           int64  `json:"id"`
	ImageURL     string `json:"image_url"`
	IsPrimary    bool   `json:"is_primary"`
	DisplayOrder int    `json:"display_order"`
}

// Amenity is a feature a property can be linked to (WiFi, Parking, ...).
type Amenity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// Property is a single listing as served by the API.
type Property struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	PropertyType PropertyType    `json:"property_type"`
	ListingType  ListingType     `json:"listing_type"`
	Price        Money           `json:"price"`
	Location     string          `json:"location"`
	Latitude     *float64        `json:"latitude,omitempty"`
	Longitude    *float64        `json:"longitude,omitempty"`
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	AreaSqm      *float64        `json:"area_sqm,omitempty"`
	Featured     bool            `json:"featured"`
	Availability Availability    `json:"availability"`
	Images       []PropertyImage `json:"images"`
	Amenities    []Amenity       `json:"amenities"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

// OrderedImages returns the images sorted by display order. Ties keep their
// stored order.
func (p Property) OrderedImages() []PropertyImage {
	out := slices.Clone(p.Images)
	slices.SortStableFunc(out, func(a, b PropertyImage) int {
		return a.DisplayOrder - b.DisplayOrder
	})
	return out
}

// PrimaryImage returns the image flagged primary or, when none is flagged,
// the first image in display order. ok is false for a property without images.
func (p Property) PrimaryImage() (img PropertyImage, ok bool) {
	ordered := p.OrderedImages()
	if len(ordered) == 0 {
		return PropertyImage{}, false
	}
	for _, im := range ordered {
		if im.IsPrimary {
			return im, true
		}
	}
	return ordered[0], true
}

// HasCoordinates reports whether the property can be placed on a map.
func (p Property) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// HasAmenity reports whether the property is linked to an amenity with the
// given name, compared case-insensitively.
func (p Property) HasAmenity(name string) bool {
	for _, a := range p.Amenities {
		if strings.EqualFold(a.Name, name) {
			return true
		}
	}
	return false
}
