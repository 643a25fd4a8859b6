package client

import (
	"io"
	"strings"
	"time"

	"househunters/listing"
)

// ListResponse is one page of GET /properties.
type ListResponse struct {
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
	Properties []listing.Property `json:"properties"`
}

// Neighborhood is a location with the number of listings in it.
type Neighborhood struct {
	Name          string `json:"name"`
	PropertyCount int    `json:"property_count"`
}

// PropertyInput is the body of a create call.
type PropertyInput struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	PropertyType listing.PropertyType `json:"property_type"`
	ListingType  listing.ListingType  `json:"listing_type"`
	Price        listing.Money        `json:"price"`
	Location     string               `json:"location"`
	Latitude     *float64             `json:"latitude,omitempty"`
	Longitude    *float64             `json:"longitude,omitempty"`
	Bedrooms     int                  `json:"bedrooms"`
	Bathrooms    int                  `json:"bathrooms"`
	AreaSqm      *float64             `json:"area_sqm,omitempty"`
	Featured     bool                 `json:"featured"`
	Availability listing.Availability `json:"availability,omitempty"`
	AmenityIDs   []int64              `json:"amenity_ids,omitempty"`
}

// InputFromProperty copies the editable fields of an existing property.
func InputFromProperty(p listing.Property) PropertyInput {
	in := PropertyInput{
		Title:        p.Title,
		Description:  p.Description,
		PropertyType: p.PropertyType,
		ListingType:  p.ListingType,
		Price:        p.Price,
		Location:     p.Location,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		AreaSqm:      p.AreaSqm,
		Featured:     p.Featured,
		Availability: p.Availability,
	}
	for _, a := range p.Amenities {
		in.AmenityIDs = append(in.AmenityIDs, a.ID)
	}
	return in
}

// Validate checks the required fields before anything is sent.
func (in PropertyInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return &ValidationError{Field: "title", Message: "is required"}
	case strings.TrimSpace(in.Description) == "":
		return &ValidationError{Field: "description", Message: "is required"}
	case strings.TrimSpace(in.Location) == "":
		return &ValidationError{Field: "location", Message: "is required"}
	case !in.PropertyType.Valid():
		return &ValidationError{Field: "property_type", Message: "must be one of house, apartment, studio, bedsitter, commercial"}
	case !in.ListingType.Valid():
		return &ValidationError{Field: "listing_type", Message: "must be rent or buy"}
	case !in.Price.IsPositive():
		return &ValidationError{Field: "price", Message: "must be a positive amount"}
	case in.Availability != "" && !in.Availability.Valid():
		return &ValidationError{Field: "availability", Message: "is not a known status"}
	}
	return nil
}

// Patch turns a full input into an update body that sets every field.
func (in PropertyInput) Patch() PropertyPatch {
	p := PropertyPatch{
		Title:        &in.Title,
		Description:  &in.Description,
		PropertyType: &in.PropertyType,
		ListingType:  &in.ListingType,
		Price:        &in.Price,
		Location:     &in.Location,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Bedrooms:     &in.Bedrooms,
		Bathrooms:    &in.Bathrooms,
		AreaSqm:      in.AreaSqm,
		Featured:     &in.Featured,
		AmenityIDs:   in.AmenityIDs,
	}
	if in.Availability != "" {
		p.Availability = &in.Availability
	}
	if p.AmenityIDs == nil {
		p.AmenityIDs = []int64{}
	}
	return p
}

// PropertyPatch is the body of an update call; nil fields are left as they
// are on the server.
type PropertyPatch struct {
	Title        *string               `json:"title,omitempty"`
	Description  *string               `json:"description,omitempty"`
	PropertyType *listing.PropertyType `json:"property_type,omitempty"`
	ListingType  *listing.ListingType  `json:"listing_type,omitempty"`
	Price        *listing.Money        `json:"price,omitempty"`
	Location     *string               `json:"location,omitempty"`
	Latitude     *float64              `json:"latitude,omitempty"`
	Longitude    *float64              `json:"longitude,omitempty"`
	Bedrooms     *int                  `json:"bedrooms,omitempty"`
	Bathrooms    *int                  `json:"bathrooms,omitempty"`
	AreaSqm      *float64              `json:"area_sqm,omitempty"`
	Featured     *bool                 `json:"featured,omitempty"`
	Availability *listing.Availability `json:"availability,omitempty"`
	AmenityIDs   []int64               `json:"amenity_ids,omitempty"`
}

// AdminUser is an admin account as returned by the API.
type AdminUser struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// LoginRequest holds admin credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	Admin       AdminUser `json:"admin"`
}

// RegisterAdminRequest creates a new admin account.
type RegisterAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// TypeCount and LocationCount are dashboard breakdown rows.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// DashboardStats are the admin dashboard aggregates.
type DashboardStats struct {
	TotalProperties      int             `json:"total_properties"`
	AvailableProperties  int             `json:"available_properties"`
	RentedProperties     int             `json:"rented_properties"`
	SoldProperties       int             `json:"sold_properties"`
	FeaturedProperties   int             `json:"featured_properties"`
	PropertiesByType     []TypeCount     `json:"properties_by_type"`
	PropertiesByLocation []LocationCount `json:"properties_by_location"`
}

// AmenityInput creates an amenity; for updates nil fields are kept.
type AmenityInput struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

type AmenityPatch struct {
	Name *string `json:"name,omitempty"`
	Icon *string `json:"icon,omitempty"`
}

// FileUpload is one file to send in a multipart upload.
type FileUpload struct {
	Name    string
	Content io.Reader
}

// UploadedImage describes a stored image.
type UploadedImage struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}

// UploadResult is the response of the multi-file upload.
type UploadResult struct {
	Message string          `json:"message"`
	Images  []UploadedImage `json:"images"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status     string `json:"status"`
	Database   string `json:"database"`
	APIVersion string `json:"api_version"`
}

// InfoResponse is returned by GET /api/info.
type InfoResponse struct {
	AppName     string            `json:"app_name"`
	Version     string            `json:"version"`
	Environment string            `json:"environment"`
	Endpoints   map[string]string `json:"endpoints"`
	Features    []string          `json:"features"`
}
