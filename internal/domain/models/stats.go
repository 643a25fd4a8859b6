package models

// Neighborhood is a location with the number of listings in it.
type Neighborhood struct {
	Name          string `json:"name"`
	PropertyCount int    `json:"property_count"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// DashboardStats are the admin dashboard aggregates. Locations are capped at
// the ten busiest.
type DashboardStats struct {
	TotalProperties      int             `json:"total_properties"`
	AvailableProperties  int             `json:"available_properties"`
	RentedProperties     int             `json:"rented_properties"`
	SoldProperties       int             `json:"sold_properties"`
	FeaturedProperties   int             `json:"featured_properties"`
	PropertiesByType     []TypeCount     `json:"properties_by_type"`
	PropertiesByLocation []LocationCount `json:"properties_by_location"`
}

// TopLocations is the cap on PropertiesByLocation.
const TopLocations = 10
