package listing

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// DefaultPageSize is used when a page size is unset or not positive.
const DefaultPageSize = 12

// MaxPageSize caps page sizes accepted from query strings.
const MaxPageSize = 100

// BedroomsSentinel is the count from which a bedroom criterion reads as
// "N or more" (the "4+" choice).
const BedroomsSentinel = 4

// PriceRange is a half-open interval [Min, Max). An unset bound (invalid
// Money) leaves that side open.
type PriceRange struct {
	Min Money
	Max Money
}

// IsZero reports whether neither bound is set.
func (r PriceRange) IsZero() bool { return !r.Min.Valid() && !r.Max.Valid() }

// Contains reports whether price falls inside the range. An unset price is
// never contained in a constrained range.
func (r PriceRange) Contains(price Money) bool {
	if r.IsZero() {
		return true
	}
	if !price.Valid() {
		return false
	}
	if r.Min.Valid() && price.Cmp(r.Min) < 0 {
		return false
	}
	if r.Max.Valid() && price.Cmp(r.Max) >= 0 {
		return false
	}
	return true
}

// PriceBucket is a named price range offered by the search forms.
type PriceBucket struct {
	Name  string
	Label string
	Range PriceRange
}

// PriceBuckets are the named ranges in ascending order. Each upper bound is
// the next bucket's lower bound; the last bucket is unbounded.
var PriceBuckets = []PriceBucket{
	{Name: "under-50000", Label: "Under 50,000", Range: PriceRange{Max: NewMoney(50_000)}},
	{Name: "50000-100000", Label: "50,000 - 100,000", Range: PriceRange{Min: NewMoney(50_000), Max: NewMoney(100_000)}},
	{Name: "100000-200000", Label: "100,000 - 200,000", Range: PriceRange{Min: NewMoney(100_000), Max: NewMoney(200_000)}},
	{Name: "200000-plus", Label: "200,000+", Range: PriceRange{Min: NewMoney(200_000)}},
}

// LookupPriceBucket finds a bucket by name.
func LookupPriceBucket(name string) (PriceBucket, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, b := range PriceBuckets {
		if b.Name == name {
			return b, true
		}
	}
	return PriceBucket{}, false
}

// BucketFor returns the bucket a price falls into.
func BucketFor(price Money) (PriceBucket, bool) {
	for _, b := range PriceBuckets {
		if b.Range.Contains(price) {
			return b, true
		}
	}
	return PriceBucket{}, false
}

// BedroomCriterion matches a bedroom count exactly or as a floor.
type BedroomCriterion struct {
	Count   int
	AtLeast bool
}

// Bedrooms builds the criterion used by the search forms: counts below
// BedroomsSentinel match exactly, anything from the sentinel up is a floor.
func Bedrooms(n int) BedroomCriterion {
	return BedroomCriterion{Count: n, AtLeast: n >= BedroomsSentinel}
}

func BedroomsExact(n int) BedroomCriterion   { return BedroomCriterion{Count: n} }
func BedroomsAtLeast(n int) BedroomCriterion { return BedroomCriterion{Count: n, AtLeast: true} }

func (b BedroomCriterion) Matches(bedrooms int) bool {
	if b.AtLeast {
		return bedrooms >= b.Count
	}
	return bedrooms == b.Count
}

// String is the query form read by ParseBedrooms. An exact count at or above
// the sentinel is written "=N", since a bare "N" would read back as a floor.
func (b BedroomCriterion) String() string {
	n := strconv.Itoa(b.Count)
	switch {
	case b.AtLeast:
		return n + "+"
	case b.Count >= BedroomsSentinel:
		return "=" + n
	}
	return n
}

// ParseBedrooms reads "2", "4", "4+" or "=5". A bare value of the sentinel or
// above is a floor; "=" forces an exact match.
func ParseBedrooms(s string) (BedroomCriterion, bool) {
	s = strings.TrimSpace(s)
	exact := strings.HasPrefix(s, "=")
	plus := strings.HasSuffix(s, "+")
	if exact && plus {
		return BedroomCriterion{}, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(s, "="), "+"))
	if err != nil || n < 0 {
		return BedroomCriterion{}, false
	}
	switch {
	case plus:
		return BedroomsAtLeast(n), true
	case exact:
		return BedroomsExact(n), true
	}
	return Bedrooms(n), true
}

// Criteria is a partial filter: unset fields impose no constraint.
type Criteria struct {
	Locations    []string
	Types        []PropertyType
	ListingType  ListingType
	Price        PriceRange
	Bucket       string
	Bedrooms     *BedroomCriterion
	MinBathrooms int
	Availability Availability
	Featured     *bool
	Search       string
	Sort         SortKey
	Page         int
	PageSize     int
}

var (
	ErrInvalidPage     = errors.New("page must be >= 1")
	ErrInvalidPageSize = errors.New("page_size must be > 0")
	ErrUnknownBucket   = errors.New("unknown price bucket")
	ErrPageTooLarge    = errors.New("page is too large")
)

// Validate checks the paging invariants and named values.
func (c Criteria) Validate() error {
	if c.Page < 1 {
		return ErrInvalidPage
	}
	if c.PageSize <= 0 {
		return ErrInvalidPageSize
	}
	if c.Page > math.MaxInt/c.PageSize {
		return ErrPageTooLarge
	}
	if c.Bucket != "" {
		if _, ok := LookupPriceBucket(c.Bucket); !ok {
			return ErrUnknownBucket
		}
	}
	return nil
}

// IsZero reports whether the criteria constrain nothing. Paging and sort are
// not constraints.
func (c Criteria) IsZero() bool {
	return len(c.Locations) == 0 && len(c.Types) == 0 && c.ListingType == "" &&
		c.Price.IsZero() && c.Bucket == "" && c.Bedrooms == nil && c.MinBathrooms <= 0 &&
		c.Availability == "" && c.Featured == nil && strings.TrimSpace(c.Search) == ""
}

// WithDefaults fills paging defaults in place of invalid values.
func (c Criteria) WithDefaults() Criteria {
	if c.Page < 1 {
		c.Page = 1
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	return c
}

// ParseCriteria reads criteria from a query string. Repeated or comma
// separated values build the multi-select fields. Malformed numbers are
// dropped rather than rejected.
func ParseCriteria(q url.Values) Criteria {
	c := Criteria{
		Locations:   nonEmpty(q["location"]),
		ListingType: ListingType(strings.ToLower(strings.TrimSpace(q.Get("listing_type")))),
		Bucket:      strings.ToLower(strings.TrimSpace(q.Get("price_bucket"))),
		Search:      strings.TrimSpace(q.Get("search")),
		Sort:        SortKey(strings.TrimSpace(q.Get("sort"))),
	}
	for _, t := range splitMulti(q["property_type"]) {
		c.Types = append(c.Types, PropertyType(strings.ToLower(t)))
	}
	if m, err := ParseMoney(q.Get("min_price")); err == nil {
		c.Price.Min = m
	}
	if m, err := ParseMoney(q.Get("max_price")); err == nil {
		c.Price.Max = m
	}
	if b, ok := ParseBedrooms(q.Get("bedrooms")); ok {
		c.Bedrooms = &b
	}
	if n, err := strconv.Atoi(strings.TrimSpace(q.Get("bathrooms"))); err == nil && n > 0 {
		c.MinBathrooms = n
	}
	if a := Availability(strings.ToLower(strings.TrimSpace(q.Get("availability")))); a != "" {
		c.Availability = a
	}
	if f, err := strconv.ParseBool(strings.TrimSpace(q.Get("featured"))); err == nil {
		c.Featured = &f
	}
	if n, err := strconv.Atoi(strings.TrimSpace(q.Get("page"))); err == nil {
		c.Page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(q.Get("page_size"))); err == nil {
		c.PageSize = n
	}
	return c
}

// ValidatePaging rejects page or page_size values that are present in q but
// below 1. ParseCriteria alone cannot tell an explicit 0 from an absent value.
// Non-numeric values are left to ParseCriteria, which drops them.
func ValidatePaging(q url.Values) error {
	checks := []struct {
		key string
		err error
	}{{"page", ErrInvalidPage}, {"page_size", ErrInvalidPageSize}}
	for _, ch := range checks {
		n, err := strconv.Atoi(strings.TrimSpace(q.Get(ch.key)))
		if err == nil && n < 1 {
			return ch.err
		}
	}
	return nil
}

// Values encodes the criteria as a query string understood by ParseCriteria.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	for _, l := range c.Locations {
		v.Add("location", l)
	}
	for _, t := range c.Types {
		v.Add("property_type", string(t))
	}
	if c.ListingType != "" {
		v.Set("listing_type", string(c.ListingType))
	}
	if c.Price.Min.Valid() {
		v.Set("min_price", c.Price.Min.String())
	}
	if c.Price.Max.Valid() {
		v.Set("max_price", c.Price.Max.String())
	}
	if c.Bucket != "" {
		v.Set("price_bucket", c.Bucket)
	}
	if c.Bedrooms != nil {
		v.Set("bedrooms", c.Bedrooms.String())
	}
	if c.MinBathrooms > 0 {
		v.Set("bathrooms", strconv.Itoa(c.MinBathrooms))
	}
	if c.Availability != "" {
		v.Set("availability", string(c.Availability))
	}
	if c.Featured != nil {
		v.Set("featured", strconv.FormatBool(*c.Featured))
	}
	if c.Search != "" {
		v.Set("search", c.Search)
	}
	if c.Sort != "" {
		v.Set("sort", string(c.Sort))
	}
	if c.Page > 0 {
		v.Set("page", strconv.Itoa(c.Page))
	}
	if c.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(c.PageSize))
	}
	return v
}

// nonEmpty keeps trimmed, non-empty values. Locations are not split on
// commas since they usually contain one ("Kilimani, Nairobi").
func nonEmpty(raw []string) []string {
	var out []string
	for _, r := range raw {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func splitMulti(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
