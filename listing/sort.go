package listing

import (
	"cmp"
	"slices"
)

// SortKey names an ordering of a property list.
type SortKey string

const (
	SortNewest       SortKey = "newest"
	SortOldest       SortKey = "oldest"
	SortPriceAsc     SortKey = "price_asc"
	SortPriceDesc    SortKey = "price_desc"
	SortBedroomsDesc SortKey = "bedrooms_desc"
)

// SortKeys lists the supported keys.
var SortKeys = []SortKey{SortNewest, SortOldest, SortPriceAsc, SortPriceDesc, SortBedroomsDesc}

func (k SortKey) Valid() bool { return slices.Contains(SortKeys, k) }

// Sort returns a sorted copy of props. The sort is stable; an empty or unknown
// key returns the input order unchanged. Properties without a valid price sort
// after priced ones in both price orders.
func Sort(props []Property, key SortKey) []Property {
	out := slices.Clone(props)
	var less func(a, b Property) int
	switch key {
	case SortNewest:
		less = func(a, b Property) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case SortOldest:
		less = func(a, b Property) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortPriceAsc:
		less = func(a, b Property) int { return comparePrice(a.Price, b.Price, false) }
	case SortPriceDesc:
		less = func(a, b Property) int { return comparePrice(a.Price, b.Price, true) }
	case SortBedroomsDesc:
		less = func(a, b Property) int { return cmp.Compare(b.Bedrooms, a.Bedrooms) }
	default:
		return out
	}
	slices.SortStableFunc(out, less)
	return out
}

func comparePrice(a, b Money, desc bool) int {
	switch {
	case !a.Valid() && !b.Valid():
		return 0
	case !a.Valid():
		return 1
	case !b.Valid():
		return -1
	}
	if desc {
		return b.Cmp(a)
	}
	return a.Cmp(b)
}
