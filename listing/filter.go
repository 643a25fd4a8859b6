package listing

import "strings"

// Filter returns the properties that satisfy every constraint in c, in their
// original order. When c.Sort is set the result is sorted stably afterwards.
// The input slice is never modified.
func Filter(props []Property, c Criteria) []Property {
	out := make([]Property, 0, len(props))
	for _, p := range props {
		if Match(p, c) {
			out = append(out, p)
		}
	}
	if c.Sort != "" {
		out = Sort(out, c.Sort)
	}
	return out
}

// Match reports whether a single property satisfies c. Fields combine with
// AND; the Locations and Types lists match when any entry matches.
func Match(p Property, c Criteria) bool {
	if len(c.Locations) > 0 && !matchAnyLocation(p.Location, c.Locations) {
		return false
	}
	if len(c.Types) > 0 && !matchAnyType(p.PropertyType, c.Types) {
		return false
	}
	if c.ListingType != "" && p.ListingType != c.ListingType {
		return false
	}
	if !c.Price.Contains(p.Price) {
		return false
	}
	if c.Bucket != "" {
		b, ok := LookupPriceBucket(c.Bucket)
		if !ok || !b.Range.Contains(p.Price) {
			return false
		}
	}
	if c.Bedrooms != nil && !c.Bedrooms.Matches(p.Bedrooms) {
		return false
	}
	if c.MinBathrooms > 0 && p.Bathrooms < c.MinBathrooms {
		return false
	}
	if c.Availability != "" && p.Availability != c.Availability {
		return false
	}
	if c.Featured != nil && p.Featured != *c.Featured {
		return false
	}
	return matchSearch(p, c.Search)
}

func matchAnyLocation(location string, wanted []string) bool {
	loc := strings.ToLower(location)
	for _, w := range wanted {
		if strings.Contains(loc, strings.ToLower(strings.TrimSpace(w))) {
			return true
		}
	}
	return false
}

func matchAnyType(t PropertyType, wanted []PropertyType) bool {
	for _, w := range wanted {
		if strings.EqualFold(string(t), string(w)) {
			return true
		}
	}
	return false
}

// matchSearch is a case-insensitive substring test over title, location and
// description.
func matchSearch(p Property, search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Location), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}
