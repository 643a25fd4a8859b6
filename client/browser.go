package client

import (
	"context"
	"sync"

	"househunters/listing"
)

// Browser backs the public listing pages. It fetches a property set once and
// then filters, sorts and pages it locally; every setter recomputes the view
// before returning. Changing a filter goes back to page 1.
//
// Concurrent Load calls are not cancelled against each other: whichever
// finishes last replaces the set.
type Browser struct {
	client *Client
	base   listing.Criteria

	mu       sync.Mutex
	criteria listing.Criteria
	all      []listing.Property
	view     listing.Page[listing.Property]
}

// NewBrowser creates a browser whose server-side fetch is narrowed by base
// (for example a rent-only page). pageSize <= 0 uses listing.DefaultPageSize.
func NewBrowser(c *Client, base listing.Criteria, pageSize int) *Browser {
	if pageSize <= 0 {
		pageSize = listing.DefaultPageSize
	}
	b := &Browser{
		client:   c,
		base:     base,
		criteria: listing.Criteria{Page: 1, PageSize: pageSize},
	}
	b.recompute()
	return b
}

// Load fetches every property matching the base criteria. On failure the
// previous set and view are kept.
func (b *Browser) Load(ctx context.Context) error {
	props, err := b.client.Properties.ListAll(ctx, b.base)
	if err != nil {
		return err
	}
	b.SetProperties(props)
	return nil
}

// SetProperties replaces the property set without a fetch.
func (b *Browser) SetProperties(props []listing.Property) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = props
	b.recompute()
}

// View returns the current page.
func (b *Browser) View() listing.Page[listing.Property] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}

// Cards returns the current page as cards.
func (b *Browser) Cards() []listing.Card {
	return listing.List(b.View().Items)
}

// Criteria returns a copy of the active criteria.
func (b *Browser) Criteria() listing.Criteria {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.criteria
}

func (b *Browser) SetLocations(locations ...string) {
	b.update(func(c *listing.Criteria) { c.Locations = locations })
}

func (b *Browser) SetTypes(types ...listing.PropertyType) {
	b.update(func(c *listing.Criteria) { c.Types = types })
}

// SetPriceBucket selects a named bucket; "" clears it.
func (b *Browser) SetPriceBucket(name string) {
	b.update(func(c *listing.Criteria) { c.Bucket = name })
}

func (b *Browser) SetPriceRange(r listing.PriceRange) {
	b.update(func(c *listing.Criteria) { c.Price = r })
}

// SetBedrooms applies listing.Bedrooms(n); a negative n clears it.
func (b *Browser) SetBedrooms(n int) {
	b.update(func(c *listing.Criteria) {
		if n < 0 {
			c.Bedrooms = nil
			return
		}
		crit := listing.Bedrooms(n)
		c.Bedrooms = &crit
	})
}

func (b *Browser) SetSearch(q string) {
	b.update(func(c *listing.Criteria) { c.Search = q })
}

func (b *Browser) SetListingType(t listing.ListingType) {
	b.update(func(c *listing.Criteria) { c.ListingType = t })
}

func (b *Browser) SetAvailability(a listing.Availability) {
	b.update(func(c *listing.Criteria) { c.Availability = a })
}

// SetSort changes the order and keeps the current page.
func (b *Browser) SetSort(k listing.SortKey) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.criteria.Sort = k
	b.recompute()
}

// SetPage moves to another page; values below 1 read as 1.
func (b *Browser) SetPage(page int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.criteria.Page = max(page, 1)
	b.recompute()
}

// Reset clears every filter and the sort, keeping the page size.
func (b *Browser) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.criteria = listing.Criteria{Page: 1, PageSize: b.criteria.PageSize}
	b.recompute()
}

func (b *Browser) update(fn func(c *listing.Criteria)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.criteria)
	b.criteria.Page = 1
	b.recompute()
}

// recompute must be called with mu held.
func (b *Browser) recompute() {
	filtered := listing.Filter(b.all, b.criteria)
	b.view = listing.Paginate(filtered, b.criteria.Page, b.criteria.PageSize)
}
