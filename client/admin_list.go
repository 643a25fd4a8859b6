package client

import (
	"context"
	"sync"

	"househunters/listing"
)

// AdminPageSize is the page size of the admin property table.
const AdminPageSize = 20

// AdminList is the admin property table. Filtering and paging happen on the
// server; Reload replaces the rows only after a successful response.
type AdminList struct {
	client *Client

	mu       sync.Mutex
	criteria listing.Criteria
	result   ListResponse
}

func NewAdminList(c *Client) *AdminList {
	return &AdminList{
		client:   c,
		criteria: listing.Criteria{Page: 1, PageSize: AdminPageSize},
	}
}

// Reload fetches the current page.
func (l *AdminList) Reload(ctx context.Context) error {
	l.mu.Lock()
	criteria := l.criteria
	l.mu.Unlock()

	resp, err := l.client.Properties.List(ctx, criteria)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.result = *resp
	return nil
}

func (l *AdminList) SetSearch(q string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.criteria.Search = q
	l.criteria.Page = 1
}

func (l *AdminList) SetListingType(t listing.ListingType) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.criteria.ListingType = t
	l.criteria.Page = 1
}

func (l *AdminList) SetAvailability(a listing.Availability) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.criteria.Availability = a
	l.criteria.Page = 1
}

func (l *AdminList) SetPage(page int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.criteria.Page = max(page, 1)
}

// Rows returns the properties of the last successful reload.
func (l *AdminList) Rows() []listing.Property {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.result.Properties
}

// Totals returns the total count and page count of the last reload.
func (l *AdminList) Totals() (total, pages int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.result.Total, l.result.TotalPages
}

// Page returns the page the next Reload will fetch.
func (l *AdminList) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.criteria.Page
}
