package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"househunters/client"
	"househunters/listing"
)

func TestListFlagsCriteria(t *testing.T) {
	c, err := listFlags{
		locations: []string{"Kilimani"},
		types:     []string{"Apartment", "studio"},
		bedrooms:  "4+",
		maxPrice:  "100000",
		featured:  "true",
		sort:      "price_asc",
	}.criteria()
	require.NoError(t, err)
	require.Equal(t, []listing.PropertyType{listing.TypeApartment, listing.TypeStudio}, c.Types)
	require.True(t, c.Bedrooms.AtLeast)
	require.Equal(t, 4, c.Bedrooms.Count)
	require.Equal(t, listing.NewMoney(100_000), c.Price.Max)
	require.True(t, *c.Featured)
	require.Equal(t, 1, c.Page)
	require.Equal(t, listing.DefaultPageSize, c.PageSize)
}

func TestListFlagsRejectBadValues(t *testing.T) {
	for name, f := range map[string]listFlags{
		"type":     {types: []string{"castle"}},
		"listing":  {listingType: "lease"},
		"sort":     {sort: "cheapest"},
		"bedrooms": {bedrooms: "many"},
		"price":    {minPrice: "abc"},
		"bucket":   {bucket: "nope"},
		"featured": {featured: "maybe"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.criteria()
			require.Error(t, err)
		})
	}
}

func TestPropertiesListLocalFiltersInProcess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/properties", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total": 3, "page": 1, "page_size": 100, "total_pages": 1,
			"properties": []map[string]any{
				{"id": 1, "title": "Bedsitter", "location": "Ngara", "price": 30000, "listing_type": "rent"},
				{"id": 2, "title": "Apartment", "location": "Kilimani", "price": 75000, "listing_type": "rent"},
				{"id": 3, "title": "Studio", "location": "Kilimani", "price": 40000, "listing_type": "rent"},
			},
		})
	}))
	t.Cleanup(srv.Close)
	apiClient = client.New(srv.URL + "/api")
	flagFmt = "table"

	var out bytes.Buffer
	cmd := propertiesListCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--local", "--location", "kilimani", "--sort", "price_asc"})
	require.NoError(t, cmd.Execute())

	s := out.String()
	require.NotContains(t, s, "Bedsitter")
	require.Less(t, bytes.Index(out.Bytes(), []byte("Studio")), bytes.Index(out.Bytes(), []byte("Apartment")))
	require.Contains(t, s, "page 1 of 1, 2 total")
}

func TestPropertiesDeleteNeedsYes(t *testing.T) {
	deletes := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/admin/properties/5", r.URL.Path)
		deletes++
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	apiClient = client.New(srv.URL + "/api")

	var out bytes.Buffer
	cmd := propertiesDeleteCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"5"})
	require.NoError(t, cmd.Execute())
	require.Zero(t, deletes)
	require.Contains(t, out.String(), "--yes")

	out.Reset()
	cmd = propertiesDeleteCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"5", "--yes"})
	require.NoError(t, cmd.Execute())
	require.Equal(t, 1, deletes)
	require.Contains(t, out.String(), "deleted listing 5")
}
