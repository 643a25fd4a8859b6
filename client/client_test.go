package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"househunters/listing"
)

// newTestServer creates a test server that routes to the given handler map.
// Keys are "METHOD /path", values are handler funcs.
func newTestServer(t *testing.T, routes map[string]http.HandlerFunc, opts ...Option) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := New(srv.URL+"/api", opts...)
	return srv, c
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func TestHealthOutsideAPIPrefix(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /health": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, HealthResponse{Status: "healthy", Database: "connected", APIVersion: "1.0.0"})
		},
	})
	resp, err := c.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, "healthy", resp.Status)
	require.Equal(t, "1.0.0", resp.APIVersion)
}

func TestListSendsCriteria(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/properties": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			require.Equal(t, "rent", q.Get("listing_type"))
			require.Equal(t, "4+", q.Get("bedrooms"))
			require.Equal(t, "2", q.Get("page"))
			require.Empty(t, r.Header.Get("Authorization"))
			jsonResponse(w, 200, map[string]any{
				"total": 13, "page": 2, "page_size": 12, "total_pages": 2,
				"properties": []map[string]any{{"id": 13, "title": "Loft", "price": "45000.00"}},
			})
		},
	})
	beds := listing.Bedrooms(4)
	resp, err := c.Properties.List(context.Background(), listing.Criteria{
		ListingType: listing.ListingRent, Bedrooms: &beds, Page: 2, PageSize: 12,
	})
	require.NoError(t, err)
	require.Equal(t, 13, resp.Total)
	require.Len(t, resp.Properties, 1)
	require.Equal(t, listing.NewMoney(45_000), resp.Properties[0].Price)
}

func TestListAllWalksPages(t *testing.T) {
	calls := 0
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/properties": func(w http.ResponseWriter, r *http.Request) {
			calls++
			page := r.URL.Query().Get("page")
			require.Equal(t, "100", r.URL.Query().Get("page_size"))
			id := map[string]int{"1": 1, "2": 2}[page]
			jsonResponse(w, 200, map[string]any{
				"total": 2, "page": id, "page_size": 100, "total_pages": 2,
				"properties": []map[string]any{{"id": id}},
			})
		},
	})
	props, err := c.Properties.ListAll(context.Background(), listing.Criteria{})
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.Len(t, props, 2)
}

func TestErrorDetailIsSurfaced(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/properties/99": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 404, map[string]any{"detail": "Property not found", "code": "not_found", "request_id": "rid-1"})
		},
		"GET /api/properties/100": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(502)
			io.WriteString(w, "<html>bad gateway</html>") //nolint:errcheck
		},
	})

	_, err := c.Properties.Get(context.Background(), 99)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Property not found", apiErr.Message)
	require.Equal(t, "rid-1", apiErr.RequestID)
	require.True(t, IsNotFound(err))
	require.Equal(t, KindAPI, ErrorKind(err))

	_, err = c.Properties.Get(context.Background(), 100)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, GenericErrorMessage, apiErr.Message)
	require.Equal(t, KindAPIUnstructured, ErrorKind(err))
}

func TestAdminCallWithoutTokenIsStillSent(t *testing.T) {
	hit := false
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"DELETE /api/admin/properties/5": func(w http.ResponseWriter, r *http.Request) {
			hit = true
			require.Empty(t, r.Header.Get("Authorization"))
			w.Header().Set("WWW-Authenticate", "Bearer")
			jsonResponse(w, 401, map[string]any{"detail": "Not authenticated"})
		},
	})
	require.False(t, c.Session().IsAuthenticated())

	err := c.Admin.DeleteProperty(context.Background(), 5)
	require.True(t, hit)
	require.True(t, IsUnauthorized(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Not authenticated", apiErr.Message)
}

func TestLoginStoresTokenAndSendsBearer(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/admin/login": func(w http.ResponseWriter, r *http.Request) {
			var req LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "admin", req.Username)
			jsonResponse(w, 200, TokenResponse{AccessToken: "tok-123", TokenType: "bearer", ExpiresIn: 3600, Admin: AdminUser{ID: 1, Username: "admin"}})
		},
		"GET /api/admin/me": func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			jsonResponse(w, 200, AdminUser{ID: 1, Username: "admin", Role: "super_admin"})
		},
		"DELETE /api/admin/amenities/3": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
	})
	ctx := context.Background()

	_, err := c.Admin.Login(ctx, "", "x")
	require.Equal(t, KindValidation, ErrorKind(err))

	tok, err := c.Admin.Login(ctx, "admin", "Secret123")
	require.NoError(t, err)
	require.Equal(t, "tok-123", tok.AccessToken)
	require.True(t, c.Session().IsAuthenticated())

	me, err := c.Admin.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "super_admin", me.Role)

	require.NoError(t, c.Amenities.Delete(ctx, 3))

	require.NoError(t, c.Admin.Logout())
	require.False(t, c.Session().IsAuthenticated())
}

func TestUploadUsesMultipart(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/admin/upload/property-image/7": func(w http.ResponseWriter, r *http.Request) {
			require.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
			require.NoError(t, r.ParseMultipartForm(1<<20))
			require.Equal(t, "true", r.FormValue("is_primary"))
			f, hdr, err := r.FormFile("file")
			require.NoError(t, err)
			defer f.Close()
			require.Equal(t, "front.jpg", hdr.Filename)
			jsonResponse(w, 200, map[string]any{"message": "Image uploaded successfully", "image": map[string]any{"id": 11, "url": "/uploads/properties/7/x.jpg", "is_primary": true}})
		},
		"POST /api/admin/upload/property-images/7": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			require.Len(t, r.MultipartForm.File["files"], 2)
			jsonResponse(w, 200, UploadResult{Message: "Uploaded 2 images successfully", Images: []UploadedImage{{ID: 12}, {ID: 13}}})
		},
		"PUT /api/admin/upload/property-image/12/set-primary": func(w http.ResponseWriter, r *http.Request) {
			jsonResponse(w, 200, map[string]string{"message": "Primary image updated"})
		},
	})
	ctx := context.Background()

	img, err := c.Uploads.UploadImage(ctx, 7, FileUpload{Name: "/tmp/front.jpg", Content: strings.NewReader("jpeg")}, true)
	require.NoError(t, err)
	require.Equal(t, int64(11), img.ID)
	require.True(t, img.IsPrimary)

	res, err := c.Uploads.UploadImages(ctx, 7, []FileUpload{
		{Name: "a.jpg", Content: strings.NewReader("a")},
		{Name: "b.jpg", Content: strings.NewReader("b")},
	})
	require.NoError(t, err)
	require.Len(t, res.Images, 2)

	_, err = c.Uploads.UploadImages(ctx, 7, nil)
	require.Equal(t, KindValidation, ErrorKind(err))

	require.NoError(t, c.Uploads.SetPrimary(ctx, 12))
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(srv.URL+"/api", WithTimeout(time.Second))

	_, err := c.Amenities.List(context.Background())
	var te *TransportError
	require.ErrorAs(t, err, &te)
	require.Equal(t, KindTransport, ErrorKind(err))
	require.Equal(t, KindOther, ErrorKind(errors.New("x")))
	require.Equal(t, KindNone, ErrorKind(nil))
}

func TestHomeFeed(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/properties/featured/list": func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "6", r.URL.Query().Get("limit"))
			jsonResponse(w, 200, []map[string]any{{"id": 1, "featured": true}})
		},
		"GET /api/properties/trending/list": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, []map[string]any{{"id": 2}, {"id": 3}})
		},
		"GET /api/neighborhoods": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, []Neighborhood{{Name: "Kilimani", PropertyCount: 4}})
		},
	})
	feed, err := c.HomeFeed(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, feed.Featured, 1)
	require.Len(t, feed.Trending, 2)
	require.Equal(t, "Kilimani", feed.Neighborhoods[0].Name)
}

func TestHomeFeedFailsAsAWhole(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/properties/featured/list": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, []any{})
		},
		"GET /api/properties/trending/list": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 500, map[string]string{"detail": "boom"})
		},
		"GET /api/neighborhoods": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, []any{})
		},
	})
	feed, err := c.HomeFeed(context.Background(), 6)
	require.Nil(t, feed)
	require.Error(t, err)
}

func TestBrochureDownload(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/properties/4/brochure": func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="brochure-4-garden-flat.pdf"`)
			io.WriteString(w, "%PDF-1.3") //nolint:errcheck
		},
	})
	body, name, err := c.Properties.Brochure(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, "brochure-4-garden-flat.pdf", name)
	require.Equal(t, "%PDF-1.3", string(body))
}
