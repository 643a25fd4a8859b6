package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"househunters/listing"
)

// AdminService handles authentication and the token-protected admin calls.
// Calls are sent whether or not a token is stored; the server decides.
type AdminService struct {
	c *Client
}

// Login exchanges credentials for a token and stores it in the session.
func (s *AdminService) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	if strings.TrimSpace(username) == "" {
		return nil, &ValidationError{Field: "username", Message: "is required"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Message: "is required"}
	}
	var resp TokenResponse
	if err := s.c.post(ctx, "/admin/login", LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	if err := s.c.session.SetToken(resp.AccessToken); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	return &resp, nil
}

// Logout forgets the stored token. Nothing is sent to the server.
func (s *AdminService) Logout() error {
	return s.c.session.Clear()
}

// Me returns the admin the stored token belongs to.
func (s *AdminService) Me(ctx context.Context) (*AdminUser, error) {
	var a AdminUser
	if err := s.c.get(ctx, "/admin/me", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AdminService) CreateProperty(ctx context.Context, in PropertyInput) (*listing.Property, error) {
	var p listing.Property
	if err := s.c.post(ctx, "/admin/properties", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *AdminService) UpdateProperty(ctx context.Context, id int64, patch PropertyPatch) (*listing.Property, error) {
	var p listing.Property
	if err := s.c.put(ctx, "/admin/properties/"+strconv.FormatInt(id, 10), patch, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProperty removes a property together with its images.
func (s *AdminService) DeleteProperty(ctx context.Context, id int64) error {
	return s.c.del(ctx, "/admin/properties/"+strconv.FormatInt(id, 10))
}

func (s *AdminService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var st DashboardStats
	if err := s.c.get(ctx, "/admin/dashboard/stats", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]AdminUser, error) {
	var out []AdminUser
	if err := s.c.get(ctx, "/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterAdmin creates an admin account. Only super admins may call it.
func (s *AdminService) RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*AdminUser, error) {
	var a AdminUser
	if err := s.c.post(ctx, "/admin/register", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AdminService) DeleteAdmin(ctx context.Context, id int64) error {
	return s.c.del(ctx, "/admin/users/"+strconv.FormatInt(id, 10))
}
