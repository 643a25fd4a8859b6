package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"househunters/internal/domain"
	"househunters/internal/domain/models"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	_, store := newMemoryStore()
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	return AuthService{
		Admins: store.Admins,
		Secret: []byte("test-secret"),
		TTL:    time.Hour,
		Now:    func() time.Time { return now },
	}
}

func mustCreateAdmin(t *testing.T, svc AuthService, username string, role domain.Role) models.Admin {
	t.Helper()
	a, err := svc.CreateAdmin(context.Background(), models.RegisterAdminInput{
		Username: username, Email: username + "@example.com", Password: "Secr3tPass", Role: string(role),
	})
	require.NoError(t, err)
	return a
}

func TestLoginIssuesTokenThatAuthenticates(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)
	admin := mustCreateAdmin(t, svc, "jane", domain.RoleAdmin)

	res, err := svc.Login(ctx, models.LoginInput{Username: " jane ", Password: "Secr3tPass"})
	require.NoError(t, err)
	require.Equal(t, "bearer", res.TokenType)
	require.Equal(t, 3600, res.ExpiresIn)
	require.NotNil(t, res.Admin.LastLogin)

	got, err := svc.Authenticate(ctx, res.AccessToken)
	require.NoError(t, err)
	require.Equal(t, admin.ID, got.ID)
	require.Equal(t, domain.RoleAdmin, got.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)
	mustCreateAdmin(t, svc, "jane", domain.RoleAdmin)

	_, err := svc.Login(ctx, models.LoginInput{Username: "jane", Password: "wrong-password"})
	require.True(t, domain.IsUnauthorized(err))
	require.Equal(t, "Incorrect username or password", err.Error())

	_, err = svc.Login(ctx, models.LoginInput{Username: "nobody", Password: "whatever"})
	require.True(t, domain.IsUnauthorized(err))
}

func TestParseTokenRejectsExpiredAndForeignTokens(t *testing.T) {
	svc := newAuthService(t)
	admin := mustCreateAdmin(t, svc, "jane", domain.RoleAdmin)
	token, err := svc.IssueToken(admin)
	require.NoError(t, err)

	later := svc
	later.Now = func() time.Time { return time.Date(2025, 4, 1, 14, 0, 0, 0, time.UTC) }
	_, err = later.ParseToken(token)
	require.True(t, domain.IsUnauthorized(err))

	other := svc
	other.Secret = []byte("another-secret")
	_, err = other.ParseToken(token)
	require.True(t, domain.IsUnauthorized(err))
	require.Equal(t, "Could not validate credentials", err.Error())
}

func TestRegisterRequiresSuperAdminAndUniqueNames(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)
	root := mustCreateAdmin(t, svc, "root", domain.RoleSuperAdmin)
	in := models.RegisterAdminInput{Username: "editor1", Email: "Editor1@Example.com", Password: "Secr3tPass", Role: "editor"}

	_, err := svc.Register(ctx, domain.Principal{AdminID: 99, Role: domain.RoleAdmin}, in)
	require.True(t, domain.IsForbidden(err))

	actor := domain.Principal{AdminID: domain.ID(root.ID), Username: root.Username, Role: domain.RoleSuperAdmin}
	a, err := svc.Register(ctx, actor, in)
	require.NoError(t, err)
	require.Equal(t, domain.RoleEditor, a.Role)
	require.Equal(t, "editor1@example.com", a.Email)

	_, err = svc.Register(ctx, actor, in)
	require.True(t, domain.IsConflict(err))
	require.Equal(t, "Username already registered", err.Error())

	in.Username = "editor2"
	_, err = svc.Register(ctx, actor, in)
	require.Equal(t, "Email already registered", err.Error())

	in.Email, in.Password = "e2@example.com", "alllowercase1"
	_, err = svc.Register(ctx, actor, in)
	require.True(t, domain.IsValidation(err))
}

func TestDeleteAdminRules(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)
	root := mustCreateAdmin(t, svc, "root", domain.RoleSuperAdmin)
	jane := mustCreateAdmin(t, svc, "jane", domain.RoleAdmin)
	actor := domain.Principal{AdminID: domain.ID(root.ID), Role: domain.RoleSuperAdmin}

	err := svc.DeleteAdmin(ctx, domain.Principal{AdminID: domain.ID(jane.ID), Role: domain.RoleAdmin}, root.ID)
	require.True(t, domain.IsForbidden(err))

	err = svc.DeleteAdmin(ctx, actor, root.ID)
	require.True(t, domain.IsValidation(err))
	require.Equal(t, "Cannot delete your own account", err.Error())

	require.NoError(t, svc.DeleteAdmin(ctx, actor, jane.ID))
	err = svc.DeleteAdmin(ctx, actor, jane.ID)
	require.True(t, domain.IsNotFound(err))
	require.Equal(t, "Admin user not found", err.Error())

	admins, err := svc.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
}
