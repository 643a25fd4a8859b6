package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"househunters/internal/domain"
	"househunters/internal/domain/models"
	"househunters/internal/metrics"
	"househunters/internal/repositories"
	"househunters/internal/utils"
)

const (
	msgBadCredentials = "Incorrect username or password"
	msgBadToken       = "Could not validate credentials"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles admin login, tokens and account management.
type AuthService struct {
	Admins    repositories.AdminRepository
	Secret    []byte
	TTL       time.Duration
	Now       func() time.Time
	Log       logrus.FieldLogger
	RequestID string
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AuthService) log(action, msg string) {
	utils.LogEvent(s.Log, s.RequestID, "auth", action, msg)
}

// HashPassword bcrypt-hashes a plain password.
func HashPassword(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.InternalError{Msg: "hash password", Err: err}
	}
	return string(h), nil
}

func (s AuthService) Login(ctx context.Context, in models.LoginInput) (models.TokenResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := validateInput(in); err != nil {
		return models.TokenResponse{}, err
	}
	admin, err := s.Admins.GetByUsername(ctx, in.Username)
	if err != nil {
		if domain.IsNotFound(err) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return models.TokenResponse{}, domain.UnauthorizedError{Msg: msgBadCredentials}
		}
		return models.TokenResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)) != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		s.log("login_rejected", "username="+in.Username)
		return models.TokenResponse{}, domain.UnauthorizedError{Msg: msgBadCredentials}
	}

	if err := s.Admins.TouchLogin(ctx, admin.ID); err != nil {
		return models.TokenResponse{}, err
	}
	now := s.now()
	admin.LastLogin = &now

	token, err := s.IssueToken(admin)
	if err != nil {
		return models.TokenResponse{}, err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.log("login", fmt.Sprintf("admin_id=%d", admin.ID))
	return models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.TTL.Seconds()),
		Admin:       admin,
	}, nil
}

// IssueToken signs an HS256 token for admin.
func (s AuthService) IssueToken(admin models.Admin) (string, error) {
	if len(s.Secret) == 0 {
		return "", domain.InternalError{Msg: "jwt secret not configured"}
	}
	now := s.now()
	claims := Claims{
		Username: admin.Username,
		Role:     string(admin.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(admin.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", domain.InternalError{Msg: "sign token", Err: err}
	}
	return signed, nil
}

// ParseToken verifies signature and expiry.
func (s AuthService) ParseToken(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return Claims{}, domain.UnauthorizedError{Msg: msgBadToken, Err: err}
	}
	return claims, nil
}

// Authenticate resolves a bearer token to an existing admin.
func (s AuthService) Authenticate(ctx context.Context, raw string) (models.Admin, error) {
	claims, err := s.ParseToken(raw)
	if err != nil {
		return models.Admin{}, err
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return models.Admin{}, domain.UnauthorizedError{Msg: msgBadToken, Err: err}
	}
	admin, err := s.Admins.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Admin{}, domain.UnauthorizedError{Msg: msgBadToken, Err: err}
		}
		return models.Admin{}, err
	}
	return admin, nil
}

// CreateAdmin validates and stores a new account. Callers enforce who may
// create accounts.
func (s AuthService) CreateAdmin(ctx context.Context, in models.RegisterAdminInput) (models.Admin, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateInput(in); err != nil {
		return models.Admin{}, err
	}
	role := domain.RoleAdmin
	if in.Role != "" {
		role, _ = domain.ParseRole(in.Role)
	}

	if _, err := s.Admins.GetByUsername(ctx, in.Username); err == nil {
		return models.Admin{}, domain.ConflictError{Msg: "Username already registered"}
	} else if !domain.IsNotFound(err) {
		return models.Admin{}, err
	}
	if _, err := s.Admins.GetByEmail(ctx, in.Email); err == nil {
		return models.Admin{}, domain.ConflictError{Msg: "Email already registered"}
	} else if !domain.IsNotFound(err) {
		return models.Admin{}, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return models.Admin{}, err
	}
	admin, err := s.Admins.Create(ctx, models.Admin{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return models.Admin{}, err
	}
	s.log("create_admin", fmt.Sprintf("admin_id=%d role=%s", admin.ID, admin.Role))
	return admin, nil
}

// Register is CreateAdmin restricted to super admins.
func (s AuthService) Register(ctx context.Context, actor domain.Principal, in models.RegisterAdminInput) (models.Admin, error) {
	if actor.Role != domain.RoleSuperAdmin {
		return models.Admin{}, domain.ForbiddenError{Msg: "Only super admins can create new admin users"}
	}
	return s.CreateAdmin(ctx, in)
}

func (s AuthService) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	return s.Admins.List(ctx)
}

func (s AuthService) DeleteAdmin(ctx context.Context, actor domain.Principal, id int64) error {
	if actor.Role != domain.RoleSuperAdmin {
		return domain.ForbiddenError{Msg: "Only super admins can delete admin users"}
	}
	if domain.ID(id) == actor.AdminID {
		return domain.ValidationError{Msg: "Cannot delete your own account"}
	}
	if err := s.Admins.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return domain.NotFoundError{Resource: "admin user", Err: err}
		}
		return err
	}
	s.log("delete_admin", fmt.Sprintf("admin_id=%d by=%d", id, actor.AdminID))
	return nil
}
