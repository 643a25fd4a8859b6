package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

func (s Secret) String() string               { return "[REDACTED]" }
func (s Secret) GoString() string             { return "[REDACTED]" }
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

const (
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

type Env struct {
	AppAddr     string
	GinMode     string
	AppName     string
	AppVersion  string
	Environment string

	StorageDriver string
	DatabaseDSN   Secret

	JWTSecret     Secret
	TokenTTL      time.Duration
	CORSOrigins   []string
	UploadDir     string
	PublicUploads string
	MaxUploadSize int64
	AllowedExts   []string
	LogLevel      string
	SeedDemo      bool
}

// LoadEnv reads .env (when present) and then the process environment.
// Unset values fall back to defaults; JWT_SECRET has none.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Env{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	env := Env{
		AppAddr:       envOr("APP_ADDR", ":8080"),
		GinMode:       envOr("GIN_MODE", ""),
		AppName:       envOr("APP_NAME", "House Hunters API"),
		AppVersion:    envOr("APP_VERSION", "1.0.0"),
		Environment:   envOr("ENVIRONMENT", "development"),
		StorageDriver: strings.ToLower(envOr("STORAGE_DRIVER", DriverMySQL)),
		DatabaseDSN:   Secret(envOr("DATABASE_DSN", "root:@tcp(127.0.0.1:3306)/house_hunters?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s")),
		JWTSecret:     Secret(envOr("JWT_SECRET", "")),
		UploadDir:     envOr("UPLOAD_DIR", "uploads/properties"),
		PublicUploads: envOr("UPLOAD_URL_PREFIX", "/uploads/properties"),
		LogLevel:      strings.ToLower(envOr("LOG_LEVEL", "info")),
		CORSOrigins: splitList(envOr("CORS_ALLOWED_ORIGINS",
			"http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")),
		AllowedExts: splitList(strings.ToLower(envOr("ALLOWED_EXTENSIONS", ".jpg,.jpeg,.png,.webp"))),
	}

	minutes, err := strconv.Atoi(envOr("ACCESS_TOKEN_EXPIRE_MINUTES", "10080"))
	if err != nil || minutes <= 0 {
		return Env{}, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be a positive integer")
	}
	env.TokenTTL = time.Duration(minutes) * time.Minute

	size, err := strconv.ParseInt(envOr("MAX_UPLOAD_SIZE", "5242880"), 10, 64)
	if err != nil || size <= 0 {
		return Env{}, fmt.Errorf("MAX_UPLOAD_SIZE must be a positive byte count")
	}
	env.MaxUploadSize = size

	env.SeedDemo, _ = strconv.ParseBool(envOr("SEED_DEMO", "false"))

	if err := env.validate(); err != nil {
		return Env{}, err
	}
	return env, nil
}

func (e Env) validate() error {
	if e.JWTSecret.Value() == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch e.StorageDriver {
	case DriverMySQL:
		if e.DatabaseDSN.Value() == "" {
			return errors.New("DATABASE_DSN is required for the mysql driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", e.StorageDriver)
	}
	return nil
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
