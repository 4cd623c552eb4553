package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// devCSRFKey is the fallback signing key outside production.
const devCSRFKey = "dev-only-32-byte-csrf-signing-kk"

// Config carries everything the console needs at startup. Values resolve
// in three layers: built-in defaults, then an optional YAML file, then
// environment variables. A .env file in the working directory is folded
// into the environment before resolution.
type Config struct {
	ListenAddr     string   `yaml:"listen_addr"`
	Environment    string   `yaml:"environment"`
	StaticDir      string   `yaml:"static_dir"`
	DatabasePath   string   `yaml:"database_path"`
	CSRFKey        string   `yaml:"csrf_key"`
	TrustedOrigins []string `yaml:"trusted_origins"`
	AdminEmail     string   `yaml:"admin_email"`
	AdminPassword  string   `yaml:"admin_password"`

	GymAPI GymAPI `yaml:"gym_api"`
	Email  Email  `yaml:"email"`
	UI     UI     `yaml:"ui"`
}

// GymAPI configures the upstream gym API client. Either a static bearer
// token or OAuth2 client credentials must be set; the token wins when both
// are present.
type GymAPI struct {
	BaseURL      string        `yaml:"base_url"`
	AuthToken    string        `yaml:"auth_token"`
	TokenURL     string        `yaml:"token_url"`
	ClientID     string        `yaml:"client_id"`
	ClientSecret string        `yaml:"client_secret"`
	Scopes       []string      `yaml:"scopes"`
	Timeout      time.Duration `yaml:"timeout"`
}

// Email configures renewal reminder delivery via Resend.
type Email struct {
	ResendKey string `yaml:"resend_key"`
	From      string `yaml:"from"`
	ReplyTo   string `yaml:"reply_to"`
	GymName   string `yaml:"gym_name"`
}

// UI configures page-view behavior.
type UI struct {
	PageSize         int           `yaml:"page_size"`
	DebounceInterval time.Duration `yaml:"debounce_interval"`
	ExpiringDays     int           `yaml:"expiring_days"`
}

// Validation errors.
var (
	ErrMissingBaseURL    = errors.New("gym API base URL is required")
	ErrMissingCredential = errors.New("gym API auth token or OAuth2 client credentials are required")
	ErrWeakCSRFKey       = errors.New("production requires a 32-byte GYMCONSOLE_CSRF_KEY")
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenAddr:   ":8080",
		Environment:  EnvDevelopment,
		StaticDir:    "static",
		DatabasePath: "gymconsole.db",
		CSRFKey:      devCSRFKey,
		AdminEmail:   "admin@gym.example",
		GymAPI: GymAPI{
			BaseURL: "http://localhost:8081/api",
			Timeout: 10 * time.Second,
		},
		Email: Email{
			From:    "Gym Console <noreply@gym.example>",
			GymName: "the gym",
		},
		UI: UI{
			PageSize:         10,
			DebounceInterval: 300 * time.Millisecond,
			ExpiringDays:     30,
		},
	}
}

// Load resolves the configuration: .env file, defaults, optional YAML file
// named by GYMCONSOLE_CONFIG, then environment overrides.
// POST: Returns a validated Config or an error naming the first problem
func Load() (Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("GYMCONSOLE_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, c)
}

func (c *Config) applyEnv() {
	setString(&c.ListenAddr, "GYMCONSOLE_ADDR")
	setString(&c.Environment, "GYMCONSOLE_ENV")
	setString(&c.StaticDir, "GYMCONSOLE_STATIC")
	setString(&c.DatabasePath, "GYMCONSOLE_DB")
	setString(&c.CSRFKey, "GYMCONSOLE_CSRF_KEY")
	setStrings(&c.TrustedOrigins, "GYMCONSOLE_TRUSTED_ORIGINS")
	setString(&c.AdminEmail, "GYMCONSOLE_ADMIN_EMAIL")
	setString(&c.AdminPassword, "GYMCONSOLE_ADMIN_PASSWORD")

	setString(&c.GymAPI.BaseURL, "GYMCONSOLE_API_BASE_URL")
	setString(&c.GymAPI.AuthToken, "GYMCONSOLE_API_TOKEN")
	setString(&c.GymAPI.TokenURL, "GYMCONSOLE_OAUTH_TOKEN_URL")
	setString(&c.GymAPI.ClientID, "GYMCONSOLE_OAUTH_CLIENT_ID")
	setString(&c.GymAPI.ClientSecret, "GYMCONSOLE_OAUTH_CLIENT_SECRET")
	setStrings(&c.GymAPI.Scopes, "GYMCONSOLE_OAUTH_SCOPES")
	setDuration(&c.GymAPI.Timeout, "GYMCONSOLE_API_TIMEOUT")

	setString(&c.Email.ResendKey, "GYMCONSOLE_RESEND_KEY")
	setString(&c.Email.From, "GYMCONSOLE_RESEND_FROM")
	setString(&c.Email.ReplyTo, "GYMCONSOLE_REPLY_TO")
	setString(&c.Email.GymName, "GYMCONSOLE_GYM_NAME")

	setInt(&c.UI.PageSize, "GYMCONSOLE_PAGE_SIZE")
	setDuration(&c.UI.DebounceInterval, "GYMCONSOLE_DEBOUNCE")
	setInt(&c.UI.ExpiringDays, "GYMCONSOLE_EXPIRING_DAYS")
}

// Validate checks cross-field constraints.
// PRE: all layers have been applied
// POST: Returns nil if the configuration can run
func (c *Config) Validate() error {
	switch c.Environment {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if c.GymAPI.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if c.UI.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", c.UI.PageSize)
	}
	if c.UI.DebounceInterval <= 0 {
		return fmt.Errorf("debounce interval must be positive, got %s", c.UI.DebounceInterval)
	}
	if c.IsProduction() {
		if c.CSRFKey == devCSRFKey || len(c.CSRFKey) != 32 {
			return ErrWeakCSRFKey
		}
		if !c.GymAPI.HasCredential() {
			return ErrMissingCredential
		}
	}
	return nil
}

// IsProduction returns true in the production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// HasCredential returns true when the client can authenticate upstream.
func (g *GymAPI) HasCredential() bool {
	if g.AuthToken != "" {
		return true
	}
	return g.TokenURL != "" && g.ClientID != "" && g.ClientSecret != ""
}

// UseOAuth returns true when OAuth2 client credentials should be used.
func (g *GymAPI) UseOAuth() bool {
	return g.AuthToken == "" && g.TokenURL != ""
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setStrings(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		*dst = out
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
