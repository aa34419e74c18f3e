package ecellweb

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"github.com/ecellfcrit/ecellweb/content"
	"github.com/ecellfcrit/ecellweb/mail"
)

// SiteConfig holds all configuration for the site. LoadConfig fills it from
// the environment; programmatic callers may build it directly and rely on
// setDefaults.
type SiteConfig struct {
	Name        string `env:"SITE_NAME" envDefault:"E-Cell FCRIT"`
	URL         string `env:"SITE_URL" envDefault:"http://localhost:3000"`
	Description string `env:"SITE_DESCRIPTION"`

	Addr         string `env:"ADDR" envDefault:":3000"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/ecell.db"`

	Sanity SanityConfig `envPrefix:"SANITY_"`

	// ContentTimeout bounds every request to the content store.
	ContentTimeout time.Duration `env:"CONTENT_TIMEOUT" envDefault:"10s"`
	// ContentFixtures points at a JSON array of documents served in place of
	// the content store, for local development.
	ContentFixtures string `env:"CONTENT_FIXTURES"`

	AdminPassword string `env:"ADMIN_PASSWORD"`
	SessionSecret string `env:"SESSION_SECRET"`
	CookieSecure  bool   `env:"COOKIE_SECURE"`

	Mail mail.Config

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Env      string `env:"GO_ENV" envDefault:"development"`
}

// SanityConfig identifies the content project.
type SanityConfig struct {
	ProjectID  string `env:"PROJECT_ID"`
	Dataset    string `env:"DATASET" envDefault:"production"`
	APIVersion string `env:"API_VERSION" envDefault:"2024-01-01"`
	UseCDN     bool   `env:"USE_CDN" envDefault:"true"`
	// Token is only given to the write client.
	Token string `env:"API_TOKEN"`
}

// LoadConfig reads SiteConfig from the environment.
func LoadConfig() (SiteConfig, error) {
	var cfg SiteConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("ecellweb: parse env: %w", err)
	}
	if cfg.Sanity.ProjectID == "" && cfg.ContentFixtures == "" {
		return cfg, fmt.Errorf("ecellweb: SANITY_PROJECT_ID is required")
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "E-Cell FCRIT"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/ecell.db"
	}
	if c.Sanity.Dataset == "" {
		c.Sanity.Dataset = "production"
	}
	if c.Sanity.APIVersion == "" {
		c.Sanity.APIVersion = "2024-01-01"
	}
	if c.ContentTimeout == 0 {
		c.ContentTimeout = 10 * time.Second
	}
	if c.Mail.Provider == "" {
		c.Mail.Provider = "noop"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithContent replaces the content store clients. reader serves public
// pages; writer stores form submissions and lists them for the admin.
func WithContent(reader content.Fetcher, writer content.ReadWriter) Option {
	return func(a *App) {
		a.reader = reader
		a.writer = writer
	}
}

// WithMailer sets the outbound mailer.
func WithMailer(m mail.Mailer) Option {
	return func(a *App) {
		a.mailer = m
	}
}
