package site

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"github.com/arisclub/site/blog"
	"github.com/arisclub/site/posts"
	"github.com/arisclub/site/views"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string `env:"SITE_NAME" envDefault:"Aris Club"`
	URL         string `env:"SITE_URL" envDefault:"http://localhost:3000"`
	Description string `env:"SITE_DESCRIPTION"`
	Author      string `env:"SITE_AUTHOR"`

	Addr     string `env:"SITE_ADDR" envDefault:":3000"`
	PostsDir string `env:"POSTS_DIR" envDefault:"content/posts"`

	// ExcerptWords is the length of excerpts derived from post content.
	ExcerptWords int `env:"EXCERPT_WORDS" envDefault:"50"`

	// PreviewPassword unlocks draft posts. Preview is disabled when empty.
	PreviewPassword string `env:"PREVIEW_PASSWORD"`
	SessionSecret   string `env:"SESSION_SECRET"`
	CookieSecure    bool   `env:"COOKIE_SECURE"`

	ExportDir       string        `env:"EXPORT_DIR" envDefault:"dist"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadConfig reads configuration from the environment, after loading any
// .env files found in the working directory. Missing files are ignored.
func LoadConfig(files ...string) (SiteConfig, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return SiteConfig{}, fmt.Errorf("site: load %s: %w", f, err)
		}
	}
	var cfg SiteConfig
	if err := env.Parse(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("site: parse environment: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Aris Club"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimRight(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PostsDir == "" {
		c.PostsDir = "content/posts"
	}
	if c.ExcerptWords <= 0 {
		c.ExcerptWords = posts.DefaultExcerptWords
	}
	if c.ExportDir == "" {
		c.ExportDir = "dist"
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

// PreviewEnabled reports whether draft preview logins are accepted.
func (c SiteConfig) PreviewEnabled() bool {
	return c.PreviewPassword != ""
}

func (c SiteConfig) validate() error {
	if c.PreviewEnabled() && c.SessionSecret == "" {
		return errors.New("site: SESSION_SECRET is required when PREVIEW_PASSWORD is set")
	}
	return nil
}

func (c SiteConfig) view() views.SiteConfig {
	return views.SiteConfig{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		Author:      c.Author,
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory served under /public/ (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger replaces the application logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithRepository replaces the post repository built from PostsDir.
func WithRepository(repo blog.Repository) Option {
	return func(a *App) {
		a.repo = repo
	}
}

// WithViews replaces the page components.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}
