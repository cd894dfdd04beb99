// Package site serves a marketing site and blog whose posts are Markdown
// files with YAML front matter. It provides listings, tag pages, search,
// draft preview, RSS and Atom feeds, a sitemap and a static export.
//
// Page markup is supplied through ViewFuncs; DefaultViews renders the
// components from the views package.
package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/arisclub/site/blog"
	"github.com/arisclub/site/posts"
	"github.com/arisclub/site/views"
)

// ViewFuncs holds the components the handlers render.
type ViewFuncs struct {
	Home         func(views.HomePage) templ.Component
	BlogIndex    func(views.IndexPage) templ.Component
	Post         func(views.PostPage) templ.Component
	PreviewLogin func(views.LoginPage) templ.Component
	NotFound     func(views.SiteConfig) templ.Component
	ServerError  func(views.SiteConfig) templ.Component
}

// DefaultViews returns the built-in page components.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:         views.Home,
		BlogIndex:    views.BlogIndex,
		Post:         views.Post,
		PreviewLogin: views.PreviewLogin,
		NotFound:     views.NotFound,
		ServerError:  views.ServerError,
	}
}

// App wires the post repository, blog services, handlers, middleware and
// views into an Echo server.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Views  ViewFuncs

	// public hides drafts; preview shows them to logged-in sessions.
	public  *blog.Service
	preview *blog.Service

	repo         blog.Repository
	logger       *log.Logger
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates the App and registers its middleware and routes. It fails
// when the configuration is inconsistent.
func New(cfg SiteConfig, opts ...Option) (*App, error) {
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     DefaultViews(),
		logger:    log.New("site"),
		staticDir: "public",
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.repo == nil {
		a.repo = posts.New(posts.Dir(cfg.PostsDir))
	}

	a.Echo.HideBanner = true
	a.Echo.Logger = a.logger
	a.public = blog.NewService(a.repo,
		blog.WithDrafts(false),
		blog.WithLogger(a.logger),
		blog.WithExcerptWords(cfg.ExcerptWords),
	)
	a.preview = blog.NewService(a.repo,
		blog.WithDrafts(true),
		blog.WithLogger(a.logger),
		blog.WithExcerptWords(cfg.ExcerptWords),
	)
	if cfg.PreviewEnabled() {
		a.loginLimiter = NewLoginLimiter(5, time.Minute)
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a, nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.StaticFS("/assets", echo.MustSubFS(Assets, "assets"))
	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/health", a.handleHealth)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleRSS)
	e.GET("/atom.xml", a.handleAtom)
	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlogIndex)
	e.GET("/blog/tags/:tag/", a.handleTag)
	e.GET("/blog/:slug/", a.handlePost)

	e.GET("/preview/", a.handlePreview)
	e.POST("/preview/login/", a.handlePreviewLogin)
	e.POST("/preview/logout/", a.handlePreviewLogout)
}

// Handler returns the HTTP handler serving the site.
func (a *App) Handler() http.Handler {
	return a.Echo
}

// Start serves HTTP on Config.Addr until ctx is cancelled, then shuts down
// gracefully within Config.ShutdownTimeout.
func (a *App) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		a.logger.Infof("listening on %s", a.Config.Addr)
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("site: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("site: shutdown: %w", err)
	}
	return nil
}

// Close releases background resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	return nil
}
