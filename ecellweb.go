// Package ecellweb is the website of a student entrepreneurship cell: event,
// team, speaker, sponsor, testimonial and post pages backed by a Sanity
// content store, plus the contact, newsletter and event registration
// endpoints.
//
// Users provide their own templ templates via the ViewFuncs struct; pages
// without a template are served as JSON view models.
package ecellweb

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ecellfcrit/ecellweb/content"
	"github.com/ecellfcrit/ecellweb/content/contenttest"
	"github.com/ecellfcrit/ecellweb/mail"
	"github.com/ecellfcrit/ecellweb/views"
)

// ViewFuncs holds user-provided templ components that the App calls when
// rendering pages. A nil page view makes the page answer with its view model
// as JSON.
type ViewFuncs struct {
	Home     func(HomePage) templ.Component
	Events   func(EventsPage) templ.Component
	Event    func(EventPage) templ.Component
	Team     func(TeamPage) templ.Component
	Speakers func(SpeakersPage) templ.Component
	Posts    func(PostsPage) templ.Component
	// PostList renders only the post grid, for htmx category switches.
	PostList       func(posts []content.Post) templ.Component
	Post           func(PostPage) templ.Component
	About          func(AboutPage) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(page AdminPage, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App wires together the content clients, services, local store, handlers,
// middleware, and user-provided templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Services *Services
	Contact  *ContactService
	Views    ViewFuncs
	Logger   *zap.Logger

	reader       content.Fetcher
	writer       content.ReadWriter
	mailer       mail.Mailer
	loginLimiter *RateLimiter
	formLimiter  *RateLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates an App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		Logger:    zap.NewNop(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup builds the content clients, store, mailer, services, middleware and
// routes. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Setup() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("ecellweb: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("ecellweb: SessionSecret is required")
	}

	if a.reader == nil {
		if err := a.newContentClients(); err != nil {
			return err
		}
	}
	if a.writer == nil {
		return fmt.Errorf("ecellweb: content writer is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("ecellweb: init store: %w", err)
	}
	a.Store = store

	if a.mailer == nil {
		m, err := mail.New(a.Config.Mail, a.Logger.Named("mail"))
		if err != nil {
			return fmt.Errorf("ecellweb: init mailer: %w", err)
		}
		a.mailer = m
	}

	a.Services = NewServices(a.reader, a.Logger)
	a.Services.Settings.Defaults.Title = a.Config.Name
	a.Services.Settings.Defaults.Description = a.Config.Description
	a.Contact = NewContactService(a.writer, a.Logger)

	a.loginLimiter = NewRateLimiter(5, time.Minute)
	a.formLimiter = NewRateLimiter(10, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// newContentClients builds the read client (CDN, never carries the token) and
// the write client (token, no CDN). With ContentFixtures set, a local fixture
// store serves both.
func (a *App) newContentClients() error {
	if path := a.Config.ContentFixtures; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("ecellweb: open content fixtures: %w", err)
		}
		defer f.Close()
		store, err := contenttest.Load(f)
		if err != nil {
			return fmt.Errorf("ecellweb: %w", err)
		}
		a.Logger.Info("serving content fixtures", zap.String("path", path))
		a.reader, a.writer = store, store
		return nil
	}

	httpClient := &http.Client{Timeout: a.Config.ContentTimeout}
	sc := a.Config.Sanity
	reader, err := content.NewClient(content.Config{
		ProjectID:  sc.ProjectID,
		Dataset:    sc.Dataset,
		APIVersion: sc.APIVersion,
		UseCDN:     sc.UseCDN,
		HTTPClient: httpClient,
	})
	if err != nil {
		return fmt.Errorf("ecellweb: content reader: %w", err)
	}
	writer, err := content.NewClient(content.Config{
		ProjectID:  sc.ProjectID,
		Dataset:    sc.Dataset,
		APIVersion: sc.APIVersion,
		Token:      sc.Token,
		HTTPClient: httpClient,
	})
	if err != nil {
		return fmt.Errorf("ecellweb: content writer: %w", err)
	}
	if sc.Token == "" {
		a.Logger.Warn("SANITY_API_TOKEN is not set; contact submissions will fail")
	}
	a.reader, a.writer = reader, writer
	return nil
}

// Start runs Setup and starts the server.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Logger.Info("starting server", zap.String("addr", a.Config.Addr))
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/healthz", a.handleHealth)
	e.GET("/placeholder/:w/:h/", a.handlePlaceholder)

	e.GET("/", a.handleHome)
	e.GET("/events/", a.handleEvents)
	e.GET("/events/:slug/", a.handleEvent)
	e.GET("/team/", a.handleTeam)
	e.GET("/speakers/", a.handleSpeakers)
	e.GET("/posts/", a.handlePosts)
	e.GET("/posts/:slug/", a.handlePost)
	e.GET("/about/", a.handleAbout)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)

	a.setupAPIRoutes()
}

// Site returns the URL settings templates pass to the views helpers.
func (a *App) Site() views.Site {
	return views.Site{
		Name:      a.Config.Name,
		URL:       a.Config.URL,
		ProjectID: a.Config.Sanity.ProjectID,
		Dataset:   a.Config.Sanity.Dataset,
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.formLimiter != nil {
		a.formLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
