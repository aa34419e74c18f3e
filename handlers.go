package ecellweb

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ecellfcrit/ecellweb/content"
	"github.com/ecellfcrit/ecellweb/portabletext"
)

const (
	homeEventsLimit  = 3
	relatedPostLimit = 3
)

func (a *App) meta(title, description string, segments ...string) PageMeta {
	if title == "" {
		title = a.Config.Name
	} else {
		title = title + " | " + a.Config.Name
	}
	if description == "" {
		description = a.Config.Description
	}
	return PageMeta{
		Title:       title,
		Description: description,
		URL:         BuildURL(a.Config.URL, segments...),
		OGType:      "website",
	}
}

// The content services never fail: each fetch falls back to an empty result,
// so the errgroups below only join the goroutines.

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	s := a.Services
	page := HomePage{Meta: a.meta("", "")}

	var g errgroup.Group
	g.Go(func() error { page.Settings = s.Settings.GetSiteSettings(ctx); return nil })
	g.Go(func() error { page.FeaturedEvents = s.Events.GetFeaturedEvents(ctx); return nil })
	g.Go(func() error {
		upcoming := s.Events.GetUpcomingEvents(ctx)
		if len(upcoming) > homeEventsLimit {
			upcoming = upcoming[:homeEventsLimit]
		}
		page.UpcomingEvents = upcoming
		return nil
	})
	g.Go(func() error { page.Speakers = s.Speakers.GetFeaturedSpeakers(ctx); return nil })
	g.Go(func() error { page.Sponsors = s.Sponsors.GetGroupedSponsors(ctx, true); return nil })
	g.Go(func() error { page.Testimonials = s.Testimonials.GetFeaturedTestimonials(ctx); return nil })
	g.Go(func() error { page.Posts = s.Posts.GetRecentPosts(ctx, content.RecentPostsLimit); return nil })
	_ = g.Wait()

	if page.Settings.Description != "" {
		page.Meta.Description = page.Settings.Description
	}
	return renderPage(c, a.Views.Home, page)
}

func (a *App) handleEvents(c echo.Context) error {
	ctx := c.Request().Context()
	page := EventsPage{Meta: a.meta("Events", "", "events")}

	var g errgroup.Group
	g.Go(func() error { page.Upcoming = a.Services.Events.GetUpcomingEvents(ctx); return nil })
	g.Go(func() error {
		page.Ongoing = a.Services.Events.GetEventsByStatus(ctx, content.EventStatusOngoing)
		return nil
	})
	g.Go(func() error { page.Past = a.Services.Events.GetPastEvents(ctx); return nil })
	_ = g.Wait()

	return renderPage(c, a.Views.Events, page)
}

func (a *App) handleEvent(c echo.Context) error {
	slug := c.Param("slug")
	ev, ok := a.Services.Events.GetEventBySlug(c.Request().Context(), slug)
	if !ok {
		return a.renderNotFound(c)
	}
	imageURL := ""
	if ev.Image.HasAsset() {
		imageURL, _ = content.BuildAssetURL(a.Config.Sanity.ProjectID, a.Config.Sanity.Dataset, ev.Image,
			content.ImageOptions{Width: 1200, Height: 630, Fit: "crop", AutoFormat: true})
	}
	meta := a.meta(ev.Title, ev.Description, "events", ev.Slug)
	meta.OGType = "article"
	meta.Image = imageURL
	page := EventPage{
		Meta:             meta,
		Event:            ev,
		RegistrationOpen: registrationOpen(ev),
		ContentHTML:      portabletext.Render(ev.Content),
		JSONLD:           EventJSONLD(ev, a.Config, imageURL),
	}
	return renderPage(c, a.Views.Event, page)
}

// registrationOpen reports whether ev still accepts registrations. The
// authored status is trusted over the date.
func registrationOpen(ev content.Event) bool {
	return ev.Status == content.EventStatusUpcoming || ev.Status == content.EventStatusOngoing
}

func (a *App) handleTeam(c echo.Context) error {
	page := TeamPage{
		Meta:   a.meta("Team", "", "team"),
		Roster: a.Services.Team.GetRoster(c.Request().Context()),
	}
	return renderPage(c, a.Views.Team, page)
}

func (a *App) handleSpeakers(c echo.Context) error {
	ctx := c.Request().Context()
	page := SpeakersPage{Meta: a.meta("Speakers", "", "speakers")}

	var g errgroup.Group
	g.Go(func() error { page.Featured = a.Services.Speakers.GetFeaturedSpeakers(ctx); return nil })
	g.Go(func() error { page.Speakers = a.Services.Speakers.GetAllSpeakers(ctx); return nil })
	_ = g.Wait()

	return renderPage(c, a.Views.Speakers, page)
}

func (a *App) handlePosts(c echo.Context) error {
	ctx := c.Request().Context()
	page := PostsPage{
		Meta:       a.meta("Posts", "", "posts"),
		Categories: content.PostCategories,
	}
	if raw := strings.TrimSpace(c.QueryParam("category")); raw != "" {
		page.Category = content.ParsePostCategory(raw)
		if page.Category == content.PostCategoryUnknown {
			return a.renderNotFound(c)
		}
	}

	var g errgroup.Group
	g.Go(func() error { page.Featured = a.Services.Posts.GetFeaturedPosts(ctx); return nil })
	g.Go(func() error {
		if page.Category != "" {
			page.Posts = a.Services.Posts.GetPostsByCategory(ctx, page.Category)
		} else {
			page.Posts = a.Services.Posts.GetRecentPosts(ctx, content.AllPostsLimit)
		}
		return nil
	})
	_ = g.Wait()

	if c.Request().Header.Get("HX-Request") == "true" && a.Views.PostList != nil {
		return Render(c, a.Views.PostList(page.Posts))
	}
	return renderPage(c, a.Views.Posts, page)
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		post   content.Post
		found  bool
		recent []content.Post
	)
	var g errgroup.Group
	g.Go(func() error { post, found = a.Services.Posts.GetPostBySlug(ctx, c.Param("slug")); return nil })
	g.Go(func() error { recent = a.Services.Posts.GetRecentPosts(ctx, content.AllPostsLimit); return nil })
	_ = g.Wait()
	if !found {
		return a.renderNotFound(c)
	}

	desc := post.Excerpt
	if desc == "" {
		desc = summarize(post.Content, 160)
	}
	meta := a.meta(post.Title, desc, "posts", post.Slug)
	meta.OGType = "article"
	page := PostPage{
		Meta:        meta,
		Post:        post,
		ContentHTML: portabletext.Render(post.Content),
		Related:     RelatedPosts(post, recent, relatedPostLimit),
	}
	return renderPage(c, a.Views.Post, page)
}

func (a *App) handleAbout(c echo.Context) error {
	ctx := c.Request().Context()
	s := a.Services
	page := AboutPage{Meta: a.meta("About", "", "about")}

	var g errgroup.Group
	g.Go(func() error { page.Settings = s.Settings.GetSiteSettings(ctx); return nil })
	g.Go(func() error { page.Advisors = s.Team.GetAdvisors(ctx); return nil })
	g.Go(func() error { page.Sponsors = s.Sponsors.GetGroupedSponsors(ctx, false); return nil })
	g.Go(func() error { page.Testimonials = s.Testimonials.GetAllTestimonials(ctx); return nil })
	_ = g.Wait()

	return renderPage(c, a.Views.About, page)
}

func (a *App) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		events []content.Event
		posts  []content.Post
	)
	var g errgroup.Group
	g.Go(func() error { events = a.Services.Events.GetAllEvents(ctx); return nil })
	g.Go(func() error { posts = a.Services.Posts.GetRecentPosts(ctx, content.AllPostsLimit); return nil })
	_ = g.Wait()
	return a.renderSitemap(c, events, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts := a.Services.Posts.GetRecentPosts(c.Request().Context(), content.AllPostsLimit)
	return a.renderRSS(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(filepath.Join(a.staticDir, "favicon.svg"))
}

// handleRobots serves robots.txt from the static dir, or a default that
// points crawlers at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	path := filepath.Join(a.staticDir, "robots.txt")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\nDisallow: /api/\n\nSitemap: %s\n",
		strings.TrimSuffix(a.Config.URL, "/")+"/sitemap.xml")
	return c.String(http.StatusOK, body)
}

func (a *App) handleHealth(c echo.Context) error {
	if err := a.Store.Ping(); err != nil {
		a.Logger.Error("health check failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) renderNotFound(c echo.Context) error {
	if a.Views.NotFound == nil {
		return apiError(c, http.StatusNotFound, "Not found")
	}
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderNotFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		if a.Views.ServerError == nil {
			_ = apiError(c, code, "Internal server error")
			return
		}
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
