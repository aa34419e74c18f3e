package ecellweb

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecellfcrit/ecellweb/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// sitePages are the fixed pages listed in the sitemap.
var sitePages = []string{"events", "team", "speakers", "posts", "about"}

func (a *App) buildSitemap(events []content.Event, posts []content.Post) sitemapURLSet {
	base := a.Config.URL
	urls := []sitemapURL{{Loc: BuildURL(base)}}
	for _, p := range sitePages {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, p)})
	}
	for _, ev := range events {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, "events", ev.Slug)})
	}
	for _, p := range posts {
		u := sitemapURL{Loc: BuildURL(base, "posts", p.Slug)}
		if !p.PublishedAt.IsZero() {
			u.LastMod = p.PublishedAt.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

func (a *App) renderSitemap(c echo.Context, events []content.Event, posts []content.Post) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(a.buildSitemap(events, posts))
}
