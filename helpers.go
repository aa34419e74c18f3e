package ecellweb

import (
	"encoding/json"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ecellfcrit/ecellweb/content"
	"github.com/ecellfcrit/ecellweb/portabletext"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	out := []string{}
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// RelatedPosts returns up to max posts other than current that share its
// category or at least one tag, in the order given.
func RelatedPosts(current content.Post, posts []content.Post, max int) []content.Post {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	related := []content.Post{}
	for _, p := range posts {
		if len(related) == max {
			break
		}
		if p.Slug == current.Slug {
			continue
		}
		if p.Category == current.Category && p.Category != content.PostCategoryUnknown {
			related = append(related, p)
			continue
		}
		for _, t := range p.Tags {
			if _, ok := tagSet[strings.ToLower(strings.TrimSpace(t))]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// summarize returns the plain text of blocks cut to at most n runes, ending
// with an ellipsis when shortened.
func summarize(blocks []portabletext.Block, n int) string {
	text := portabletext.PlainText(blocks)
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	cut := strings.TrimSpace(string(runes[:n]))
	if i := strings.LastIndexByte(cut, ' '); i > n/2 {
		cut = cut[:i]
	}
	return cut + "…"
}

func marshalJSONLD(data map[string]any) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// OrganizationJSONLD returns a JSON-LD string for an Organization schema
// built from the site config and settings document.
func OrganizationJSONLD(cfg SiteConfig, settings content.SiteSettings) string {
	name := settings.Title
	if name == "" {
		name = cfg.Name
	}
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
		"url":      BuildURL(cfg.URL),
	}
	if d := settings.Description; d != "" {
		data["description"] = d
	} else if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if settings.ContactEmail != "" {
		data["email"] = settings.ContactEmail
	}
	if settings.EstablishedYear > 0 {
		data["foundingDate"] = strconv.Itoa(settings.EstablishedYear)
	}
	sameAs := FilterEmpty([]string{
		settings.Social.LinkedIn, settings.Social.Instagram, settings.Social.Twitter,
		settings.Social.Facebook, settings.Social.YouTube,
	})
	if len(sameAs) > 0 {
		data["sameAs"] = sameAs
	}
	return marshalJSONLD(data)
}

// EventJSONLD returns a JSON-LD string for an Event schema. imageURL may be
// empty.
func EventJSONLD(ev content.Event, cfg SiteConfig, imageURL string) string {
	data := map[string]any{
		"@context":            "https://schema.org",
		"@type":               "Event",
		"name":                ev.Title,
		"description":         ev.Description,
		"startDate":           ev.Date.Format(time.RFC3339),
		"url":                 BuildURL(cfg.URL, "events", ev.Slug),
		"eventAttendanceMode": "https://schema.org/OfflineEventAttendanceMode",
		"organizer": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
			"url":   BuildURL(cfg.URL),
		},
	}
	if ev.EndDate != nil {
		data["endDate"] = ev.EndDate.Format(time.RFC3339)
	}
	if ev.Location != "" {
		data["location"] = map[string]string{"@type": "Place", "name": ev.Location}
	}
	if imageURL != "" {
		data["image"] = imageURL
	}
	if len(ev.Speakers) > 0 {
		performers := make([]map[string]string, 0, len(ev.Speakers))
		for _, s := range ev.Speakers {
			performers = append(performers, map[string]string{"@type": "Person", "name": s.Name})
		}
		data["performer"] = performers
	}
	return marshalJSONLD(data)
}
