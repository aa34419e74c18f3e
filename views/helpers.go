// Package views holds helpers for the site's templ templates.
package views

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ecellfcrit/ecellweb/content"
)

// ImageURL returns the CDN URL for ref cropped to w x h. Missing or invalid
// references fall back to a generated placeholder showing name's initials.
func ImageURL(site Site, ref *content.ImageRef, w, h int, name string) string {
	u, err := content.BuildAssetURL(site.ProjectID, site.Dataset, ref, content.ImageOptions{
		Width:      w,
		Height:     h,
		Fit:        "crop",
		AutoFormat: true,
	})
	if err == nil {
		return u
	}
	return PlaceholderURL(w, h, name)
}

// PlaceholderURL points at the site's placeholder image route.
func PlaceholderURL(w, h int, name string) string {
	p := fmt.Sprintf("/placeholder/%d/%d/", w, h)
	if name != "" {
		p += "?name=" + url.QueryEscape(name)
	}
	return p
}

// FormatDate formats t as "20 Mar 2025"; the zero time is empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2 Jan 2006")
}

// DateRange formats an event's dates, collapsing same-month ranges to
// "20–21 Mar 2025".
func DateRange(start time.Time, end *time.Time) string {
	if end == nil || end.IsZero() || sameDay(start, *end) {
		return FormatDate(start)
	}
	if start.Year() == end.Year() && start.Month() == end.Month() {
		return fmt.Sprintf("%d–%s", start.Day(), FormatDate(*end))
	}
	return FormatDate(start) + " – " + FormatDate(*end)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TimeAgo renders t relative to now, e.g. "3 days ago".
func TimeAgo(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

// Count formats n with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Label returns the display label of an enum value such as a post or event
// category.
func Label[T ~string](v T) string {
	return content.CategoryLabel(string(v))
}

// PathEscape wraps url.PathEscape for use in templ expressions.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// StatusClass returns CSS classes for an event status badge.
func StatusClass(s content.EventStatus) string {
	base := "inline-flex items-center rounded-full px-3 py-1 text-xs font-semibold uppercase tracking-wide"
	switch s {
	case content.EventStatusUpcoming:
		return base + " bg-emerald-100 text-emerald-800"
	case content.EventStatusOngoing:
		return base + " bg-amber-100 text-amber-800"
	case content.EventStatusCompleted:
		return base + " bg-stone-200 text-stone-700"
	}
	return base + " bg-stone-100 text-stone-500"
}

// TagClass returns CSS classes for a category pill, with active variant.
func TagClass(active bool) string {
	base := "inline-flex items-center rounded border border-ink px-2.5 py-1 text-[11px] font-semibold uppercase tracking-[0.12em] transition"
	if active {
		return base + " bg-ink text-white"
	}
	return base + " bg-stone-100 hover:-translate-y-0.5 hover:shadow-sm"
}

// JoinTags formats tags as "#a #b".
func JoinTags(tags []string) string {
	var sb strings.Builder
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("#" + strings.TrimPrefix(t, "#"))
	}
	return sb.String()
}
