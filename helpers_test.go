package ecellweb

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ecellfcrit/ecellweb/content"
	"github.com/ecellfcrit/ecellweb/portabletext"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Startup Funding", "startup-funding"},
		{"  AI / ML  ", "ai-ml"},
		{"E-Summit 2025!", "e-summit-2025"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://ecell.example.org", nil, "https://ecell.example.org"},
		{"https://ecell.example.org", []string{"events", "e-summit"}, "https://ecell.example.org/events/e-summit/"},
		{"https://ecell.example.org/", []string{"team"}, "https://ecell.example.org/team/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{"", " a ", "  ", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("FilterEmpty = %v", got)
	}
	if got := FilterEmpty(nil); got == nil {
		t.Error("FilterEmpty(nil) should return an empty slice")
	}
}

func TestRelatedPosts(t *testing.T) {
	current := content.Post{Slug: "a", Category: content.PostCategoryEvent, Tags: []string{"Startup"}}
	posts := []content.Post{
		{Slug: "a", Category: content.PostCategoryEvent},
		{Slug: "b", Category: content.PostCategoryGeneral},
		{Slug: "c", Category: content.PostCategoryEvent},
		{Slug: "d", Category: content.PostCategoryGeneral, Tags: []string{"startup "}},
		{Slug: "e", Category: content.PostCategoryEvent},
	}

	got := RelatedPosts(current, posts, 2)
	if len(got) != 2 || got[0].Slug != "c" || got[1].Slug != "d" {
		t.Errorf("RelatedPosts = %v", slugs(got))
	}

	unknown := content.Post{Slug: "x", Category: content.PostCategoryUnknown}
	if got := RelatedPosts(unknown, []content.Post{{Slug: "y", Category: content.PostCategoryUnknown}}, 3); len(got) != 0 {
		t.Errorf("unknown category should not relate posts, got %v", slugs(got))
	}
}

func slugs(posts []content.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}

func textBlock(text string) portabletext.Block {
	return portabletext.Block{Type: "block", Style: "normal", Children: []portabletext.Span{{Type: "span", Text: text}}}
}

func TestSummarize(t *testing.T) {
	blocks := []portabletext.Block{textBlock("one two three four")}

	if got := summarize(blocks, 100); got != "one two three four" {
		t.Errorf("short text changed: %q", got)
	}
	if got := summarize(blocks, 9); got != "one two…" {
		t.Errorf("summarize = %q, want %q", got, "one two…")
	}
	if got := summarize(nil, 10); got != "" {
		t.Errorf("summarize(nil) = %q", got)
	}
}

func TestOrganizationJSONLD(t *testing.T) {
	cfg := SiteConfig{Name: "E-Cell FCRIT", URL: "https://ecell.example.org"}
	settings := content.SiteSettings{
		EstablishedYear: 2014,
		Social:          content.SiteSocial{LinkedIn: "https://www.linkedin.com/company/ecell"},
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(OrganizationJSONLD(cfg, settings)), &got); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	if got["name"] != "E-Cell FCRIT" {
		t.Errorf("name = %v", got["name"])
	}
	if got["foundingDate"] != "2014" {
		t.Errorf("foundingDate = %v", got["foundingDate"])
	}
	sameAs, _ := got["sameAs"].([]any)
	if len(sameAs) != 1 {
		t.Errorf("sameAs = %v", got["sameAs"])
	}
	if _, ok := got["email"]; ok {
		t.Error("email should be omitted when not configured")
	}
}

func TestEventJSONLD(t *testing.T) {
	end := time.Date(2025, 3, 21, 18, 0, 0, 0, time.UTC)
	ev := content.Event{
		Title:    "E-Summit 2025",
		Slug:     "e-summit-2025",
		Date:     time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC),
		EndDate:  &end,
		Location: "FCRIT, Vashi",
		Speakers: []content.Speaker{{Name: "Asha Rao"}},
	}
	cfg := SiteConfig{Name: "E-Cell FCRIT", URL: "https://ecell.example.org"}

	var got map[string]any
	if err := json.Unmarshal([]byte(EventJSONLD(ev, cfg, "")), &got); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	if got["startDate"] != "2025-03-20T09:00:00Z" || got["endDate"] != "2025-03-21T18:00:00Z" {
		t.Errorf("dates = %v / %v", got["startDate"], got["endDate"])
	}
	if got["url"] != "https://ecell.example.org/events/e-summit-2025/" {
		t.Errorf("url = %v", got["url"])
	}
	if _, ok := got["image"]; ok {
		t.Error("image should be omitted without a URL")
	}
	performers, _ := got["performer"].([]any)
	if len(performers) != 1 {
		t.Errorf("performer = %v", got["performer"])
	}
}
