package ecellweb

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ecellfcrit/ecellweb/content"
	"github.com/ecellfcrit/ecellweb/content/contenttest"
)

type D = contenttest.Doc

func siteFixtures() *contenttest.Store {
	s := contenttest.New(
		contenttest.ImageAsset("image-abc-800x600-jpg"),
		D{"_id": "evt-2025", "_type": "event", "title": "E-Summit 2025", "slug": contenttest.Slug("e-summit-2025"),
			"date": "2025-03-20", "status": "upcoming", "featured": true, "category": "summit",
			"speakers": []any{contenttest.Ref("spk-1")}, "sponsors": []any{contenttest.Ref("sp-gold")}},
		D{"_id": "evt-2024", "_type": "event", "title": "Hackathon 2024", "slug": contenttest.Slug("hackathon-2024"),
			"date": "2024-03-15", "status": "completed", "category": "hackathon",
			"highlights": []any{"48 hours", "200 hackers"}},

		D{"_id": "spk-1", "_type": "speaker", "name": "Asha Rao", "role": "Founder", "bio": "Builds things.",
			"featured": true, "order": 1, "image": contenttest.Image("image-abc-800x600-jpg"),
			"eventsSpokeAt": []any{contenttest.Ref("evt-2025")}},
		D{"_id": "spk-2", "_type": "speaker", "name": "Vikram Shah", "role": "Investor", "bio": "Funds things."},

		D{"_id": "sp-gold", "_type": "sponsor", "name": "Goldline", "category": "gold", "featured": true},
		D{"_id": "sp-title", "_type": "sponsor", "name": "Titan", "category": "title", "featured": true, "order": 1},
		D{"_id": "sp-media", "_type": "sponsor", "name": "Newsly", "category": "media"},
		D{"_id": "sp-old", "_type": "sponsor", "name": "Gone", "category": "gold", "active": false},

		D{"_id": "tm-1", "_type": "teamMember", "name": "Neha", "position": "President", "department": "Computer Engineering",
			"memberType": "current", "order": 1},
		D{"_id": "tm-2", "_type": "teamMember", "name": "Karan", "position": "Head of Events", "department": "Information Technology",
			"memberType": "current", "order": 2},
		D{"_id": "tm-3", "_type": "teamMember", "name": "Meera", "position": "Founder", "department": "Mechanical Engineering",
			"memberType": "past", "tenure": "2019-2021"},
		D{"_id": "tm-4", "_type": "teamMember", "name": "Dr. Iyer", "position": "Faculty Advisor", "department": "Electronics & Telecommunication",
			"memberType": "advisor"},

		D{"_id": "ts-1", "_type": "testimonial", "name": "Rohit", "role": "Student", "testimonial": "Great summit.",
			"rating": 5, "featured": true, "eventRelated": contenttest.Ref("evt-2025")},
		D{"_id": "ts-2", "_type": "testimonial", "name": "Sara", "role": "Alumna", "testimonial": "Loved it.", "rating": 4},

		D{"_id": "siteSettings", "_type": "siteSettings", "title": "E-Cell FCRIT", "description": "Entrepreneurship at FCRIT",
			"heroSlides": []any{D{"title": "Build"}, D{"subtitle": "no title"}}},
	)
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		doc := D{
			"_id":         fmt.Sprintf("post-%d", i),
			"_type":       "linkedinPost",
			"title":       fmt.Sprintf("Post %d", i),
			"slug":        contenttest.Slug(fmt.Sprintf("post-%d", i)),
			"publishedAt": base.AddDate(0, 0, i).Format(time.RFC3339),
			"category":    "general",
			"featured":    i%3 == 0,
		}
		if i == 4 {
			doc["engagement"] = D{"likes": 12}
			doc["tags"] = []any{"startup"}
			doc["linkedinUrl"] = "https://www.linkedin.com/feed/update/urn:li:activity:4"
		}
		s.Add(doc)
	}
	return s
}

func newTestServices(f content.Fetcher) *Services {
	return NewServices(f, zap.NewNop())
}

func TestGetAllEventsScenario(t *testing.T) {
	svc := newTestServices(siteFixtures())
	ctx := context.Background()

	all := svc.Events.GetAllEvents(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "evt-2025", all[0].ID)
	assert.Equal(t, "evt-2024", all[1].ID)

	upcoming := svc.Events.GetUpcomingEvents(ctx)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "evt-2025", upcoming[0].ID)

	past := svc.Events.GetPastEvents(ctx)
	require.Len(t, past, 1)
	assert.Equal(t, "evt-2024", past[0].ID)

	byStatus := svc.Events.GetEventsByStatus(ctx, content.EventStatusUpcoming)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "evt-2025", byStatus[0].ID)
}

func TestEventListsNeverNil(t *testing.T) {
	svc := newTestServices(siteFixtures())
	for _, ev := range svc.Events.GetAllEvents(context.Background()) {
		assert.NotNil(t, ev.Highlights, ev.ID)
		assert.NotNil(t, ev.Gallery, ev.ID)
		assert.NotNil(t, ev.Speakers, ev.ID)
		assert.NotNil(t, ev.Sponsors, ev.ID)
		assert.NotNil(t, ev.Content, ev.ID)
	}
}

func TestGetEventBySlug(t *testing.T) {
	svc := newTestServices(siteFixtures())
	ctx := context.Background()

	ev, ok := svc.Events.GetEventBySlug(ctx, "e-summit-2025")
	require.True(t, ok)
	assert.Equal(t, "E-Summit 2025", ev.Title)
	require.Len(t, ev.Speakers, 1)
	assert.Equal(t, "Asha Rao", ev.Speakers[0].Name)
	require.Len(t, ev.Sponsors, 1)
	assert.Equal(t, content.SponsorCategoryGold, ev.Sponsors[0].Category)

	_, ok = svc.Events.GetEventBySlug(ctx, "nope")
	assert.False(t, ok)

	byID, ok := svc.Events.GetEventByID(ctx, "evt-2024")
	require.True(t, ok)
	assert.Equal(t, "hackathon-2024", byID.Slug)
}

func TestGetRecentPosts(t *testing.T) {
	svc := newTestServices(siteFixtures())
	ctx := context.Background()

	posts := svc.Posts.GetRecentPosts(ctx, content.RecentPostsLimit)
	require.Len(t, posts, 6)
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].PublishedAt.After(posts[i-1].PublishedAt), "posts must be newest first")
	}
	assert.Equal(t, "post-8", posts[0].ID)

	all := svc.Posts.GetRecentPosts(ctx, content.AllPostsLimit)
	assert.Len(t, all, 9)

	three := svc.Posts.GetRecentPosts(ctx, 3)
	require.Len(t, three, 3)
	assert.Equal(t, "post-8", three[0].ID)
}

func TestPostNormalization(t *testing.T) {
	svc := newTestServices(siteFixtures())
	posts := svc.Posts.GetRecentPosts(context.Background(), content.AllPostsLimit)
	require.NotEmpty(t, posts)

	for _, p := range posts {
		assert.NotNil(t, p.Tags, p.ID)
		if p.ID == "post-4" {
			assert.Equal(t, content.Engagement{Likes: 12}, p.Engagement)
			assert.Equal(t, []string{"startup"}, p.Tags)
			assert.Contains(t, p.LinkedInURL, "activity:4")
			continue
		}
		assert.Equal(t, content.Engagement{}, p.Engagement, p.ID)
		assert.Empty(t, p.Tags, p.ID)
		assert.Equal(t, content.CompanyPostsURL, p.LinkedInURL, p.ID)
	}
}

func TestGetFeaturedPostsOnlyFeatured(t *testing.T) {
	svc := newTestServices(siteFixtures())
	posts := svc.Posts.GetFeaturedPosts(context.Background())
	require.Len(t, posts, 3)
	for _, p := range posts {
		assert.True(t, p.Featured, p.ID)
	}
}

func TestGetPostBySlug(t *testing.T) {
	svc := newTestServices(siteFixtures())
	p, ok := svc.Posts.GetPostBySlug(context.Background(), "post-4")
	require.True(t, ok)
	assert.Equal(t, "Post 4", p.Title)

	_, ok = svc.Posts.GetPostBySlug(context.Background(), "missing")
	assert.False(t, ok)
}

func TestTeamPartitions(t *testing.T) {
	svc := newTestServices(siteFixtures())
	ctx := context.Background()

	current := svc.Team.GetCurrentTeam(ctx)
	past := svc.Team.GetPastTeam(ctx)
	advisors := svc.Team.GetAdvisors(ctx)
	all := svc.Team.GetAllMembers(ctx)

	seen := map[string]content.MemberType{}
	for _, part := range []struct {
		members []content.TeamMember
		typ     content.MemberType
	}{
		{current, content.MemberTypeCurrent},
		{past, content.MemberTypePast},
		{advisors, content.MemberTypeAdvisor},
	} {
		for _, m := range part.members {
			assert.Equal(t, part.typ, m.MemberType, m.ID)
			_, dup := seen[m.ID]
			assert.False(t, dup, "%s appears in more than one partition", m.ID)
			seen[m.ID] = m.MemberType
		}
	}
	assert.Len(t, seen, len(all), "partitions must cover every member")

	require.Len(t, current, 2)
	assert.Equal(t, "tm-1", current[0].ID)

	roster := svc.Team.GetRoster(ctx)
	assert.Equal(t, current, roster.Current)
	assert.Equal(t, past, roster.Past)
	assert.Equal(t, advisors, roster.Advisors)
}

func TestSponsors(t *testing.T) {
	svc := newTestServices(siteFixtures())
	ctx := context.Background()

	all := svc.Sponsors.GetAllSponsors(ctx)
	assert.Len(t, all, 3, "inactive sponsors are excluded")

	groups := svc.Sponsors.GetGroupedSponsors(ctx, false)
	require.Len(t, groups, 3)
	assert.Equal(t, content.SponsorCategoryTitle, groups[0].Category)
	assert.Equal(t, content.SponsorCategoryGold, groups[1].Category)
	assert.Equal(t, content.SponsorCategoryMedia, groups[2].Category)

	featured := svc.Sponsors.GetGroupedSponsors(ctx, true)
	names := []string{}
	for _, s := range content.FlattenSponsorGroups(featured) {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Titan", "Goldline"}, names)
}

func TestSpeakersAndTestimonials(t *testing.T) {
	svc := newTestServices(siteFixtures())
	ctx := context.Background()

	speakers := svc.Speakers.GetAllSpeakers(ctx)
	require.Len(t, speakers, 2)
	assert.Equal(t, "spk-1", speakers[0].ID)
	require.Len(t, speakers[0].Events, 1)
	assert.Equal(t, "e-summit-2025", speakers[0].Events[0].Slug)
	assert.NotNil(t, speakers[1].Expertise)
	assert.NotNil(t, speakers[1].Achievements)

	featured := svc.Speakers.GetFeaturedSpeakers(ctx)
	require.Len(t, featured, 1)

	testimonials := svc.Testimonials.GetAllTestimonials(ctx)
	require.Len(t, testimonials, 2)
	featuredTs := svc.Testimonials.GetFeaturedTestimonials(ctx)
	require.Len(t, featuredTs, 1)
	require.NotNil(t, featuredTs[0].Event)
	assert.Equal(t, "E-Summit 2025", featuredTs[0].Event.Title)
}

func TestTestimonialsNewestFirstWithinOrder(t *testing.T) {
	store := contenttest.New(
		D{"_id": "old", "_type": "testimonial", "name": "Same", "role": "R", "testimonial": "a", "rating": 5,
			"_createdAt": "2024-01-01T00:00:00Z"},
		D{"_id": "new", "_type": "testimonial", "name": "Same", "role": "R", "testimonial": "b", "rating": 5,
			"_createdAt": "2025-01-01T00:00:00Z"},
		D{"_id": "first", "_type": "testimonial", "name": "Zed", "role": "R", "testimonial": "c", "rating": 5,
			"order": 1, "_createdAt": "2023-01-01T00:00:00Z"},
	)
	svc := newTestServices(store)

	got := svc.Testimonials.GetAllTestimonials(context.Background())
	require.Len(t, got, 3)
	assert.Equal(t, []string{"first", "new", "old"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestGetSiteSettings(t *testing.T) {
	svc := newTestServices(siteFixtures())
	settings := svc.Settings.GetSiteSettings(context.Background())
	assert.Equal(t, "E-Cell FCRIT", settings.Title)
	require.Len(t, settings.HeroSlides, 1, "slides without a title are skipped")
	assert.NotNil(t, settings.About.Values)
}

func TestGetSiteSettingsFallsBackToDefaults(t *testing.T) {
	svc := newTestServices(contenttest.New())
	svc.Settings.Defaults.Title = "Fallback"
	settings := svc.Settings.GetSiteSettings(context.Background())
	assert.Equal(t, "Fallback", settings.Title)
	assert.NotNil(t, settings.HeroSlides)
}

// Every service method degrades to an empty result when the store fails.
func TestServicesDegradeOnFetchFailure(t *testing.T) {
	store := siteFixtures()
	store.FailWith(&content.NetworkError{Query: "any", Err: errors.New("connection refused")})
	core, logs := observer.New(zap.ErrorLevel)
	svc := NewServices(store, zap.New(core))
	ctx := context.Background()

	lists := map[string]func() int{
		"GetAllEvents":            func() int { return len(nonNil(t, svc.Events.GetAllEvents(ctx))) },
		"GetUpcomingEvents":       func() int { return len(nonNil(t, svc.Events.GetUpcomingEvents(ctx))) },
		"GetPastEvents":           func() int { return len(nonNil(t, svc.Events.GetPastEvents(ctx))) },
		"GetFeaturedEvents":       func() int { return len(nonNil(t, svc.Events.GetFeaturedEvents(ctx))) },
		"GetEventsByStatus":       func() int { return len(nonNil(t, svc.Events.GetEventsByStatus(ctx, content.EventStatusUpcoming))) },
		"GetRecentPosts":          func() int { return len(nonNil(t, svc.Posts.GetRecentPosts(ctx, 6))) },
		"GetFeaturedPosts":        func() int { return len(nonNil(t, svc.Posts.GetFeaturedPosts(ctx))) },
		"GetPostsByCategory":      func() int { return len(nonNil(t, svc.Posts.GetPostsByCategory(ctx, content.PostCategoryEvent))) },
		"GetAllMembers":           func() int { return len(nonNil(t, svc.Team.GetAllMembers(ctx))) },
		"GetCurrentTeam":          func() int { return len(nonNil(t, svc.Team.GetCurrentTeam(ctx))) },
		"GetPastTeam":             func() int { return len(nonNil(t, svc.Team.GetPastTeam(ctx))) },
		"GetAdvisors":             func() int { return len(nonNil(t, svc.Team.GetAdvisors(ctx))) },
		"GetAllSponsors":          func() int { return len(nonNil(t, svc.Sponsors.GetAllSponsors(ctx))) },
		"GetFeaturedSponsors":     func() int { return len(nonNil(t, svc.Sponsors.GetFeaturedSponsors(ctx))) },
		"GetGroupedSponsors":      func() int { return len(nonNil(t, svc.Sponsors.GetGroupedSponsors(ctx, false))) },
		"GetAllSpeakers":          func() int { return len(nonNil(t, svc.Speakers.GetAllSpeakers(ctx))) },
		"GetFeaturedSpeakers":     func() int { return len(nonNil(t, svc.Speakers.GetFeaturedSpeakers(ctx))) },
		"GetAllTestimonials":      func() int { return len(nonNil(t, svc.Testimonials.GetAllTestimonials(ctx))) },
		"GetFeaturedTestimonials": func() int { return len(nonNil(t, svc.Testimonials.GetFeaturedTestimonials(ctx))) },
	}
	for name, call := range lists {
		t.Run(name, func(t *testing.T) {
			assert.Zero(t, call())
		})
	}

	roster := svc.Team.GetRoster(ctx)
	assert.NotNil(t, roster.Current)
	assert.NotNil(t, roster.Past)
	assert.NotNil(t, roster.Advisors)

	_, ok := svc.Events.GetEventBySlug(ctx, "e-summit-2025")
	assert.False(t, ok)
	_, ok = svc.Posts.GetPostBySlug(ctx, "post-1")
	assert.False(t, ok)

	settings := svc.Settings.GetSiteSettings(ctx)
	assert.NotNil(t, settings.HeroSlides)

	require.NotZero(t, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "content query failed", entry.Message)
	assert.Contains(t, entry.ContextMap(), "query")
}

func TestServicesDropInvalidRecords(t *testing.T) {
	store := contenttest.New(
		D{"_id": "ok", "_type": "testimonial", "name": "A", "role": "R", "testimonial": "fine", "rating": 5},
		D{"_id": "bad-rating", "_type": "testimonial", "name": "B", "role": "R", "testimonial": "meh", "rating": 9},
		D{"_id": "no-name", "_type": "testimonial", "role": "R", "testimonial": "anon", "rating": 3},
	)
	core, logs := observer.New(zap.WarnLevel)
	svc := NewServices(store, zap.New(core))

	got := svc.Testimonials.GetAllTestimonials(context.Background())
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].ID)
	assert.Equal(t, 1, logs.FilterMessage("dropped invalid content records").Len())
}

func nonNil[T any](t *testing.T, s []T) []T {
	t.Helper()
	assert.NotNil(t, s)
	return s
}
