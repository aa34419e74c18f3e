package contenttest

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecellfcrit/ecellweb/content"
)

func fixtures() *Store {
	return New(
		ImageAsset("image-a1-100x100-png"),
		Doc{"_id": "spk-1", "_type": "speaker", "name": "Ravi", "image": Image("image-a1-100x100-png")},
		Doc{"_id": "e1", "_type": "event", "title": "Old", "slug": Slug("old"), "date": "2024-03-15", "status": "completed",
			"speakers": []any{Ref("spk-1"), Ref("missing")}},
		Doc{"_id": "e2", "_type": "event", "title": "New", "slug": Slug("new"), "date": "2025-03-20", "status": "upcoming", "featured": true},
		Doc{"_id": "m1", "_type": "teamMember", "name": "Zed", "memberType": "current"},
		Doc{"_id": "m2", "_type": "teamMember", "name": "Amy", "memberType": "current", "order": 2},
		Doc{"_id": "m3", "_type": "teamMember", "name": "Bob", "memberType": "past", "order": 1},
		Doc{"_id": "s1", "_type": "sponsor", "name": "On", "active": true},
		Doc{"_id": "s2", "_type": "sponsor", "name": "Off", "active": false},
		Doc{"_id": "s3", "_type": "sponsor", "name": "Unset"},
	)
}

func fetchEvents(t *testing.T, s *Store, q content.Query) []content.Event {
	t.Helper()
	raw, err := s.FetchRaw(context.Background(), q)
	require.NoError(t, err)
	events, err := content.DecodeEvents(raw)
	require.NoError(t, err)
	return events
}

func TestStoreOrdersAndFilters(t *testing.T) {
	s := fixtures()

	all := fetchEvents(t, s, content.AllEvents())
	require.Len(t, all, 2)
	assert.Equal(t, "e2", all[0].ID)
	assert.Equal(t, "e1", all[1].ID)

	upcoming := fetchEvents(t, s, content.UpcomingEvents())
	require.Len(t, upcoming, 1)
	assert.Equal(t, "e2", upcoming[0].ID)

	byStatus := fetchEvents(t, s, content.EventsByStatus(content.EventStatusCompleted))
	require.Len(t, byStatus, 1)
	assert.Equal(t, "e1", byStatus[0].ID)
}

func TestStoreExpandsReferences(t *testing.T) {
	s := fixtures()
	raw, err := s.FetchRaw(context.Background(), content.EventBySlug("old"))
	require.NoError(t, err)
	e, err := content.DecodeEvent(raw)
	require.NoError(t, err)
	require.NotNil(t, e)
	require.Len(t, e.Speakers, 1)
	assert.Equal(t, "Ravi", e.Speakers[0].Name)
	require.True(t, e.Speakers[0].Image.HasAsset())
	assert.Equal(t, "image-a1-100x100-png", e.Speakers[0].Image.Asset.ID)
}

func TestStoreSingleMissing(t *testing.T) {
	raw, err := fixtures().FetchRaw(context.Background(), content.EventBySlug("nope"))
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}

func TestStoreDisplayOrderMissingLast(t *testing.T) {
	raw, err := fixtures().FetchRaw(context.Background(), content.AllTeamMembers())
	require.NoError(t, err)
	members, err := content.DecodeTeamMembers(raw)
	require.NoError(t, err)
	var got []string
	for _, m := range members {
		got = append(got, m.Name)
	}
	assert.Equal(t, []string{"Bob", "Amy", "Zed"}, got)
}

func TestStoreNotEqualMatchesMissing(t *testing.T) {
	raw, err := fixtures().FetchRaw(context.Background(), content.AllSponsors())
	require.NoError(t, err)
	sponsors, err := content.DecodeSponsors(raw)
	require.NoError(t, err)
	var got []string
	for _, s := range sponsors {
		got = append(got, s.Name)
	}
	assert.Equal(t, []string{"On", "Unset"}, got)
}

func TestStoreWindow(t *testing.T) {
	s := New()
	for i := 0; i < 10; i++ {
		s.Add(Doc{"_id": strings.Repeat("p", i+1), "_type": "linkedinPost", "publishedAt": "2025-01-0" + string(rune('0'+i%10))})
	}
	raw, err := s.FetchRaw(context.Background(), content.RecentPosts(6))
	require.NoError(t, err)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(raw, &items))
	assert.Len(t, items, 6)
	assert.Equal(t, "2025-01-09", items[0]["publishedAt"])
}

func TestStoreFailures(t *testing.T) {
	s := fixtures()
	boom := errors.New("boom")

	s.FailQuery("allEvents", boom)
	_, err := s.FetchRaw(context.Background(), content.AllEvents())
	assert.ErrorIs(t, err, boom)
	_, err = s.FetchRaw(context.Background(), content.PastEvents())
	assert.NoError(t, err)

	s.FailWith(boom)
	_, err = s.FetchRaw(context.Background(), content.PastEvents())
	assert.ErrorIs(t, err, boom)

	assert.Len(t, s.Queries(), 3)
}

func TestStoreCreate(t *testing.T) {
	s := New()
	id, err := s.Create(context.Background(), map[string]any{"_type": "contactSubmission", "name": "Asha", "email": "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "contactSubmission-1", id)
	require.Len(t, s.Created(), 1)

	raw, err := s.FetchRaw(context.Background(), content.ContactSubmissions())
	require.NoError(t, err)
	subs, err := content.DecodeContactSubmissions(raw)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, id, subs[0].ID)

	s.FailCreate(errors.New("read only"))
	_, err = s.Create(context.Background(), map[string]any{})
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	s, err := Load(strings.NewReader(`[{"_id":"x","_type":"siteSettings","title":"E-Cell"}]`))
	require.NoError(t, err)
	raw, err := s.FetchRaw(context.Background(), content.SiteSettingsQuery())
	require.NoError(t, err)
	settings, err := content.DecodeSiteSettings(raw)
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, "E-Cell", settings.Title)
}
