package content

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEventsDefaults(t *testing.T) {
	raw := json.RawMessage(`[{
		"_id": "evt-1",
		"title": "Ideathon",
		"slug": {"current": "ideathon"},
		"date": "2025-03-20T10:00:00Z",
		"category": "hackathon",
		"status": "upcoming"
	}]`)
	events, err := DecodeEvents(raw)
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "ideathon", e.Slug)
	assert.Equal(t, EventCategoryHackathon, e.Category)
	assert.Equal(t, EventStatusUpcoming, e.Status)
	assert.False(t, e.Featured)
	assert.Nil(t, e.EndDate)
	assert.NotNil(t, e.Highlights)
	assert.NotNil(t, e.Content)
	assert.NotNil(t, e.Gallery)
	assert.NotNil(t, e.Speakers)
	assert.NotNil(t, e.Sponsors)
	assert.Equal(t, time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC), e.Date)
}

func TestDecodeEventsUnknownEnums(t *testing.T) {
	raw := json.RawMessage(`[{"_id":"e","title":"t","slug":{"current":"s"},"date":"2024-01-02","category":"gala","status":"postponed"}]`)
	events, err := DecodeEvents(raw)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventCategoryUnknown, events[0].Category)
	assert.Equal(t, EventStatusUnknown, events[0].Status)
}

func TestDecodeEventsDropsInvalidRecords(t *testing.T) {
	raw := json.RawMessage(`[
		{"_id":"ok","title":"Valid","slug":{"current":"valid"},"date":"2024-05-01"},
		{"_id":"no-slug","title":"Missing slug","date":"2024-05-01"},
		{"_id":"bad-date","title":"Bad date","slug":{"current":"bad"},"date":"next week"},
		null
	]`)
	events, err := DecodeEvents(raw)
	require.Len(t, events, 1)
	assert.Equal(t, "ok", events[0].ID)

	require.Error(t, err)
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "event", de.Type)
	assert.Contains(t, err.Error(), "no-slug")
	assert.Contains(t, err.Error(), "bad-date")
}

func TestDecodeEventResolvedReferences(t *testing.T) {
	raw := json.RawMessage(`{
		"_id": "evt-1",
		"title": "Summit",
		"slug": {"current": "summit"},
		"date": "2025-01-10",
		"endDate": "2025-01-11",
		"speakers": [
			{"_id": "spk-1", "name": "Ravi"},
			{"_ref": "spk-2", "_type": "reference"},
			null
		],
		"sponsors": [{"_id": "sp-1", "name": "Acme", "category": "gold"}],
		"gallery": [
			{"asset": {"_id": "image-a-10x10-png"}},
			{"alt": "no asset"}
		]
	}`)
	e, err := DecodeEvent(raw)
	require.NoError(t, err)
	require.NotNil(t, e)
	require.Len(t, e.Speakers, 1)
	assert.Equal(t, "Ravi", e.Speakers[0].Name)
	require.Len(t, e.Sponsors, 1)
	assert.True(t, e.Sponsors[0].Active)
	assert.Len(t, e.Gallery, 1)
	require.NotNil(t, e.EndDate)
	assert.Equal(t, 11, e.EndDate.Day())
}

func TestDecodeEventNull(t *testing.T) {
	e, err := DecodeEvent(json.RawMessage("null"))
	assert.NoError(t, err)
	assert.Nil(t, e)
}

func TestDecodePostsNormalization(t *testing.T) {
	raw := json.RawMessage(`[
		{"_id":"p1","title":"Bare","slug":{"current":"bare"},"publishedAt":"2025-02-01T09:00:00.123Z"},
		{"_id":"p2","title":"Partial","slug":{"current":"partial"},"publishedAt":"2025-01-01T09:00:00Z",
		 "engagement":{"likes":12},"tags":["startup"],"linkedinUrl":"https://www.linkedin.com/feed/update/1","category":"event","featured":true}
	]`)
	posts, err := DecodePosts(raw)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	bare := posts[0]
	assert.Equal(t, Engagement{}, bare.Engagement)
	assert.Equal(t, []string{}, bare.Tags)
	assert.Equal(t, CompanyPostsURL, bare.LinkedInURL)
	assert.Equal(t, PostCategoryUnknown, bare.Category)
	assert.NotNil(t, bare.Content)

	partial := posts[1]
	assert.Equal(t, Engagement{Likes: 12}, partial.Engagement)
	assert.Equal(t, []string{"startup"}, partial.Tags)
	assert.Equal(t, "https://www.linkedin.com/feed/update/1", partial.LinkedInURL)
	assert.Equal(t, PostCategoryEvent, partial.Category)
	assert.True(t, partial.Featured)
}

func TestDecodeSponsorsKeepsRawCategory(t *testing.T) {
	raw := json.RawMessage(`[{"_id":"s1","name":"Foo","category":"diamond","active":false}]`)
	sponsors, err := DecodeSponsors(raw)
	require.NoError(t, err)
	require.Len(t, sponsors, 1)
	assert.Equal(t, SponsorCategoryUnknown, sponsors[0].Category)
	assert.Equal(t, "diamond", sponsors[0].CategoryRaw)
	assert.False(t, sponsors[0].Active)
}

func TestDecodeTeamMembers(t *testing.T) {
	raw := json.RawMessage(`[
		{"_id":"m1","name":"Priya","department":"Computer Engineering","year":"Third Year","memberType":"current"},
		{"_id":"m2","name":"Dev","department":"Biotech","memberType":"mentor"}
	]`)
	members, err := DecodeTeamMembers(raw)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, DepartmentComputer, members[0].Department)
	assert.Equal(t, YearThird, members[0].Year)
	assert.Equal(t, MemberTypeCurrent, members[0].MemberType)
	assert.Equal(t, DepartmentUnknown, members[1].Department)
	assert.Equal(t, AcademicYear(""), members[1].Year)
	assert.Equal(t, MemberTypeUnknown, members[1].MemberType)
	assert.Equal(t, []string{}, members[1].Achievements)
}

func TestDecodeTestimonials(t *testing.T) {
	raw := json.RawMessage(`[
		{"_id":"t1","name":"A","testimonial":"Great","rating":5,"eventRelated":{"_id":"e1","title":"Summit","slug":{"current":"summit"},"date":"2024-02-02"}},
		{"_id":"t2","name":"B","testimonial":"Meh","rating":9},
		{"_id":"t3","name":"C","testimonial":"Ok","rating":4,"eventRelated":{"_ref":"e9"}}
	]`)
	ts, err := DecodeTestimonials(raw)
	require.Error(t, err)
	require.Len(t, ts, 2)
	require.NotNil(t, ts[0].Event)
	assert.Equal(t, "summit", ts[0].Event.Slug)
	assert.Nil(t, ts[1].Event)
}

func TestDecodeSpeakers(t *testing.T) {
	raw := json.RawMessage(`[{"_id":"s1","name":"Neha","socialMedia":{"linkedin":"https://linkedin.com/in/neha"},
		"eventsSpokeAt":[{"_id":"e1","title":"Summit","slug":{"current":"summit"},"date":"2024-02-02","status":"completed"}]}]`)
	speakers, err := DecodeSpeakers(raw)
	require.NoError(t, err)
	require.Len(t, speakers, 1)
	s := speakers[0]
	assert.Equal(t, "https://linkedin.com/in/neha", s.Social.LinkedIn)
	assert.Equal(t, []string{}, s.Expertise)
	require.Len(t, s.Events, 1)
	assert.Equal(t, EventStatusCompleted, s.Events[0].Status)
}

func TestDecodeSiteSettings(t *testing.T) {
	raw := json.RawMessage(`{"title":"E-Cell","statistics":{"studentsImpacted":5000,"fundingFacilitated":"₹2 Cr+"},
		"heroSlides":[{"title":"Build"},{"subtitle":"untitled"}],"aboutSection":{"mission":"Inspire"}}`)
	s, err := DecodeSiteSettings(raw)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 5000, s.Statistics.StudentsImpacted)
	assert.Equal(t, "₹2 Cr+", s.Statistics.FundingFacilitated)
	assert.Len(t, s.HeroSlides, 1)
	assert.Equal(t, "Inspire", s.About.Mission)
	assert.Equal(t, []string{}, s.About.Values)
}

func TestDecodeContactSubmissionsDefaults(t *testing.T) {
	raw := json.RawMessage(`[{"_id":"c1","name":"A","email":"a@example.com","submittedAt":"2025-01-01T00:00:00Z"}]`)
	subs, err := DecodeContactSubmissions(raw)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, SubmissionGeneral, subs[0].Type)
	assert.Equal(t, SubmissionStatusNew, subs[0].Status)
}

func TestDecodeNullList(t *testing.T) {
	events, err := DecodeEvents(json.RawMessage("null"))
	assert.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestDecodeMalformedList(t *testing.T) {
	events, err := DecodeEvents(json.RawMessage(`{"not":"a list"}`))
	assert.Error(t, err)
	assert.NotNil(t, events)
}
