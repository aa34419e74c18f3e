package content

import (
	"fmt"
	"strconv"
	"strings"
)

// Comparison operators supported in catalog filters.
const (
	OpEq  = "=="
	OpNeq = "!="
)

// missingOrder is the sort key used for documents without a display order,
// so that they follow every document that has one.
const missingOrder = 1000000

// Filter is one conjunct of a query's filter. When Param is set the value is
// bound through the query parameters; otherwise Value is written literally.
type Filter struct {
	Field string
	Op    string
	Value any
	Param string
}

// Order is a sort key. A non-nil Default substitutes for missing values.
type Order struct {
	Field   string
	Desc    bool
	Default any
}

// Query is a catalog entry: a structured description of a content store
// query. GROQ renders it as query text and Params holds its bound values.
type Query struct {
	Name    string
	Type    string
	Filters []Filter
	Order   []Order
	// Start and End select the half-open window [Start, End). End == 0 means
	// no window.
	Start, End int
	Single     bool
	Projection string
	// Expand lists reference paths dereferenced by the projection, in
	// resolution order. "speakers[]" dereferences every element of an array;
	// "image.asset" follows a nested reference.
	Expand []string
	Params map[string]any
}

// GROQ renders q as query text.
func (q Query) GROQ() string {
	var sb strings.Builder
	sb.WriteString(`*[_type == "` + q.Type + `"`)
	for _, f := range q.Filters {
		sb.WriteString(" && " + f.Field + " " + f.Op + " ")
		if f.Param != "" {
			sb.WriteString("$" + f.Param)
		} else {
			sb.WriteString(literal(f.Value))
		}
	}
	sb.WriteString("]")
	if len(q.Order) > 0 {
		keys := make([]string, len(q.Order))
		for i, o := range q.Order {
			key := o.Field
			if o.Default != nil {
				key = "coalesce(" + o.Field + ", " + literal(o.Default) + ")"
			}
			dir := "asc"
			if o.Desc {
				dir = "desc"
			}
			keys[i] = key + " " + dir
		}
		sb.WriteString(" | order(" + strings.Join(keys, ", ") + ")")
	}
	switch {
	case q.Single:
		sb.WriteString("[0]")
	case q.End > 0:
		sb.WriteString(" [" + strconv.Itoa(q.Start) + "..." + strconv.Itoa(q.End) + "]")
	}
	if q.Projection != "" {
		sb.WriteString(" {" + q.Projection + "}")
	}
	return sb.String()
}

func literal(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case nil:
		return "null"
	default:
		return fmt.Sprint(x)
	}
}

func imageField(field string) string {
	return field + `{alt, crop, hotspot, "asset": asset->{_id, url}}`
}

var displayOrder = []Order{
	{Field: "order", Default: missingOrder},
	{Field: "name"},
}

// testimonialOrder breaks display order ties newest first.
var testimonialOrder = []Order{
	{Field: "order", Default: missingOrder},
	{Field: "_createdAt", Desc: true},
}

var (
	speakerFields = "_id, name, " + imageField("image") + ", role, company, bio, expertise, socialMedia, achievements, featured, order, testimonial"
	sponsorFields = "_id, name, " + imageField("logo") + ", category, website, description, yearPartnered, active, featured, order"
	eventFields   = "_id, title, slug, description, date, endDate, location, participants, category, status, featured, " +
		imageField("image") + ", highlights, registrationLink"
	eventSummaryFields = "_id, title, slug, date, status"
	memberFields       = "_id, name, position, department, year, memberType, " + imageField("image") +
		", bio, achievements, email, linkedin, github, currentRole, tenure, order"
	testimonialFields = "_id, name, role, company, " + imageField("image") + ", testimonial, rating, category, featured, order, " +
		"eventRelated->{" + eventSummaryFields + "}"
	postFields = "_id, title, slug, excerpt, content, publishedAt, engagement, tags, " + imageField("featuredImage") +
		", linkedinUrl, category, featured"
	settingsFields = "title, description, " + imageField("logo") + ", establishedYear, contactEmail, contactPhone, address, " +
		"socialMedia, heroSlides[]{title, subtitle, description, " + imageField("image") + ", ctaText, ctaLink}, aboutSection, statistics"
	submissionFields = "_id, name, email, subject, phone, message, type, submittedAt, status"
)

var (
	eventListProjection = eventFields +
		", speakers[]->{" + speakerFields + "}, sponsors[]->{" + sponsorFields + "}"
	eventDetailProjection = eventListProjection + ", content, gallery[]{alt, crop, hotspot, \"asset\": asset->{_id, url}}"
)

var (
	eventListExpand = []string{
		"image.asset",
		"speakers[]", "speakers[].image.asset",
		"sponsors[]", "sponsors[].logo.asset",
	}
	eventDetailExpand = append(append([]string{}, eventListExpand...), "gallery[].asset")
)

func eventList(name string, order Order, filters ...Filter) Query {
	return Query{
		Name:       name,
		Type:       "event",
		Filters:    filters,
		Order:      []Order{order},
		Projection: eventListProjection,
		Expand:     eventListExpand,
	}
}

// AllEvents returns every event, newest first.
func AllEvents() Query {
	return eventList("allEvents", Order{Field: "date", Desc: true})
}

// UpcomingEvents returns events marked upcoming, soonest first.
func UpcomingEvents() Query {
	return eventList("upcomingEvents", Order{Field: "date"},
		Filter{Field: "status", Op: OpEq, Value: string(EventStatusUpcoming)})
}

// PastEvents returns events marked completed, newest first.
func PastEvents() Query {
	return eventList("pastEvents", Order{Field: "date", Desc: true},
		Filter{Field: "status", Op: OpEq, Value: string(EventStatusCompleted)})
}

// FeaturedEvents returns the three newest featured events.
func FeaturedEvents() Query {
	q := eventList("featuredEvents", Order{Field: "date", Desc: true},
		Filter{Field: "featured", Op: OpEq, Value: true})
	q.End = 3
	return q
}

func EventsByStatus(status EventStatus) Query {
	q := eventList("eventsByStatus", Order{Field: "date", Desc: true},
		Filter{Field: "status", Op: OpEq, Param: "status"})
	q.Params = map[string]any{"status": string(status)}
	return q
}

// EventBySlug returns one event with speakers, sponsors and gallery resolved.
func EventBySlug(slug string) Query {
	return Query{
		Name:       "eventBySlug",
		Type:       "event",
		Filters:    []Filter{{Field: "slug.current", Op: OpEq, Param: "slug"}},
		Single:     true,
		Projection: eventDetailProjection,
		Expand:     eventDetailExpand,
		Params:     map[string]any{"slug": slug},
	}
}

func EventByID(id string) Query {
	return Query{
		Name:       "eventByID",
		Type:       "event",
		Filters:    []Filter{{Field: "_id", Op: OpEq, Param: "id"}},
		Single:     true,
		Projection: eventDetailProjection,
		Expand:     eventDetailExpand,
		Params:     map[string]any{"id": id},
	}
}

var memberExpand = []string{"image.asset"}

// AllTeamMembers returns the whole team in display order.
func AllTeamMembers() Query {
	return Query{
		Name:       "allTeamMembers",
		Type:       "teamMember",
		Order:      displayOrder,
		Projection: memberFields,
		Expand:     memberExpand,
	}
}

// TeamByMemberType returns members of one roster partition in display order.
func TeamByMemberType(t MemberType) Query {
	return Query{
		Name:       "teamByMemberType",
		Type:       "teamMember",
		Filters:    []Filter{{Field: "memberType", Op: OpEq, Param: "memberType"}},
		Order:      displayOrder,
		Projection: memberFields,
		Expand:     memberExpand,
		Params:     map[string]any{"memberType": string(t)},
	}
}

func CurrentTeam() Query { return TeamByMemberType(MemberTypeCurrent) }
func PastTeam() Query    { return TeamByMemberType(MemberTypePast) }
func Advisors() Query    { return TeamByMemberType(MemberTypeAdvisor) }

// AllSpeakers returns every speaker with the events they spoke at.
func AllSpeakers() Query {
	return Query{
		Name:       "allSpeakers",
		Type:       "speaker",
		Order:      displayOrder,
		Projection: speakerFields + ", eventsSpokeAt[]->{" + eventSummaryFields + "}",
		Expand:     []string{"image.asset", "eventsSpokeAt[]"},
	}
}

// FeaturedSpeakers returns the first six featured speakers.
func FeaturedSpeakers() Query {
	q := AllSpeakers()
	q.Name = "featuredSpeakers"
	q.Filters = []Filter{{Field: "featured", Op: OpEq, Value: true}}
	q.End = 6
	return q
}

var activeSponsor = Filter{Field: "active", Op: OpNeq, Value: false}

// AllSponsors returns active sponsors. A sponsor without the flag is active.
func AllSponsors() Query {
	return Query{
		Name:       "allSponsors",
		Type:       "sponsor",
		Filters:    []Filter{activeSponsor},
		Order:      displayOrder,
		Projection: sponsorFields,
		Expand:     []string{"logo.asset"},
	}
}

// FeaturedSponsors returns the first eight featured active sponsors.
func FeaturedSponsors() Query {
	q := AllSponsors()
	q.Name = "featuredSponsors"
	q.Filters = []Filter{{Field: "featured", Op: OpEq, Value: true}, activeSponsor}
	q.End = 8
	return q
}

func AllTestimonials() Query {
	return Query{
		Name:       "allTestimonials",
		Type:       "testimonial",
		Order:      testimonialOrder,
		Projection: testimonialFields,
		Expand:     []string{"image.asset", "eventRelated"},
	}
}

// FeaturedTestimonials returns the first six featured testimonials.
func FeaturedTestimonials() Query {
	q := AllTestimonials()
	q.Name = "featuredTestimonials"
	q.Filters = []Filter{{Field: "featured", Op: OpEq, Value: true}}
	q.End = 6
	return q
}

// Post limit tiers with dedicated catalog entries.
const (
	RecentPostsLimit = 6
	AllPostsLimit    = 20
)

func postList(name string, filters ...Filter) Query {
	return Query{
		Name:       name,
		Type:       "linkedinPost",
		Filters:    filters,
		Order:      []Order{{Field: "publishedAt", Desc: true}},
		Projection: postFields,
		Expand:     []string{"featuredImage.asset"},
	}
}

// AllPosts returns the twenty most recent posts.
func AllPosts() Query {
	q := postList("allPosts")
	q.End = AllPostsLimit
	return q
}

// RecentPosts returns the limit most recent posts. The two standard tiers map
// to their named catalog entries; any other positive limit is used as given.
func RecentPosts(limit int) Query {
	switch limit {
	case AllPostsLimit:
		return AllPosts()
	case RecentPostsLimit:
		q := postList("recentPosts")
		q.End = RecentPostsLimit
		return q
	}
	if limit <= 0 {
		limit = RecentPostsLimit
	}
	q := postList("recentPostsLimit")
	q.End = limit
	return q
}

func FeaturedPosts() Query {
	return postList("featuredPosts", Filter{Field: "featured", Op: OpEq, Value: true})
}

func PostsByCategory(cat PostCategory) Query {
	q := postList("postsByCategory", Filter{Field: "category", Op: OpEq, Param: "category"})
	q.Params = map[string]any{"category": string(cat)}
	return q
}

func PostBySlug(slug string) Query {
	q := postList("postBySlug", Filter{Field: "slug.current", Op: OpEq, Param: "slug"})
	q.Order = nil
	q.Single = true
	q.Params = map[string]any{"slug": slug}
	return q
}

// SiteSettingsQuery returns the singleton settings document.
func SiteSettingsQuery() Query {
	return Query{
		Name:       "siteSettings",
		Type:       "siteSettings",
		Single:     true,
		Projection: settingsFields,
		Expand:     []string{"logo.asset", "heroSlides[].image.asset"},
	}
}

// ContactSubmissions lists contact form submissions, newest first. Reading
// them requires an authenticated client.
func ContactSubmissions() Query {
	return Query{
		Name:       "contactSubmissions",
		Type:       "contactSubmission",
		Order:      []Order{{Field: "submittedAt", Desc: true}},
		Projection: submissionFields,
	}
}
