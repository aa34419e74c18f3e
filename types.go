package ecellweb

import "github.com/ecellfcrit/ecellweb/content"

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`    // canonical + og:url
	OGType      string `json:"ogType"` // "website" or "article"
	Image       string `json:"image,omitempty"`
}

// HomePage is the landing page view model.
type HomePage struct {
	Meta           PageMeta               `json:"meta"`
	Settings       content.SiteSettings   `json:"settings"`
	FeaturedEvents []content.Event        `json:"featuredEvents"`
	UpcomingEvents []content.Event        `json:"upcomingEvents"`
	Speakers       []content.Speaker      `json:"speakers"`
	Sponsors       []content.SponsorGroup `json:"sponsors"`
	Testimonials   []content.Testimonial  `json:"testimonials"`
	Posts          []content.Post         `json:"posts"`
}

type EventsPage struct {
	Meta     PageMeta        `json:"meta"`
	Upcoming []content.Event `json:"upcoming"`
	Ongoing  []content.Event `json:"ongoing"`
	Past     []content.Event `json:"past"`
}

type EventPage struct {
	Meta  PageMeta      `json:"meta"`
	Event content.Event `json:"event"`
	// RegistrationOpen is false once the event is completed.
	RegistrationOpen bool   `json:"registrationOpen"`
	ContentHTML      string `json:"contentHtml"`
	JSONLD           string `json:"-"`
}

type TeamPage struct {
	Meta   PageMeta       `json:"meta"`
	Roster content.Roster `json:"roster"`
}

type SpeakersPage struct {
	Meta     PageMeta          `json:"meta"`
	Featured []content.Speaker `json:"featured"`
	Speakers []content.Speaker `json:"speakers"`
}

type PostsPage struct {
	Meta       PageMeta               `json:"meta"`
	Category   content.PostCategory   `json:"category,omitempty"`
	Categories []content.PostCategory `json:"categories"`
	Featured   []content.Post         `json:"featured"`
	Posts      []content.Post         `json:"posts"`
}

type PostPage struct {
	Meta        PageMeta       `json:"meta"`
	Post        content.Post   `json:"post"`
	ContentHTML string         `json:"contentHtml"`
	Related     []content.Post `json:"related"`
}

type AboutPage struct {
	Meta         PageMeta               `json:"meta"`
	Settings     content.SiteSettings   `json:"settings"`
	Advisors     []content.TeamMember   `json:"advisors"`
	Sponsors     []content.SponsorGroup `json:"sponsors"`
	Testimonials []content.Testimonial  `json:"testimonials"`
}

// AdminPage is the admin dashboard view model.
type AdminPage struct {
	Message       string                      `json:"message,omitempty"`
	Submissions   []content.ContactSubmission `json:"submissions"`
	Subscribers   []Subscriber                `json:"subscribers"`
	Registrations []Registration              `json:"registrations"`
}
