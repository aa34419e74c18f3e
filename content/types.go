package content

import (
	"time"

	"github.com/ecellfcrit/ecellweb/portabletext"
)

// CompanyPostsURL is the fallback external link for posts without one.
const CompanyPostsURL = "https://www.linkedin.com/company/fcrit-entrepreneurship-cell/posts/"

// ImageRef is an image field. Catalog projections dereference the asset so
// that Asset carries the asset document id and its CDN url.
type ImageRef struct {
	Asset   *AssetRef `json:"asset,omitempty"`
	Alt     string    `json:"alt,omitempty"`
	Crop    *Crop     `json:"crop,omitempty"`
	Hotspot *Hotspot  `json:"hotspot,omitempty"`
}

// AssetRef is either a dereferenced asset ({_id, url}) or a bare reference ({_ref}).
type AssetRef struct {
	ID  string `json:"_id,omitempty"`
	Ref string `json:"_ref,omitempty"`
	URL string `json:"url,omitempty"`
}

// AssetID returns the asset document id regardless of reference form.
func (a *AssetRef) AssetID() string {
	if a == nil {
		return ""
	}
	if a.ID != "" {
		return a.ID
	}
	return a.Ref
}

// HasAsset reports whether r points at an asset. A nil or asset-less image
// is a normal state; callers render a placeholder instead.
func (r *ImageRef) HasAsset() bool {
	return r != nil && r.Asset.AssetID() != ""
}

// Crop holds fractional insets from each edge.
type Crop struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Hotspot is the editor-chosen focal area in fractional coordinates.
type Hotspot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// EventSummary is the short form of an event used in back-references.
type EventSummary struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Slug   string      `json:"slug"`
	Date   time.Time   `json:"date"`
	Status EventStatus `json:"status"`
}

type Event struct {
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	Slug             string               `json:"slug"`
	Description      string               `json:"description"`
	Date             time.Time            `json:"date"`
	EndDate          *time.Time           `json:"endDate,omitempty"`
	Location         string               `json:"location"`
	Participants     *int                 `json:"participants,omitempty"`
	Category         EventCategory        `json:"category"`
	Status           EventStatus          `json:"status"`
	Featured         bool                 `json:"featured"`
	Image            *ImageRef            `json:"image,omitempty"`
	Highlights       []string             `json:"highlights"`
	Content          []portabletext.Block `json:"content"`
	Gallery          []ImageRef           `json:"gallery"`
	Speakers         []Speaker            `json:"speakers"`
	Sponsors         []Sponsor            `json:"sponsors"`
	RegistrationLink string               `json:"registrationLink,omitempty"`
}

// Summary returns the back-reference form of e.
func (e Event) Summary() EventSummary {
	return EventSummary{ID: e.ID, Title: e.Title, Slug: e.Slug, Date: e.Date, Status: e.Status}
}

// SocialLinks are a person's external profiles.
type SocialLinks struct {
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Website  string `json:"website,omitempty"`
}

type Speaker struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Image        *ImageRef      `json:"image,omitempty"`
	Role         string         `json:"role"`
	Company      string         `json:"company,omitempty"`
	Bio          string         `json:"bio"`
	Expertise    []string       `json:"expertise"`
	Social       SocialLinks    `json:"socialMedia"`
	Achievements []string       `json:"achievements"`
	Events       []EventSummary `json:"eventsSpokeAt"`
	Featured     bool           `json:"featured"`
	Order        *int           `json:"order,omitempty"`
	Testimonial  string         `json:"testimonial,omitempty"`
}

type Sponsor struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Logo          *ImageRef       `json:"logo,omitempty"`
	Category      SponsorCategory `json:"category"`
	CategoryRaw   string          `json:"categoryRaw"`
	Website       string          `json:"website,omitempty"`
	Description   string          `json:"description,omitempty"`
	YearPartnered *int            `json:"yearPartnered,omitempty"`
	Active        bool            `json:"active"`
	Featured      bool            `json:"featured"`
	Order         *int            `json:"order,omitempty"`
}

// SponsorGroup is one display tier of sponsors.
type SponsorGroup struct {
	Category SponsorCategory `json:"category"`
	Label    string          `json:"label"`
	Sponsors []Sponsor       `json:"sponsors"`
}

type TeamMember struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Position     string       `json:"position"`
	Department   Department   `json:"department"`
	Year         AcademicYear `json:"year,omitempty"`
	MemberType   MemberType   `json:"memberType"`
	Image        *ImageRef    `json:"image,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	Achievements []string     `json:"achievements"`
	Email        string       `json:"email,omitempty"`
	LinkedIn     string       `json:"linkedin,omitempty"`
	GitHub       string       `json:"github,omitempty"`
	CurrentRole  string       `json:"currentRole,omitempty"`
	Tenure       string       `json:"tenure,omitempty"`
	Order        *int         `json:"order,omitempty"`
}

// Roster is the team split by member type.
type Roster struct {
	Current  []TeamMember `json:"current"`
	Past     []TeamMember `json:"past"`
	Advisors []TeamMember `json:"advisors"`
}

type Testimonial struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Role     string              `json:"role"`
	Company  string              `json:"company,omitempty"`
	Image    *ImageRef           `json:"image,omitempty"`
	Text     string              `json:"testimonial"`
	Rating   int                 `json:"rating"`
	Category TestimonialCategory `json:"category,omitempty"`
	Featured bool                `json:"featured"`
	Order    *int                `json:"order,omitempty"`
	Event    *EventSummary       `json:"eventRelated,omitempty"`
}

// Engagement counters are always present on a Post.
type Engagement struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

// Post is a content-managed LinkedIn-style update.
type Post struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Slug          string               `json:"slug"`
	Excerpt       string               `json:"excerpt,omitempty"`
	Content       []portabletext.Block `json:"content"`
	PublishedAt   time.Time            `json:"publishedAt"`
	Engagement    Engagement           `json:"engagement"`
	Tags          []string             `json:"tags"`
	FeaturedImage *ImageRef            `json:"featuredImage,omitempty"`
	LinkedInURL   string               `json:"linkedinUrl"`
	Category      PostCategory         `json:"category"`
	Featured      bool                 `json:"featured"`
}

// ContactSubmission is a message left through the contact form.
type ContactSubmission struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Subject     string           `json:"subject"`
	Phone       string           `json:"phone,omitempty"`
	Message     string           `json:"message"`
	Type        SubmissionType   `json:"type"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Status      SubmissionStatus `json:"status"`
}

// NewContactSubmission is the document created by the contact write path.
type NewContactSubmission struct {
	Type        string `json:"_type"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	InquiryType string `json:"type"`
	SubmittedAt string `json:"submittedAt"`
	Status      string `json:"status"`
}

type HeroSlide struct {
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle,omitempty"`
	Description string    `json:"description,omitempty"`
	Image       *ImageRef `json:"image,omitempty"`
	CTAText     string    `json:"ctaText,omitempty"`
	CTALink     string    `json:"ctaLink,omitempty"`
}

type AboutSection struct {
	Mission string   `json:"mission,omitempty"`
	Vision  string   `json:"vision,omitempty"`
	Values  []string `json:"values"`
}

type Statistics struct {
	StudentsImpacted   int    `json:"studentsImpacted"`
	EventsOrganized    int    `json:"eventsOrganized"`
	StartupsIncubated  int    `json:"startupsIncubated"`
	IndustryPartners   int    `json:"industryPartners"`
	CommunityReach     int    `json:"communityReach"`
	FundingFacilitated string `json:"fundingFacilitated,omitempty"`
}

type SiteSocial struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

// SiteSettings is the singleton settings document.
type SiteSettings struct {
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Logo            *ImageRef    `json:"logo,omitempty"`
	EstablishedYear int          `json:"establishedYear,omitempty"`
	ContactEmail    string       `json:"contactEmail,omitempty"`
	ContactPhone    string       `json:"contactPhone,omitempty"`
	Address         string       `json:"address,omitempty"`
	Social          SiteSocial   `json:"socialMedia"`
	HeroSlides      []HeroSlide  `json:"heroSlides"`
	About           AboutSection `json:"aboutSection"`
	Statistics      Statistics   `json:"statistics"`
}
