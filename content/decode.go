package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ecellfcrit/ecellweb/portabletext"
)

var validate = validator.New()

// record is a raw document as returned by a catalog projection.
type record interface {
	docID() string
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// decodeOne decodes, validates and converts a single document. ok is false
// when raw is null.
func decodeOne[R record, V any](typ string, raw json.RawMessage, convert func(R) (V, error)) (v V, ok bool, err error) {
	if isNull(raw) {
		return v, false, nil
	}
	var r R
	if err := json.Unmarshal(raw, &r); err != nil {
		return v, false, &DecodeError{Type: typ, Err: err}
	}
	if err := validate.Struct(r); err != nil {
		return v, false, &DecodeError{Type: typ, ID: r.docID(), Err: err}
	}
	v, err = convert(r)
	if err != nil {
		return v, false, &DecodeError{Type: typ, ID: r.docID(), Err: err}
	}
	return v, true, nil
}

// decodeList decodes an array result. Invalid records are dropped and their
// errors joined; the returned slice is never nil.
func decodeList[R record, V any](typ string, raw json.RawMessage, convert func(R) (V, error)) ([]V, error) {
	out := []V{}
	if isNull(raw) {
		return out, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out, &DecodeError{Type: typ, Err: err}
	}
	var errs []error
	for _, item := range items {
		v, ok, err := decodeOne(typ, item, convert)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			out = append(out, v)
		}
	}
	return out, errors.Join(errs...)
}

// nested decodes dereferenced documents embedded in another record. A bare
// or dangling reference fails validation and is dropped.
func nested[R record, V any](typ string, items []json.RawMessage, convert func(R) (V, error)) []V {
	out := make([]V, 0, len(items))
	for _, item := range items {
		if v, ok, err := decodeOne(typ, item, convert); err == nil && ok {
			out = append(out, v)
		}
	}
	return out
}

var timeLayouts = []string{time.RFC3339, time.RFC3339Nano, "2006-01-02"}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func intOr(n *int, def int) int {
	if n == nil {
		return def
	}
	return *n
}

func images(refs []*ImageRef) []ImageRef {
	out := make([]ImageRef, 0, len(refs))
	for _, r := range refs {
		if r.HasAsset() {
			out = append(out, *r)
		}
	}
	return out
}

type rawSlug struct {
	Current string `json:"current" validate:"required"`
}

type rawEventSummary struct {
	ID     string  `json:"_id" validate:"required"`
	Title  string  `json:"title" validate:"required"`
	Slug   rawSlug `json:"slug"`
	Date   string  `json:"date"`
	Status string  `json:"status"`
}

func (r rawEventSummary) docID() string { return r.ID }

func convertEventSummary(r rawEventSummary) (EventSummary, error) {
	s := EventSummary{
		ID:     r.ID,
		Title:  r.Title,
		Slug:   r.Slug.Current,
		Status: ParseEventStatus(r.Status),
	}
	if r.Date != "" {
		t, err := parseTime(r.Date)
		if err != nil {
			return s, err
		}
		s.Date = t
	}
	return s, nil
}

type rawEvent struct {
	ID               string               `json:"_id" validate:"required"`
	Title            string               `json:"title" validate:"required"`
	Slug             rawSlug              `json:"slug"`
	Description      string               `json:"description"`
	Date             string               `json:"date" validate:"required"`
	EndDate          string               `json:"endDate"`
	Location         string               `json:"location"`
	Participants     *int                 `json:"participants"`
	Category         string               `json:"category"`
	Status           string               `json:"status"`
	Featured         *bool                `json:"featured"`
	Image            *ImageRef            `json:"image"`
	Highlights       []string             `json:"highlights"`
	Content          []portabletext.Block `json:"content"`
	Gallery          []*ImageRef          `json:"gallery"`
	Speakers         []json.RawMessage    `json:"speakers"`
	Sponsors         []json.RawMessage    `json:"sponsors"`
	RegistrationLink string               `json:"registrationLink"`
}

func (r rawEvent) docID() string { return r.ID }

func convertEvent(r rawEvent) (Event, error) {
	date, err := parseTime(r.Date)
	if err != nil {
		return Event{}, err
	}
	e := Event{
		ID:               r.ID,
		Title:            r.Title,
		Slug:             r.Slug.Current,
		Description:      r.Description,
		Date:             date,
		Location:         r.Location,
		Participants:     r.Participants,
		Category:         ParseEventCategory(r.Category),
		Status:           ParseEventStatus(r.Status),
		Featured:         boolOr(r.Featured, false),
		Image:            r.Image,
		Highlights:       orEmpty(r.Highlights),
		Content:          orEmpty(r.Content),
		Gallery:          images(r.Gallery),
		Speakers:         nested("speaker", r.Speakers, convertSpeaker),
		Sponsors:         nested("sponsor", r.Sponsors, convertSponsor),
		RegistrationLink: r.RegistrationLink,
	}
	if r.EndDate != "" {
		end, err := parseTime(r.EndDate)
		if err != nil {
			return Event{}, err
		}
		e.EndDate = &end
	}
	return e, nil
}

// DecodeEvents decodes an event list result.
func DecodeEvents(raw json.RawMessage) ([]Event, error) {
	return decodeList("event", raw, convertEvent)
}

// DecodeEvent decodes a single event result; a null result yields nil.
func DecodeEvent(raw json.RawMessage) (*Event, error) {
	v, ok, err := decodeOne("event", raw, convertEvent)
	return single(v, ok, err)
}

func single[V any](v V, ok bool, err error) (*V, error) {
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

type rawSpeaker struct {
	ID           string            `json:"_id" validate:"required"`
	Name         string            `json:"name" validate:"required"`
	Image        *ImageRef         `json:"image"`
	Role         string            `json:"role"`
	Company      string            `json:"company"`
	Bio          string            `json:"bio"`
	Expertise    []string          `json:"expertise"`
	SocialMedia  *SocialLinks      `json:"socialMedia"`
	Achievements []string          `json:"achievements"`
	Events       []json.RawMessage `json:"eventsSpokeAt"`
	Featured     *bool             `json:"featured"`
	Order        *int              `json:"order"`
	Testimonial  string            `json:"testimonial"`
}

func (r rawSpeaker) docID() string { return r.ID }

func convertSpeaker(r rawSpeaker) (Speaker, error) {
	s := Speaker{
		ID:           r.ID,
		Name:         r.Name,
		Image:        r.Image,
		Role:         r.Role,
		Company:      r.Company,
		Bio:          r.Bio,
		Expertise:    orEmpty(r.Expertise),
		Achievements: orEmpty(r.Achievements),
		Events:       nested("event", r.Events, convertEventSummary),
		Featured:     boolOr(r.Featured, false),
		Order:        r.Order,
		Testimonial:  r.Testimonial,
	}
	if r.SocialMedia != nil {
		s.Social = *r.SocialMedia
	}
	return s, nil
}

func DecodeSpeakers(raw json.RawMessage) ([]Speaker, error) {
	return decodeList("speaker", raw, convertSpeaker)
}

type rawSponsor struct {
	ID            string    `json:"_id" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Logo          *ImageRef `json:"logo"`
	Category      string    `json:"category"`
	Website       string    `json:"website"`
	Description   string    `json:"description"`
	YearPartnered *int      `json:"yearPartnered"`
	Active        *bool     `json:"active"`
	Featured      *bool     `json:"featured"`
	Order         *int      `json:"order"`
}

func (r rawSponsor) docID() string { return r.ID }

func convertSponsor(r rawSponsor) (Sponsor, error) {
	return Sponsor{
		ID:            r.ID,
		Name:          r.Name,
		Logo:          r.Logo,
		Category:      ParseSponsorCategory(r.Category),
		CategoryRaw:   r.Category,
		Website:       r.Website,
		Description:   r.Description,
		YearPartnered: r.YearPartnered,
		Active:        boolOr(r.Active, true),
		Featured:      boolOr(r.Featured, false),
		Order:         r.Order,
	}, nil
}

func DecodeSponsors(raw json.RawMessage) ([]Sponsor, error) {
	return decodeList("sponsor", raw, convertSponsor)
}

type rawTeamMember struct {
	ID           string    `json:"_id" validate:"required"`
	Name         string    `json:"name" validate:"required"`
	Position     string    `json:"position"`
	Department   string    `json:"department"`
	Year         string    `json:"year"`
	MemberType   string    `json:"memberType"`
	Image        *ImageRef `json:"image"`
	Bio          string    `json:"bio"`
	Achievements []string  `json:"achievements"`
	Email        string    `json:"email"`
	LinkedIn     string    `json:"linkedin"`
	GitHub       string    `json:"github"`
	CurrentRole  string    `json:"currentRole"`
	Tenure       string    `json:"tenure"`
	Order        *int      `json:"order"`
}

func (r rawTeamMember) docID() string { return r.ID }

func convertTeamMember(r rawTeamMember) (TeamMember, error) {
	return TeamMember{
		ID:           r.ID,
		Name:         r.Name,
		Position:     r.Position,
		Department:   ParseDepartment(r.Department),
		Year:         ParseAcademicYear(r.Year),
		MemberType:   ParseMemberType(r.MemberType),
		Image:        r.Image,
		Bio:          r.Bio,
		Achievements: orEmpty(r.Achievements),
		Email:        r.Email,
		LinkedIn:     r.LinkedIn,
		GitHub:       r.GitHub,
		CurrentRole:  r.CurrentRole,
		Tenure:       r.Tenure,
		Order:        r.Order,
	}, nil
}

func DecodeTeamMembers(raw json.RawMessage) ([]TeamMember, error) {
	return decodeList("teamMember", raw, convertTeamMember)
}

type rawTestimonial struct {
	ID       string          `json:"_id" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Role     string          `json:"role"`
	Company  string          `json:"company"`
	Image    *ImageRef       `json:"image"`
	Text     string          `json:"testimonial" validate:"required"`
	Rating   int             `json:"rating" validate:"required,min=1,max=5"`
	Category string          `json:"category"`
	Featured *bool           `json:"featured"`
	Order    *int            `json:"order"`
	Event    json.RawMessage `json:"eventRelated"`
}

func (r rawTestimonial) docID() string { return r.ID }

func convertTestimonial(r rawTestimonial) (Testimonial, error) {
	t := Testimonial{
		ID:       r.ID,
		Name:     r.Name,
		Role:     r.Role,
		Company:  r.Company,
		Image:    r.Image,
		Text:     r.Text,
		Rating:   r.Rating,
		Category: ParseTestimonialCategory(r.Category),
		Featured: boolOr(r.Featured, false),
		Order:    r.Order,
	}
	if ev, ok, err := decodeOne("event", r.Event, convertEventSummary); err == nil && ok {
		t.Event = &ev
	}
	return t, nil
}

func DecodeTestimonials(raw json.RawMessage) ([]Testimonial, error) {
	return decodeList("testimonial", raw, convertTestimonial)
}

type rawEngagement struct {
	Likes    *int `json:"likes"`
	Comments *int `json:"comments"`
	Shares   *int `json:"shares"`
}

type rawPost struct {
	ID            string               `json:"_id" validate:"required"`
	Title         string               `json:"title" validate:"required"`
	Slug          rawSlug              `json:"slug"`
	Excerpt       string               `json:"excerpt"`
	Content       []portabletext.Block `json:"content"`
	PublishedAt   string               `json:"publishedAt" validate:"required"`
	Engagement    *rawEngagement       `json:"engagement"`
	Tags          []string             `json:"tags"`
	FeaturedImage *ImageRef            `json:"featuredImage"`
	LinkedInURL   string               `json:"linkedinUrl"`
	Category      string               `json:"category"`
	Featured      *bool                `json:"featured"`
}

func (r rawPost) docID() string { return r.ID }

func convertPost(r rawPost) (Post, error) {
	published, err := parseTime(r.PublishedAt)
	if err != nil {
		return Post{}, err
	}
	p := Post{
		ID:            r.ID,
		Title:         r.Title,
		Slug:          r.Slug.Current,
		Excerpt:       r.Excerpt,
		Content:       orEmpty(r.Content),
		PublishedAt:   published,
		Tags:          orEmpty(r.Tags),
		FeaturedImage: r.FeaturedImage,
		LinkedInURL:   r.LinkedInURL,
		Category:      ParsePostCategory(r.Category),
		Featured:      boolOr(r.Featured, false),
	}
	if e := r.Engagement; e != nil {
		p.Engagement = Engagement{
			Likes:    intOr(e.Likes, 0),
			Comments: intOr(e.Comments, 0),
			Shares:   intOr(e.Shares, 0),
		}
	}
	if p.LinkedInURL == "" {
		p.LinkedInURL = CompanyPostsURL
	}
	return p, nil
}

func DecodePosts(raw json.RawMessage) ([]Post, error) {
	return decodeList("linkedinPost", raw, convertPost)
}

// DecodePost decodes a single post result; a null result yields nil.
func DecodePost(raw json.RawMessage) (*Post, error) {
	v, ok, err := decodeOne("linkedinPost", raw, convertPost)
	return single(v, ok, err)
}

type rawHeroSlide struct {
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Image       *ImageRef `json:"image"`
	CTAText     string    `json:"ctaText"`
	CTALink     string    `json:"ctaLink"`
}

type rawSiteSettings struct {
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Logo            *ImageRef      `json:"logo"`
	EstablishedYear int            `json:"establishedYear"`
	ContactEmail    string         `json:"contactEmail"`
	ContactPhone    string         `json:"contactPhone"`
	Address         string         `json:"address"`
	SocialMedia     *SiteSocial    `json:"socialMedia"`
	HeroSlides      []rawHeroSlide `json:"heroSlides"`
	About           *struct {
		Mission string   `json:"mission"`
		Vision  string   `json:"vision"`
		Values  []string `json:"values"`
	} `json:"aboutSection"`
	Statistics *Statistics `json:"statistics"`
}

func (r rawSiteSettings) docID() string { return "siteSettings" }

func convertSiteSettings(r rawSiteSettings) (SiteSettings, error) {
	s := SiteSettings{
		Title:           r.Title,
		Description:     r.Description,
		Logo:            r.Logo,
		EstablishedYear: r.EstablishedYear,
		ContactEmail:    r.ContactEmail,
		ContactPhone:    r.ContactPhone,
		Address:         r.Address,
		HeroSlides:      make([]HeroSlide, 0, len(r.HeroSlides)),
		About:           AboutSection{Values: []string{}},
	}
	if r.SocialMedia != nil {
		s.Social = *r.SocialMedia
	}
	for _, h := range r.HeroSlides {
		if h.Title == "" {
			continue
		}
		s.HeroSlides = append(s.HeroSlides, HeroSlide(h))
	}
	if r.About != nil {
		s.About = AboutSection{
			Mission: r.About.Mission,
			Vision:  r.About.Vision,
			Values:  orEmpty(r.About.Values),
		}
	}
	if r.Statistics != nil {
		s.Statistics = *r.Statistics
	}
	return s, nil
}

// DecodeSiteSettings decodes the settings singleton; a null result yields nil.
func DecodeSiteSettings(raw json.RawMessage) (*SiteSettings, error) {
	v, ok, err := decodeOne("siteSettings", raw, convertSiteSettings)
	return single(v, ok, err)
}

type rawSubmission struct {
	ID          string `json:"_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Subject     string `json:"subject"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	Type        string `json:"type"`
	SubmittedAt string `json:"submittedAt"`
	Status      string `json:"status"`
}

func (r rawSubmission) docID() string { return r.ID }

func convertSubmission(r rawSubmission) (ContactSubmission, error) {
	s := ContactSubmission{
		ID:      r.ID,
		Name:    r.Name,
		Email:   r.Email,
		Subject: r.Subject,
		Phone:   r.Phone,
		Message: r.Message,
		Type:    ParseSubmissionType(r.Type),
		Status:  ParseSubmissionStatus(r.Status),
	}
	if r.Type == "" {
		s.Type = SubmissionGeneral
	}
	if r.Status == "" {
		s.Status = SubmissionStatusNew
	}
	if r.SubmittedAt != "" {
		t, err := parseTime(r.SubmittedAt)
		if err != nil {
			return s, err
		}
		s.SubmittedAt = t
	}
	return s, nil
}

func DecodeContactSubmissions(raw json.RawMessage) ([]ContactSubmission, error) {
	return decodeList("contactSubmission", raw, convertSubmission)
}
