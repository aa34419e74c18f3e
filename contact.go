package ecellweb

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ecellfcrit/ecellweb/content"
)

// DefaultContactSubject is stored when a contact form has no subject.
const DefaultContactSubject = "Contact Form Submission"

// ContactService writes contact form submissions to the content store and
// lists them for the admin dashboard. It needs a client holding a write token.
type ContactService struct {
	content content.ReadWriter
	log     *zap.Logger
	now     func() time.Time
}

func NewContactService(rw content.ReadWriter, logger *zap.Logger) *ContactService {
	return &ContactService{content: rw, log: logger.Named("contact"), now: time.Now}
}

// Submit creates a contact submission from form and returns its document id.
// Optional fields get their defaults and the timestamp is assigned here.
func (s *ContactService) Submit(ctx context.Context, form ContactForm) (string, error) {
	typ := content.SubmissionGeneral
	if form.Type != "" {
		typ = content.ParseSubmissionType(form.Type)
	}
	if typ == content.SubmissionUnknown {
		return "", fmt.Errorf("ecellweb: unknown inquiry type %q", form.Type)
	}
	subject := form.Subject
	if subject == "" {
		subject = DefaultContactSubject
	}
	doc := content.NewContactSubmission{
		Type:        "contactSubmission",
		Name:        form.Name,
		Email:       form.Email,
		Subject:     subject,
		Phone:       form.Phone,
		Message:     form.Message,
		InquiryType: string(typ),
		SubmittedAt: s.now().UTC().Format(time.RFC3339),
		Status:      string(content.SubmissionStatusNew),
	}
	id, err := s.content.Create(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("ecellweb: create contact submission: %w", err)
	}
	s.log.Info("contact submission stored", zap.String("id", id), zap.String("type", doc.InquiryType))
	return id, nil
}

// List returns every submission, newest first. Unlike the page services it
// reports fetch failures, since the admin view has no useful empty state.
func (s *ContactService) List(ctx context.Context) ([]content.ContactSubmission, error) {
	q := content.ContactSubmissions()
	raw, err := s.content.FetchRaw(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("ecellweb: list contact submissions: %w", err)
	}
	subs, err := content.DecodeContactSubmissions(raw)
	if err != nil {
		s.log.Warn("dropped invalid content records", zap.String("query", q.Name), zap.Error(err))
	}
	if subs == nil {
		subs = []content.ContactSubmission{}
	}
	return subs, nil
}
