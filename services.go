package ecellweb

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/ecellfcrit/ecellweb/content"
)

// Services bundles the content services used by the page handlers. It is
// built once at startup and shared by all requests.
type Services struct {
	Posts        *PostService
	Events       *EventService
	Team         *TeamService
	Sponsors     *SponsorService
	Speakers     *SpeakerService
	Testimonials *TestimonialService
	Settings     *SettingsService
}

// NewServices builds every content service on top of f.
func NewServices(f content.Fetcher, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Services{
		Posts:        NewPostService(f, logger),
		Events:       NewEventService(f, logger),
		Team:         NewTeamService(f, logger),
		Sponsors:     NewSponsorService(f, logger),
		Speakers:     NewSpeakerService(f, logger),
		Testimonials: NewTestimonialService(f, logger),
		Settings:     NewSettingsService(f, logger),
	}
}

// fetchList runs q and decodes the result. Fetch failures are logged and
// yield an empty slice; invalid records are logged and dropped.
func fetchList[V any](ctx context.Context, f content.Fetcher, log *zap.Logger, q content.Query, decode func(json.RawMessage) ([]V, error)) []V {
	raw, err := f.FetchRaw(ctx, q)
	if err != nil {
		log.Error("content query failed", zap.String("query", q.Name), zap.Error(err))
		return []V{}
	}
	items, err := decode(raw)
	if err != nil {
		log.Warn("dropped invalid content records", zap.String("query", q.Name), zap.Error(err))
	}
	if items == nil {
		items = []V{}
	}
	return items
}

// fetchOne runs a single-document query. ok is false when the document is
// missing, invalid, or the fetch failed.
func fetchOne[V any](ctx context.Context, f content.Fetcher, log *zap.Logger, q content.Query, decode func(json.RawMessage) (*V, error)) (v V, ok bool) {
	raw, err := f.FetchRaw(ctx, q)
	if err != nil {
		log.Error("content query failed", zap.String("query", q.Name), zap.Error(err))
		return v, false
	}
	doc, err := decode(raw)
	if err != nil {
		log.Warn("invalid content record", zap.String("query", q.Name), zap.Error(err))
		return v, false
	}
	if doc == nil {
		return v, false
	}
	return *doc, true
}
