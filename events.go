package ecellweb

import (
	"context"

	"go.uber.org/zap"

	"github.com/ecellfcrit/ecellweb/content"
)

// EventService serves events. Status filters trust the status set by the
// editor; it is not derived from the event date.
type EventService struct {
	content content.Fetcher
	log     *zap.Logger
}

func NewEventService(f content.Fetcher, logger *zap.Logger) *EventService {
	return &EventService{content: f, log: logger.Named("events")}
}

func (s *EventService) list(ctx context.Context, q content.Query) []content.Event {
	return fetchList(ctx, s.content, s.log, q, content.DecodeEvents)
}

// GetAllEvents returns every event, newest first.
func (s *EventService) GetAllEvents(ctx context.Context) []content.Event {
	return s.list(ctx, content.AllEvents())
}

// GetUpcomingEvents returns upcoming events, soonest first.
func (s *EventService) GetUpcomingEvents(ctx context.Context) []content.Event {
	return s.list(ctx, content.UpcomingEvents())
}

// GetPastEvents returns completed events, newest first.
func (s *EventService) GetPastEvents(ctx context.Context) []content.Event {
	return s.list(ctx, content.PastEvents())
}

// GetFeaturedEvents returns up to three featured events.
func (s *EventService) GetFeaturedEvents(ctx context.Context) []content.Event {
	return s.list(ctx, content.FeaturedEvents())
}

func (s *EventService) GetEventsByStatus(ctx context.Context, status content.EventStatus) []content.Event {
	return s.list(ctx, content.EventsByStatus(status))
}

func (s *EventService) GetEventBySlug(ctx context.Context, slug string) (content.Event, bool) {
	return fetchOne(ctx, s.content, s.log, content.EventBySlug(slug), content.DecodeEvent)
}

func (s *EventService) GetEventByID(ctx context.Context, id string) (content.Event, bool) {
	return fetchOne(ctx, s.content, s.log, content.EventByID(id), content.DecodeEvent)
}
