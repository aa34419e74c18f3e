package ecellweb

import (
	"context"

	"go.uber.org/zap"

	"github.com/ecellfcrit/ecellweb/content"
)

type SpeakerService struct {
	content content.Fetcher
	log     *zap.Logger
}

func NewSpeakerService(f content.Fetcher, logger *zap.Logger) *SpeakerService {
	return &SpeakerService{content: f, log: logger.Named("speakers")}
}

func (s *SpeakerService) GetAllSpeakers(ctx context.Context) []content.Speaker {
	return fetchList(ctx, s.content, s.log, content.AllSpeakers(), content.DecodeSpeakers)
}

// GetFeaturedSpeakers returns up to six featured speakers.
func (s *SpeakerService) GetFeaturedSpeakers(ctx context.Context) []content.Speaker {
	return fetchList(ctx, s.content, s.log, content.FeaturedSpeakers(), content.DecodeSpeakers)
}
