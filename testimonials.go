package ecellweb

import (
	"context"

	"go.uber.org/zap"

	"github.com/ecellfcrit/ecellweb/content"
)

type TestimonialService struct {
	content content.Fetcher
	log     *zap.Logger
}

func NewTestimonialService(f content.Fetcher, logger *zap.Logger) *TestimonialService {
	return &TestimonialService{content: f, log: logger.Named("testimonials")}
}

func (s *TestimonialService) GetAllTestimonials(ctx context.Context) []content.Testimonial {
	return fetchList(ctx, s.content, s.log, content.AllTestimonials(), content.DecodeTestimonials)
}

// GetFeaturedTestimonials returns up to six featured testimonials.
func (s *TestimonialService) GetFeaturedTestimonials(ctx context.Context) []content.Testimonial {
	return fetchList(ctx, s.content, s.log, content.FeaturedTestimonials(), content.DecodeTestimonials)
}
