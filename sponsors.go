package ecellweb

import (
	"context"

	"go.uber.org/zap"

	"github.com/ecellfcrit/ecellweb/content"
)

type SponsorService struct {
	content content.Fetcher
	log     *zap.Logger
}

func NewSponsorService(f content.Fetcher, logger *zap.Logger) *SponsorService {
	return &SponsorService{content: f, log: logger.Named("sponsors")}
}

// GetAllSponsors returns active sponsors in display order.
func (s *SponsorService) GetAllSponsors(ctx context.Context) []content.Sponsor {
	return fetchList(ctx, s.content, s.log, content.AllSponsors(), content.DecodeSponsors)
}

// GetFeaturedSponsors returns up to eight featured active sponsors.
func (s *SponsorService) GetFeaturedSponsors(ctx context.Context) []content.Sponsor {
	return fetchList(ctx, s.content, s.log, content.FeaturedSponsors(), content.DecodeSponsors)
}

// GetGroupedSponsors returns sponsors grouped into tiers.
func (s *SponsorService) GetGroupedSponsors(ctx context.Context, featuredOnly bool) []content.SponsorGroup {
	if featuredOnly {
		return content.GroupSponsors(s.GetFeaturedSponsors(ctx))
	}
	return content.GroupSponsors(s.GetAllSponsors(ctx))
}
