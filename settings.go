package ecellweb

import (
	"context"

	"go.uber.org/zap"

	"github.com/ecellfcrit/ecellweb/content"
)

// SettingsService serves the site settings singleton.
type SettingsService struct {
	content content.Fetcher
	log     *zap.Logger

	// Defaults fills fields the settings document leaves empty, and stands in
	// for the whole document when it cannot be fetched.
	Defaults content.SiteSettings
}

func NewSettingsService(f content.Fetcher, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		content:  f,
		log:      logger.Named("settings"),
		Defaults: content.SiteSettings{HeroSlides: []content.HeroSlide{}, About: content.AboutSection{Values: []string{}}},
	}
}

func (s *SettingsService) GetSiteSettings(ctx context.Context) content.SiteSettings {
	settings, ok := fetchOne(ctx, s.content, s.log, content.SiteSettingsQuery(), content.DecodeSiteSettings)
	if !ok {
		return s.Defaults
	}
	if settings.Title == "" {
		settings.Title = s.Defaults.Title
	}
	if settings.Description == "" {
		settings.Description = s.Defaults.Description
	}
	return settings
}
