package ecellweb

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ecellfcrit/ecellweb/content"
)

type TeamService struct {
	content content.Fetcher
	log     *zap.Logger
}

func NewTeamService(f content.Fetcher, logger *zap.Logger) *TeamService {
	return &TeamService{content: f, log: logger.Named("team")}
}

func (s *TeamService) list(ctx context.Context, q content.Query) []content.TeamMember {
	return fetchList(ctx, s.content, s.log, q, content.DecodeTeamMembers)
}

// GetAllMembers returns the whole team in display order.
func (s *TeamService) GetAllMembers(ctx context.Context) []content.TeamMember {
	return s.list(ctx, content.AllTeamMembers())
}

func (s *TeamService) GetCurrentTeam(ctx context.Context) []content.TeamMember {
	return s.list(ctx, content.CurrentTeam())
}

func (s *TeamService) GetPastTeam(ctx context.Context) []content.TeamMember {
	return s.list(ctx, content.PastTeam())
}

func (s *TeamService) GetAdvisors(ctx context.Context) []content.TeamMember {
	return s.list(ctx, content.Advisors())
}

// GetRoster fetches the three member partitions concurrently.
func (s *TeamService) GetRoster(ctx context.Context) content.Roster {
	var r content.Roster
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.Current = s.GetCurrentTeam(gctx)
		return nil
	})
	g.Go(func() error {
		r.Past = s.GetPastTeam(gctx)
		return nil
	})
	g.Go(func() error {
		r.Advisors = s.GetAdvisors(gctx)
		return nil
	})
	_ = g.Wait()
	return r
}
