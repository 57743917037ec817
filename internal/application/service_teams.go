package application

import (
	"context"

	"github.com/showcasehq/voting-service/internal/domain"
	"github.com/showcasehq/voting-service/internal/ports"
)

func (s *Service) CreateTeam(ctx context.Context, req CreateTeamRequest, idempotencyKey string) (TeamView, error) {
	if err := domain.ValidateName(req.Name); err != nil {
		return TeamView{}, err
	}
	if err := s.reserveIdempotency(ctx, idempotencyKey, req); err != nil {
		return TeamView{}, err
	}
	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	team, err := s.teams.Create(storeCtx, ports.CreateTeamParams{Name: req.Name, CreatedAt: s.nowFn()})
	if err != nil {
		return TeamView{}, err
	}
	return toTeamView(team), nil
}

func (s *Service) ListTeams(ctx context.Context) ([]TeamView, error) {
	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	teams, err := s.teams.List(storeCtx)
	if err != nil {
		return nil, err
	}
	out := make([]TeamView, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeamView(t))
	}
	return out, nil
}

func toTeamView(t domain.Team) TeamView {
	return TeamView{TeamRef: t.TeamID.String(), Name: t.Name, CreatedAt: t.CreatedAt}
}
