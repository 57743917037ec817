package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/showcasehq/voting-service/internal/domain"
	"github.com/showcasehq/voting-service/internal/ports"
)

func (s *Service) CreateProject(ctx context.Context, req CreateProjectRequest, idempotencyKey string) (ProjectView, error) {
	if err := domain.ValidateName(req.Name); err != nil {
		return ProjectView{}, err
	}
	if err := domain.ValidateSummary(req.Summary); err != nil {
		return ProjectView{}, err
	}
	teamID, err := uuid.Parse(req.TeamRef)
	if err != nil {
		return ProjectView{}, fmt.Errorf("%w: invalid team_ref", domain.ErrInvalidInput)
	}
	if err := s.reserveIdempotency(ctx, idempotencyKey, req); err != nil {
		return ProjectView{}, err
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	if _, err := s.teams.GetByID(storeCtx, teamID); err != nil {
		return ProjectView{}, err
	}
	project, err := s.projects.Create(storeCtx, ports.CreateProjectParams{
		TeamID:      teamID,
		Name:        req.Name,
		Summary:     req.Summary,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatedAt:   s.nowFn(),
	})
	if err != nil {
		return ProjectView{}, err
	}
	return toProjectView(project), nil
}

func (s *Service) GetProject(ctx context.Context, projectRef string) (ProjectView, error) {
	projectID, err := uuid.Parse(projectRef)
	if err != nil {
		return ProjectView{}, fmt.Errorf("%w: invalid project_ref", domain.ErrInvalidInput)
	}
	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	project, err := s.projects.GetByID(storeCtx, projectID)
	if err != nil {
		return ProjectView{}, err
	}
	return toProjectView(project), nil
}

func (s *Service) ListProjects(ctx context.Context, campaignRef string) ([]ProjectView, error) {
	var campaignID *uuid.UUID
	if campaignRef != "" {
		parsed, err := uuid.Parse(campaignRef)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid campaign_ref", domain.ErrInvalidInput)
		}
		campaignID = &parsed
	}
	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	projects, err := s.projects.List(storeCtx, campaignID)
	if err != nil {
		return nil, err
	}
	out := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectView(p))
	}
	return out, nil
}

// JoinCampaign enrolls a project into a campaign, optionally under one
// of the campaign's categories. The category must be offered by the
// campaign at creation time, not just at read time.
func (s *Service) JoinCampaign(ctx context.Context, projectRef string, req JoinCampaignRequest) (MembershipView, error) {
	projectID, err := uuid.Parse(projectRef)
	if err != nil {
		return MembershipView{}, fmt.Errorf("%w: invalid project_ref", domain.ErrInvalidInput)
	}
	campaignID, err := uuid.Parse(req.CampaignRef)
	if err != nil {
		return MembershipView{}, fmt.Errorf("%w: invalid campaign_ref", domain.ErrInvalidInput)
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	campaign, err := s.campaigns.GetByID(storeCtx, campaignID)
	if err != nil {
		return MembershipView{}, err
	}
	if req.CategoryID != nil && !campaign.OffersCategory(*req.CategoryID) {
		return MembershipView{}, domain.ErrCategoryNotInCampaign
	}
	if _, err := s.projects.GetByID(storeCtx, projectID); err != nil {
		return MembershipView{}, err
	}

	membership, err := s.memberships.Join(storeCtx, ports.JoinCampaignParams{
		ProjectID:  projectID,
		CampaignID: campaignID,
		CategoryID: req.CategoryID,
		JoinedAt:   s.nowFn(),
	})
	if err != nil {
		return MembershipView{}, err
	}

	view := MembershipView{
		ProjectRef:  membership.ProjectID.String(),
		CampaignRef: membership.CampaignID.String(),
		JoinedAt:    membership.JoinedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if membership.Category != nil {
		name := membership.Category.Name
		view.Category = &name
	}
	return view, nil
}
