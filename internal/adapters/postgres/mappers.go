package postgres

import "github.com/showcasehq/voting-service/internal/domain"

func toDomainUser(m userModel) domain.User {
	return domain.User{
		UserID: m.UserID, Email: m.Email, FirstName: m.FirstName, LastName: m.LastName,
		CreatedAt: m.CreatedAt, DeletedAt: m.DeletedAt,
	}
}

func toDomainTeam(m teamModel) domain.Team {
	return domain.Team{TeamID: m.TeamID, Name: m.Name, CreatedAt: m.CreatedAt}
}

func toDomainCategory(m categoryModel) domain.Category {
	return domain.Category{CategoryID: m.CategoryID, Name: m.Name}
}

func toDomainCampaign(m campaignModel, categories []categoryModel) domain.Campaign {
	out := domain.Campaign{
		CampaignID: m.CampaignID, OrganizerID: m.OrganizerID, Name: m.Name,
		Summary: m.Summary, Description: m.Description, FlyerURL: m.FlyerURL,
		DateFrom: m.DateFrom, DateTo: m.DateTo, IsActive: m.IsActive,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
	for _, cat := range categories {
		out.Categories = append(out.Categories, toDomainCategory(cat))
	}
	return out
}

func toDomainProject(m projectModel) domain.Project {
	return domain.Project{
		ProjectID: m.ProjectID, TeamID: m.TeamID, Name: m.Name, Summary: m.Summary,
		Description: m.Description, ImageURL: m.ImageURL, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toDomainMembership(m membershipModel, category *categoryModel) domain.Membership {
	out := domain.Membership{
		MembershipID: m.MembershipID, ProjectID: m.ProjectID, CampaignID: m.CampaignID, JoinedAt: m.JoinedAt,
	}
	if category != nil {
		c := toDomainCategory(*category)
		out.Category = &c
	}
	return out
}

func toDomainVote(m voteModel, category *categoryModel) domain.Vote {
	scope := domain.OverallScope()
	if !m.IsOverall && category != nil {
		scope = domain.CategoryScope(toDomainCategory(*category))
	}
	return domain.Vote{
		VoteID: m.VoteID, VoterID: m.VoterID, MembershipID: m.MembershipID,
		Scope: scope, CreatedAt: m.CreatedAt,
	}
}
