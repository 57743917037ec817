package application

import (
	"time"

	"github.com/showcasehq/voting-service/internal/domain"
)

type Config struct {
	ServiceName         string
	StoreTimeout        time.Duration
	LeaderboardLimit    int
	LeaderboardCacheTTL time.Duration
	VoteBurstLimit      int
	VoteBurstWindow     time.Duration
	IdempotencyTTL      time.Duration
	EventDedupTTL       time.Duration
}

type CastVoteRequest struct {
	ProjectRef  string `json:"project_ref"`
	CampaignRef string `json:"campaign_ref"`
	CategoryID  *int64 `json:"category_id,omitempty"`
	IsOverall   bool   `json:"is_overall"`
}

type CastVoteResponse struct {
	VoteRef   string    `json:"vote_ref"`
	CreatedAt time.Time `json:"created_at"`
}

type VoteView struct {
	Project   string    `json:"project"`
	Campaign  string    `json:"campaign"`
	Category  *string   `json:"category,omitempty"`
	IsOverall bool      `json:"is_overall"`
	CreatedAt time.Time `json:"created_at"`
}

type LeaderboardRequest struct {
	CampaignRef string
	CategoryID  *int64
	Limit       int
}

type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	ProjectRef    string  `json:"project_ref"`
	ProjectName   string  `json:"project_name"`
	TeamName      string  `json:"team_name"`
	CampaignName  string  `json:"campaign_name"`
	CategoryName  *string `json:"category_name,omitempty"`
	TotalVotes    int64   `json:"total_votes"`
	OverallVotes  int64   `json:"overall_votes"`
	CategoryVotes int64   `json:"category_votes"`
}

type ProjectStatsResponse struct {
	ProjectRef      string           `json:"project_ref"`
	OverallVotes    int64            `json:"overall_votes"`
	CategoryVotes   int64            `json:"category_votes"`
	VotesByCategory map[string]int64 `json:"votes_by_category,omitempty"`
	TotalVotes      int64            `json:"total_votes"`
}

type CreateTeamRequest struct {
	Name string `json:"name"`
}

type TeamView struct {
	TeamRef   string    `json:"team_ref"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CategoryView struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}

type CreateCampaignRequest struct {
	OrganizerRef string  `json:"organizer_ref"`
	Name         string  `json:"name"`
	Summary      string  `json:"summary"`
	Description  string  `json:"description"`
	FlyerURL     string  `json:"flyer_url,omitempty"`
	DateFrom     string  `json:"date_from"`
	DateTo       string  `json:"date_to"`
	IsActive     bool    `json:"is_active"`
	CategoryIDs  []int64 `json:"category_ids,omitempty"`
}

type CampaignView struct {
	CampaignRef string         `json:"campaign_ref"`
	Name        string         `json:"name"`
	Summary     string         `json:"summary"`
	Description string         `json:"description,omitempty"`
	FlyerURL    string         `json:"flyer_url,omitempty"`
	DateFrom    string         `json:"date_from"`
	DateTo      string         `json:"date_to"`
	IsActive    bool           `json:"is_active"`
	IsOpen      bool           `json:"is_open"`
	Status      string         `json:"status"`
	Categories  []CategoryView `json:"categories,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type CreateProjectRequest struct {
	TeamRef     string `json:"team_ref"`
	Name        string `json:"name"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

type ProjectView struct {
	ProjectRef  string    `json:"project_ref"`
	TeamRef     string    `json:"team_ref"`
	Name        string    `json:"name"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type JoinCampaignRequest struct {
	CampaignRef string `json:"campaign_ref"`
	CategoryID  *int64 `json:"category_id,omitempty"`
}

type MembershipView struct {
	ProjectRef  string  `json:"project_ref"`
	CampaignRef string  `json:"campaign_ref"`
	Category    *string `json:"category,omitempty"`
	JoinedAt    string  `json:"joined_at"`
}

func toCategoryView(c domain.Category) CategoryView {
	return CategoryView{CategoryID: c.CategoryID, Name: c.Name}
}

func (s *Service) toCampaignView(c domain.Campaign) CampaignView {
	now := s.nowFn()
	view := CampaignView{
		CampaignRef: c.CampaignID.String(),
		Name:        c.Name,
		Summary:     c.Summary,
		Description: c.Description,
		FlyerURL:    c.FlyerURL,
		DateFrom:    c.DateFrom.Format(dateLayout),
		DateTo:      c.DateTo.Format(dateLayout),
		IsActive:    c.IsActive,
		IsOpen:      c.IsOpen(now),
		Status:      string(c.Status(now)),
		CreatedAt:   c.CreatedAt,
	}
	for _, cat := range c.Categories {
		view.Categories = append(view.Categories, toCategoryView(cat))
	}
	return view
}

func toProjectView(p domain.Project) ProjectView {
	return ProjectView{
		ProjectRef:  p.ProjectID.String(),
		TeamRef:     p.TeamID.String(),
		Name:        p.Name,
		Summary:     p.Summary,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
}

const dateLayout = "2006-01-02"
