package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/showcasehq/voting-service/internal/domain"
	"github.com/showcasehq/voting-service/internal/ports"
)

// memStore backs the fake repositories with in-process maps guarded by
// one mutex, which makes the concurrent admission tests meaningful.
type memStore struct {
	mu sync.Mutex

	users       map[uuid.UUID]domain.User
	teams       map[uuid.UUID]domain.Team
	categories  map[int64]domain.Category
	nextCat     int64
	campaigns   map[uuid.UUID]domain.Campaign
	projects    map[uuid.UUID]domain.Project
	memberships map[uuid.UUID]domain.Membership

	votes     []memVote
	outbox    []ports.OutboxEvent
	outboxErr error
	dedup     map[string]time.Time
	idem      map[string]string
}

type memVote struct {
	voteID       uuid.UUID
	voterID      uuid.UUID
	membershipID uuid.UUID
	categoryID   *int64
	isOverall    bool
	createdAt    time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[uuid.UUID]domain.User),
		teams:       make(map[uuid.UUID]domain.Team),
		categories:  make(map[int64]domain.Category),
		campaigns:   make(map[uuid.UUID]domain.Campaign),
		projects:    make(map[uuid.UUID]domain.Project),
		memberships: make(map[uuid.UUID]domain.Membership),
		dedup:       make(map[string]time.Time),
		idem:        make(map[string]string),
	}
}

type fakeUsers struct{ s *memStore }

func (f fakeUsers) Upsert(_ context.Context, p ports.CreateUserParams) (domain.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u := domain.User{UserID: p.UserID, Email: p.Email, FirstName: p.FirstName, LastName: p.LastName, CreatedAt: p.CreatedAt}
	f.s.users[p.UserID] = u
	return u, nil
}

func (f fakeUsers) GetByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f fakeUsers) SoftDelete(_ context.Context, id uuid.UUID, at time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.DeletedAt = &at
	f.s.users[id] = u
	return nil
}

type fakeTeams struct{ s *memStore }

func (f fakeTeams) Create(_ context.Context, p ports.CreateTeamParams) (domain.Team, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	t := domain.Team{TeamID: uuid.New(), Name: p.Name, CreatedAt: p.CreatedAt}
	f.s.teams[t.TeamID] = t
	return t, nil
}

func (f fakeTeams) GetByID(_ context.Context, id uuid.UUID) (domain.Team, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	t, ok := f.s.teams[id]
	if !ok {
		return domain.Team{}, domain.ErrNotFound
	}
	return t, nil
}

func (f fakeTeams) List(_ context.Context) ([]domain.Team, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]domain.Team, 0, len(f.s.teams))
	for _, t := range f.s.teams {
		out = append(out, t)
	}
	return out, nil
}

type fakeCategories struct{ s *memStore }

func (f fakeCategories) Create(_ context.Context, name string) (domain.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.nextCat++
	c := domain.Category{CategoryID: f.s.nextCat, Name: name}
	f.s.categories[c.CategoryID] = c
	return c, nil
}

func (f fakeCategories) GetByID(_ context.Context, id int64) (domain.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.categories[id]
	if !ok {
		return domain.Category{}, domain.ErrNotFound
	}
	return c, nil
}

func (f fakeCategories) List(_ context.Context) ([]domain.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]domain.Category, 0, len(f.s.categories))
	for _, c := range f.s.categories {
		out = append(out, c)
	}
	return out, nil
}

type fakeCampaigns struct{ s *memStore }

func (f fakeCampaigns) Create(_ context.Context, p ports.CreateCampaignParams) (domain.Campaign, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c := domain.Campaign{
		CampaignID: uuid.New(), OrganizerID: p.OrganizerID, Name: p.Name, Summary: p.Summary,
		Description: p.Description, FlyerURL: p.FlyerURL, DateFrom: p.DateFrom, DateTo: p.DateTo,
		IsActive: p.IsActive, CreatedAt: p.CreatedAt, UpdatedAt: p.CreatedAt,
	}
	for _, id := range p.CategoryIDs {
		cat, ok := f.s.categories[id]
		if !ok {
			return domain.Campaign{}, domain.ErrNotFound
		}
		c.Categories = append(c.Categories, cat)
	}
	f.s.campaigns[c.CampaignID] = c
	return c, nil
}

func (f fakeCampaigns) GetByID(_ context.Context, id uuid.UUID) (domain.Campaign, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.campaigns[id]
	if !ok {
		return domain.Campaign{}, domain.ErrNotFound
	}
	return c, nil
}

func (f fakeCampaigns) List(_ context.Context) ([]domain.Campaign, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]domain.Campaign, 0, len(f.s.campaigns))
	for _, c := range f.s.campaigns {
		out = append(out, c)
	}
	return out, nil
}

type fakeProjects struct{ s *memStore }

func (f fakeProjects) Create(_ context.Context, p ports.CreateProjectParams) (domain.Project, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	pr := domain.Project{
		ProjectID: uuid.New(), TeamID: p.TeamID, Name: p.Name, Summary: p.Summary,
		Description: p.Description, ImageURL: p.ImageURL, CreatedAt: p.CreatedAt, UpdatedAt: p.CreatedAt,
	}
	f.s.projects[pr.ProjectID] = pr
	return pr, nil
}

func (f fakeProjects) GetByID(_ context.Context, id uuid.UUID) (domain.Project, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.projects[id]
	if !ok {
		return domain.Project{}, domain.ErrNotFound
	}
	return p, nil
}

func (f fakeProjects) List(_ context.Context, campaignID *uuid.UUID) ([]domain.Project, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]domain.Project, 0, len(f.s.projects))
	for _, p := range f.s.projects {
		if campaignID != nil {
			joined := false
			for _, m := range f.s.memberships {
				if m.ProjectID == p.ProjectID && m.CampaignID == *campaignID {
					joined = true
					break
				}
			}
			if !joined {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeMemberships struct{ s *memStore }

func (f fakeMemberships) Join(_ context.Context, p ports.JoinCampaignParams) (domain.Membership, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, m := range f.s.memberships {
		if m.ProjectID == p.ProjectID && m.CampaignID == p.CampaignID {
			return domain.Membership{}, domain.ErrConflict
		}
	}
	m := domain.Membership{MembershipID: uuid.New(), ProjectID: p.ProjectID, CampaignID: p.CampaignID, JoinedAt: p.JoinedAt}
	if p.CategoryID != nil {
		cat, ok := f.s.categories[*p.CategoryID]
		if !ok {
			return domain.Membership{}, domain.ErrNotFound
		}
		m.Category = &cat
	}
	f.s.memberships[m.MembershipID] = m
	return m, nil
}

func (f fakeMemberships) Find(_ context.Context, projectID, campaignID uuid.UUID) (ports.MembershipReadModel, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, m := range f.s.memberships {
		if m.ProjectID == projectID && m.CampaignID == campaignID {
			campaign, ok := f.s.campaigns[campaignID]
			if !ok {
				return ports.MembershipReadModel{}, domain.ErrNotFound
			}
			return ports.MembershipReadModel{Membership: m, Campaign: campaign}, nil
		}
	}
	return ports.MembershipReadModel{}, domain.ErrNotFound
}

type fakeLedger struct{ s *memStore }

// Admit mirrors the production ledger's guarantees: membership re-read,
// category denormalization, and per-scope uniqueness, all under one
// lock so racing callers serialize exactly like racing transactions.
func (f fakeLedger) Admit(_ context.Context, p ports.AdmitVoteParams) (domain.Vote, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m, ok := f.s.memberships[p.MembershipID]
	if !ok {
		return domain.Vote{}, domain.ErrMembershipGone
	}
	var categoryID *int64
	scope := domain.OverallScope()
	if !p.IsOverall {
		if m.Category == nil {
			return domain.Vote{}, domain.ErrCategoryRequired
		}
		id := m.Category.CategoryID
		categoryID = &id
		scope = domain.CategoryScope(*m.Category)
	}
	for _, v := range f.s.votes {
		if v.voterID != p.VoterID {
			continue
		}
		if p.IsOverall && v.isOverall {
			return domain.Vote{}, domain.ErrDuplicateVote
		}
		if !p.IsOverall && !v.isOverall && v.categoryID != nil && categoryID != nil && *v.categoryID == *categoryID {
			return domain.Vote{}, domain.ErrDuplicateVote
		}
	}
	rec := memVote{
		voteID: uuid.New(), voterID: p.VoterID, membershipID: p.MembershipID,
		categoryID: categoryID, isOverall: p.IsOverall, createdAt: p.CreatedAt,
	}
	f.s.votes = append(f.s.votes, rec)
	return domain.Vote{VoteID: rec.voteID, VoterID: rec.voterID, MembershipID: rec.membershipID, Scope: scope, CreatedAt: rec.createdAt}, nil
}

func (f fakeLedger) Exists(_ context.Context, voterID uuid.UUID, isOverall bool, categoryID *int64) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, v := range f.s.votes {
		if v.voterID != voterID {
			continue
		}
		if isOverall && v.isOverall {
			return true, nil
		}
		if !isOverall && !v.isOverall && v.categoryID != nil && categoryID != nil && *v.categoryID == *categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeLedger) ListByVoter(_ context.Context, voterID uuid.UUID) ([]domain.VoteView, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []domain.VoteView
	for _, v := range f.s.votes {
		if v.voterID != voterID {
			continue
		}
		m := f.s.memberships[v.membershipID]
		view := domain.VoteView{
			ProjectName:  f.s.projects[m.ProjectID].Name,
			CampaignName: f.s.campaigns[m.CampaignID].Name,
			IsOverall:    v.isOverall,
			CreatedAt:    v.createdAt,
		}
		if v.categoryID != nil {
			if cat, ok := f.s.categories[*v.categoryID]; ok {
				name := cat.Name
				view.CategoryName = &name
			}
		}
		out = append(out, view)
	}
	return out, nil
}

func (f fakeLedger) Tally(_ context.Context, filter ports.TallyFilter) ([]domain.TallyRow, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []domain.TallyRow
	for _, m := range f.s.memberships {
		if filter.CampaignID != nil && m.CampaignID != *filter.CampaignID {
			continue
		}
		if filter.CategoryID != nil && (m.Category == nil || m.Category.CategoryID != *filter.CategoryID) {
			continue
		}
		out = append(out, f.tallyRowLocked(m))
	}
	return out, nil
}

func (f fakeLedger) ProjectTally(_ context.Context, projectID uuid.UUID) ([]domain.TallyRow, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []domain.TallyRow
	for _, m := range f.s.memberships {
		if m.ProjectID != projectID {
			continue
		}
		out = append(out, f.tallyRowLocked(m))
	}
	return out, nil
}

func (f fakeLedger) tallyRowLocked(m domain.Membership) domain.TallyRow {
	project := f.s.projects[m.ProjectID]
	row := domain.TallyRow{
		MembershipID: m.MembershipID,
		ProjectID:    m.ProjectID,
		ProjectName:  project.Name,
		TeamName:     f.s.teams[project.TeamID].Name,
		CampaignName: f.s.campaigns[m.CampaignID].Name,
	}
	if m.Category != nil {
		name := m.Category.Name
		row.CategoryName = &name
	}
	for _, v := range f.s.votes {
		if v.membershipID != m.MembershipID {
			continue
		}
		if v.isOverall {
			row.OverallVotes++
		} else {
			row.CategoryVotes++
		}
	}
	row.TotalVotes = row.OverallVotes + row.CategoryVotes
	return row
}

type fakeOutbox struct{ s *memStore }

func (f fakeOutbox) Enqueue(_ context.Context, e ports.OutboxEvent) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.outboxErr != nil {
		return f.s.outboxErr
	}
	f.s.outbox = append(f.s.outbox, e)
	return nil
}

func (f fakeOutbox) FetchUnpublished(_ context.Context, limit int) ([]ports.OutboxRecord, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]ports.OutboxRecord, 0, len(f.s.outbox))
	for _, e := range f.s.outbox {
		if len(out) >= limit {
			break
		}
		out = append(out, ports.OutboxRecord{OutboxID: e.EventID, EventType: e.EventType, PartitionKey: e.PartitionKey, Payload: e.Payload})
	}
	return out, nil
}

func (f fakeOutbox) MarkPublished(_ context.Context, _ uuid.UUID, _ time.Time) error { return nil }

func (f fakeOutbox) MarkFailed(_ context.Context, _ uuid.UUID, _ string, _ time.Time) error {
	return nil
}

type fakeDedup struct{ s *memStore }

func (f fakeDedup) IsDuplicate(_ context.Context, eventID string, now time.Time) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	expires, ok := f.s.dedup[eventID]
	return ok && expires.After(now), nil
}

func (f fakeDedup) MarkProcessed(_ context.Context, eventID, _ string, expiresAt time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.dedup[eventID] = expiresAt
	return nil
}

type fakeIdempotency struct{ s *memStore }

func (f fakeIdempotency) Reserve(_ context.Context, key, requestHash string, _ time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.idem[key]; ok {
		return errors.New("already reserved")
	}
	f.s.idem[key] = requestHash
	return nil
}

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
	counts map[string]int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string), counts: make(map[string]int64)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *fakeCache) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}

func newTestService(cfg Config) (*Service, *memStore) {
	store := newMemStore()
	svc := NewService(Dependencies{
		Config:      cfg,
		Logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Users:       fakeUsers{store},
		Teams:       fakeTeams{store},
		Categories:  fakeCategories{store},
		Campaigns:   fakeCampaigns{store},
		Projects:    fakeProjects{store},
		Memberships: fakeMemberships{store},
		Ledger:      fakeLedger{store},
		Outbox:      fakeOutbox{store},
		EventDedup:  fakeDedup{store},
		Idempotency: fakeIdempotency{store},
	})
	return svc, store
}

// seedCampaign builds a team, a campaign open today with the given
// categories, and one project joined to it, returning the refs tests
// need to cast votes.
type fixture struct {
	TeamID       uuid.UUID
	CampaignID   uuid.UUID
	ProjectID    uuid.UUID
	MembershipID uuid.UUID
	CategoryIDs  []int64
}

func seedCampaign(store *memStore, categories []string, memberCategory *int) fixture {
	ctx := context.Background()
	team, _ := fakeTeams{store}.Create(ctx, ports.CreateTeamParams{Name: "Team Rocket", CreatedAt: time.Now().UTC()})

	var categoryIDs []int64
	for _, name := range categories {
		cat, _ := fakeCategories{store}.Create(ctx, name)
		categoryIDs = append(categoryIDs, cat.CategoryID)
	}

	now := time.Now().UTC()
	campaign, _ := fakeCampaigns{store}.Create(ctx, ports.CreateCampaignParams{
		OrganizerID: team.TeamID,
		Name:        "Demo Day",
		Summary:     "annual showcase",
		DateFrom:    now.AddDate(0, 0, -1),
		DateTo:      now.AddDate(0, 0, 1),
		IsActive:    true,
		CategoryIDs: categoryIDs,
		CreatedAt:   now,
	})
	project, _ := fakeProjects{store}.Create(ctx, ports.CreateProjectParams{
		TeamID: team.TeamID, Name: "Orbital Toaster", Summary: "toast in space", CreatedAt: now,
	})

	var joinCategory *int64
	if memberCategory != nil {
		joinCategory = &categoryIDs[*memberCategory]
	}
	membership, _ := fakeMemberships{store}.Join(ctx, ports.JoinCampaignParams{
		ProjectID: project.ProjectID, CampaignID: campaign.CampaignID, CategoryID: joinCategory, JoinedAt: now,
	})

	return fixture{
		TeamID:       team.TeamID,
		CampaignID:   campaign.CampaignID,
		ProjectID:    project.ProjectID,
		MembershipID: membership.MembershipID,
		CategoryIDs:  categoryIDs,
	}
}
