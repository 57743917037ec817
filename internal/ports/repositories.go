package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/showcasehq/voting-service/internal/domain"
)

type CreateUserParams struct {
	UserID    uuid.UUID
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
}

type CreateTeamParams struct {
	Name      string
	CreatedAt time.Time
}

type CreateCampaignParams struct {
	OrganizerID uuid.UUID
	Name        string
	Summary     string
	Description string
	FlyerURL    string
	DateFrom    time.Time
	DateTo      time.Time
	IsActive    bool
	CategoryIDs []int64
	CreatedAt   time.Time
}

type CreateProjectParams struct {
	TeamID      uuid.UUID
	Name        string
	Summary     string
	Description string
	ImageURL    string
	CreatedAt   time.Time
}

type JoinCampaignParams struct {
	ProjectID  uuid.UUID
	CampaignID uuid.UUID
	CategoryID *int64
	JoinedAt   time.Time
}

// MembershipReadModel resolves a membership together with its campaign,
// which is everything eligibility validation needs in one lookup.
type MembershipReadModel struct {
	Membership domain.Membership
	Campaign   domain.Campaign
}

type UserRepository interface {
	Upsert(ctx context.Context, params CreateUserParams) (domain.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error)
	SoftDelete(ctx context.Context, userID uuid.UUID, deletedAt time.Time) error
}

type TeamRepository interface {
	Create(ctx context.Context, params CreateTeamParams) (domain.Team, error)
	GetByID(ctx context.Context, teamID uuid.UUID) (domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, name string) (domain.Category, error)
	GetByID(ctx context.Context, categoryID int64) (domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

type CampaignRepository interface {
	Create(ctx context.Context, params CreateCampaignParams) (domain.Campaign, error)
	GetByID(ctx context.Context, campaignID uuid.UUID) (domain.Campaign, error)
	List(ctx context.Context) ([]domain.Campaign, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, params CreateProjectParams) (domain.Project, error)
	GetByID(ctx context.Context, projectID uuid.UUID) (domain.Project, error)
	List(ctx context.Context, campaignID *uuid.UUID) ([]domain.Project, error)
}

type MembershipRepository interface {
	// Join validates the optional category against the campaign's
	// offered set at creation time and enforces the one-join-per-pair
	// rule through the store's unique constraint.
	Join(ctx context.Context, params JoinCampaignParams) (domain.Membership, error)
	Find(ctx context.Context, projectID, campaignID uuid.UUID) (MembershipReadModel, error)
}

type AdmitVoteParams struct {
	VoterID      uuid.UUID
	MembershipID uuid.UUID
	IsOverall    bool
	CreatedAt    time.Time
}

type TallyFilter struct {
	CampaignID *uuid.UUID
	CategoryID *int64
}

// VoteLedger owns vote rows. Admit performs the uniqueness check and
// the insert as one atomic unit against the backing store; Exists is
// the advisory pre-check only.
type VoteLedger interface {
	Admit(ctx context.Context, params AdmitVoteParams) (domain.Vote, error)
	Exists(ctx context.Context, voterID uuid.UUID, isOverall bool, categoryID *int64) (bool, error)
	ListByVoter(ctx context.Context, voterID uuid.UUID) ([]domain.VoteView, error)
	Tally(ctx context.Context, filter TallyFilter) ([]domain.TallyRow, error)
	ProjectTally(ctx context.Context, projectID uuid.UUID) ([]domain.TallyRow, error)
}

type OutboxEvent struct {
	EventID       uuid.UUID
	EventType     string
	PartitionKey  string
	Payload       []byte
	OccurredAt    time.Time
	SchemaVersion string
}

type OutboxRecord struct {
	OutboxID     uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	RetryCount   int
	PublishedAt  *time.Time
	LastError    *string
	LastErrorAt  *time.Time
	FirstSeenAt  time.Time
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error
}

type EventDedupRepository interface {
	IsDuplicate(ctx context.Context, eventID string, now time.Time) (bool, error)
	MarkProcessed(ctx context.Context, eventID, eventType string, expiresAt time.Time) error
}

type IdempotencyRepository interface {
	Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) error
}
