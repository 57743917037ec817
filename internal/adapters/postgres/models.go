package postgres

import (
	"time"

	"github.com/google/uuid"
)

type userModel struct {
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;primaryKey"`
	Email     string     `gorm:"column:email"`
	FirstName string     `gorm:"column:first_name"`
	LastName  string     `gorm:"column:last_name"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at"`
}

func (userModel) TableName() string { return "users" }

type teamModel struct {
	TeamID    uuid.UUID `gorm:"column:team_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (teamModel) TableName() string { return "teams" }

type categoryModel struct {
	CategoryID int64  `gorm:"column:category_id;primaryKey"`
	Name       string `gorm:"column:name"`
}

func (categoryModel) TableName() string { return "categories" }

type campaignModel struct {
	CampaignID  uuid.UUID `gorm:"column:campaign_id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizerID uuid.UUID `gorm:"column:organizer_id"`
	Name        string    `gorm:"column:name"`
	Summary     string    `gorm:"column:summary"`
	Description string    `gorm:"column:description"`
	FlyerURL    string    `gorm:"column:flyer_url"`
	DateFrom    time.Time `gorm:"column:date_from"`
	DateTo      time.Time `gorm:"column:date_to"`
	IsActive    bool      `gorm:"column:is_active"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (campaignModel) TableName() string { return "campaigns" }

type campaignCategoryModel struct {
	CampaignID uuid.UUID `gorm:"column:campaign_id;primaryKey"`
	CategoryID int64     `gorm:"column:category_id;primaryKey"`
}

func (campaignCategoryModel) TableName() string { return "campaign_categories" }

type projectModel struct {
	ProjectID   uuid.UUID `gorm:"column:project_id;type:uuid;default:gen_random_uuid();primaryKey"`
	TeamID      uuid.UUID `gorm:"column:team_id"`
	Name        string    `gorm:"column:name"`
	Summary     string    `gorm:"column:summary"`
	Description string    `gorm:"column:description"`
	ImageURL    string    `gorm:"column:image_url"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (projectModel) TableName() string { return "projects" }

type membershipModel struct {
	MembershipID uuid.UUID `gorm:"column:membership_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID    uuid.UUID `gorm:"column:project_id"`
	CampaignID   uuid.UUID `gorm:"column:campaign_id"`
	CategoryID   *int64    `gorm:"column:category_id"`
	JoinedAt     time.Time `gorm:"column:joined_at"`
}

func (membershipModel) TableName() string { return "project_campaigns" }

type voteModel struct {
	VoteID       uuid.UUID `gorm:"column:vote_id;type:uuid;primaryKey"`
	VoterID      uuid.UUID `gorm:"column:voter_id"`
	MembershipID uuid.UUID `gorm:"column:membership_id"`
	CategoryID   *int64    `gorm:"column:category_id"`
	IsOverall    bool      `gorm:"column:is_overall"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (voteModel) TableName() string { return "votes" }

type voteOutboxModel struct {
	OutboxID      uuid.UUID  `gorm:"column:outbox_id;type:uuid;primaryKey"`
	EventType     string     `gorm:"column:event_type"`
	PartitionKey  string     `gorm:"column:partition_key"`
	Payload       string     `gorm:"column:payload"`
	SchemaVersion string     `gorm:"column:schema_version"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	FirstSeenAt   time.Time  `gorm:"column:first_seen_at"`
	PublishedAt   *time.Time `gorm:"column:published_at"`
	RetryCount    int        `gorm:"column:retry_count"`
	LastError     *string    `gorm:"column:last_error"`
	LastErrorAt   *time.Time `gorm:"column:last_error_at"`
}

func (voteOutboxModel) TableName() string { return "vote_outbox" }

type voteEventDedupModel struct {
	EventID     string    `gorm:"column:event_id;primaryKey"`
	EventType   string    `gorm:"column:event_type"`
	ProcessedAt time.Time `gorm:"column:processed_at"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
}

func (voteEventDedupModel) TableName() string { return "vote_event_dedup" }

type voteIdempotencyModel struct {
	IdempotencyKey string    `gorm:"column:idempotency_key;primaryKey"`
	RequestHash    string    `gorm:"column:request_hash"`
	ExpiresAt      time.Time `gorm:"column:expires_at"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (voteIdempotencyModel) TableName() string { return "vote_idempotency" }
