package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	UserID    uuid.UUID
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
	DeletedAt *time.Time
}

// DisplayName falls back to the local part of the email when no name
// has been provided.
func (u User) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full != "" {
		return full
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}

type Team struct {
	TeamID    uuid.UUID
	Name      string
	CreatedAt time.Time
}

type Category struct {
	CategoryID int64
	Name       string
}

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusOpen      CampaignStatus = "open"
	CampaignStatusClosed    CampaignStatus = "closed"
)

type Campaign struct {
	CampaignID  uuid.UUID
	OrganizerID uuid.UUID
	Name        string
	Summary     string
	Description string
	FlyerURL    string
	DateFrom    time.Time
	DateTo      time.Time
	IsActive    bool
	Categories  []Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOpen reports whether the campaign accepts votes on the given day:
// it must be published and the day must fall within [DateFrom, DateTo].
func (c Campaign) IsOpen(today time.Time) bool {
	day := toDay(today)
	return c.IsActive && !day.Before(toDay(c.DateFrom)) && !day.After(toDay(c.DateTo))
}

func (c Campaign) Status(today time.Time) CampaignStatus {
	if !c.IsActive {
		return CampaignStatusDraft
	}
	day := toDay(today)
	switch {
	case day.Before(toDay(c.DateFrom)):
		return CampaignStatusScheduled
	case day.After(toDay(c.DateTo)):
		return CampaignStatusClosed
	default:
		return CampaignStatusOpen
	}
}

func (c Campaign) OffersCategory(categoryID int64) bool {
	for _, cat := range c.Categories {
		if cat.CategoryID == categoryID {
			return true
		}
	}
	return false
}

func toDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Project struct {
	ProjectID   uuid.UUID
	TeamID      uuid.UUID
	Name        string
	Summary     string
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Membership joins a project to a campaign, optionally tagged with one
// of the campaign's categories. A project joins a campaign at most once.
type Membership struct {
	MembershipID uuid.UUID
	ProjectID    uuid.UUID
	CampaignID   uuid.UUID
	Category     *Category
	JoinedAt     time.Time
}
