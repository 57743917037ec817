package domain

import (
	"testing"
	"time"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCampaignIsOpen_WindowIsInclusive(t *testing.T) {
	t.Parallel()
	c := Campaign{IsActive: true, DateFrom: day("2026-03-10"), DateTo: day("2026-03-12")}

	if c.IsOpen(day("2026-03-09")) {
		t.Fatalf("expected closed before window")
	}
	if !c.IsOpen(day("2026-03-10")) {
		t.Fatalf("expected open on first day")
	}
	if !c.IsOpen(day("2026-03-12")) {
		t.Fatalf("expected open on last day")
	}
	if c.IsOpen(day("2026-03-13")) {
		t.Fatalf("expected closed after window")
	}
}

func TestCampaignIsOpen_ComparesCalendarDaysInUTC(t *testing.T) {
	t.Parallel()
	c := Campaign{IsActive: true, DateFrom: day("2026-03-10"), DateTo: day("2026-03-10")}

	lateOnLastDay := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	if !c.IsOpen(lateOnLastDay) {
		t.Fatalf("expected open until end of last day")
	}
}

func TestCampaignIsOpen_InactiveNeverOpen(t *testing.T) {
	t.Parallel()
	c := Campaign{IsActive: false, DateFrom: day("2026-03-10"), DateTo: day("2026-03-12")}
	if c.IsOpen(day("2026-03-11")) {
		t.Fatalf("expected unpublished campaign to be closed")
	}
	if c.Status(day("2026-03-11")) != CampaignStatusDraft {
		t.Fatalf("expected draft status")
	}
}

func TestCampaignStatus(t *testing.T) {
	t.Parallel()
	c := Campaign{IsActive: true, DateFrom: day("2026-03-10"), DateTo: day("2026-03-12")}

	if got := c.Status(day("2026-03-01")); got != CampaignStatusScheduled {
		t.Fatalf("expected scheduled, got %s", got)
	}
	if got := c.Status(day("2026-03-11")); got != CampaignStatusOpen {
		t.Fatalf("expected open, got %s", got)
	}
	if got := c.Status(day("2026-04-01")); got != CampaignStatusClosed {
		t.Fatalf("expected closed, got %s", got)
	}
}

func TestCampaignOffersCategory(t *testing.T) {
	t.Parallel()
	c := Campaign{Categories: []Category{{CategoryID: 1, Name: "Design"}, {CategoryID: 2, Name: "Engineering"}}}
	if !c.OffersCategory(2) {
		t.Fatalf("expected category 2 offered")
	}
	if c.OffersCategory(3) {
		t.Fatalf("expected category 3 not offered")
	}
}

func TestVoteScope(t *testing.T) {
	t.Parallel()
	overall := OverallScope()
	if !overall.IsOverall() {
		t.Fatalf("expected overall scope")
	}
	if _, ok := overall.Category(); ok {
		t.Fatalf("overall scope must not carry a category")
	}

	scoped := CategoryScope(Category{CategoryID: 7, Name: "Design"})
	if scoped.IsOverall() {
		t.Fatalf("category scope must not be overall")
	}
	cat, ok := scoped.Category()
	if !ok || cat.CategoryID != 7 || cat.Name != "Design" {
		t.Fatalf("unexpected category payload: %+v", cat)
	}
}

func TestUserDisplayName(t *testing.T) {
	t.Parallel()
	named := User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	if got := named.DisplayName(); got != "Ada Lovelace" {
		t.Fatalf("unexpected display name %q", got)
	}
	anon := User{Email: "ada@example.com"}
	if got := anon.DisplayName(); got != "ada" {
		t.Fatalf("expected email local part, got %q", got)
	}
}
