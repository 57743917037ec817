package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateName(t *testing.T) {
	t.Parallel()
	if err := ValidateName("Orbital Toaster"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateName("x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for short name, got %v", err)
	}
	if err := ValidateName("  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank name, got %v", err)
	}
	if err := ValidateName(strings.Repeat("a", 256)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for long name, got %v", err)
	}
}

func TestValidateSummary(t *testing.T) {
	t.Parallel()
	if err := ValidateSummary(""); err != nil {
		t.Fatalf("empty summary should be allowed: %v", err)
	}
	if err := ValidateSummary(strings.Repeat("a", 501)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for long summary, got %v", err)
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	if err := ValidateEmail("ada@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "not-an-email", "@example.com"} {
		if err := ValidateEmail(bad); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected invalid input for %q, got %v", bad, err)
		}
	}
}

func TestValidateDateWindow(t *testing.T) {
	t.Parallel()
	from := day("2026-03-10")
	to := day("2026-03-12")
	if err := ValidateDateWindow(from, to); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateDateWindow(from, from); err != nil {
		t.Fatalf("single-day window should be allowed: %v", err)
	}
	if err := ValidateDateWindow(to, from); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for inverted window, got %v", err)
	}
	if err := ValidateDateWindow(time.Time{}, to); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for missing from date, got %v", err)
	}
}

func TestValidateCategoryName(t *testing.T) {
	t.Parallel()
	if err := ValidateCategoryName("Design"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateCategoryName("a"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for short category name, got %v", err)
	}
	if err := ValidateCategoryName(strings.Repeat("a", 101)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for long category name, got %v", err)
	}
}
