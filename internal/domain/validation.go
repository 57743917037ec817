package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

func ValidateName(v string) error {
	trimmed := strings.TrimSpace(v)
	if len(trimmed) < 2 || len(trimmed) > 255 {
		return fmt.Errorf("%w: name must be 2-255 chars", ErrInvalidInput)
	}
	return nil
}

func ValidateSummary(v string) error {
	if len(v) > 500 {
		return fmt.Errorf("%w: summary must be <= 500 chars", ErrInvalidInput)
	}
	return nil
}

func ValidateEmail(v string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(v)); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return nil
}

func ValidateDateWindow(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: date_from and date_to are required", ErrInvalidInput)
	}
	if toDay(to).Before(toDay(from)) {
		return fmt.Errorf("%w: date_to must not precede date_from", ErrInvalidInput)
	}
	return nil
}

func ValidateCategoryName(v string) error {
	trimmed := strings.TrimSpace(v)
	if len(trimmed) < 2 || len(trimmed) > 100 {
		return fmt.Errorf("%w: category name must be 2-100 chars", ErrInvalidInput)
	}
	return nil
}
