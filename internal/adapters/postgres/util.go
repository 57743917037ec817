package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/showcasehq/voting-service/internal/domain"
	"gorm.io/gorm"
)

// Connect enables TranslateError, so constraint violations normally
// arrive as gorm sentinels. The text fallback covers raw-SQL paths the
// translator does not see.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key")
}

// storeErr maps infrastructure failures to the retryable sentinel so
// callers can distinguish a transient outage from a domain rejection.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.ErrStoreUnavailable
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "connection reset") {
		return domain.ErrStoreUnavailable
	}
	return err
}
