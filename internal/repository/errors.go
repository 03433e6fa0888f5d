package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "recipehub/internal/errors"
)

// translate maps a GORM error onto the application error classes.
// notFound is returned for gorm.ErrRecordNotFound.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case isDuplicate(err):
		return fmt.Errorf("%w: %w", apperrors.ErrConflict, err)
	case isForeignKey(err):
		return fmt.Errorf("%w: referenced entity does not exist: %w", apperrors.ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

func isForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "foreign key constraint fails") ||
		strings.Contains(msg, "violates foreign key constraint")
}

// likePattern wraps q for a substring LIKE match, escaping wildcards with '!'.
func likePattern(q string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(q) + "%"
}
