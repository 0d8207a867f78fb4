package database

import (
	"errors"
	"strings"

	"blogly/internal/core/apperr"

	"gorm.io/gorm"
)

// translate maps storage errors onto apperr codes. Drivers that cannot
// translate their own errors are matched on message text.
func translate(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.Wrap(apperr.NotFound, notFound, err)
	case isDuplicate(err):
		return apperr.Wrap(apperr.Conflict, "record already exists", err)
	case isForeignKey(err):
		return apperr.Wrap(apperr.NotFound, "referenced record does not exist", err)
	}
	return apperr.Wrap(apperr.Storage, "storage failure", err)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}

func isForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") || strings.Contains(msg, "a foreign key constraint fails")
}
