package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mytodoapp/todo/internal/apperrors"
)

// FromDatabase converts a database error to an AppError.
func FromDatabase(err error, resource string) *apperrors.AppError {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(resource, nil)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.AlreadyExists(resource, "A "+resource+" with these details already exists.").WithCause(err)
	}
	return apperrors.DatabaseError(err)
}
