// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"
	"time"

	"aurasocial/internal/database"
	"aurasocial/internal/models"

	"gorm.io/gorm"
)

// translateWriteError maps storage constraint violations to Conflict.
func translateWriteError(err error, resource string, id interface{}) error {
	if err == nil {
		return nil
	}
	if database.IsUniqueViolation(err) {
		return models.NewConflictError(resource, id, err)
	}
	return err
}

// translateLookupError maps a missing row to NotFound.
func translateLookupError(err error, resource string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return err
}

// nowMillis is the clock used for explicit timestamp assignments.
var nowMillis = func() int64 {
	return time.Now().UnixMilli()
}
