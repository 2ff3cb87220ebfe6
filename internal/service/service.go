// Package service applies social mutations to the store and serves the
// derived read views.
package service

import (
	"context"
	"errors"

	"aurasocial/internal/models"
	"aurasocial/internal/notifications"
	"aurasocial/internal/observability"
)

// Pagination bounds shared by list reads.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Fanout receives notification events after a mutation commits.
// *notifications.Dispatcher satisfies it.
type Fanout interface {
	Dispatch(ctx context.Context, ev notifications.Event) notifications.Outcome
}

// Page is a limit/offset window over a newest-first list.
type Page struct {
	Limit  int
	Offset int
}

// Normalize applies defaults and clamps the window to MaxLimit.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// internal passes AppErrors through and wraps anything else as Internal.
func internal(err error) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(err)
}

func recordMutation(action string, err error) {
	observability.MutationsTotal.WithLabelValues(action, observability.ResultLabel(err)).Inc()
}

func required(value, field string) error {
	if value == "" {
		return models.NewValidationError(field + " is required")
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
