package repository

import (
	"context"

	"aurasocial/internal/models"

	"gorm.io/gorm"
)

// ShareRepository is append-only.
type ShareRepository interface {
	Create(ctx context.Context, share *models.Share) error
}

type shareRepository struct {
	db *gorm.DB
}

// NewShareRepository creates a new share repository
func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) Create(ctx context.Context, share *models.Share) error {
	if share.CreatedAt == 0 {
		share.CreatedAt = nowMillis()
	}
	return r.db.WithContext(ctx).Create(share).Error
}
