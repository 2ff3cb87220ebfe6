package repository

import (
	"context"

	"aurasocial/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow edge operations
type FollowRepository interface {
	Upsert(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, follower, following string) error
	Exists(ctx context.Context, follower, following string) (bool, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Upsert(ctx context.Context, follow *models.Follow) error {
	follow.CreatedAt = nowMillis()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "follower_address"}, {Name: "following_address"}},
		DoUpdates: clause.AssignmentColumns([]string{"transaction_hash", "created_at"}),
	}).Create(follow).Error
}

func (r *followRepository) Delete(ctx context.Context, follower, following string) error {
	return r.db.WithContext(ctx).
		Where("follower_address = ? AND following_address = ?", follower, following).
		Delete(&models.Follow{}).Error
}

func (r *followRepository) Exists(ctx context.Context, follower, following string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_address = ? AND following_address = ?", follower, following).
		Count(&count).Error
	return count > 0, err
}
