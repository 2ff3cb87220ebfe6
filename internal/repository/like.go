package repository

import (
	"context"

	"aurasocial/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	// Upsert records the like. created is false when the pair already existed,
	// in which case the transaction hash and timestamp are replaced.
	Upsert(ctx context.Context, like *models.Like) (created bool, err error)
	Delete(ctx context.Context, postID int64, userAddress string) error
	Exists(ctx context.Context, postID int64, userAddress string) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Upsert(ctx context.Context, like *models.Like) (bool, error) {
	like.CreatedAt = nowMillis()

	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_address"}},
		DoNothing: true,
	}).Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ? AND user_address = ?", like.PostID, like.UserAddress).
		Updates(map[string]interface{}{
			"transaction_hash": like.TransactionHash,
			"created_at":       like.CreatedAt,
		}).Error
	return false, err
}

func (r *likeRepository) Delete(ctx context.Context, postID int64, userAddress string) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_address = ?", postID, userAddress).
		Delete(&models.Like{}).Error
}

func (r *likeRepository) Exists(ctx context.Context, postID int64, userAddress string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ? AND user_address = ?", postID, userAddress).
		Count(&count).Error
	return count > 0, err
}
