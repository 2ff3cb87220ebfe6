package repository

import (
	"context"

	"aurasocial/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID int64) ([]models.CommentView, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt == 0 {
		comment.CreatedAt = nowMillis()
	}
	err := r.db.WithContext(ctx).Create(comment).Error
	return translateWriteError(err, "Comment", comment.CommentID)
}

// ListByPost returns the thread oldest first.
func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]models.CommentView, error) {
	var comments []models.CommentView
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.*, users.username AS username, users.avatar_url AS avatar_url").
		Joins("LEFT JOIN users ON users.address = comments.user_address").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC, comments.comment_id ASC").
		Scan(&comments).Error
	return comments, err
}
