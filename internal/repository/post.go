package repository

import (
	"context"

	"aurasocial/internal/models"
	"aurasocial/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	AuthorOf(ctx context.Context, postID int64) (string, error)
	GetView(ctx context.Context, postID int64) (*models.PostView, error)
	Timeline(ctx context.Context, limit, offset int) ([]models.PostView, error)
	Feed(ctx context.Context, address string, limit, offset int) ([]models.PostView, error)
	ByAuthor(ctx context.Context, address string, limit, offset int) ([]models.PostView, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Like and comment counts are computed per row so they never drift from the
// underlying tables. Author identity is a LEFT JOIN since profiles may lag posts.
const postViewColumns = `posts.*,
	users.username AS username,
	users.avatar_url AS avatar_url,
	(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.post_id) AS like_count,
	(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.post_id) AS comment_count`

func (r *postRepository) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("posts").
		Select(postViewColumns).
		Joins("LEFT JOIN users ON users.address = posts.author_address")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.CreatedAt == 0 {
		post.CreatedAt = nowMillis()
	}
	err := r.db.WithContext(ctx).Create(post).Error
	return translateWriteError(err, "Post", post.PostID)
}

func (r *postRepository) AuthorOf(ctx context.Context, postID int64) (string, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Select("author_address").Where("post_id = ?", postID).First(&post).Error
	if err != nil {
		return "", translateLookupError(err, "Post", postID)
	}
	return post.AuthorAddress, nil
}

func (r *postRepository) GetView(ctx context.Context, postID int64) (*models.PostView, error) {
	var views []models.PostView
	if err := r.views(ctx).Where("posts.post_id = ?", postID).Limit(1).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return &views[0], nil
}

func (r *postRepository) Timeline(ctx context.Context, limit, offset int) ([]models.PostView, error) {
	defer observability.TrackQuery("timeline")()

	var views []models.PostView
	err := r.views(ctx).
		Order("posts.created_at DESC, posts.post_id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&views).Error
	return views, err
}

func (r *postRepository) Feed(ctx context.Context, address string, limit, offset int) ([]models.PostView, error) {
	defer observability.TrackQuery("feed")()

	var views []models.PostView
	err := r.views(ctx).
		Joins("INNER JOIN follows ON follows.following_address = posts.author_address").
		Where("follows.follower_address = ?", address).
		Order("posts.created_at DESC, posts.post_id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&views).Error
	return views, err
}

func (r *postRepository) ByAuthor(ctx context.Context, address string, limit, offset int) ([]models.PostView, error) {
	var views []models.PostView
	err := r.views(ctx).
		Where("posts.author_address = ?", address).
		Order("posts.created_at DESC, posts.post_id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&views).Error
	return views, err
}
