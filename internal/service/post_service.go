package service

import (
	"context"
	"log/slog"

	"aurasocial/internal/middleware"
	"aurasocial/internal/models"
	"aurasocial/internal/observability"
	"aurasocial/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// CreatePostInput mirrors a confirmed on-chain post. PostID comes from the ledger.
type CreatePostInput struct {
	PostID          int64  `json:"postId"`
	AuthorAddress   string `json:"authorAddress"`
	ContentHash     string `json:"contentHash"`
	ContentText     string `json:"contentText"`
	MediaURLs       string `json:"mediaUrls"`
	TransactionHash string `json:"transactionHash"`
}

func (in CreatePostInput) Validate() error {
	if in.PostID <= 0 {
		return models.NewValidationError("postId must be a positive integer")
	}
	return firstError(
		required(in.AuthorAddress, "authorAddress"),
		required(in.ContentHash, "contentHash"),
		required(in.TransactionHash, "transactionHash"),
	)
}

type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost indexes a post. The author need not have a profile yet.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (err error) {
	defer func() { recordMutation("post", err) }()
	if err := in.Validate(); err != nil {
		return err
	}

	ctx, span := observability.StartSpan(ctx, "post.create", attribute.Int64("post.id", in.PostID))
	defer func() { observability.EndSpan(span, err) }()

	post := &models.Post{
		PostID:          in.PostID,
		AuthorAddress:   in.AuthorAddress,
		ContentHash:     in.ContentHash,
		ContentText:     in.ContentText,
		MediaURLs:       in.MediaURLs,
		TransactionHash: in.TransactionHash,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return internal(err)
	}

	middleware.Logger.InfoContext(ctx, "post created",
		slog.Int64("post_id", in.PostID),
		slog.String("author", in.AuthorAddress),
	)
	return nil
}

func (s *PostService) GetPost(ctx context.Context, postID int64) (*models.PostView, error) {
	post, err := s.postRepo.GetView(ctx, postID)
	return post, internal(err)
}

// Timeline lists every post newest first.
func (s *PostService) Timeline(ctx context.Context, page Page) ([]models.PostView, error) {
	page = page.Normalize()
	posts, err := s.postRepo.Timeline(ctx, page.Limit, page.Offset)
	return posts, internal(err)
}

// Feed lists posts by authors that address follows.
func (s *PostService) Feed(ctx context.Context, address string, page Page) ([]models.PostView, error) {
	page = page.Normalize()
	posts, err := s.postRepo.Feed(ctx, address, page.Limit, page.Offset)
	return posts, internal(err)
}

func (s *PostService) ByAuthor(ctx context.Context, address string, page Page) ([]models.PostView, error) {
	page = page.Normalize()
	posts, err := s.postRepo.ByAuthor(ctx, address, page.Limit, page.Offset)
	return posts, internal(err)
}
