package service

import (
	"context"
	"log/slog"
	"strings"

	"aurasocial/internal/middleware"
	"aurasocial/internal/models"
	"aurasocial/internal/notifications"
	"aurasocial/internal/observability"
	"aurasocial/internal/repository"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

type LikeInput struct {
	PostID          int64  `json:"postId"`
	UserAddress     string `json:"userAddress"`
	TransactionHash string `json:"transactionHash"`
}

func (in LikeInput) Validate() error {
	return firstError(validPostID(in.PostID, "postId"), required(in.UserAddress, "userAddress"), required(in.TransactionHash, "transactionHash"))
}

type UnlikeInput struct {
	PostID      int64  `json:"postId"`
	UserAddress string `json:"userAddress"`
}

func (in UnlikeInput) Validate() error {
	return firstError(validPostID(in.PostID, "postId"), required(in.UserAddress, "userAddress"))
}

type CommentInput struct {
	CommentID       int64  `json:"commentId"`
	PostID          int64  `json:"postId"`
	UserAddress     string `json:"userAddress"`
	CommentHash     string `json:"commentHash"`
	CommentText     string `json:"commentText"`
	TransactionHash string `json:"transactionHash"`
}

func (in CommentInput) Validate() error {
	return firstError(
		validPostID(in.CommentID, "commentId"),
		validPostID(in.PostID, "postId"),
		required(in.UserAddress, "userAddress"),
		required(in.TransactionHash, "transactionHash"),
	)
}

type FollowInput struct {
	FollowerAddress  string `json:"followerAddress"`
	FollowingAddress string `json:"followingAddress"`
	TransactionHash  string `json:"transactionHash"`
}

func (in FollowInput) Validate() error {
	return firstError(required(in.FollowerAddress, "followerAddress"), required(in.FollowingAddress, "followingAddress"), required(in.TransactionHash, "transactionHash"))
}

type UnfollowInput struct {
	FollowerAddress  string `json:"followerAddress"`
	FollowingAddress string `json:"followingAddress"`
}

func (in UnfollowInput) Validate() error {
	return firstError(required(in.FollowerAddress, "followerAddress"), required(in.FollowingAddress, "followingAddress"))
}

// TipInput records a tip. Amount is kept exactly as submitted.
type TipInput struct {
	FromAddress     string `json:"fromAddress"`
	ToAddress       string `json:"toAddress"`
	Amount          string `json:"amount"`
	TransactionHash string `json:"transactionHash"`
}

// Tip amounts are bounded to what one wei-denominated transfer can carry.
const maxTipDecimals = 18

var maxTipAmount = decimal.New(1, 18)

func (in TipInput) Validate() error {
	if err := firstError(
		required(in.FromAddress, "fromAddress"),
		required(in.ToAddress, "toAddress"),
		required(in.Amount, "amount"),
		required(in.TransactionHash, "transactionHash"),
	); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return models.NewValidationError("amount must be a decimal number")
	}
	if amount.IsNegative() {
		return models.NewValidationError("amount must not be negative")
	}
	if strings.ContainsAny(in.Amount, "eE") {
		return models.NewValidationError("amount must be written without an exponent")
	}
	if amount.GreaterThan(maxTipAmount) {
		return models.NewValidationError("amount must not exceed " + maxTipAmount.String())
	}
	if amount.Exponent() < -maxTipDecimals {
		return models.NewValidationError("amount must have at most 18 decimal places")
	}
	return nil
}

type ShareInput struct {
	OriginalPostID  int64  `json:"originalPostId"`
	NewPostID       int64  `json:"newPostId"`
	UserAddress     string `json:"userAddress"`
	TransactionHash string `json:"transactionHash"`
}

func (in ShareInput) Validate() error {
	return firstError(
		validPostID(in.OriginalPostID, "originalPostId"),
		validPostID(in.NewPostID, "newPostId"),
		required(in.UserAddress, "userAddress"),
		required(in.TransactionHash, "transactionHash"),
	)
}

func validPostID(id int64, field string) error {
	if id <= 0 {
		return models.NewValidationError(field + " must be a positive integer")
	}
	return nil
}

// InteractionService records likes, comments, follows, tips and shares,
// and fans out a notification once each primary write has committed.
type InteractionService struct {
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
	tipRepo     repository.TipRepository
	shareRepo   repository.ShareRepository
	fanout      Fanout
}

// InteractionRepos groups the stores InteractionService writes to.
type InteractionRepos struct {
	Posts    repository.PostRepository
	Likes    repository.LikeRepository
	Comments repository.CommentRepository
	Follows  repository.FollowRepository
	Tips     repository.TipRepository
	Shares   repository.ShareRepository
}

func NewInteractionService(repos InteractionRepos, fanout Fanout) *InteractionService {
	return &InteractionService{
		postRepo:    repos.Posts,
		likeRepo:    repos.Likes,
		commentRepo: repos.Comments,
		followRepo:  repos.Follows,
		tipRepo:     repos.Tips,
		shareRepo:   repos.Shares,
		fanout:      fanout,
	}
}

// Like records the like. Repeating it refreshes the transaction hash without
// notifying the author again.
func (s *InteractionService) Like(ctx context.Context, in LikeInput) (err error) {
	defer func() { recordMutation("like", err) }()
	if err := in.Validate(); err != nil {
		return err
	}

	ctx, span := observability.StartSpan(ctx, "interaction.like", attribute.Int64("post.id", in.PostID))
	defer func() { observability.EndSpan(span, err) }()

	created, err := s.likeRepo.Upsert(ctx, &models.Like{
		PostID:          in.PostID,
		UserAddress:     in.UserAddress,
		TransactionHash: in.TransactionHash,
	})
	if err != nil {
		return internal(err)
	}

	middleware.Logger.InfoContext(ctx, "post liked",
		slog.Int64("post_id", in.PostID),
		slog.String("user", in.UserAddress),
		slog.Bool("created", created),
	)

	if created {
		s.notifyPostAuthor(ctx, in.PostID, func(author string) notifications.Event {
			return notifications.LikeEvent(author, in.UserAddress, in.PostID)
		})
	}
	return nil
}

// Unlike removes the like if present.
func (s *InteractionService) Unlike(ctx context.Context, in UnlikeInput) (err error) {
	defer func() { recordMutation("unlike", err) }()
	if err := in.Validate(); err != nil {
		return err
	}
	if err := s.likeRepo.Delete(ctx, in.PostID, in.UserAddress); err != nil {
		return internal(err)
	}
	middleware.Logger.InfoContext(ctx, "post unliked",
		slog.Int64("post_id", in.PostID),
		slog.String("user", in.UserAddress),
	)
	return nil
}

func (s *InteractionService) HasLiked(ctx context.Context, postID int64, userAddress string) (bool, error) {
	ok, err := s.likeRepo.Exists(ctx, postID, userAddress)
	return ok, internal(err)
}

// Comment indexes a comment. A duplicate CommentID is a Conflict.
func (s *InteractionService) Comment(ctx context.Context, in CommentInput) (err error) {
	defer func() { recordMutation("comment", err) }()
	if err := in.Validate(); err != nil {
		return err
	}

	ctx, span := observability.StartSpan(ctx, "interaction.comment",
		attribute.Int64("post.id", in.PostID),
		attribute.Int64("comment.id", in.CommentID),
	)
	defer func() { observability.EndSpan(span, err) }()

	if err := s.commentRepo.Create(ctx, &models.Comment{
		CommentID:       in.CommentID,
		PostID:          in.PostID,
		UserAddress:     in.UserAddress,
		CommentHash:     in.CommentHash,
		CommentText:     in.CommentText,
		TransactionHash: in.TransactionHash,
	}); err != nil {
		return internal(err)
	}

	middleware.Logger.InfoContext(ctx, "comment created",
		slog.Int64("comment_id", in.CommentID),
		slog.Int64("post_id", in.PostID),
	)

	s.notifyPostAuthor(ctx, in.PostID, func(author string) notifications.Event {
		return notifications.CommentEvent(author, in.UserAddress, in.PostID, in.CommentID, in.CommentText)
	})
	return nil
}

// ListComments returns a post's comments oldest first.
func (s *InteractionService) ListComments(ctx context.Context, postID int64) ([]models.CommentView, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	return comments, internal(err)
}

// Follow records the follow and notifies on every call, including repeats.
func (s *InteractionService) Follow(ctx context.Context, in FollowInput) (err error) {
	defer func() { recordMutation("follow", err) }()
	if err := in.Validate(); err != nil {
		return err
	}

	ctx, span := observability.StartSpan(ctx, "interaction.follow", attribute.String("follow.following", in.FollowingAddress))
	defer func() { observability.EndSpan(span, err) }()

	if err := s.followRepo.Upsert(ctx, &models.Follow{
		FollowerAddress:  in.FollowerAddress,
		FollowingAddress: in.FollowingAddress,
		TransactionHash:  in.TransactionHash,
	}); err != nil {
		return internal(err)
	}

	middleware.Logger.InfoContext(ctx, "user followed",
		slog.String("follower", in.FollowerAddress),
		slog.String("following", in.FollowingAddress),
	)

	s.fanout.Dispatch(ctx, notifications.FollowEvent(in.FollowingAddress, in.FollowerAddress))
	return nil
}

func (s *InteractionService) Unfollow(ctx context.Context, in UnfollowInput) (err error) {
	defer func() { recordMutation("unfollow", err) }()
	if err := in.Validate(); err != nil {
		return err
	}
	if err := s.followRepo.Delete(ctx, in.FollowerAddress, in.FollowingAddress); err != nil {
		return internal(err)
	}
	middleware.Logger.InfoContext(ctx, "user unfollowed",
		slog.String("follower", in.FollowerAddress),
		slog.String("following", in.FollowingAddress),
	)
	return nil
}

// Tip appends a tip row and notifies the recipient.
func (s *InteractionService) Tip(ctx context.Context, in TipInput) (err error) {
	defer func() { recordMutation("tip", err) }()
	if err := in.Validate(); err != nil {
		return err
	}

	ctx, span := observability.StartSpan(ctx, "interaction.tip", attribute.String("tip.to", in.ToAddress))
	defer func() { observability.EndSpan(span, err) }()

	if err := s.tipRepo.Create(ctx, &models.Tip{
		FromAddress:     in.FromAddress,
		ToAddress:       in.ToAddress,
		Amount:          in.Amount,
		TransactionHash: in.TransactionHash,
	}); err != nil {
		return internal(err)
	}

	middleware.Logger.InfoContext(ctx, "tip recorded",
		slog.String("from", in.FromAddress),
		slog.String("to", in.ToAddress),
		slog.String("amount", in.Amount),
	)

	s.fanout.Dispatch(ctx, notifications.TipEvent(in.ToAddress, in.FromAddress, in.Amount))
	return nil
}

// ListTips returns tips received by address, newest first.
func (s *InteractionService) ListTips(ctx context.Context, address string) ([]models.TipView, error) {
	tips, err := s.tipRepo.ListReceived(ctx, address)
	return tips, internal(err)
}

// Share links NewPostID to its original. The new post itself is indexed by a
// separate CreatePost call.
func (s *InteractionService) Share(ctx context.Context, in ShareInput) (err error) {
	defer func() { recordMutation("share", err) }()
	if err := in.Validate(); err != nil {
		return err
	}

	ctx, span := observability.StartSpan(ctx, "interaction.share",
		attribute.Int64("post.original_id", in.OriginalPostID),
		attribute.Int64("post.new_id", in.NewPostID),
	)
	defer func() { observability.EndSpan(span, err) }()

	if err := s.shareRepo.Create(ctx, &models.Share{
		OriginalPostID:  in.OriginalPostID,
		NewPostID:       in.NewPostID,
		UserAddress:     in.UserAddress,
		TransactionHash: in.TransactionHash,
	}); err != nil {
		return internal(err)
	}

	middleware.Logger.InfoContext(ctx, "post shared",
		slog.Int64("original_post_id", in.OriginalPostID),
		slog.Int64("new_post_id", in.NewPostID),
	)

	s.notifyPostAuthor(ctx, in.OriginalPostID, func(author string) notifications.Event {
		return notifications.ShareEvent(author, in.UserAddress, in.OriginalPostID)
	})
	return nil
}

// notifyPostAuthor resolves the post's author and dispatches the event built
// for them. A post that has not been indexed yet has no one to notify.
func (s *InteractionService) notifyPostAuthor(ctx context.Context, postID int64, build func(author string) notifications.Event) {
	author, err := s.postRepo.AuthorOf(ctx, postID)
	if err != nil {
		if !models.IsCode(err, models.CodeNotFound) {
			middleware.Logger.WarnContext(ctx, "post author lookup failed",
				slog.Int64("post_id", postID),
				slog.String("error", err.Error()),
			)
		}
		return
	}
	s.fanout.Dispatch(ctx, build(author))
}
