package server

import (
	"aurasocial/internal/middleware"
	"aurasocial/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LikePost handles POST /api/interactions/like
// @Summary Record a like
// @Tags interactions
// @Accept json
// @Produce json
// @Param request body service.LikeInput true "Like"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} models.ErrorResponse
// @Router /interactions/like [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	var in service.LikeInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, err, "Failed to like post")
	}
	ctx := middleware.WithAddress(c.UserContext(), in.UserAddress)
	if err := s.interactionService.Like(ctx, in); err != nil {
		return fail(c, err, "Failed to like post")
	}
	return success(c, nil)
}

// UnlikePost handles DELETE /api/interactions/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	var in service.UnlikeInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, err, "Failed to unlike post")
	}
	ctx := middleware.WithAddress(c.UserContext(), in.UserAddress)
	if err := s.interactionService.Unlike(ctx, in); err != nil {
		return fail(c, err, "Failed to unlike post")
	}
	return success(c, nil)
}

// HasLiked handles GET /api/interactions/like/:postId/:userAddress
// @Summary Whether a user has liked a post
// @Tags interactions
// @Produce json
// @Param postId path int true "Ledger post id"
// @Param userAddress path string true "Wallet address"
// @Success 200 {object} object{hasLiked=bool}
// @Router /interactions/like/{postId}/{userAddress} [get]
func (s *Server) HasLiked(c *fiber.Ctx) error {
	postID, err := parseInt64Param(c, "postId")
	if err != nil {
		return fail(c, err, "Failed to check like status")
	}
	liked, err := s.interactionService.HasLiked(c.UserContext(), postID, c.Params("userAddress"))
	if err != nil {
		return fail(c, err, "Failed to check like status")
	}
	return c.JSON(fiber.Map{"hasLiked": liked})
}

// CreateComment handles POST /api/interactions/comment
// @Summary Index a confirmed comment
// @Tags interactions
// @Accept json
// @Produce json
// @Param request body service.CommentInput true "Comment"
// @Success 200 {object} object{success=bool,commentId=int}
// @Failure 409 {object} models.ErrorResponse
// @Router /interactions/comment [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var in service.CommentInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, err, "Failed to create comment")
	}
	ctx := middleware.WithAddress(c.UserContext(), in.UserAddress)
	if err := s.interactionService.Comment(ctx, in); err != nil {
		return fail(c, err, "Failed to create comment")
	}
	return success(c, fiber.Map{"commentId": in.CommentID})
}

// GetComments handles GET /api/interactions/comments/:postId
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := parseInt64Param(c, "postId")
	if err != nil {
		return fail(c, err, "Failed to fetch comments")
	}
	comments, err := s.interactionService.ListComments(c.UserContext(), postID)
	if err != nil {
		return fail(c, err, "Failed to fetch comments")
	}
	return c.JSON(comments)
}

// FollowUser handles POST /api/interactions/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	var in service.FollowInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, err, "Failed to follow user")
	}
	ctx := middleware.WithAddress(c.UserContext(), in.FollowerAddress)
	if err := s.interactionService.Follow(ctx, in); err != nil {
		return fail(c, err, "Failed to follow user")
	}
	return success(c, nil)
}

// UnfollowUser handles DELETE /api/interactions/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	var in service.UnfollowInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, err, "Failed to unfollow user")
	}
	ctx := middleware.WithAddress(c.UserContext(), in.FollowerAddress)
	if err := s.interactionService.Unfollow(ctx, in); err != nil {
		return fail(c, err, "Failed to unfollow user")
	}
	return success(c, nil)
}

// RecordTip handles POST /api/interactions/tip
// @Summary Record a tip
// @Tags interactions
// @Accept json
// @Produce json
// @Param request body service.TipInput true "Tip"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} models.ErrorResponse
// @Router /interactions/tip [post]
func (s *Server) RecordTip(c *fiber.Ctx) error {
	var in service.TipInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, err, "Failed to record tip")
	}
	ctx := middleware.WithAddress(c.UserContext(), in.FromAddress)
	if err := s.interactionService.Tip(ctx, in); err != nil {
		return fail(c, err, "Failed to record tip")
	}
	return success(c, nil)
}

// GetTips handles GET /api/interactions/tips/:address
func (s *Server) GetTips(c *fiber.Ctx) error {
	tips, err := s.interactionService.ListTips(c.UserContext(), c.Params("address"))
	if err != nil {
		return fail(c, err, "Failed to fetch tips")
	}
	return c.JSON(tips)
}

// SharePost handles POST /api/interactions/share
// @Summary Record a share link
// @Tags interactions
// @Accept json
// @Produce json
// @Param request body service.ShareInput true "Share"
// @Success 200 {object} object{success=bool,newPostId=int}
// @Router /interactions/share [post]
func (s *Server) SharePost(c *fiber.Ctx) error {
	var in service.ShareInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, err, "Failed to record share")
	}
	ctx := middleware.WithAddress(c.UserContext(), in.UserAddress)
	if err := s.interactionService.Share(ctx, in); err != nil {
		return fail(c, err, "Failed to record share")
	}
	return success(c, fiber.Map{"newPostId": in.NewPostID})
}
