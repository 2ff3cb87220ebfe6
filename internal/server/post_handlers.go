package server

import (
	"aurasocial/internal/middleware"
	"aurasocial/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
// @Summary Index a confirmed on-chain post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body service.CreatePostInput true "Post"
// @Success 200 {object} object{success=bool,postId=int}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var in service.CreatePostInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, err, "Failed to create post")
	}

	ctx := middleware.WithAddress(c.UserContext(), in.AuthorAddress)
	if err := s.postService.CreatePost(ctx, in); err != nil {
		return fail(c, err, "Failed to create post")
	}
	return success(c, fiber.Map{"postId": in.PostID})
}

// GetTimeline handles GET /api/posts/timeline
// @Summary All posts, newest first
// @Tags posts
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} models.PostView
// @Router /posts/timeline [get]
func (s *Server) GetTimeline(c *fiber.Ctx) error {
	posts, err := s.postService.Timeline(c.UserContext(), parsePagination(c))
	if err != nil {
		return fail(c, err, "Failed to fetch timeline")
	}
	return c.JSON(posts)
}

// GetFeed handles GET /api/posts/feed/:address
// @Summary Posts by authors the address follows
// @Tags posts
// @Produce json
// @Param address path string true "Wallet address"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} models.PostView
// @Router /posts/feed/{address} [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	posts, err := s.postService.Feed(c.UserContext(), c.Params("address"), parsePagination(c))
	if err != nil {
		return fail(c, err, "Failed to fetch feed")
	}
	return c.JSON(posts)
}

// GetUserPosts handles GET /api/posts/user/:address
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ByAuthor(c.UserContext(), c.Params("address"), parsePagination(c))
	if err != nil {
		return fail(c, err, "Failed to fetch user posts")
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:postId
// @Summary Get one post
// @Tags posts
// @Produce json
// @Param postId path int true "Ledger post id"
// @Success 200 {object} models.PostView
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{postId} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseInt64Param(c, "postId")
	if err != nil {
		return fail(c, err, "Failed to fetch post")
	}
	post, err := s.postService.GetPost(c.UserContext(), postID)
	if err != nil {
		return fail(c, err, "Failed to fetch post")
	}
	return c.JSON(post)
}
