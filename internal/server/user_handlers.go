package server

import (
	"aurasocial/internal/middleware"
	"aurasocial/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpsertProfile handles POST /api/users/profile
// @Summary Create or update a profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.UpsertProfileInput true "Profile"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/profile [post]
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var in service.UpsertProfileInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, err, "Failed to save profile")
	}

	ctx := middleware.WithAddress(c.UserContext(), in.Address)
	if err := s.profileService.UpsertProfile(ctx, in); err != nil {
		return fail(c, err, "Failed to save profile")
	}
	return success(c, fiber.Map{"message": "Profile saved successfully"})
}

// GetProfile handles GET /api/users/profile/:address
// @Summary Get a profile with live stats
// @Tags users
// @Produce json
// @Param address path string true "Wallet address"
// @Success 200 {object} models.Profile
// @Failure 404 {object} models.ErrorResponse
// @Router /users/profile/{address} [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetProfile(c.UserContext(), c.Params("address"))
	if err != nil {
		return fail(c, err, "Failed to fetch profile")
	}
	return c.JSON(profile)
}

// GetTrendingUsers handles GET /api/users/trending
// @Summary Top users by follower count
// @Tags users
// @Produce json
// @Success 200 {array} models.TrendingUser
// @Router /users/trending [get]
func (s *Server) GetTrendingUsers(c *fiber.Ctx) error {
	users, err := s.profileService.Trending(c.UserContext())
	if err != nil {
		return fail(c, err, "Failed to fetch trending users")
	}
	return c.JSON(users)
}

// SearchUsers handles GET /api/users/search/:query
// @Summary Search users by username or address
// @Tags users
// @Produce json
// @Param query path string true "Search text"
// @Success 200 {array} models.User
// @Router /users/search/{query} [get]
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	users, err := s.profileService.Search(c.UserContext(), c.Params("query"))
	if err != nil {
		return fail(c, err, "Failed to search users")
	}
	return c.JSON(users)
}

// GetFollowers handles GET /api/users/:address/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	users, err := s.profileService.Followers(c.UserContext(), c.Params("address"))
	if err != nil {
		return fail(c, err, "Failed to fetch followers")
	}
	return c.JSON(users)
}

// GetFollowing handles GET /api/users/:address/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	users, err := s.profileService.Following(c.UserContext(), c.Params("address"))
	if err != nil {
		return fail(c, err, "Failed to fetch following")
	}
	return c.JSON(users)
}

// IsFollowing handles GET /api/users/:follower/follows/:following
func (s *Server) IsFollowing(c *fiber.Ctx) error {
	ok, err := s.profileService.IsFollowing(c.UserContext(), c.Params("follower"), c.Params("following"))
	if err != nil {
		return fail(c, err, "Failed to check follow status")
	}
	return c.JSON(fiber.Map{"isFollowing": ok})
}
