package server

import "github.com/gofiber/fiber/v2"

// GetFeatureFlags handles GET /api/features?address=
// Returns configured flags and their evaluation for the given address.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flags":   s.featureFlags.Raw(),
		"enabled": s.featureFlags.Snapshot(c.Query("address")),
	})
}
