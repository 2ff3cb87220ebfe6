package server

import (
	"aurasocial/internal/featureflags"
	"aurasocial/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LedgerRequired rejects contract reads when no RPC endpoint is configured
// or the ledger_reads flag is off for the caller. The caller is the address
// query parameter when given, otherwise the client IP.
func (s *Server) LedgerRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s.ledger == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
				Error:  "Ledger RPC is not configured",
				Status: fiber.StatusServiceUnavailable,
			})
		}

		subject := c.Query("address")
		if subject == "" {
			subject = c.IP()
		}
		if !s.featureFlags.Enabled(featureflags.LedgerReads, subject) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
				Error:  "Ledger reads are disabled",
				Status: fiber.StatusServiceUnavailable,
			})
		}
		return c.Next()
	}
}

// GetContractAddress handles GET /api/contract/address
func (s *Server) GetContractAddress(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"address": s.ledger.Address()})
}

// GetContractABI handles GET /api/contract/abi
func (s *Server) GetContractABI(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"abi": s.ledger.ABI()})
}

// GetPostCounter handles GET /api/contract/post-counter
// @Summary Number of posts created on-chain
// @Tags contract
// @Produce json
// @Success 200 {object} object{counter=string}
// @Failure 503 {object} models.ErrorResponse
// @Router /contract/post-counter [get]
func (s *Server) GetPostCounter(c *fiber.Ctx) error {
	counter, err := s.ledger.PostCounter(c.UserContext())
	if err != nil {
		return fail(c, err, "Failed to fetch post counter")
	}
	return c.JSON(fiber.Map{"counter": counter})
}

// GetOnChainPost handles GET /api/contract/post/:postId
func (s *Server) GetOnChainPost(c *fiber.Ctx) error {
	postID, err := parseInt64Param(c, "postId")
	if err != nil {
		return fail(c, err, "Failed to fetch on-chain post")
	}
	post, err := s.ledger.Post(c.UserContext(), postID)
	if err != nil {
		return fail(c, err, "Failed to fetch on-chain post")
	}
	return c.JSON(post)
}

// GetOnChainProfile handles GET /api/contract/profile/:address
func (s *Server) GetOnChainProfile(c *fiber.Ctx) error {
	profile, err := s.ledger.Profile(c.UserContext(), c.Params("address"))
	if err != nil {
		return fail(c, err, "Failed to fetch on-chain profile")
	}
	return c.JSON(profile)
}

// GetTransactionStatus handles GET /api/contract/tx/:hash
// @Summary Confirmation status of a transaction
// @Tags contract
// @Produce json
// @Param hash path string true "Transaction hash"
// @Success 200 {object} ledger.TxStatus
// @Failure 400 {object} models.ErrorResponse
// @Router /contract/tx/{hash} [get]
func (s *Server) GetTransactionStatus(c *fiber.Ctx) error {
	status, err := s.ledger.TxStatus(c.UserContext(), c.Params("hash"))
	if err != nil {
		return fail(c, err, "Failed to fetch transaction")
	}
	return c.JSON(status)
}
