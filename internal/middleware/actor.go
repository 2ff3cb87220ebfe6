package middleware

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

const actorLocal = "actor_address"

// actorFields are the request body fields naming the wallet that performs a
// mutation, in lookup order.
var actorFields = []string{"userAddress", "followerAddress", "fromAddress", "authorAddress", "address"}

// ActingAddress returns the wallet address behind the request: the first
// actor field of a JSON body, otherwise the :address route parameter. It is
// empty when neither is present. The result is cached on the request.
func ActingAddress(c *fiber.Ctx) string {
	if addr, ok := c.Locals(actorLocal).(string); ok {
		return addr
	}
	addr := bodyActor(c.Body())
	if addr == "" {
		addr = c.Params("address")
	}
	c.Locals(actorLocal, addr)
	return addr
}

func bodyActor(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	for _, name := range actorFields {
		if addr, ok := fields[name].(string); ok && addr != "" {
			return addr
		}
	}
	return ""
}
