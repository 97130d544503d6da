package middleware

import (
	"log"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const PlayerIDHeader = "X-Player-ID"

// EnsurePlayerID stores the caller's player ID in c.Locals("playerID"). The
// ID comes from the X-Player-ID header or the playerId query parameter;
// anonymous callers get a generated handle echoed back in the header.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		// Header and query values alias the request buffer and games keep
		// the id after the request ends.
		playerID := utils.CopyString(c.Get(PlayerIDHeader))
		if playerID == "" {
			playerID = utils.CopyString(c.Query("playerId"))
		}
		if playerID == "" {
			playerID = petname.Generate(3, "-")
			log.Printf("assigned anonymous player id %s", playerID)
		}

		c.Set(PlayerIDHeader, playerID)
		c.Locals("playerID", playerID)
		return c.Next()
	}
}
