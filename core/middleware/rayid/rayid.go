package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header is echoed on every response.
	Header = "X-Ray-ID"
	// LocalsKey is where the ID is stored on the fiber context.
	LocalsKey = "ray_id"
)

// New assigns every request a ray ID, reusing an incoming X-Ray-ID when present.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}

// Get returns the ray ID of the request, or an empty string.
func Get(c *fiber.Ctx) string {
	if id, ok := c.Locals(LocalsKey).(string); ok {
		return id
	}
	return ""
}
