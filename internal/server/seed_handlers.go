package server

import (
	"quitemap/internal/models"
	"quitemap/internal/seed"

	"github.com/gofiber/fiber/v2"
)

// CreateExampleData populates the database with generated users and posts.
// Refused in production.
func (s *Server) CreateExampleData(c *fiber.Ctx) error {
	if s.config.IsProduction() {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("example data cannot be created in production"))
	}

	opts := seed.DefaultOptions()
	if n := c.QueryInt("users", 0); n > 0 {
		opts.NumUsers = n
	}
	if n := c.QueryInt("posts", -1); n >= 0 {
		opts.NumPosts = n
	}
	opts.Clean = c.QueryBool("clean", false)

	result, err := seed.Run(c.UserContext(), s.db, opts)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
