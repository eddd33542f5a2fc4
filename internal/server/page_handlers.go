package server

import (
	"errors"
	"time"

	"quitemap/internal/models"
	"quitemap/internal/observability"
	"quitemap/internal/repository"
	"quitemap/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Home renders the landing page with the map embed and recent posts.
func (s *Server) Home(c *fiber.Ctx) error {
	start := time.Now()
	defer observability.ObserveRender("home", start)

	posts, err := s.postRepo.RecentPublished(c.UserContext())
	if err != nil {
		// The landing page still works without the post strip
		posts = nil
	}

	return c.Render("index", fiber.Map{
		"MapsAPIKey":  s.config.YandexMapsAPIKey,
		"RecentPosts": posts,
	})
}

// About renders the static about page.
func (s *Server) About(c *fiber.Ctx) error {
	start := time.Now()
	defer observability.ObserveRender("about", start)

	return c.Render("about", fiber.Map{"Title": "About"})
}

// Contact renders the static contact page.
func (s *Server) Contact(c *fiber.Ctx) error {
	start := time.Now()
	defer observability.ObserveRender("contact", start)

	return c.Render("contact", fiber.Map{"Title": "Contact"})
}

// UserProfile renders a member's public profile with their published posts.
func (s *Server) UserProfile(c *fiber.Ctx) error {
	start := time.Now()
	defer observability.ObserveRender("user", start)

	username := c.Params("username")
	if err := validation.ValidateUsername(username); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	user, err := s.userRepo.GetByUsernameWithPosts(c.UserContext(), username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return c.Render("user", fiber.Map{
		"Title": user.Username,
		"User":  user,
	})
}

// RegisterForm renders the signup form.
func (s *Server) RegisterForm(c *fiber.Ctx) error {
	start := time.Now()
	defer observability.ObserveRender("register", start)

	return c.Render("register", fiber.Map{
		"Title":          "Sign up",
		"Username":       "",
		"TelegramHandle": "",
	})
}

// RegisterSubmit handles the signup form and stores a pending registration.
// Validation failures re-render the form with the error and the submitted
// values.
func (s *Server) RegisterSubmit(c *fiber.Ctx) error {
	start := time.Now()
	defer observability.ObserveRender("register", start)

	username := c.FormValue("username")
	password := c.FormValue("password")
	telegramHandle := c.FormValue("telegram_handle")

	if err := s.regService.Begin(c.UserContext(), username, password, telegramHandle); err != nil {
		status := fiber.StatusBadRequest
		message := "Registration failed, please try again"

		var appErr *models.AppError
		if errors.As(err, &appErr) {
			message = appErr.Message
			status = statusForAppError(appErr)
			if status == fiber.StatusInternalServerError {
				message = "Registration failed, please try again"
			}
		}

		return c.Status(status).Render("register", fiber.Map{
			"Title":          "Sign up",
			"Error":          message,
			"Username":       username,
			"TelegramHandle": telegramHandle,
		})
	}

	return c.Render("register_pending", fiber.Map{
		"Title":          "Confirm your handle",
		"Username":       username,
		"TelegramHandle": validation.NormalizeTelegramHandle(telegramHandle),
		"TTLMinutes":     s.config.RegistrationTTLMinutes,
	})
}

// ActivatePage consumes an activation token and flips the account active.
func (s *Server) ActivatePage(c *fiber.Ctx) error {
	start := time.Now()
	defer observability.ObserveRender("activate", start)

	user, err := s.regService.Activate(c.UserContext(), c.Params("token"))
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return fiber.NewError(fiber.StatusNotFound,
				"This activation link is invalid or was already used")
		}
		return err
	}

	return c.Render("activated", fiber.Map{
		"Title":    "Account activated",
		"Username": user.Username,
	})
}
