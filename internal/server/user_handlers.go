package server

import (
	"errors"

	"quitemap/internal/models"
	"quitemap/internal/repository"
	"quitemap/internal/service"
	"quitemap/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateUserRequest is the body for POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// GetUsers returns a page of users.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	users, err := s.userRepo.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	total, err := s.userRepo.Count(c.UserContext())
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"users":  users,
		"total":  total,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// CreateUser creates an active account directly, without the Telegram flow.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	if _, err := s.userRepo.GetByUsername(c.UserContext(), req.Username); err == nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("username is already taken"))
	} else if !errors.Is(err, repository.ErrNotFound) {
		return respondAppError(c, err)
	}
	if _, err := s.userRepo.GetByEmail(c.UserContext(), req.Email); err == nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("email is already in use"))
	} else if !errors.Is(err, repository.ErrNotFound) {
		return respondAppError(c, err)
	}

	hashed, err := service.HashPassword(req.Password)
	if err != nil {
		return respondAppError(c, err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: hashed,
		IsActive: true,
	}
	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser returns a single user by ID.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("user", id))
		}
		return respondAppError(c, err)
	}

	return c.JSON(user)
}

// GetUserPosts returns a user's posts, published only by default.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.userRepo.GetByID(c.UserContext(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("user", id))
		}
		return respondAppError(c, err)
	}

	publishedOnly := c.QueryBool("published_only", true)
	posts, err := s.postRepo.GetByUserID(c.UserContext(), id, publishedOnly)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{"posts": posts})
}
