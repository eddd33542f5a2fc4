package server

import (
	"errors"
	"strings"

	"quitemap/internal/models"
	"quitemap/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// CreatePostRequest is the body for POST /api/posts.
type CreatePostRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsPublished bool   `json:"is_published"`
}

// GetPosts returns a page of posts, published only by default.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	publishedOnly := c.QueryBool("published_only", true)

	posts, err := s.postRepo.List(c.UserContext(), publishedOnly, p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts":  posts,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// CreatePost creates a post authored by the authenticated user.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("title is required"))
	}
	if len(req.Title) > 200 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("title must not exceed 200 characters"))
	}
	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("content is required"))
	}

	post := &models.Post{
		Title:       req.Title,
		Content:     req.Content,
		UserID:      userID,
		IsPublished: req.IsPublished,
	}
	if err := s.postRepo.Create(c.UserContext(), post); err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost returns a single post by ID.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("post", id))
		}
		return respondAppError(c, err)
	}

	return c.JSON(post)
}
