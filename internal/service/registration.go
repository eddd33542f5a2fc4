// Package service contains business logic that spans repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quitemap/internal/models"
	"quitemap/internal/observability"
	"quitemap/internal/repository"
	"quitemap/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CompletionOutcome describes what happened when the bot tried to complete
// a registration for a Telegram handle.
type CompletionOutcome string

const (
	OutcomeCompleted          CompletionOutcome = "completed"
	OutcomeAlreadyActive      CompletionOutcome = "already_active"
	OutcomeAwaitingActivation CompletionOutcome = "awaiting_activation"
	OutcomeExpired            CompletionOutcome = "expired"
	OutcomeUsernameTaken      CompletionOutcome = "username_taken"
	OutcomeNoPending          CompletionOutcome = "no_pending"
)

// CompletionResult is what the bot relays back to the Telegram user.
type CompletionResult struct {
	Outcome       CompletionOutcome
	Username      string
	ActivationURL string
}

// RegistrationService drives the two-step signup flow: the website stores a
// pending registration, the Telegram bot completes it into an inactive user,
// and the activation link flips the user active.
type RegistrationService struct {
	users   repository.UserRepository
	pending repository.RegistrationRepository
	baseURL string
	ttl     time.Duration

	// now is swappable in tests
	now func() time.Time
}

// NewRegistrationService creates a registration service. baseURL is used to
// build activation links and must not have a trailing slash.
func NewRegistrationService(users repository.UserRepository, pending repository.RegistrationRepository, baseURL string, ttl time.Duration) *RegistrationService {
	return &RegistrationService{
		users:   users,
		pending: pending,
		baseURL: baseURL,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Begin validates the signup form and stores a pending registration. A repeat
// submission for the same Telegram handle restarts the confirmation window.
func (s *RegistrationService) Begin(ctx context.Context, username, password, telegramHandle string) error {
	if err := validation.ValidateUsername(username); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return models.NewValidationError(err.Error())
	}
	handle := validation.NormalizeTelegramHandle(telegramHandle)
	if err := validation.ValidateTelegramHandle(handle); err != nil {
		return models.NewValidationError(err.Error())
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return models.NewConflictError("username is already taken")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return models.NewInternalError(err)
	}

	if _, err := s.users.GetByTelegramHandle(ctx, handle); err == nil {
		return models.NewConflictError("telegram handle is already linked to an account")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return models.NewInternalError(err)
	}

	// Another pending signup may hold the username under a different handle
	if existing, err := s.pending.GetByUsername(ctx, username); err == nil {
		if existing.TelegramHandle != handle && !existing.Expired(s.now()) {
			return models.NewConflictError("username is already taken")
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return models.NewInternalError(err)
	}

	// Restart the window if this handle already has a pending signup
	if existing, err := s.pending.GetByTelegramHandle(ctx, handle); err == nil {
		if err := s.pending.Delete(ctx, existing.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return models.NewInternalError(err)
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return models.NewInternalError(err)
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return models.NewInternalError(err)
	}

	reg := &models.PendingRegistration{
		Username:       username,
		HashedPassword: hashed,
		TelegramHandle: handle,
		ExpiresAt:      s.now().Add(s.ttl),
	}
	if err := s.pending.Create(ctx, reg); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Complete is called by the bot when a Telegram user messages it. It turns the
// pending registration for that handle into an inactive user and returns the
// activation link.
func (s *RegistrationService) Complete(ctx context.Context, telegramHandle string) (*CompletionResult, error) {
	handle := validation.NormalizeTelegramHandle(telegramHandle)

	if user, err := s.users.GetByTelegramHandle(ctx, handle); err == nil {
		if user.IsActive {
			return &CompletionResult{Outcome: OutcomeAlreadyActive, Username: user.Username}, nil
		}
		// Completed earlier but never activated; resend the link
		return &CompletionResult{
			Outcome:       OutcomeAwaitingActivation,
			Username:      user.Username,
			ActivationURL: s.activationURL(user.ActivationToken),
		}, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	reg, err := s.pending.GetByTelegramHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &CompletionResult{Outcome: OutcomeNoPending}, nil
		}
		return nil, fmt.Errorf("failed to look up pending registration: %w", err)
	}

	if reg.Expired(s.now()) {
		_ = s.pending.Delete(ctx, reg.ID)
		return &CompletionResult{Outcome: OutcomeExpired, Username: reg.Username}, nil
	}

	// The username could have been claimed while the registration sat pending
	if _, err := s.users.GetByUsername(ctx, reg.Username); err == nil {
		_ = s.pending.Delete(ctx, reg.ID)
		return &CompletionResult{Outcome: OutcomeUsernameTaken, Username: reg.Username}, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	token := uuid.NewString()
	user := &models.User{
		Username:        reg.Username,
		Password:        reg.HashedPassword,
		TelegramHandle:  handle,
		ActivationToken: token,
		IsActive:        false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if err := s.pending.Delete(ctx, reg.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to remove pending registration: %w", err)
	}

	observability.RegistrationsCompleted.Inc()

	return &CompletionResult{
		Outcome:       OutcomeCompleted,
		Username:      user.Username,
		ActivationURL: s.activationURL(token),
	}, nil
}

// Activate flips the user holding the token to active and burns the token.
func (s *RegistrationService) Activate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, models.NewValidationError("activation token is required")
	}

	user, err := s.users.GetByActivationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.NewNotFoundError("activation token", token)
		}
		return nil, models.NewInternalError(err)
	}

	user.IsActive = true
	user.ActivationToken = ""
	if err := s.users.Update(ctx, user); err != nil {
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// CleanupExpired removes pending registrations whose window has closed.
func (s *RegistrationService) CleanupExpired(ctx context.Context) (int64, error) {
	return s.pending.DeleteExpired(ctx, s.now())
}

func (s *RegistrationService) activationURL(token string) string {
	return fmt.Sprintf("%s/activate/%s", s.baseURL, token)
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
