package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quitemap/internal/models"
	"quitemap/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	jwtIssuer   = "quitemap-api"
	jwtAudience = "quitemap-web"
	tokenTTL    = 24 * time.Hour
)

// AuthService issues and verifies JWT access tokens.
type AuthService struct {
	users  repository.UserRepository
	secret []byte
}

// NewAuthService creates an auth service signing tokens with secret.
func NewAuthService(users repository.UserRepository, secret string) *AuthService {
	return &AuthService{users: users, secret: []byte(secret)}
}

// Login checks credentials and returns a signed token plus the user.
// Inactive accounts cannot log in until they follow their activation link.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, models.NewUnauthorizedError("invalid username or password")
		}
		return "", nil, models.NewInternalError(err)
	}

	if !CheckPassword(user.Password, password) {
		return "", nil, models.NewUnauthorizedError("invalid username or password")
	}
	if !user.IsActive {
		return "", nil, models.NewUnauthorizedError("account is not activated")
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return "", nil, models.NewInternalError(err)
	}
	return token, user, nil
}

// IssueToken signs a token for the given user ID.
func (s *AuthService) IssueToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    jwtIssuer,
		Audience:  jwt.ClaimStrings{jwtAudience},
		Subject:   fmt.Sprintf("%d", userID),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken verifies a token and returns the user ID it was issued to.
func (s *AuthService) ParseToken(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(jwtIssuer), jwt.WithAudience(jwtAudience))
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("invalid token")
	}

	var userID uint
	if _, err := fmt.Sscanf(claims.Subject, "%d", &userID); err != nil || userID == 0 {
		return 0, errors.New("invalid token subject")
	}
	return userID, nil
}
