// Package seed populates the database with generated example data for
// development and demos.
package seed

import (
	"context"
	"fmt"

	"quitemap/internal/middleware"
	"quitemap/internal/models"

	"gorm.io/gorm"
)

// Options controls how much example data to generate.
type Options struct {
	NumUsers int
	NumPosts int
	// Clean removes existing rows before seeding.
	Clean bool
}

// DefaultOptions is what the API endpoint and the seed command use unless
// told otherwise.
func DefaultOptions() Options {
	return Options{NumUsers: 10, NumPosts: 30}
}

// Result reports what Run created.
type Result struct {
	UsersCreated int `json:"users_created"`
	PostsCreated int `json:"posts_created"`
}

// Run generates example users and posts. Posts are assigned to the generated
// users round-robin so every user gets some.
func Run(ctx context.Context, db *gorm.DB, opts Options) (*Result, error) {
	if opts.NumUsers <= 0 {
		return nil, fmt.Errorf("NumUsers must be positive")
	}
	if opts.NumPosts < 0 {
		return nil, fmt.Errorf("NumPosts must not be negative")
	}

	if opts.Clean {
		if err := Clean(ctx, db); err != nil {
			return nil, err
		}
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user := fakeUser(i)
		if err := db.WithContext(ctx).Create(user).Error; err != nil {
			return nil, fmt.Errorf("failed to create example user: %w", err)
		}
		users = append(users, user)
	}

	result := &Result{UsersCreated: len(users)}
	for i := 0; i < opts.NumPosts; i++ {
		post := fakePost(users[i%len(users)].ID)
		if err := db.WithContext(ctx).Create(post).Error; err != nil {
			return nil, fmt.Errorf("failed to create example post: %w", err)
		}
		result.PostsCreated++
	}

	middleware.Logger.InfoContext(ctx, "example data seeded",
		"users", result.UsersCreated, "posts", result.PostsCreated)
	return result, nil
}

// Clean removes all posts, users, and pending registrations. Raw deletes keep
// it portable across SQLite and PostgreSQL and skip the soft-delete hooks.
func Clean(ctx context.Context, db *gorm.DB) error {
	for _, table := range []string{"posts", "pending_registrations", "users"} {
		if err := db.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clean %s: %w", table, err)
		}
	}
	return nil
}
