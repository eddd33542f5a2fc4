package repository

import (
	"context"
	"testing"

	"quitemap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "writer")
	post := &models.Post{Title: "First", Content: "hello", UserID: user.ID, IsPublished: true}
	require.NoError(t, repo.Create(ctx, post))
	assert.NotZero(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
	assert.Equal(t, "writer", got.User.Username, "author is preloaded")
}

func TestPostRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, 404), ErrNotFound)
}

func TestPostRepository_ListPublishedOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "writer")
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Live", Content: "x", UserID: user.ID, IsPublished: true}))
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Draft", Content: "x", UserID: user.ID}))

	published, err := repo.List(ctx, true, 20, 0)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "Live", published[0].Title)

	all, err := repo.List(ctx, false, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPostRepository_GetByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "A1", Content: "x", UserID: alice.ID, IsPublished: true}))
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "A2", Content: "x", UserID: alice.ID}))
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "B1", Content: "x", UserID: bob.ID, IsPublished: true}))

	alicePosts, err := repo.GetByUserID(ctx, alice.ID, false)
	require.NoError(t, err)
	assert.Len(t, alicePosts, 2)

	alicePublished, err := repo.GetByUserID(ctx, alice.ID, true)
	require.NoError(t, err)
	require.Len(t, alicePublished, 1)
	assert.Equal(t, "A1", alicePublished[0].Title)
}

func TestPostRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "writer")
	post := &models.Post{Title: "Original", Content: "x", UserID: user.ID}
	require.NoError(t, repo.Create(ctx, post))

	post.Title = "Updated"
	post.IsPublished = true
	require.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated", got.Title)
	assert.True(t, got.IsPublished)

	require.NoError(t, repo.Delete(ctx, post.ID))
	_, err = repo.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
