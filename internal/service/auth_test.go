package service

import (
	"context"
	"testing"

	"quitemap/internal/cache"
	"quitemap/internal/models"
	"quitemap/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuth(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))

	return NewAuthService(repository.NewUserRepository(db), "test-secret"), db
}

func seedActiveUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()
	hashed, err := HashPassword(password)
	require.NoError(t, err)
	user := &models.User{Username: username, Password: hashed, IsActive: true}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestAuth_LoginSuccess(t *testing.T) {
	svc, db := setupAuth(t)
	ctx := context.Background()

	seeded := seedActiveUser(t, db, "loginuser", "sturdy-pass1")

	token, user, err := svc.Login(ctx, "loginuser", "sturdy-pass1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, seeded.ID, user.ID)

	userID, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, userID)
}

func TestAuth_RepeatedLoginThroughCache(t *testing.T) {
	svc, db := setupAuth(t)
	ctx := context.Background()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	seedActiveUser(t, db, "loginuser", "sturdy-pass1")

	// First login populates the cache, the second is served from it. Both
	// must see the stored hash.
	for i := 0; i < 2; i++ {
		token, _, err := svc.Login(ctx, "loginuser", "sturdy-pass1")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	}

	_, _, err = svc.Login(ctx, "loginuser", "wrong-pass1")
	assert.Error(t, err)
}

func TestAuth_LoginFailures(t *testing.T) {
	svc, db := setupAuth(t)
	ctx := context.Background()

	seedActiveUser(t, db, "loginuser", "sturdy-pass1")

	_, _, err := svc.Login(ctx, "loginuser", "wrong-pass1")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)

	_, _, err = svc.Login(ctx, "nobody", "sturdy-pass1")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestAuth_InactiveUserCannotLogin(t *testing.T) {
	svc, db := setupAuth(t)
	ctx := context.Background()

	hashed, err := HashPassword("sturdy-pass1")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username: "dormant", Password: hashed, IsActive: false, ActivationToken: "tok",
	}).Error)

	_, _, err = svc.Login(ctx, "dormant", "sturdy-pass1")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	assert.Contains(t, appErr.Message, "activated")
}

func TestAuth_ParseTokenRejectsForgeries(t *testing.T) {
	svc, _ := setupAuth(t)

	token, err := svc.IssueToken(42)
	require.NoError(t, err)

	// Wrong secret
	other := NewAuthService(nil, "different-secret")
	_, err = other.ParseToken(token)
	assert.Error(t, err)

	_, err = svc.ParseToken("not.a.token")
	assert.Error(t, err)

	userID, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)
}
