package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	"quitemap/internal/models"
	"quitemap/internal/repository"
	"quitemap/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupResponder(t *testing.T) (*Responder, *service.RegistrationService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.PendingRegistration{}))

	reg := service.NewRegistrationService(
		repository.NewUserRepository(db),
		repository.NewRegistrationRepository(db),
		"http://localhost:8000",
		time.Hour,
	)
	return NewResponder(reg), reg, db
}

func TestResponder_StartCompletesRegistration(t *testing.T) {
	responder, reg, db := setupResponder(t)
	ctx := context.Background()

	require.NoError(t, reg.Begin(ctx, "newmember", "sturdy-pass1", "member_tg"))

	reply, err := responder.HandleCommand(ctx, "member_tg", "/start")
	require.NoError(t, err)
	assert.Contains(t, reply, "newmember")
	assert.Contains(t, reply, "http://localhost:8000/activate/")

	var user models.User
	require.NoError(t, db.Where("username = ?", "newmember").First(&user).Error)
	assert.False(t, user.IsActive)
}

func TestResponder_ActivateAliasAndCaseInsensitive(t *testing.T) {
	responder, reg, _ := setupResponder(t)
	ctx := context.Background()

	require.NoError(t, reg.Begin(ctx, "newmember", "sturdy-pass1", "Member_TG"))

	// The stored handle is normalized; the alias and mixed case both work
	reply, err := responder.HandleCommand(ctx, "Member_TG", "/ACTIVATE")
	require.NoError(t, err)
	assert.Contains(t, reply, "activate")
}

func TestResponder_NoPendingRegistration(t *testing.T) {
	responder, _, _ := setupResponder(t)

	reply, err := responder.HandleCommand(context.Background(), "stranger_tg", "/start")
	require.NoError(t, err)
	assert.Contains(t, reply, "no pending registration")
	assert.Contains(t, reply, "@stranger_tg")
}

func TestResponder_RepeatStartResendsLink(t *testing.T) {
	responder, reg, _ := setupResponder(t)
	ctx := context.Background()

	require.NoError(t, reg.Begin(ctx, "newmember", "sturdy-pass1", "member_tg"))

	first, err := responder.HandleCommand(ctx, "member_tg", "/start")
	require.NoError(t, err)

	second, err := responder.HandleCommand(ctx, "member_tg", "/start")
	require.NoError(t, err)
	assert.Contains(t, second, "already confirmed")

	// Same activation link both times
	assert.Equal(t, activationLink(t, first), activationLink(t, second))
}

func TestResponder_AlreadyActive(t *testing.T) {
	responder, reg, _ := setupResponder(t)
	ctx := context.Background()

	require.NoError(t, reg.Begin(ctx, "newmember", "sturdy-pass1", "member_tg"))
	res, err := reg.Complete(ctx, "member_tg")
	require.NoError(t, err)

	token := res.ActivationURL[len("http://localhost:8000/activate/"):]
	_, err = reg.Activate(ctx, token)
	require.NoError(t, err)

	reply, err := responder.HandleCommand(ctx, "member_tg", "/start")
	require.NoError(t, err)
	assert.Contains(t, reply, "already active")
}

func TestResponder_HelpAndUnknown(t *testing.T) {
	responder, _, _ := setupResponder(t)
	ctx := context.Background()

	help, err := responder.HandleCommand(ctx, "anyone_tg", "/help")
	require.NoError(t, err)
	assert.Contains(t, help, "/start")

	unknown, err := responder.HandleCommand(ctx, "anyone_tg", "what is this")
	require.NoError(t, err)
	assert.Contains(t, unknown, "/help")
}

func activationLink(t *testing.T, reply string) string {
	t.Helper()
	const prefix = "http://localhost:8000/activate/"
	i := strings.Index(reply, prefix)
	if i < 0 {
		t.Fatalf("no activation link in reply: %s", reply)
	}
	return reply[i:]
}
