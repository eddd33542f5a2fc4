package server

import (
	"testing"

	"quitemap/internal/config"
	"quitemap/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                   "8000",
		BaseURL:                "http://localhost:8000",
		Env:                    "test",
		SecretKey:              "test-secret-key",
		DatabaseURL:            "sqlite://:memory:",
		YandexMapsAPIKey:       "test-maps-key",
		DBSchemaMode:           "hybrid",
		RegistrationTTLMinutes: 60,
	}
}

// newTestApp builds a full server over an in-memory database, with routes and
// middleware wired the same way as production.
func newTestApp(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.PendingRegistration{}))

	s, err := NewServerWithDeps(testConfig(), db, nil)
	require.NoError(t, err)

	app := s.NewApp()
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return s, app, db
}
