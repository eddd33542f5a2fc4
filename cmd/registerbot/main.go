// Command registerbot runs the Telegram registration bot.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"quitemap/internal/bot"
	"quitemap/internal/config"
	"quitemap/internal/database"
	"quitemap/internal/repository"
	"quitemap/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.TGBotAPIKey == "" {
		log.Fatal("TG_BOT_API_KEY is required to run the registration bot")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	regService := service.NewRegistrationService(
		repository.NewUserRepository(db),
		repository.NewRegistrationRepository(db),
		cfg.BaseURL,
		time.Duration(cfg.RegistrationTTLMinutes)*time.Minute,
	)

	b, err := bot.New(cfg.TGBotAPIKey, bot.NewResponder(regService))
	if err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Sweep expired registrations alongside polling
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed, err := regService.CleanupExpired(ctx); err != nil {
					log.Printf("cleanup of expired registrations failed: %v", err)
				} else if removed > 0 {
					log.Printf("removed %d expired registrations", removed)
				}
			}
		}
	}()

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Bot stopped: %v", err)
	}
	log.Println("Bot shutdown complete")
}
