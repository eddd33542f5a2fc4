package bot

import (
	"context"
	"fmt"

	"quitemap/internal/middleware"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot runs the Telegram long-polling loop and hands messages to a Responder.
type Bot struct {
	api       *tgbotapi.BotAPI
	responder *Responder
}

// New authenticates against the Bot API with the given token.
func New(token string, responder *Responder) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate bot: %w", err)
	}
	middleware.Logger.Info("bot authenticated", "username", api.Self.UserName)
	return &Bot{api: api, responder: responder}, nil
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	handle := msg.From.UserName
	if handle == "" {
		// Telegram accounts without a public username cannot be matched to a
		// registration
		b.reply(msg.Chat.ID, "Your Telegram account has no public username. Set one in Telegram settings, then try again.")
		return
	}

	text, err := b.responder.HandleCommand(ctx, handle, msg.Text)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to handle bot command",
			"handle", handle, "error", err)
		b.reply(msg.Chat.ID, "Something went wrong on our side. Please try again in a minute.")
		return
	}
	b.reply(msg.Chat.ID, text)
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		middleware.Logger.Error("failed to send bot reply", "error", err)
	}
}
