// Package bot implements the Telegram registration bot. The website stores a
// pending registration keyed by Telegram handle; when the owner of that
// handle messages the bot, the registration is completed and the activation
// link is sent back.
package bot

import (
	"context"
	"fmt"
	"strings"

	"quitemap/internal/service"
)

// Responder turns incoming bot commands into reply texts. It is separate
// from the Telegram transport so the conversation logic can be tested
// without the Bot API.
type Responder struct {
	reg *service.RegistrationService
}

// NewResponder creates a responder over the registration service.
func NewResponder(reg *service.RegistrationService) *Responder {
	return &Responder{reg: reg}
}

// HandleCommand produces the reply for a command sent by the given Telegram
// handle. Unknown input gets a usage hint.
func (r *Responder) HandleCommand(ctx context.Context, handle, command string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(command)) {
	case "/start", "/activate":
		return r.completeRegistration(ctx, handle)
	case "/help":
		return helpText, nil
	default:
		return "I did not understand that. Send /start to confirm a registration, or /help for the full list.", nil
	}
}

func (r *Responder) completeRegistration(ctx context.Context, handle string) (string, error) {
	res, err := r.reg.Complete(ctx, handle)
	if err != nil {
		return "", err
	}

	switch res.Outcome {
	case service.OutcomeCompleted:
		return fmt.Sprintf(
			"Handle confirmed! Your account %q is almost ready.\n\nOpen this link to activate it:\n%s",
			res.Username, res.ActivationURL), nil
	case service.OutcomeAwaitingActivation:
		return fmt.Sprintf(
			"Your account %q is already confirmed but not yet activated.\n\nHere is your activation link again:\n%s",
			res.Username, res.ActivationURL), nil
	case service.OutcomeAlreadyActive:
		return fmt.Sprintf("Your account %q is already active. Just log in on the website.", res.Username), nil
	case service.OutcomeExpired:
		return "Your registration request expired. Please sign up again on the website.", nil
	case service.OutcomeUsernameTaken:
		return fmt.Sprintf(
			"Sorry, the username %q was claimed while your registration was pending. Please sign up again with a different name.",
			res.Username), nil
	case service.OutcomeNoPending:
		return fmt.Sprintf(
			"There is no pending registration for @%s. Start by filling in the sign-up form on the website.",
			strings.TrimPrefix(handle, "@")), nil
	default:
		return "", fmt.Errorf("unhandled completion outcome %q", res.Outcome)
	}
}

const helpText = `QuiteMap registration bot.

/start - confirm your pending registration and get the activation link
/activate - same as /start
/help - this message

Registrations begin on the QuiteMap website. The bot only confirms that you own the Telegram handle you entered there.`
