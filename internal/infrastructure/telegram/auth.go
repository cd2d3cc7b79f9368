package telegram

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
)

// IsAuthorized reports whether userID is the bot owner
func IsAuthorized(userID, ownerID int64) bool {
	return userID == ownerID
}

// senderID returns the ID of the user who caused the update
func senderID(update *models.Update) (int64, bool) {
	switch {
	case update == nil:
		return 0, false
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID, true
	case update.EditedMessage != nil && update.EditedMessage.From != nil:
		return update.EditedMessage.From.ID, true
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID, true
	default:
		return 0, false
	}
}

// OwnerOnly drops every update that was not sent by ownerID.
// Dropped updates get no reply.
func OwnerOnly(ownerID int64, logger zerolog.Logger) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			userID, ok := senderID(update)
			if !ok {
				logger.Debug().Msg("Ignoring update without sender")
				return
			}

			if !IsAuthorized(userID, ownerID) {
				logger.Debug().Int64("user_id", userID).Msg("Ignoring update from unauthorized user")
				return
			}

			next(ctx, bot, update)
		}
	}
}
