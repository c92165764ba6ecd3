package assistant

import (
	"context"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guildforge/ledgerbot/ledgerbot"
	"github.com/guildforge/ledgerbot/ledgerbot/config"
	"github.com/guildforge/ledgerbot/ledgerbot/handlers"
	"github.com/guildforge/ledgerbot/ledgerbot/utils"
)

var Commands = []discord.ApplicationCommandCreate{
	Ask,
}

var Ask = discord.SlashCommandCreate{
	Name:        "ask",
	Description: "🤖 Ask the AI assistant a question",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "question",
			Description: "What do you want to know?",
			Required:    true,
		},
	},
}

const (
	unavailableMessage = "AI features are currently unavailable."
	failedMessage      = "An unexpected error occurred while answering. Please try again later."
)

// AskHandler acknowledges immediately and edits the deferred response once
// the provider answers.
func AskHandler(b *ledgerbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.CreateUserError(e, "This command can only be used in a server.")
		}
		if b.AI == nil {
			return utils.EH.CreateSystemError(e, unavailableMessage)
		}

		question := e.SlashCommandInteractionData().String("question")
		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		userID := e.User().ID
		handlers.GoRecovered("ask", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), b.Cfg.AI.RequestTimeout())
			defer cancel()

			answer, err := b.AI.Ask(ctx, *guildID, userID, question)
			if err != nil {
				errorType, msg := utils.Describe("answer your question", err)
				if uerr := utils.EH.UpdateClassifiedError(e, errorType, msg); uerr != nil {
					slog.Error("Failed to deliver AI error",
						slog.String("type", "ai"),
						slog.Any("error", uerr))
				}
				return nil
			}

			if _, err := e.UpdateInteractionResponse(discord.MessageUpdate{
				Content: utils.Ptr(answer.Fit(config.MaxDiscordMessageLength)),
			}); err != nil {
				slog.Error("Failed to deliver AI answer",
					slog.String("type", "ai"),
					slog.Any("error", err))
			}
			return nil
		}, func(err error) {
			slog.Error("AI request failed",
				slog.String("type", "ai"),
				slog.Any("error", err))
			_ = utils.EH.UpdateClassifiedError(e, utils.SystemError, failedMessage)
		})
		return nil
	}
}
