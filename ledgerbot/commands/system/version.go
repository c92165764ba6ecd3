package system

import (
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guildforge/ledgerbot/ledgerbot"
	"github.com/guildforge/ledgerbot/ledgerbot/utils"
)

var Version = discord.SlashCommandCreate{
	Name:        "version",
	Description: "Show the running version",
}

func VersionHandler(b *ledgerbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if err := e.DeferCreateMessage(true); err != nil {
			return err
		}
		_, err := e.UpdateInteractionResponse(discord.MessageUpdate{
			Content: utils.Ptr(versionText(b.Version, b.Commit, time.Since(b.StartedAt))),
		})
		return err
	}
}

func versionText(version, commit string, uptime time.Duration) string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nUptime: %s", version, commit, uptime.Truncate(time.Second))
}
