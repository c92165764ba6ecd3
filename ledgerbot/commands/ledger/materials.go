package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guildforge/ledgerbot/ledgerbot"
	"github.com/guildforge/ledgerbot/ledgerbot/config"
	"github.com/guildforge/ledgerbot/ledgerbot/database/models"
	"github.com/guildforge/ledgerbot/ledgerbot/economy"
	"github.com/guildforge/ledgerbot/ledgerbot/utils"
)

var Materials = discord.SlashCommandCreate{
	Name:        "materials",
	Description: "🧱 Show the materials that can be contributed and their value",
}

func MaterialsHandler(b *ledgerbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		materials, err := b.Ledger.Materials(ctx)
		if err != nil {
			return utils.EH.RespondError(e, "list materials", err)
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{materialsEmbed(materials)},
		})
	}
}

func materialsEmbed(materials []models.Material) discord.Embed {
	var sb strings.Builder
	for _, m := range materials {
		fmt.Fprintf(&sb, "**%s** `%s` • %s pts/unit\n", m.DisplayName, m.Name, economy.UnitValue(m.Value))
	}
	return discord.NewEmbedBuilder().
		SetTitle("🧱 Materials").
		SetDescription(utils.Truncate(sb.String(), 4096)).
		SetColor(config.InfoColor).
		SetFooter(fmt.Sprintf("%d materials • use /contribute to log yours", len(materials)), "").
		Build()
}
