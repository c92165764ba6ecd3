package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/guildforge/ledgerbot/internal/domain/contributions"
	"github.com/guildforge/ledgerbot/ledgerbot"
	"github.com/guildforge/ledgerbot/ledgerbot/config"
	"github.com/guildforge/ledgerbot/ledgerbot/economy"
	"github.com/guildforge/ledgerbot/ledgerbot/utils"
)

var Contributions = discord.SlashCommandCreate{
	Name:        "contributions",
	Description: "📜 List a member's contributions in this server",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "member",
			Description: "Whose contributions to show (defaults to you)",
			Required:    false,
		},
	},
}

func ContributionsHandler(b *ledgerbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.CreateUserError(e, "This command can only be used in a server.")
		}

		target := e.User()
		if user, ok := e.SlashCommandInteractionData().OptUser("member"); ok {
			target = user
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		report, err := b.Ledger.MemberReport(ctx, *guildID, target.ID)
		if err != nil {
			return utils.EH.RespondError(e, "fetch contributions", err)
		}

		name := target.EffectiveName()
		if len(report.Entries) == 0 {
			return utils.EH.CreateInfoEmbed(e, "📜 Contributions",
				fmt.Sprintf("**%s** has not contributed anything in this server yet.", name))
		}

		totalPages := pageCount(len(report.Entries), config.ContributionsPerPage)
		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				embed.
					SetTitle(fmt.Sprintf("📜 Contributions of %s", name)).
					SetDescription(reportPage(report, page, config.ContributionsPerPage)).
					SetColor(config.EmbedDefaultColor).
					SetFooter(fmt.Sprintf("Page %d/%d • %d entries • Total: %s pts", page+1, totalPages, len(report.Entries), report.Total), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func pageCount(n, perPage int) int {
	if n == 0 {
		return 1
	}
	return (n + perPage - 1) / perPage
}

// reportPage renders one page of entries, numbered across the whole report.
func reportPage(report *contributions.Report, page, perPage int) string {
	start := page * perPage
	if start >= len(report.Entries) {
		return ""
	}
	end := min(start+perPage, len(report.Entries))

	var sb strings.Builder
	for i, entry := range report.Entries[start:end] {
		fmt.Fprintf(&sb, "`%d.` **%s** ×%d @ %s → **%s** pts • <t:%d:d>\n",
			start+i+1,
			entry.MaterialDisplayName,
			entry.Amount,
			economy.UnitValue(entry.UnitValue),
			entry.Points,
			entry.CreatedAt.Unix())
	}
	return sb.String()
}
