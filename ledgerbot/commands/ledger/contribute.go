package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guildforge/ledgerbot/internal/domain/contributions"
	"github.com/guildforge/ledgerbot/ledgerbot"
	"github.com/guildforge/ledgerbot/ledgerbot/config"
	"github.com/guildforge/ledgerbot/ledgerbot/economy"
	"github.com/guildforge/ledgerbot/ledgerbot/utils"
)

var Contribute = discord.SlashCommandCreate{
	Name:        "contribute",
	Description: "📦 Log materials you contributed to the guild",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         "material",
			Description:  "The material you contributed",
			Required:     true,
			Autocomplete: true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "amount",
			Description: "How many units",
			Required:    true,
			MinValue:    utils.Ptr(1),
			MaxValue:    utils.Ptr(economy.MaxContributionAmount),
		},
	},
}

func ContributeHandler(b *ledgerbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		receipt, err := b.Ledger.Contribute(ctx, contributions.Submission{
			Guild:    guildRef(b, e),
			Member:   memberRef(e),
			Material: data.String("material"),
			Amount:   int64(data.Int("amount")),
		})
		if err != nil {
			return utils.EH.RespondError(e, "record your contribution", err)
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{receiptEmbed(receipt, memberRef(e).DisplayName)},
		})
	}
}

func receiptEmbed(r *contributions.Receipt, who string) discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle("📦 Contribution Recorded").
		SetDescriptionf("**%s** contributed **%d× %s**", who, r.Amount, r.Material.DisplayName).
		SetColor(config.SuccessColor).
		AddField("Unit Value", economy.UnitValue(r.Material.Value)+" pts", true).
		AddField("Points Earned", "+"+r.Earned.String(), true).
		AddField("Your Total", r.Total.String()+" pts", true).
		Build()
}

func ContributeAutocomplete(b *ledgerbot.Bot) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.LeaderboardQueryTimeout)
		defer cancel()

		materials, err := b.Ledger.SuggestMaterials(ctx, e.Data.String("material"), config.MaxAutocompleteChoices)
		if err != nil {
			slog.Error("Failed to suggest materials",
				slog.String("type", "db"),
				slog.Any("error", err))
			return e.AutocompleteResult([]discord.AutocompleteChoice{})
		}

		choices := make([]discord.AutocompleteChoice, 0, len(materials))
		for _, m := range materials {
			choices = append(choices, discord.AutocompleteChoiceString{
				Name:  fmt.Sprintf("%s (%s pts)", m.DisplayName, economy.UnitValue(m.Value)),
				Value: m.Name,
			})
		}
		return e.AutocompleteResult(choices)
	}
}
