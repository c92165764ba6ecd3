package ledger

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guildforge/ledgerbot/internal/domain/contributions"
	"github.com/guildforge/ledgerbot/ledgerbot"
	"github.com/guildforge/ledgerbot/ledgerbot/config"
	"github.com/guildforge/ledgerbot/ledgerbot/services"
	"github.com/guildforge/ledgerbot/ledgerbot/utils"
)

const leaderboardImageName = "leaderboard.png"

// LeaderboardTimeout bounds the whole command including rendering and upload.
const LeaderboardTimeout = config.LeaderboardQueryTimeout + config.ImageRenderTimeout + config.UploadTimeout

var Leaderboard = discord.SlashCommandCreate{
	Name:        "leaderboard",
	Description: "🏆 Show the top contributors in this server",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "limit",
			Description: "How many contributors to show (1-25)",
			Required:    false,
			MinValue:    utils.Ptr(1),
			MaxValue:    utils.Ptr(config.MaxLeaderboardSize),
		},
		discord.ApplicationCommandOptionBool{
			Name:        "image",
			Description: "Render the leaderboard as an image",
			Required:    false,
		},
	},
}

func LeaderboardHandler(b *ledgerbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guild := guildRef(b, e)
		if guild == nil {
			return utils.EH.CreateUserError(e, "This command can only be used in a server.")
		}

		data := e.SlashCommandInteractionData()
		limit, _ := data.OptInt("limit")
		withImage, _ := data.OptBool("image")

		if !withImage {
			ctx, cancel := context.WithTimeout(context.Background(), config.LeaderboardQueryTimeout)
			defer cancel()

			board, err := b.Ledger.Leaderboard(ctx, guild.ID, limit)
			if err != nil {
				return utils.EH.RespondError(e, "load the leaderboard", err)
			}
			return e.CreateMessage(discord.MessageCreate{
				Embeds: []discord.Embed{leaderboardEmbed(guild.Name, board)},
			})
		}

		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), LeaderboardTimeout)
		defer cancel()

		board, err := b.Ledger.Leaderboard(ctx, guild.ID, limit)
		if err != nil {
			errorType, msg := utils.Describe("load the leaderboard", err)
			return utils.EH.UpdateClassifiedError(e, errorType, msg)
		}

		embed := leaderboardEmbed(guild.Name, board)
		update := discord.MessageUpdate{Embeds: &[]discord.Embed{embed}}
		if len(board.Contributors) > 0 && b.ImageService != nil {
			attachImage(ctx, b, guild, board, &embed, &update)
		}

		_, err = e.UpdateInteractionResponse(update)
		return err
	}
}

// attachImage renders the board and either links the published copy or
// attaches the PNG. Rendering failures fall back to the plain embed.
func attachImage(ctx context.Context, b *ledgerbot.Bot, guild *contributions.GuildRef, board *contributions.Board, embed *discord.Embed, update *discord.MessageUpdate) {
	png, err := b.ImageService.Render(ctx, services.NewLeaderboardData(guildTitle(guild.Name), board, time.Now()))
	if err != nil {
		slog.Warn("Leaderboard image unavailable", slog.Any("error", err))
		return
	}

	if b.Spaces != nil {
		url, err := b.Spaces.UploadLeaderboardImage(ctx, guild.ID, png)
		if err == nil {
			embed.Image = &discord.EmbedResource{URL: url}
			update.Embeds = &[]discord.Embed{*embed}
			return
		}
		slog.Warn("Falling back to attachment", slog.Any("error", err))
	}

	embed.Image = &discord.EmbedResource{URL: "attachment://" + leaderboardImageName}
	update.Embeds = &[]discord.Embed{*embed}
	update.Files = []*discord.File{{
		Name:        leaderboardImageName,
		Description: "Contribution leaderboard",
		Reader:      bytes.NewReader(png),
	}}
}

func guildTitle(name string) string {
	if name == "" {
		return "Server"
	}
	return name
}

func leaderboardEmbed(guildName string, board *contributions.Board) discord.Embed {
	builder := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("🏆 %s Leaderboard", guildTitle(guildName))).
		SetColor(config.LeaderboardColor)

	if len(board.Contributors) == 0 {
		return builder.
			SetDescription("No contributions recorded in this server yet. Use /contribute to get started!").
			Build()
	}

	builder.SetDescription(contributorLines(board))
	if materials := materialLines(board, config.LeaderboardTopMaterials); materials != "" {
		builder.AddField("Top Materials", materials, false)
	}
	return builder.Build()
}

func contributorLines(board *contributions.Board) string {
	var sb strings.Builder
	for i, c := range board.Contributors {
		fmt.Fprintf(&sb, "%s **%s** • %s pts\n", utils.RankPrefix(i+1), c.DisplayName, c.Points)
	}
	return sb.String()
}

func materialLines(board *contributions.Board, max int) string {
	var sb strings.Builder
	for i, m := range board.Materials {
		if i == max {
			break
		}
		fmt.Fprintf(&sb, "**%s**: %d units (%s pts)\n", m.DisplayName, m.TotalAmount, m.Points)
	}
	return sb.String()
}
