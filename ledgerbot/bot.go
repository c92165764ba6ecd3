package ledgerbot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/guildforge/ledgerbot/internal/domain/contributions"
	"github.com/guildforge/ledgerbot/ledgerbot/ai"
	"github.com/guildforge/ledgerbot/ledgerbot/config"
	"github.com/guildforge/ledgerbot/ledgerbot/database"
	"github.com/guildforge/ledgerbot/ledgerbot/services"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
		StartedAt: time.Now(),
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string
	StartedAt time.Time
	DB        *database.DB
	Ledger    contributions.Service
	// AI is nil when no credential is configured.
	AI           *ai.Service
	Spaces       *services.SpacesService
	ImageService *services.LeaderboardImageService
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(
			gateway.IntentGuilds,
			gateway.IntentGuildMembers,
			gateway.IntentGuildMessages,
			gateway.IntentMessageContent,
		)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds, cache.FlagChannels, cache.FlagMembers, cache.FlagRoles)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

// Prefix is the configured prefix for message commands.
func (b *Bot) Prefix() string {
	return b.Cfg.Bot.Prefix
}

func (b *Bot) OnReady(e *events.Ready) {
	slog.Info("LedgerBot is now ready",
		slog.String("type", "sys"),
		slog.String("user", e.User.Username),
		slog.Int("guilds", len(e.Guilds)),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithPlayingActivity(fmt.Sprintf("Type %shelp for commands", b.Prefix())),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}

func (b *Bot) OnGuildJoin(e *events.GuildJoin) {
	slog.Info("Joined guild",
		slog.String("type", "sys"),
		slog.String("guild", e.Guild.Name),
		slog.String("guild_id", e.Guild.ID.String()))

	if e.Guild.SystemChannelID == nil {
		return
	}
	if _, err := b.Client.Rest().CreateMessage(*e.Guild.SystemChannelID, discord.MessageCreate{
		Embeds: []discord.Embed{WelcomeEmbed(e.Guild.Name, b.Prefix())},
	}); err != nil {
		slog.Warn("Failed to send welcome message",
			slog.String("guild_id", e.Guild.ID.String()),
			slog.Any("error", err))
	}
}

func (b *Bot) OnResumed(_ *events.Resumed) {
	slog.Info("Resumed gateway session", slog.String("type", "sys"))
}

func WelcomeEmbed(guildName, prefix string) discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle("Hello! 👋").
		SetDescriptionf("Thanks for adding me to **%s**!\n\nType `%shelp` to see available commands or use `/` for slash commands.", guildName, prefix).
		SetColor(config.SuccessColor).
		AddField("Quick Start", fmt.Sprintf(
			"• Use `/contribute` to log materials for the guild\n• Use `/leaderboard` to see the top contributors\n• Use `%sping` to test if I'm working", prefix), false).
		Build()
}
