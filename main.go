package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/guildforge/ledgerbot/internal/domain/contributions"
	"github.com/guildforge/ledgerbot/ledgerbot"
	"github.com/guildforge/ledgerbot/ledgerbot/ai"
	"github.com/guildforge/ledgerbot/ledgerbot/commands"
	"github.com/guildforge/ledgerbot/ledgerbot/commands/assistant"
	"github.com/guildforge/ledgerbot/ledgerbot/commands/general"
	"github.com/guildforge/ledgerbot/ledgerbot/commands/ledger"
	"github.com/guildforge/ledgerbot/ledgerbot/commands/system"
	"github.com/guildforge/ledgerbot/ledgerbot/database"
	"github.com/guildforge/ledgerbot/ledgerbot/database/repositories"
	"github.com/guildforge/ledgerbot/ledgerbot/handlers"
	"github.com/guildforge/ledgerbot/ledgerbot/logger"
	"github.com/guildforge/ledgerbot/ledgerbot/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := ledgerbot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.SetDefault(logger.New(cfg.Log, os.Stdout))

	slog.Info("Starting LedgerBot",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit))

	dbStartTime := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("type", "db"),
			slog.Any("error", err),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	if err = db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("type", "db"),
			slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Database ready",
		slog.String("type", "db"),
		slog.Duration("took", time.Since(dbStartTime)))

	b := ledgerbot.New(*cfg, version, commit)
	b.DB = db

	ledgerRepo := repositories.NewLedgerRepository(db.BunDB(), database.DefaultMaterials())
	b.Ledger = contributions.NewService(ledgerRepo)
	b.AI = newAIService(cfg, repositories.NewUsageRepository(db.BunDB()))
	b.ImageService = services.NewLeaderboardImageService()

	spaces, err := services.NewSpacesService(ctx, cfg.Spaces)
	switch {
	case err == nil:
		b.Spaces = spaces
	case errors.Is(err, services.ErrSpacesDisabled):
		slog.Info("Spaces not configured, leaderboard images will be attached", slog.String("type", "sys"))
	default:
		slog.Warn("Spaces unavailable", slog.String("type", "sys"), slog.Any("error", err))
	}

	h := handler.New()

	// Ledger
	h.Command("/contribute", handlers.WrapWithLogging("contribute", ledger.ContributeHandler(b)))
	h.Autocomplete("/contribute", ledger.ContributeAutocomplete(b))
	h.Command("/contributions", handlers.WrapWithLogging("contributions", ledger.ContributionsHandler(b)))
	h.Command("/leaderboard", handlers.WrapWithTimeout("leaderboard", ledger.LeaderboardTimeout, ledger.LeaderboardHandler(b)))
	h.Command("/materials", handlers.WrapWithLogging("materials", ledger.MaterialsHandler(b)))

	// Assistant
	h.Command("/ask", handlers.WrapWithLogging("ask", assistant.AskHandler(b)))

	// System
	h.Command("/version", system.VersionHandler(b))
	h.Command("/hello", handlers.WrapWithLogging("hello", system.HelloHandler))
	h.Command("/ping", handlers.WrapWithLogging("ping", system.PingHandler(b)))
	h.Command("/userinfo", handlers.WrapWithLogging("userinfo", system.UserInfoHandler(b)))

	prefixes := handlers.NewPrefixRegistry(cfg.Bot.Prefix)
	general.Register(prefixes)

	if err = b.SetupBot(
		h,
		bot.NewListenerFunc(b.OnReady),
		bot.NewListenerFunc(b.OnGuildJoin),
		bot.NewListenerFunc(b.OnResumed),
		handlers.MessageHandler(prefixes),
	); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	gatewayCtx, gatewayCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer gatewayCancel()
	if err = b.Client.OpenGateway(gatewayCtx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "gateway"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	slog.Info("Bot is running. Press CTRL-C to exit.", slog.String("type", "sys"))
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...", slog.String("type", "sys"))
}

// newAIService returns nil when the AI subsystem cannot be used; the rest of
// the bot keeps working without it.
func newAIService(cfg *ledgerbot.Config, usage repositories.UsageRepository) *ai.Service {
	if !cfg.AI.Enabled() {
		slog.Warn("OPENAI_API_KEY not set, AI features disabled", slog.String("type", "ai"))
		return nil
	}

	client, err := ai.NewOpenAIClient(ai.ClientConfig{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Timeout: cfg.AI.RequestTimeout(),
	})
	if err != nil {
		slog.Error("Failed to create AI client", slog.String("type", "ai"), slog.Any("error", err))
		return nil
	}

	limiter := ai.NewLimiter(usage, cfg.AI.Limits)
	return ai.NewService(client, limiter, ai.ServiceConfig{
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
	})
}
