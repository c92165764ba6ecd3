package general

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/guildforge/ledgerbot/ledgerbot/config"
	"github.com/guildforge/ledgerbot/ledgerbot/handlers"
	"github.com/guildforge/ledgerbot/ledgerbot/utils"
)

var errGuildNotCached = errors.New("guild not in cache")

// Register adds the message commands to r.
func Register(r *handlers.PrefixRegistry) {
	r.Register(
		handlers.PrefixCommand{Name: "hello", Help: "Get a friendly greeting from the bot", Run: hello},
		handlers.PrefixCommand{Name: "ping", Help: "Check the bot's latency", Run: ping},
		handlers.PrefixCommand{Name: "serverinfo", Help: "Get information about the current server", Run: serverInfo},
		handlers.PrefixCommand{Name: "userinfo", Usage: "[@member]", Help: "Get information about a user", Run: userInfo},
		handlers.PrefixCommand{Name: "roll", Usage: "[sides]", Help: "Roll a dice (1-6) or specify sides", Run: roll},
		handlers.PrefixCommand{Name: "coinflip", Help: "Flip a coin", Run: coinFlip},
		handlers.PrefixCommand{Name: "help", Help: "Show this message", Run: help(r)},
	)
}

func hello(ctx *handlers.PrefixContext) error {
	_, err := ctx.Reply(GreetingEmbed(discord.UserMention(ctx.Author().ID), ctx.DisplayName(), RandomInt))
	return err
}

func ping(ctx *handlers.PrefixContext) error {
	start := time.Now()
	msg, err := ctx.Client.Rest().CreateMessage(ctx.Message.ChannelID, discord.MessageCreate{Content: "🏓 Pinging..."})
	if err != nil {
		return err
	}
	api := time.Since(start)

	_, err = ctx.Client.Rest().UpdateMessage(msg.ChannelID, msg.ID, discord.MessageUpdate{
		Content: utils.Ptr(""),
		Embeds:  &[]discord.Embed{PingEmbed(GatewayLatency(ctx.Client), api)},
	})
	return err
}

// GatewayLatency is zero until the first heartbeat is acknowledged.
func GatewayLatency(client bot.Client) time.Duration {
	if gw := client.Gateway(); gw != nil {
		return gw.Latency()
	}
	return 0
}

func serverInfo(ctx *handlers.PrefixContext) error {
	if ctx.GuildID == nil {
		return handlers.ErrGuildOnly
	}
	guild, ok := ctx.Client.Caches().Guild(*ctx.GuildID)
	if !ok {
		return errGuildNotCached
	}
	_, err := ctx.Reply(ServerInfoEmbed(guild))
	return err
}

func userInfo(ctx *handlers.PrefixContext) error {
	user := ctx.Author()
	if len(ctx.Args) > 0 {
		if len(ctx.Message.Mentions) == 0 {
			return &handlers.BadArgumentError{Reason: fmt.Sprintf("❌ Member `%s` not found.", ctx.Args[0])}
		}
		user = ctx.Message.Mentions[0]
	}

	var member *discord.Member
	if ctx.GuildID != nil {
		if m, ok := ctx.Client.Caches().Member(*ctx.GuildID, user.ID); ok {
			member = &m
		}
	}
	_, err := ctx.Reply(UserInfoEmbed(user, member))
	return err
}

func roll(ctx *handlers.PrefixContext) error {
	sides, err := ParseSides(ctx.Args)
	if err != nil {
		return err
	}
	_, err = ctx.Reply(RollEmbed(RandomInt(sides)+1, sides, ctx.DisplayName()))
	return err
}

func coinFlip(ctx *handlers.PrefixContext) error {
	_, err := ctx.Reply(CoinFlipEmbed(RandomInt(2) == 0, ctx.DisplayName()))
	return err
}

func help(r *handlers.PrefixRegistry) func(*handlers.PrefixContext) error {
	return func(ctx *handlers.PrefixContext) error {
		_, err := ctx.Reply(HelpEmbed(r))
		return err
	}
}

func HelpEmbed(r *handlers.PrefixRegistry) discord.Embed {
	var prefixed strings.Builder
	for _, cmd := range r.Commands() {
		fmt.Fprintf(&prefixed, "`%s` • %s\n", cmd.Signature(r.Prefix()), cmd.Help)
	}

	return discord.NewEmbedBuilder().
		SetTitle("📖 Commands").
		SetColor(config.InfoColor).
		AddField("Prefix Commands", prefixed.String(), false).
		AddField("Slash Commands", strings.Join([]string{
			"`/contribute` • Log materials you contributed",
			"`/contributions` • List a member's contributions",
			"`/leaderboard` • Top contributors in this server",
			"`/materials` • Materials and their value",
			"`/ask` • Ask the AI assistant",
		}, "\n"), false).
		Build()
}
