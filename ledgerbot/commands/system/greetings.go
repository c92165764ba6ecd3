package system

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guildforge/ledgerbot/ledgerbot"
	"github.com/guildforge/ledgerbot/ledgerbot/commands/general"
)

var Hello = discord.SlashCommandCreate{
	Name:        "hello",
	Description: "Get a friendly greeting from the bot",
}

var Ping = discord.SlashCommandCreate{
	Name:        "ping",
	Description: "Check the bot's latency",
}

var UserInfo = discord.SlashCommandCreate{
	Name:        "userinfo",
	Description: "Get information about a user",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "member",
			Description: "The member to get information about (optional)",
			Required:    false,
		},
	},
}

func HelloHandler(e *handler.CommandEvent) error {
	user := e.User()
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{general.GreetingEmbed(discord.UserMention(user.ID), user.EffectiveName(), general.RandomInt)},
	})
}

func PingHandler(b *ledgerbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{general.PingEmbed(general.GatewayLatency(b.Client), 0)},
		})
	}
}

func UserInfoHandler(b *ledgerbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		user := e.User()
		if u, ok := e.SlashCommandInteractionData().OptUser("member"); ok {
			user = u
		}

		var member *discord.Member
		if guildID := e.GuildID(); guildID != nil {
			if m, ok := b.Client.Caches().Member(*guildID, user.ID); ok {
				member = &m
			}
		}
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{general.UserInfoEmbed(user, member)},
		})
	}
}
