package general

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/guildforge/ledgerbot/ledgerbot/config"
	"github.com/guildforge/ledgerbot/ledgerbot/handlers"
)

var greetings = []string{
	"Hello there, %s! 👋",
	"Hi %s! How are you doing? 😊",
	"Greetings, %s! Nice to see you! 🎉",
	"Hey %s! Hope you're having a great day! ✨",
}

// GreetingEmbed picks one of the greetings for mention.
func GreetingEmbed(mention, requester string, pick func(n int) int) discord.Embed {
	return discord.NewEmbedBuilder().
		SetDescriptionf(greetings[pick(len(greetings))], mention).
		SetColor(config.SuccessColor).
		SetFooterText("Requested by " + requester).
		Build()
}

// LatencyStatus grades a gateway round trip.
func LatencyStatus(latency time.Duration) string {
	switch ms := latency.Milliseconds(); {
	case ms < 100:
		return "🟢 Excellent"
	case ms < 200:
		return "🟡 Good"
	}
	return "🔴 Poor"
}

// PingEmbed reports the gateway latency and, when measured, the REST round
// trip.
func PingEmbed(gateway, api time.Duration) discord.Embed {
	b := discord.NewEmbedBuilder().
		SetTitle("🏓 Pong!").
		SetColor(config.SuccessColor)
	if api > 0 {
		b.AddField("API Latency", fmt.Sprintf("%dms", api.Milliseconds()), true)
	}
	return b.
		AddField("WebSocket Latency", fmt.Sprintf("%dms", gateway.Milliseconds()), true).
		AddField("Status", LatencyStatus(gateway), true).
		Build()
}

// UserInfoEmbed describes a user. member is nil outside a guild.
func UserInfoEmbed(user discord.User, member *discord.Member) discord.Embed {
	name := user.EffectiveName()
	if member != nil && member.Nick != nil && *member.Nick != "" {
		name = *member.Nick
	}

	b := discord.NewEmbedBuilder().
		SetTitlef("👤 %s Information", name).
		SetColor(config.InfoColor).
		SetThumbnail(user.EffectiveAvatarURL()).
		AddField("👤 Username", user.Username, true).
		AddField("🆔 User ID", user.ID.String(), true).
		AddField("📅 Account Created", user.CreatedAt().Format("January 02, 2006"), true)

	if member != nil {
		b.AddField("📋 Roles", strconv.Itoa(len(member.RoleIDs)), true)
		if len(member.RoleIDs) > 0 {
			b.AddField("🎯 Role List", roleMentions(member.RoleIDs, 5), false)
		}
	}
	return b.Build()
}

func roleMentions(ids []snowflake.ID, max int) string {
	mentions := make([]string, 0, max+1)
	for i, id := range ids {
		if i == max {
			mentions = append(mentions, fmt.Sprintf("+%d more", len(ids)-max))
			break
		}
		mentions = append(mentions, discord.RoleMention(id))
	}
	return strings.Join(mentions, " ")
}

func ServerInfoEmbed(guild discord.Guild) discord.Embed {
	b := discord.NewEmbedBuilder().
		SetTitlef("📊 %s Server Information", guild.Name).
		SetColor(config.InfoColor).
		AddField("👑 Owner", discord.UserMention(guild.OwnerID), true).
		AddField("🆔 Server ID", guild.ID.String(), true).
		AddField("📅 Created", guild.CreatedAt().Format("January 02, 2006"), true).
		AddField("🚀 Boost Level", strconv.Itoa(int(guild.PremiumTier)), true)
	if icon := guild.IconURL(); icon != nil {
		b.SetThumbnail(*icon)
	}
	return b.Build()
}

// ParseSides validates the optional dice argument.
func ParseSides(args []string) (int, error) {
	if len(args) == 0 {
		return config.DefaultDiceSides, nil
	}
	sides, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, &handlers.BadArgumentError{Reason: fmt.Sprintf("❌ `%s` is not a number!", args[0])}
	}
	if sides < 1 {
		return 0, &handlers.BadArgumentError{Reason: "❌ Dice must have at least 1 side!"}
	}
	if sides > config.MaxDiceSides {
		return 0, &handlers.BadArgumentError{Reason: fmt.Sprintf("❌ Dice can't have more than %d sides!", config.MaxDiceSides)}
	}
	return sides, nil
}

func RollEmbed(result, sides int, roller string) discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle("🎲 Dice Roll").
		SetDescriptionf("You rolled a **%d** on a %d-sided dice!", result, sides).
		SetColor(0x9932CC).
		SetFooterText("Rolled by " + roller).
		Build()
}

func CoinFlipEmbed(heads bool, flipper string) discord.Embed {
	result, emoji := "Tails", "🥈"
	if heads {
		result, emoji = "Heads", "🪙"
	}
	return discord.NewEmbedBuilder().
		SetTitle("🪙 Coin Flip").
		SetDescriptionf("%s It's **%s**!", emoji, result).
		SetColor(config.LeaderboardColor).
		SetFooterText("Flipped by " + flipper).
		Build()
}

func RandomInt(n int) int {
	return rand.IntN(n)
}
