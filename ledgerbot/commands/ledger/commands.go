package ledger

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guildforge/ledgerbot/internal/domain/contributions"
	"github.com/guildforge/ledgerbot/ledgerbot"
)

var Commands = []discord.ApplicationCommandCreate{
	Contribute,
	Contributions,
	Leaderboard,
	Materials,
}

func guildRef(b *ledgerbot.Bot, e *handler.CommandEvent) *contributions.GuildRef {
	guildID := e.GuildID()
	if guildID == nil {
		return nil
	}
	ref := &contributions.GuildRef{ID: *guildID}
	if guild, ok := b.Client.Caches().Guild(*guildID); ok {
		ref.Name = guild.Name
	}
	return ref
}

func memberRef(e *handler.CommandEvent) contributions.MemberRef {
	user := e.User()
	ref := contributions.MemberRef{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.EffectiveName(),
	}
	if m := e.Member(); m != nil && m.Nick != nil && *m.Nick != "" {
		ref.DisplayName = *m.Nick
	}
	return ref
}
