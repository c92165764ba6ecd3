package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/guildforge/ledgerbot/ledgerbot/commands/assistant"
	"github.com/guildforge/ledgerbot/ledgerbot/commands/ledger"
	"github.com/guildforge/ledgerbot/ledgerbot/commands/system"
)

var Commands = []discord.ApplicationCommandCreate{}

func init() {
	Commands = append(Commands, ledger.Commands...)
	Commands = append(Commands, assistant.Commands...)
	Commands = append(Commands, system.Commands...)
}
