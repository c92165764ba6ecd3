package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"github.com/guildforge/ledgerbot/ledgerbot/config"
	"github.com/guildforge/ledgerbot/ledgerbot/logger"
)

// PrefixContext is what a prefix command sees of the triggering message.
type PrefixContext struct {
	Client  bot.Client
	Message discord.Message
	GuildID *snowflake.ID
	Prefix  string
	Args    []string
}

func (c *PrefixContext) Author() discord.User {
	return c.Message.Author
}

// DisplayName prefers the guild nickname when the message carries one.
func (c *PrefixContext) DisplayName() string {
	if m := c.Message.Member; m != nil && m.Nick != nil && *m.Nick != "" {
		return *m.Nick
	}
	return c.Message.Author.EffectiveName()
}

func (c *PrefixContext) Reply(embeds ...discord.Embed) (*discord.Message, error) {
	return c.Client.Rest().CreateMessage(c.Message.ChannelID, discord.MessageCreate{
		Embeds:           embeds,
		MessageReference: &discord.MessageReference{MessageID: &c.Message.ID},
		AllowedMentions:  &discord.AllowedMentions{RepliedUser: false},
	})
}

type PrefixCommand struct {
	Name    string
	Usage   string
	Help    string
	MinArgs int
	Run     func(*PrefixContext) error
}

// Signature is the usage line shown when arguments are missing.
func (c PrefixCommand) Signature(prefix string) string {
	return strings.TrimSpace(prefix + c.Name + " " + c.Usage)
}

var ErrGuildOnly = errors.New("this command can only be used in a server")

type CommandNotFoundError struct {
	Name string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}

type MissingArgumentsError struct {
	Command PrefixCommand
}

func (e *MissingArgumentsError) Error() string {
	return fmt.Sprintf("missing arguments for %s", e.Command.Name)
}

// BadArgumentError carries a message safe to show the user.
type BadArgumentError struct {
	Reason string
}

func (e *BadArgumentError) Error() string {
	return e.Reason
}

type PrefixRegistry struct {
	prefix   string
	commands map[string]PrefixCommand
}

func NewPrefixRegistry(prefix string) *PrefixRegistry {
	if prefix == "" {
		prefix = config.DefaultPrefix
	}
	return &PrefixRegistry{prefix: prefix, commands: make(map[string]PrefixCommand)}
}

func (r *PrefixRegistry) Prefix() string {
	return r.prefix
}

func (r *PrefixRegistry) Register(cmds ...PrefixCommand) {
	for _, cmd := range cmds {
		r.commands[strings.ToLower(cmd.Name)] = cmd
	}
}

func (r *PrefixRegistry) Lookup(name string) (PrefixCommand, bool) {
	cmd, ok := r.commands[strings.ToLower(name)]
	return cmd, ok
}

// Commands returns every registered command sorted by name.
func (r *PrefixRegistry) Commands() []PrefixCommand {
	cmds := make([]PrefixCommand, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// Parse splits a message into a command name and its arguments. ok is false
// when the message is not addressed to the bot.
func (r *PrefixRegistry) Parse(content string) (name string, args []string, ok bool) {
	if !strings.HasPrefix(content, r.prefix) {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(content, r.prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// Resolve finds the command for name and checks its arity.
func (r *PrefixRegistry) Resolve(name string, args []string) (PrefixCommand, error) {
	cmd, ok := r.Lookup(name)
	if !ok {
		return PrefixCommand{}, &CommandNotFoundError{Name: name}
	}
	if len(args) < cmd.MinArgs {
		return cmd, &MissingArgumentsError{Command: cmd}
	}
	return cmd, nil
}

// Notice maps a prefix command failure to the embed shown in the channel and
// how long it stays there.
func (r *PrefixRegistry) Notice(err error) (discord.Embed, time.Duration) {
	var (
		notFound *CommandNotFoundError
		missing  *MissingArgumentsError
		bad      *BadArgumentError
	)
	embed := func(title, desc string) discord.Embed {
		return discord.Embed{Title: title, Description: desc, Color: config.ErrorColor}
	}
	switch {
	case errors.As(err, &notFound):
		return embed("Command Not Found ❌",
			fmt.Sprintf("The command `%s` doesn't exist. Type `%shelp` to see available commands.", notFound.Name, r.prefix)), config.NoticeDeleteDelay
	case errors.As(err, &missing):
		return embed("Missing Arguments ❌",
			fmt.Sprintf("You're missing required arguments for this command.\nUsage: `%s`", missing.Command.Signature(r.prefix))), config.UsageDeleteDelay
	case errors.As(err, &bad):
		return embed("Invalid Argument ❌", bad.Reason), config.NoticeDeleteDelay
	case errors.Is(err, ErrGuildOnly):
		return embed("Server Only ❌", "This command can only be used in a server!"), config.NoticeDeleteDelay
	default:
		return embed("An Error Occurred ❌",
			"An unexpected error occurred while processing your command. Please try again later."), config.NoticeDeleteDelay
	}
}

// MessageHandler dispatches prefixed messages to the registry.
func MessageHandler(r *PrefixRegistry) bot.EventListener {
	return bot.NewListenerFunc(func(e *events.MessageCreate) {
		if e.Message.Author.Bot || e.Message.Author.System {
			return
		}
		name, args, ok := r.Parse(e.Message.Content)
		if !ok {
			return
		}

		ctx := &PrefixContext{
			Client:  e.Client(),
			Message: e.Message,
			GuildID: e.GuildID,
			Prefix:  r.prefix,
			Args:    args,
		}

		go r.dispatch(ctx, name)
	})
}

func (r *PrefixRegistry) dispatch(ctx *PrefixContext, name string) {
	start := time.Now()
	cmd, err := r.Resolve(name, ctx.Args)
	if err == nil {
		err = RunRecovered(name, func() error { return cmd.Run(ctx) })
	}

	var notFound *CommandNotFoundError
	if !errors.As(err, &notFound) {
		logger.LogCommand(r.prefix+name, time.Since(start), err,
			slog.String("user_id", ctx.Author().ID.String()))
	}
	if err != nil {
		embed, delay := r.Notice(err)
		r.sendNotice(ctx, embed, delay)
	}
}

func (r *PrefixRegistry) sendNotice(ctx *PrefixContext, embed discord.Embed, delay time.Duration) {
	msg, err := ctx.Client.Rest().CreateMessage(ctx.Message.ChannelID, discord.MessageCreate{Embeds: []discord.Embed{embed}})
	if err != nil {
		slog.Warn("Failed to send command notice",
			slog.String("type", "cmd"),
			slog.Any("error", err))
		return
	}
	time.AfterFunc(delay, func() {
		if err := ctx.Client.Rest().DeleteMessage(msg.ChannelID, msg.ID); err != nil {
			slog.Debug("Failed to delete command notice", slog.Any("error", err))
		}
	})
}
