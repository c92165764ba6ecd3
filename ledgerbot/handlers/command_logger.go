package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guildforge/ledgerbot/ledgerbot/config"
	"github.com/guildforge/ledgerbot/ledgerbot/utils"
)

var ErrCommandTimeout = errors.New("command timed out")

const unexpectedErrorMessage = "An unexpected error occurred while processing your command. Please try again later."

// WrapWithLogging wraps a command handler with logging, panic recovery and
// the default execution timeout.
func WrapWithLogging(name string, h handler.CommandHandler) handler.CommandHandler {
	return WrapWithTimeout(name, config.CommandExecutionTimeout, h)
}

func WrapWithTimeout(name string, timeout time.Duration, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		base := []any{
			slog.String("type", "cmd"),
			slog.String("name", name),
			slog.String("user_id", e.User().ID.String()),
			slog.String("user_name", e.User().Username),
		}

		slog.Debug("Command started", append(base,
			slog.String("guild_id", guildIDString(e)),
			slog.String("channel_id", e.ChannelID().String()),
		)...)

		err := runWithTimeout(name, timeout, func() error { return h(e) })
		attrs := append(base, slog.Duration("took", time.Since(start)))
		switch {
		case errors.Is(err, ErrCommandTimeout):
			slog.Error("Command timed out", append(attrs,
				slog.String("status", "timeout"),
				slog.Duration("timeout", timeout),
			)...)
			notifyFailure(e)
			return err
		case err != nil:
			slog.Error("Command failed", append(attrs,
				slog.Any("error", err),
				slog.String("status", "failed"),
			)...)
			notifyFailure(e)
		case time.Since(start) > config.SlowCommandThreshold:
			slog.Warn("Command executed slowly", append(attrs, slog.String("status", "slow"))...)
		default:
			slog.Info("Command completed", append(attrs, slog.String("status", "success"))...)
		}
		return nil
	}
}

// runWithTimeout runs fn on its own goroutine and stops waiting after
// timeout. fn keeps running after a timeout; its result is dropped.
func runWithTimeout(name string, timeout time.Duration, fn func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- RunRecovered(name, fn)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("%w: %s after %s", ErrCommandTimeout, name, timeout)
	}
}

// GoRecovered runs fn on a new goroutine. A returned error or a panic is
// passed to fail instead of crashing the process.
func GoRecovered(name string, fn func() error, fail func(error)) {
	go func() {
		if err := RunRecovered(name, fn); err != nil && fail != nil {
			fail(err)
		}
	}()
}

// RunRecovered turns a panic in fn into an error.
func RunRecovered(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Recovered from panic",
				slog.String("type", "cmd"),
				slog.String("name", name),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			err = fmt.Errorf("panic in %s: %v", name, r)
		}
	}()
	return fn()
}

// notifyFailure tells the user something went wrong. The interaction may
// already be acknowledged, in which case a follow-up is sent instead.
func notifyFailure(e *handler.CommandEvent) {
	msg := discord.MessageCreate{
		Embeds: []discord.Embed{utils.ClassifiedEmbed(utils.SystemError, unexpectedErrorMessage)},
		Flags:  discord.MessageFlagEphemeral,
	}
	if err := e.CreateMessage(msg); err == nil {
		return
	}
	if _, err := e.CreateFollowupMessage(msg); err != nil {
		slog.Warn("Failed to deliver failure notice",
			slog.String("type", "cmd"),
			slog.Any("error", err))
	}
}

func guildIDString(e *handler.CommandEvent) string {
	if id := e.GuildID(); id != nil {
		return id.String()
	}
	return "dm"
}
