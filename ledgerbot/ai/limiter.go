package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/guildforge/ledgerbot/ledgerbot/database/models"
)

const dateLayout = "2006-01-02"

// trimReserve is the room left for the trim marker.
const trimReserve = 50

// UsageStore is the subset of the usage repository the limiter needs.
type UsageStore interface {
	CountByUser(ctx context.Context, userID snowflake.ID, date string) (int, error)
	CountByGuild(ctx context.Context, guildID snowflake.ID, date string) (int, error)
	Record(ctx context.Context, usage *models.AIUsage) error
}

type Limits struct {
	UserDaily       int `toml:"user_daily_limit"`
	GuildDaily      int `toml:"guild_daily_limit"`
	MaxInputChars   int `toml:"max_input_chars"`
	MaxOutputTokens int `toml:"max_output_tokens"`
}

func (l Limits) Validate() error {
	if l.UserDaily < 0 || l.GuildDaily < 0 {
		return fmt.Errorf("daily limits must not be negative")
	}
	if l.MaxInputChars <= trimReserve {
		return fmt.Errorf("max_input_chars must be greater than %d", trimReserve)
	}
	if l.MaxOutputTokens <= 0 {
		return fmt.Errorf("max_output_tokens must be positive")
	}
	return nil
}

// Decision is the outcome of a quota check. Message is user-facing: the
// denial reason, or the usage snapshot when allowed.
type Decision struct {
	Allowed    bool
	Message    string
	Date       string
	UserCount  int
	GuildCount int
}

type Limiter struct {
	store  UsageStore
	limits Limits
	now    func() time.Time
}

type LimiterOption func(*Limiter)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) LimiterOption {
	return func(l *Limiter) { l.now = now }
}

func NewLimiter(store UsageStore, limits Limits, opts ...LimiterOption) *Limiter {
	l := &Limiter{store: store, limits: limits, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Limiter) Limits() Limits {
	return l.limits
}

// Today returns the quota date key in local time.
func (l *Limiter) Today() string {
	return l.now().Format(dateLayout)
}

// CheckLimits counts today's calls for the user and then for the guild. The
// user quota is checked first so its message wins when both are exhausted.
func (l *Limiter) CheckLimits(ctx context.Context, guildID, userID snowflake.ID) (Decision, error) {
	today := l.Today()

	userCount, err := l.store.CountByUser(ctx, userID, today)
	if err != nil {
		return Decision{}, fmt.Errorf("count user usage: %w", err)
	}
	if userCount >= l.limits.UserDaily {
		return Decision{
			Message:   fmt.Sprintf("You've reached your daily limit of %d AI requests. Try again tomorrow!", l.limits.UserDaily),
			Date:      today,
			UserCount: userCount,
		}, nil
	}

	guildCount, err := l.store.CountByGuild(ctx, guildID, today)
	if err != nil {
		return Decision{}, fmt.Errorf("count guild usage: %w", err)
	}
	if guildCount >= l.limits.GuildDaily {
		return Decision{
			Message:    fmt.Sprintf("This server has reached its daily limit of %d AI requests. Try again tomorrow!", l.limits.GuildDaily),
			Date:       today,
			UserCount:  userCount,
			GuildCount: guildCount,
		}, nil
	}

	return Decision{
		Allowed: true,
		Message: fmt.Sprintf("Usage: %d/%d personal, %d/%d server",
			userCount, l.limits.UserDaily, guildCount, l.limits.GuildDaily),
		Date:       today,
		UserCount:  userCount,
		GuildCount: guildCount,
	}, nil
}

// TrimPrompt cuts text longer than the input cap to its first max-50
// characters and appends a marker. Length is counted in runes.
func (l *Limiter) TrimPrompt(text string) string {
	return trimPrompt(text, l.limits.MaxInputChars)
}

func trimPrompt(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return fmt.Sprintf("%s... [Message trimmed to %d characters]", string(runes[:max-trimReserve]), max)
}

// RecordUsage appends an audit row. Failures are logged and swallowed; a
// lost record only under-counts the quota.
func (l *Limiter) RecordUsage(ctx context.Context, guildID, userID snowflake.ID, promptChars, outputTokens int, model, date string) {
	if date == "" {
		date = l.Today()
	}
	err := l.store.Record(ctx, &models.AIUsage{
		GuildID:      int64(guildID),
		UserID:       int64(userID),
		PromptChars:  promptChars,
		OutputTokens: outputTokens,
		ModelUsed:    model,
		CreatedAt:    l.now(),
		DateOnly:     date,
	})
	if err != nil {
		slog.Error("Failed to record AI usage",
			slog.String("type", "ai"),
			slog.Int64("guild_id", int64(guildID)),
			slog.Int64("user_id", int64(userID)),
			slog.Any("error", err))
	}
}
