package ai_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/disgoorg/snowflake/v2"
	"github.com/guildforge/ledgerbot/ledgerbot/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	guildA = 100
	guildB = 200
	userX  = 1
	userY  = 2
	today  = "2024-05-01"
)

var fixedNow = func() time.Time { return time.Date(2024, 5, 1, 23, 59, 0, 0, time.Local) }

func testLimits() ai.Limits {
	return ai.Limits{UserDaily: 2, GuildDaily: 3, MaxInputChars: 100, MaxOutputTokens: 600}
}

func TestCheckLimits(t *testing.T) {
	tests := []struct {
		name    string
		seed    func(s *memoryStore)
		guild   snowflake.ID
		allowed bool
		message string
	}{
		{
			name:    "fresh user and guild",
			seed:    func(s *memoryStore) {},
			guild:   guildA,
			allowed: true,
			message: "Usage: 0/2 personal, 0/3 server",
		},
		{
			name:    "one below the user limit",
			seed:    func(s *memoryStore) { s.add(guildA, userX, today, 1) },
			guild:   guildA,
			allowed: true,
			message: "Usage: 1/2 personal, 1/3 server",
		},
		{
			name:    "user at limit",
			seed:    func(s *memoryStore) { s.add(guildA, userX, today, 2) },
			guild:   guildA,
			message: "You've reached your daily limit of 2 AI requests. Try again tomorrow!",
		},
		{
			name:    "user limit spans guilds",
			seed:    func(s *memoryStore) { s.add(guildA, userX, today, 2) },
			guild:   guildB,
			message: "You've reached your daily limit of 2 AI requests. Try again tomorrow!",
		},
		{
			name:    "guild at limit",
			seed:    func(s *memoryStore) { s.add(guildA, userY, today, 3) },
			guild:   guildA,
			message: "This server has reached its daily limit of 3 AI requests. Try again tomorrow!",
		},
		{
			name: "user message wins when both are exhausted",
			seed: func(s *memoryStore) {
				s.add(guildA, userX, today, 2)
				s.add(guildA, userY, today, 1)
			},
			guild:   guildA,
			message: "You've reached your daily limit of 2 AI requests. Try again tomorrow!",
		},
		{
			name:    "yesterday does not count",
			seed:    func(s *memoryStore) { s.add(guildA, userX, "2024-04-30", 5) },
			guild:   guildA,
			allowed: true,
			message: "Usage: 0/2 personal, 0/3 server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memoryStore{}
			tt.seed(store)
			limiter := ai.NewLimiter(store, testLimits(), ai.WithClock(fixedNow))

			d, err := limiter.CheckLimits(context.Background(), tt.guild, userX)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, d.Allowed)
			assert.Equal(t, tt.message, d.Message)
			assert.Equal(t, today, d.Date)
		})
	}
}

func TestCheckLimitsStoreError(t *testing.T) {
	store := &memoryStore{countErr: errors.New("connection refused")}
	limiter := ai.NewLimiter(store, testLimits())

	_, err := limiter.CheckLimits(context.Background(), guildA, userX)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestTrimPrompt(t *testing.T) {
	limiter := ai.NewLimiter(&memoryStore{}, testLimits())
	marker := "... [Message trimmed to 100 characters]"

	exact := strings.Repeat("a", 100)
	assert.Equal(t, exact, limiter.TrimPrompt(exact))
	assert.Equal(t, "", limiter.TrimPrompt(""))

	over := strings.Repeat("b", 101)
	got := limiter.TrimPrompt(over)
	assert.Equal(t, strings.Repeat("b", 50)+marker, got)

	// Characters, not bytes, are counted.
	wide := strings.Repeat("é", 100)
	assert.Equal(t, wide, limiter.TrimPrompt(wide))

	wideOver := strings.Repeat("é", 150)
	got = limiter.TrimPrompt(wideOver)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 50)+marker, got)
}

func TestRecordUsage(t *testing.T) {
	store := &memoryStore{}
	limiter := ai.NewLimiter(store, testLimits(), ai.WithClock(fixedNow))

	limiter.RecordUsage(context.Background(), guildA, userX, 42, 120, "gpt-4o-mini", "")
	require.Len(t, store.rows, 1)
	assert.Equal(t, today, store.rows[0].DateOnly)
	assert.Equal(t, 42, store.rows[0].PromptChars)
	assert.Equal(t, 120, store.rows[0].OutputTokens)
	assert.Equal(t, "gpt-4o-mini", store.rows[0].ModelUsed)

	// A failing store is logged and ignored.
	store.recordErr = errors.New("disk full")
	assert.NotPanics(t, func() {
		limiter.RecordUsage(context.Background(), guildA, userX, 1, 1, "gpt-4o-mini", today)
	})
	assert.Len(t, store.rows, 1)
}

func TestLimitsValidate(t *testing.T) {
	assert.NoError(t, testLimits().Validate())

	bad := testLimits()
	bad.MaxInputChars = 50
	assert.Error(t, bad.Validate())

	bad = testLimits()
	bad.MaxOutputTokens = 0
	assert.Error(t, bad.Validate())
}
