package repositories

import (
	"context"
	"testing"

	"github.com/guildforge/ledgerbot/ledgerbot/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewUsageRepository(db)
	ctx := context.Background()

	record := func(guild, user int64, date string) {
		t.Helper()
		require.NoError(t, repo.Record(ctx, &models.AIUsage{
			GuildID:      guild,
			UserID:       user,
			PromptChars:  42,
			OutputTokens: 100,
			ModelUsed:    "gpt-4o-mini",
			DateOnly:     date,
		}))
	}

	record(int64(testGuild), int64(alice), "2024-05-01")
	record(int64(testGuild), int64(alice), "2024-05-01")
	record(int64(testGuild), int64(bob), "2024-05-01")
	record(int64(otherGuild), int64(alice), "2024-05-01")
	record(int64(testGuild), int64(alice), "2024-04-30")

	n, err := repo.CountByUser(ctx, alice, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "user counts span guilds")

	n, err = repo.CountByGuild(ctx, testGuild, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = repo.CountByUser(ctx, alice, "2024-05-02")
	require.NoError(t, err)
	assert.Zero(t, n)
}
