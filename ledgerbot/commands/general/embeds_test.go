package general

import (
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/guildforge/ledgerbot/ledgerbot/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatencyStatus(t *testing.T) {
	tests := []struct {
		latency time.Duration
		want    string
	}{
		{latency: 0, want: "🟢 Excellent"},
		{latency: 99 * time.Millisecond, want: "🟢 Excellent"},
		{latency: 100 * time.Millisecond, want: "🟡 Good"},
		{latency: 199 * time.Millisecond, want: "🟡 Good"},
		{latency: 200 * time.Millisecond, want: "🔴 Poor"},
	}
	for _, tt := range tests {
		t.Run(tt.latency.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, LatencyStatus(tt.latency))
		})
	}
}

func TestPingEmbed(t *testing.T) {
	embed := PingEmbed(42*time.Millisecond, 0)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "42ms", embed.Fields[0].Value)

	embed = PingEmbed(150*time.Millisecond, 80*time.Millisecond)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "API Latency", embed.Fields[0].Name)
	assert.Equal(t, "🟡 Good", embed.Fields[2].Value)
}

func TestParseSides(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr string
	}{
		{name: "default", want: 6},
		{name: "twenty", args: []string{"20"}, want: 20},
		{name: "upper bound", args: []string{"1000"}, want: 1000},
		{name: "zero", args: []string{"0"}, wantErr: "❌ Dice must have at least 1 side!"},
		{name: "too many", args: []string{"1001"}, wantErr: "❌ Dice can't have more than 1000 sides!"},
		{name: "not a number", args: []string{"d20"}, wantErr: "❌ `d20` is not a number!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSides(tt.args)
			if tt.wantErr != "" {
				var bad *handlers.BadArgumentError
				require.ErrorAs(t, err, &bad)
				assert.Equal(t, tt.wantErr, bad.Reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGreetingEmbed(t *testing.T) {
	embed := GreetingEmbed("<@1>", "Paul", func(n int) int { return n - 1 })
	assert.Equal(t, "Hey <@1>! Hope you're having a great day! ✨", embed.Description)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "Requested by Paul", embed.Footer.Text)
}

func TestCoinFlipAndRollEmbeds(t *testing.T) {
	assert.Equal(t, "🪙 It's **Heads**!", CoinFlipEmbed(true, "Paul").Description)
	assert.Equal(t, "🥈 It's **Tails**!", CoinFlipEmbed(false, "Paul").Description)
	assert.Equal(t, "You rolled a **4** on a 6-sided dice!", RollEmbed(4, 6, "Paul").Description)
}

func TestUserInfoEmbed(t *testing.T) {
	user := discord.User{ID: snowflake.ID(175928847299117063), Username: "paul"}
	nick := "Muad'Dib"
	member := &discord.Member{User: user, Nick: &nick, RoleIDs: []snowflake.ID{1, 2, 3, 4, 5, 6, 7}}

	embed := UserInfoEmbed(user, member)
	assert.Equal(t, "👤 Muad'Dib Information", embed.Title)
	require.Len(t, embed.Fields, 5)
	assert.Equal(t, "7", embed.Fields[3].Value)
	assert.Equal(t, "<@&1> <@&2> <@&3> <@&4> <@&5> +2 more", embed.Fields[4].Value)

	embed = UserInfoEmbed(user, nil)
	assert.Equal(t, "👤 paul Information", embed.Title)
	assert.Len(t, embed.Fields, 3)
}

func TestHelpEmbed(t *testing.T) {
	r := handlers.NewPrefixRegistry("?")
	Register(r)

	embed := HelpEmbed(r)
	require.Len(t, embed.Fields, 2)
	assert.Contains(t, embed.Fields[0].Value, "`?roll [sides]` • Roll a dice (1-6) or specify sides")
	assert.Contains(t, embed.Fields[0].Value, "`?coinflip` • Flip a coin")
	assert.Contains(t, embed.Fields[1].Value, "/contribute")
}
