package ledger

import (
	"fmt"
	"strings"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/guildforge/ledgerbot/internal/domain/contributions"
	"github.com/guildforge/ledgerbot/internal/domain/contributions/mock"
	"github.com/guildforge/ledgerbot/ledgerbot/database/models"
	"github.com/guildforge/ledgerbot/ledgerbot/economy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptEmbed(t *testing.T) {
	embed := receiptEmbed(&contributions.Receipt{
		Material: mock.Materials[1],
		Amount:   10,
		Earned:   400,
		Total:    4000,
	}, "Paul")

	assert.Equal(t, "**Paul** contributed **10× Iron Ingot**", embed.Description)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "0.40 pts", embed.Fields[0].Value)
	assert.Equal(t, "+4.00", embed.Fields[1].Value)
	assert.Equal(t, "40.00 pts", embed.Fields[2].Value)
}

func TestReportPage(t *testing.T) {
	report := &contributions.Report{Entries: mock.Entries, Total: 4000}

	first := reportPage(report, 0, 2)
	lines := strings.Split(strings.TrimSpace(first), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "`1.` **Iron Ingot** ×10 @ 0.40 → **4.00** pts"))
	assert.Contains(t, lines[1], "×20")

	second := reportPage(report, 1, 2)
	assert.True(t, strings.HasPrefix(second, "`3.` **Iron Ingot** ×70 @ 0.40 → **28.00** pts"))
	assert.Contains(t, second, fmt.Sprintf("<t:%d:d>", mock.Entries[2].CreatedAt.Unix()))

	assert.Empty(t, reportPage(report, 2, 2))
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, pageCount(0, 10))
	assert.Equal(t, 1, pageCount(10, 10))
	assert.Equal(t, 2, pageCount(11, 10))
}

func TestLeaderboardEmbed(t *testing.T) {
	board := &contributions.Board{
		Contributors: []models.ContributorTotal{
			{MemberID: 11, DisplayName: "Alice", Points: 10000},
			{MemberID: 22, DisplayName: "Bob", Points: 5000},
			{MemberID: 33, DisplayName: "Carol", Points: 25},
			{MemberID: 44, DisplayName: "Dave", Points: 1},
		},
	}
	for i := 0; i < 7; i++ {
		board.Materials = append(board.Materials, models.MaterialTotal{
			DisplayName: fmt.Sprintf("Material %d", i),
			TotalAmount: int64(70 - i),
			Points:      100,
		})
	}

	embed := leaderboardEmbed("Arrakis", board)
	assert.Equal(t, "🏆 Arrakis Leaderboard", embed.Title)

	lines := strings.Split(strings.TrimSpace(embed.Description), "\n")
	assert.Equal(t, []string{
		"🥇 **Alice** • 100.00 pts",
		"🥈 **Bob** • 50.00 pts",
		"🥉 **Carol** • 0.25 pts",
		"`#4` **Dave** • 0.01 pts",
	}, lines)

	require.Len(t, embed.Fields, 1)
	assert.Equal(t, 5, strings.Count(embed.Fields[0].Value, "\n"))
	assert.Contains(t, embed.Fields[0].Value, "**Material 0**: 70 units (1.00 pts)")
}

func TestLeaderboardEmbedEmpty(t *testing.T) {
	embed := leaderboardEmbed("", &contributions.Board{})
	assert.Equal(t, "🏆 Server Leaderboard", embed.Title)
	assert.Contains(t, embed.Description, "No contributions recorded")
	assert.Empty(t, embed.Fields)
}

func TestMaterialsEmbed(t *testing.T) {
	embed := materialsEmbed(mock.Materials)
	assert.Contains(t, embed.Description, "**Spice Melange** `spiceMelange` • 25.00 pts/unit")
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "5 materials • use /contribute to log yours", embed.Footer.Text)
}

func TestContributeAmountBounds(t *testing.T) {
	opt, ok := Contribute.Options[1].(discord.ApplicationCommandOptionInt)
	require.True(t, ok)
	require.NotNil(t, opt.MinValue)
	require.NotNil(t, opt.MaxValue)
	assert.Equal(t, 1, *opt.MinValue)
	assert.Equal(t, economy.MaxContributionAmount, *opt.MaxValue)
}
