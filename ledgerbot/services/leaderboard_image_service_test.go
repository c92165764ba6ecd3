package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/guildforge/ledgerbot/internal/domain/contributions"
	"github.com/guildforge/ledgerbot/ledgerbot/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoard() *contributions.Board {
	board := &contributions.Board{
		Contributors: []models.ContributorTotal{
			{MemberID: 1, DisplayName: "Paul <Muad'Dib>", Points: 10000},
			{MemberID: 2, DisplayName: "Chani", Points: 5000},
		},
	}
	for i := 0; i < 7; i++ {
		board.Materials = append(board.Materials, models.MaterialTotal{DisplayName: "Spice Sand", TotalAmount: int64(100 - i), Points: 5000})
	}
	return board
}

func TestNewLeaderboardData(t *testing.T) {
	data := NewLeaderboardData("Arrakis", testBoard(), time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC))

	assert.Equal(t, "Arrakis", data.GuildName)
	assert.Equal(t, "May 1, 12:30 UTC", data.Timestamp)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "100.00", data.Rows[0].Points)
	assert.Len(t, data.Materials, 5)
	assert.Equal(t, "100", data.Materials[0].Amount)
}

func TestGenerateHTML(t *testing.T) {
	s := NewLeaderboardImageService()
	html, err := s.generateHTML(NewLeaderboardData("Arrakis", testBoard(), time.Now()))
	require.NoError(t, err)

	assert.Contains(t, html, `id="leaderboard-container"`)
	assert.Contains(t, html, "#1")
	assert.Contains(t, html, "#2")
	assert.Contains(t, html, "Paul &lt;Muad&#39;Dib&gt;")
	assert.Contains(t, html, "Top materials")

	u := dataURL(html)
	assert.True(t, strings.HasPrefix(u, "data:text/html;charset=utf-8,"))
	assert.NotContains(t, strings.TrimPrefix(u, "data:text/html;charset=utf-8,"), "#")
}

func TestRenderRequiresRows(t *testing.T) {
	s := NewLeaderboardImageService()
	_, err := s.Render(context.Background(), LeaderboardData{GuildName: "empty"})
	assert.Error(t, err)
}
