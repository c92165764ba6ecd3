package services

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/guildforge/ledgerbot/internal/domain/contributions"
	"github.com/guildforge/ledgerbot/ledgerbot/config"
)

//go:embed templates/leaderboard.html
var leaderboardTemplate string

var leaderboardTmpl = template.Must(template.New("leaderboard").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
}).Parse(leaderboardTemplate))

type LeaderboardImageService struct {
	logger  *slog.Logger
	timeout time.Duration
}

type LeaderboardRow struct {
	Name   string
	Points string
}

type MaterialRow struct {
	Name   string
	Amount string
	Points string
}

type LeaderboardData struct {
	GuildName string
	Timestamp string
	Rows      []LeaderboardRow
	Materials []MaterialRow
}

func NewLeaderboardImageService() *LeaderboardImageService {
	return &LeaderboardImageService{
		logger:  slog.With(slog.String("service", "leaderboard_image")),
		timeout: config.ImageRenderTimeout,
	}
}

// NewLeaderboardData flattens a board into template rows.
func NewLeaderboardData(guildName string, board *contributions.Board, now time.Time) LeaderboardData {
	data := LeaderboardData{
		GuildName: guildName,
		Timestamp: now.Format("Jan 2, 15:04 MST"),
	}
	for _, c := range board.Contributors {
		data.Rows = append(data.Rows, LeaderboardRow{Name: c.DisplayName, Points: c.Points.String()})
	}
	for i, m := range board.Materials {
		if i == config.LeaderboardTopMaterials {
			break
		}
		data.Materials = append(data.Materials, MaterialRow{
			Name:   m.DisplayName,
			Amount: strconv.FormatInt(m.TotalAmount, 10),
			Points: m.Points.String(),
		})
	}
	return data
}

// Render draws the leaderboard in headless Chrome and returns a PNG.
func (s *LeaderboardImageService) Render(ctx context.Context, data LeaderboardData) ([]byte, error) {
	if len(data.Rows) == 0 {
		return nil, fmt.Errorf("no leaderboard results provided")
	}
	start := time.Now()

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, err
	}

	chromedpCtx, cancel := chromedp.NewContext(ctx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancel()
	chromedpCtx, cancel = context.WithTimeout(chromedpCtx, s.timeout)
	defer cancel()

	var imageBytes []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate(dataURL(htmlContent)),
		chromedp.WaitVisible("#leaderboard-container", chromedp.ByID),
		chromedp.Screenshot("#leaderboard-container", &imageBytes, chromedp.ByID),
	)
	if err != nil {
		s.logger.Error("Failed to generate image with chromedp",
			slog.Any("error", err),
			slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}

	s.logger.Info("Leaderboard image generated",
		slog.String("guild", data.GuildName),
		slog.Int("image_size", len(imageBytes)),
		slog.Duration("took", time.Since(start)))
	return imageBytes, nil
}

func (s *LeaderboardImageService) generateHTML(data LeaderboardData) (string, error) {
	var buf bytes.Buffer
	if err := leaderboardTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func dataURL(html string) string {
	return "data:text/html;charset=utf-8," + url.PathEscape(html)
}
