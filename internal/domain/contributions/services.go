package contributions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	domainlog "github.com/guildforge/ledgerbot/internal/domain/logger"
	"github.com/guildforge/ledgerbot/ledgerbot/config"
	"github.com/guildforge/ledgerbot/ledgerbot/database/models"
	"github.com/guildforge/ledgerbot/ledgerbot/database/repositories"
	"github.com/guildforge/ledgerbot/ledgerbot/economy"
	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	Observe(ctx context.Context, guild GuildRef, member MemberRef) error
	Contribute(ctx context.Context, sub Submission) (*Receipt, error)
	MemberReport(ctx context.Context, guildID, memberID snowflake.ID) (*Report, error)
	Leaderboard(ctx context.Context, guildID snowflake.ID, limit int) (*Board, error)
	Materials(ctx context.Context) ([]models.Material, error)
	SuggestMaterials(ctx context.Context, query string, limit int) ([]models.Material, error)
}

type service struct {
	repository Repository
}

func NewService(repository Repository) *service {
	return &service{
		repository: repository,
	}
}

// Observe makes sure the guild and member rows exist.
func (s *service) Observe(ctx context.Context, guild GuildRef, member MemberRef) error {
	if err := s.repository.EnsureGuild(ctx, guild.ID, guild.Name); err != nil {
		return fmt.Errorf("failed to register guild: %w", err)
	}
	if err := s.repository.EnsureMember(ctx, member.ID, member.Username, member.DisplayName); err != nil {
		return fmt.Errorf("failed to register member: %w", err)
	}
	return nil
}

func (s *service) Contribute(ctx context.Context, sub Submission) (*Receipt, error) {
	op := domainlog.NewOperationLogger("contribute",
		"member_id", sub.Member.ID.String(),
		"material", sub.Material,
		"amount", sub.Amount)

	if sub.Guild == nil {
		return nil, reject(op, "guild", "This command can only be used in a server.")
	}
	name := strings.TrimSpace(sub.Material)
	if name == "" {
		return nil, reject(op, "material", "Please choose a material.")
	}
	if sub.Amount <= 0 {
		return nil, reject(op, "amount", "Amount must be a positive number.")
	}
	if sub.Amount > economy.MaxContributionAmount {
		return nil, reject(op, "amount", fmt.Sprintf("Amount cannot exceed %d units in one contribution.", economy.MaxContributionAmount))
	}

	material, err := s.repository.FindMaterial(ctx, name)
	if err != nil {
		op.Log(err)
		return nil, fmt.Errorf("failed to look up material: %w", err)
	}
	if material == nil {
		return nil, reject(op, "material", fmt.Sprintf("Unknown material `%s`. Use /materials to see what can be contributed.", name))
	}

	if err := s.Observe(ctx, *sub.Guild, sub.Member); err != nil {
		op.Log(err)
		return nil, err
	}

	if _, err := s.repository.RecordContribution(ctx, sub.Guild.ID, sub.Member.ID, material.Name, sub.Amount); err != nil {
		switch {
		case errors.Is(err, repositories.ErrInvalidAmount):
			return nil, reject(op, "amount", "Amount is out of range.")
		case errors.Is(err, repositories.ErrUnknownMaterial):
			return nil, reject(op, "material", fmt.Sprintf("Unknown material `%s`.", name))
		}
		op.Log(err)
		return nil, fmt.Errorf("failed to record contribution: %w", err)
	}

	total, err := s.repository.MemberPoints(ctx, sub.Guild.ID, sub.Member.ID)
	if err != nil {
		op.Log(err)
		return nil, fmt.Errorf("failed to total points: %w", err)
	}

	receipt := &Receipt{
		Material: *material,
		Amount:   sub.Amount,
		Earned:   economy.Calculate(sub.Amount, material.Value),
		Total:    total,
	}
	op.Log(nil, "earned", receipt.Earned.String())
	return receipt, nil
}

func reject(op *domainlog.OperationLogger, field, reason string) error {
	op.Reject(reason)
	return &ValidationError{Field: field, Reason: reason}
}

func (s *service) MemberReport(ctx context.Context, guildID, memberID snowflake.ID) (*Report, error) {
	entries, err := s.repository.MemberContributions(ctx, guildID, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contributions: %w", err)
	}

	report := &Report{MemberID: memberID, Entries: entries}
	for _, e := range entries {
		report.Total += e.Points
	}
	return report, nil
}

// ClampLimit bounds a requested leaderboard size.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return config.DefaultLeaderboardSize
	case limit > config.MaxLeaderboardSize:
		return config.MaxLeaderboardSize
	}
	return limit
}

func (s *service) Leaderboard(ctx context.Context, guildID snowflake.ID, limit int) (*Board, error) {
	limit = ClampLimit(limit)
	board := &Board{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		top, err := s.repository.TopContributors(gctx, guildID, limit)
		if err != nil {
			return fmt.Errorf("failed to fetch top contributors: %w", err)
		}
		board.Contributors = top
		return nil
	})
	g.Go(func() error {
		summary, err := s.repository.GuildSummary(gctx, guildID)
		if err != nil {
			return fmt.Errorf("failed to fetch material summary: %w", err)
		}
		board.Materials = summary
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *service) Materials(ctx context.Context) ([]models.Material, error) {
	materials, err := s.repository.ListMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	return materials, nil
}

// materialSource implements fuzzy.Source over machine and display names.
type materialSource []models.Material

func (m materialSource) Len() int {
	return len(m)
}

func (m materialSource) String(i int) string {
	return m[i].DisplayName + " " + m[i].Name
}

// SuggestMaterials ranks the catalog against a partial query. An empty query
// returns the catalog in display order.
func (s *service) SuggestMaterials(ctx context.Context, query string, limit int) ([]models.Material, error) {
	if limit <= 0 || limit > config.MaxAutocompleteChoices {
		limit = config.MaxAutocompleteChoices
	}

	materials, err := s.Materials(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if len(materials) > limit {
			materials = materials[:limit]
		}
		return materials, nil
	}

	matches := fuzzy.FindFrom(query, materialSource(materials))
	if len(matches) > limit {
		matches = matches[:limit]
	}
	results := make([]models.Material, len(matches))
	for i, match := range matches {
		results[i] = materials[match.Index]
	}
	return results, nil
}
