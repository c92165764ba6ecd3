package contributions

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/guildforge/ledgerbot/ledgerbot/database/models"
	"github.com/guildforge/ledgerbot/ledgerbot/economy"
)

// Repository is the ledger store as seen by the domain. The database models
// double as domain records here.
type Repository interface {
	EnsureGuild(ctx context.Context, guildID snowflake.ID, name string) error
	EnsureMember(ctx context.Context, memberID snowflake.ID, username, displayName string) error
	ListMaterials(ctx context.Context) ([]models.Material, error)
	FindMaterial(ctx context.Context, name string) (*models.Material, error)
	RecordContribution(ctx context.Context, guildID, memberID snowflake.ID, materialName string, amount int64) (*models.Contribution, error)
	MemberContributions(ctx context.Context, guildID, memberID snowflake.ID) ([]models.MemberContribution, error)
	MemberPoints(ctx context.Context, guildID, memberID snowflake.ID) (economy.Points, error)
	TopContributors(ctx context.Context, guildID snowflake.ID, limit int) ([]models.ContributorTotal, error)
	GuildSummary(ctx context.Context, guildID snowflake.ID) ([]models.MaterialTotal, error)
}
