package repositories

import (
	"context"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/guildforge/ledgerbot/ledgerbot/database/models"
	"github.com/uptrace/bun"
)

// UsageRepository stores the AI usage audit trail daily quotas are counted
// from.
type UsageRepository interface {
	CountByUser(ctx context.Context, userID snowflake.ID, date string) (int, error)
	CountByGuild(ctx context.Context, guildID snowflake.ID, date string) (int, error)
	Record(ctx context.Context, usage *models.AIUsage) error
}

type usageRepository struct {
	*BaseRepository
}

func NewUsageRepository(db *bun.DB) UsageRepository {
	return &usageRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *usageRepository) CountByUser(ctx context.Context, userID snowflake.ID, date string) (int, error) {
	return r.Count(ctx, "ai_usage", r.db.NewSelect().
		Model((*models.AIUsage)(nil)).
		Where("user_id = ?", int64(userID)).
		Where("date_only = ?", date))
}

func (r *usageRepository) CountByGuild(ctx context.Context, guildID snowflake.ID, date string) (int, error) {
	return r.Count(ctx, "ai_usage", r.db.NewSelect().
		Model((*models.AIUsage)(nil)).
		Where("guild_id = ?", int64(guildID)).
		Where("date_only = ?", date))
}

func (r *usageRepository) Record(ctx context.Context, usage *models.AIUsage) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if usage.CreatedAt.IsZero() {
		usage.CreatedAt = time.Now()
	}
	_, err := r.db.NewInsert().Model(usage).Exec(ctx)
	return r.HandleError("record_usage", "ai_usage", err)
}
