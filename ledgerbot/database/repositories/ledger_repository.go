package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/guildforge/ledgerbot/ledgerbot/database"
	"github.com/guildforge/ledgerbot/ledgerbot/database/models"
	"github.com/guildforge/ledgerbot/ledgerbot/economy"
	"github.com/uptrace/bun"
)

var (
	ErrInvalidAmount   = fmt.Errorf("amount must be between 1 and %d", economy.MaxContributionAmount)
	ErrUnknownMaterial = errors.New("unknown material")
)

type LedgerRepository interface {
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

type ledgerRepository struct {
	*BaseRepository
	catalog []models.Material

	// seeded short-circuits the empty-table check once the catalog is known
	// to be present.
	mu     sync.Mutex
	seeded bool
}

// NewLedgerRepository returns a store that seeds catalog into an empty
// materials table on first use.
func NewLedgerRepository(db *bun.DB, catalog []models.Material) LedgerRepository {
	return &ledgerRepository{
		BaseRepository: NewBaseRepository(db),
		catalog:        catalog,
	}
}

func (r *ledgerRepository) EnsureGuild(ctx context.Context, guildID snowflake.ID, name string) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	guild := &models.Guild{
		ID:        int64(guildID),
		Name:      name,
		CreatedAt: time.Now(),
	}
	_, err := r.db.NewInsert().
		Model(guild).
		On("CONFLICT (id) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	return r.HandleError("ensure_guild", "guild", err)
}

func (r *ledgerRepository) EnsureMember(ctx context.Context, memberID snowflake.ID, username, displayName string) error {
	if displayName == "" {
		displayName = username
	}

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		member := &models.Member{
			ID:          int64(memberID),
			Username:    username,
			DisplayName: displayName,
			CreatedAt:   time.Now(),
		}
		res, err := tx.NewInsert().
			Model(member).
			On("CONFLICT (id) DO NOTHING").
			Returning("NULL").
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			return nil
		}

		_, err = tx.NewUpdate().
			Model((*models.Member)(nil)).
			Set("username = ?", username).
			Set("display_name = ?", displayName).
			Where("id = ?", int64(memberID)).
			Where("username <> ? OR display_name <> ?", username, displayName).
			Exec(ctx)
		return err
	})
	return r.HandleError("ensure_member", "member", err)
}

func (r *ledgerRepository) ListMaterials(ctx context.Context) ([]models.Material, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if err := r.ensureCatalog(ctx); err != nil {
		return nil, r.HandleError("seed_materials", "material", err)
	}

	var materials []models.Material
	err := r.db.NewSelect().
		Model(&materials).
		OrderExpr("display_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list_materials", "material", err)
	}
	return materials, nil
}

func (r *ledgerRepository) ensureCatalog(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seeded {
		return nil
	}

	seeded, err := database.SeedMaterialsIfEmpty(ctx, r.db, r.catalog)
	if err != nil {
		return err
	}
	if seeded {
		slog.Info("Seeded material catalog",
			slog.String("type", "db"),
			slog.Int("materials", len(r.catalog)))
	}
	r.seeded = true
	return nil
}

func (r *ledgerRepository) FindMaterial(ctx context.Context, name string) (*models.Material, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if err := r.ensureCatalog(ctx); err != nil {
		return nil, r.HandleError("seed_materials", "material", err)
	}
	material, err := r.findMaterial(ctx, r.db, name)
	if err != nil {
		return nil, r.HandleError("find_material", "material", err)
	}
	return material, nil
}

func (r *ledgerRepository) findMaterial(ctx context.Context, db bun.IDB, name string) (*models.Material, error) {
	material := new(models.Material)
	err := db.NewSelect().
		Model(material).
		Where("name = ?", name).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return material, nil
}

func (r *ledgerRepository) RecordContribution(ctx context.Context, guildID, memberID snowflake.ID, materialName string, amount int64) (*models.Contribution, error) {
	if amount <= 0 || amount > economy.MaxContributionAmount {
		return nil, ErrInvalidAmount
	}
	if err := r.ensureCatalog(ctx); err != nil {
		return nil, r.HandleError("seed_materials", "material", err)
	}

	var contribution *models.Contribution
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		material, err := r.findMaterial(ctx, tx, materialName)
		if err != nil {
			return err
		}
		if material == nil {
			return ErrUnknownMaterial
		}

		c := &models.Contribution{
			GuildID:    int64(guildID),
			MemberID:   int64(memberID),
			MaterialID: material.ID,
			Amount:     amount,
			CreatedAt:  time.Now(),
		}
		if _, err := tx.NewInsert().Model(c).Exec(ctx); err != nil {
			return err
		}
		contribution = c
		return nil
	})
	if err != nil {
		return nil, r.HandleError("record_contribution", "contribution", err)
	}

	slog.Debug("Contribution recorded",
		slog.String("type", "db"),
		slog.Int64("guild_id", int64(guildID)),
		slog.Int64("member_id", int64(memberID)),
		slog.String("material", materialName),
		slog.Int64("amount", amount))
	return contribution, nil
}

func (r *ledgerRepository) MemberContributions(ctx context.Context, guildID, memberID snowflake.ID) ([]models.MemberContribution, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var rows []models.MemberContribution
	err := r.db.NewSelect().
		TableExpr("contributions AS c").
		ColumnExpr("c.id, c.amount, c.created_at").
		ColumnExpr("m.name AS material_name").
		ColumnExpr("m.display_name AS material_display_name").
		ColumnExpr("m.value AS unit_value").
		Join("JOIN materials AS m ON m.id = c.material_id").
		Where("c.guild_id = ?", int64(guildID)).
		Where("c.member_id = ?", int64(memberID)).
		OrderExpr("c.created_at ASC, c.id ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, r.HandleError("member_contributions", "contribution", err)
	}

	for i := range rows {
		rows[i].Points = economy.Calculate(rows[i].Amount, rows[i].UnitValue)
	}
	return rows, nil
}

func (r *ledgerRepository) MemberPoints(ctx context.Context, guildID, memberID snowflake.ID) (economy.Points, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var total int64
	err := r.db.NewSelect().
		TableExpr("contributions AS c").
		ColumnExpr("CAST(COALESCE(SUM(c.amount * m.value), 0) AS BIGINT)").
		Join("JOIN materials AS m ON m.id = c.material_id").
		Where("c.guild_id = ?", int64(guildID)).
		Where("c.member_id = ?", int64(memberID)).
		Scan(ctx, &total)
	if err != nil {
		return 0, r.HandleError("member_points", "contribution", err)
	}
	return economy.Points(total), nil
}

func (r *ledgerRepository) TopContributors(ctx context.Context, guildID snowflake.ID, limit int) ([]models.ContributorTotal, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var rows []models.ContributorTotal
	err := r.db.NewSelect().
		TableExpr("contributions AS c").
		ColumnExpr("mb.id AS member_id, mb.username, mb.display_name").
		ColumnExpr("CAST(SUM(c.amount * m.value) AS BIGINT) AS points").
		Join("JOIN members AS mb ON mb.id = c.member_id").
		Join("JOIN materials AS m ON m.id = c.material_id").
		Where("c.guild_id = ?", int64(guildID)).
		GroupExpr("mb.id, mb.username, mb.display_name").
		OrderExpr("points DESC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, r.HandleError("top_contributors", "contribution", err)
	}
	return rows, nil
}

func (r *ledgerRepository) GuildSummary(ctx context.Context, guildID snowflake.ID) ([]models.MaterialTotal, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var rows []models.MaterialTotal
	err := r.db.NewSelect().
		TableExpr("contributions AS c").
		ColumnExpr("m.name AS material_name, m.display_name").
		ColumnExpr("CAST(SUM(c.amount) AS BIGINT) AS total_amount").
		ColumnExpr("COUNT(c.id) AS contribution_count").
		ColumnExpr("CAST(SUM(c.amount * m.value) AS BIGINT) AS points").
		Join("JOIN materials AS m ON m.id = c.material_id").
		Where("c.guild_id = ?", int64(guildID)).
		GroupExpr("m.id, m.name, m.display_name").
		OrderExpr("total_amount DESC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, r.HandleError("guild_summary", "contribution", err)
	}
	return rows, nil
}
