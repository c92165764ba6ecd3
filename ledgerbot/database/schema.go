package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/guildforge/ledgerbot/ledgerbot/database/models"
	"github.com/uptrace/bun"
)

type tableDef struct {
	model       interface{}
	foreignKeys []string
}

// Order matters: referenced tables come first.
var tables = []tableDef{
	{model: (*models.Guild)(nil)},
	{model: (*models.Member)(nil)},
	{model: (*models.Material)(nil)},
	{
		model: (*models.Contribution)(nil),
		foreignKeys: []string{
			`("guild_id") REFERENCES "guilds" ("id") ON DELETE CASCADE`,
			`("member_id") REFERENCES "members" ("id") ON DELETE CASCADE`,
			`("material_id") REFERENCES "materials" ("id")`,
		},
	},
	{model: (*models.AIUsage)(nil)},
}

type indexDef struct {
	model   interface{}
	name    string
	columns []string
}

var indexes = []indexDef{
	{(*models.Contribution)(nil), "idx_contributions_guild_member", []string{"guild_id", "member_id"}},
	{(*models.Contribution)(nil), "idx_contributions_guild", []string{"guild_id"}},
	{(*models.AIUsage)(nil), "idx_ai_usage_user_date", []string{"user_id", "date_only"}},
	{(*models.AIUsage)(nil), "idx_ai_usage_guild_date", []string{"guild_id", "date_only"}},
}

// CreateTables creates every table and index if missing. It only uses
// dialect-neutral statements so it runs on any bun dialect.
func CreateTables(ctx context.Context, db bun.IDB) error {
	for _, t := range tables {
		q := db.NewCreateTable().Model(t.model).IfNotExists()
		for _, fk := range t.foreignKeys {
			q = q.ForeignKey(fk)
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", t.model, err)
		}
	}

	for _, idx := range indexes {
		_, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.columns...).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}
	return nil
}

// InitializeSchema creates all required tables and indexes and seeds the
// material catalog when it is empty.
func (db *DB) InitializeSchema(ctx context.Context) error {
	if os.Getenv("DB_FAST_INIT") == "1" {
		if err := db.ensureAppMeta(ctx); err == nil {
			if v, _ := db.getAppMeta(ctx, "schema_version"); v == strconv.Itoa(schemaVersion) {
				slog.Info("Fast DB init: schema up-to-date, skipping initialization",
					slog.String("type", "sys"),
					slog.Int("schema_version", schemaVersion))
				return nil
			}
		}
	}

	if err := db.ensureUTF8Encoding(ctx); err != nil {
		return fmt.Errorf("failed to ensure UTF-8 encoding: %w", err)
	}

	if err := CreateTables(ctx, db.bunDB); err != nil {
		return err
	}

	seeded, err := SeedMaterialsIfEmpty(ctx, db.bunDB, DefaultMaterials())
	if err != nil {
		return fmt.Errorf("failed to seed materials: %w", err)
	}
	if seeded {
		slog.Info("Seeded material catalog", slog.String("type", "sys"))
	}

	if err := db.ensureAppMeta(ctx); err == nil {
		if err := db.setAppMeta(ctx, "schema_version", strconv.Itoa(schemaVersion)); err != nil {
			slog.Warn("Failed to record schema version", slog.Any("error", err))
		}
	}

	slog.Info("Database schema initialized",
		slog.String("type", "sys"),
		slog.Int("schema_version", schemaVersion))
	return nil
}

func (db *DB) ensureAppMeta(ctx context.Context) error {
	_, err := db.ExecWithLog(ctx, `CREATE TABLE IF NOT EXISTS app_meta (key TEXT PRIMARY KEY, value TEXT)`)
	return err
}

func (db *DB) getAppMeta(ctx context.Context, key string) (string, error) {
	var v string
	if err := db.pool.QueryRow(ctx, `SELECT value FROM app_meta WHERE key = $1`, key).Scan(&v); err != nil {
		return "", err
	}
	return v, nil
}

func (db *DB) setAppMeta(ctx context.Context, key, value string) error {
	_, err := db.pool.Exec(ctx, `INSERT INTO app_meta(key, value) VALUES($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, key, value)
	return err
}

// ensureUTF8Encoding warns when the server is not UTF-8 and pins the client
// encoding. Material display names are plain ASCII but member names are not.
func (db *DB) ensureUTF8Encoding(ctx context.Context) error {
	var encoding string
	if err := db.pool.QueryRow(ctx, "SHOW server_encoding;").Scan(&encoding); err != nil {
		return fmt.Errorf("failed to check database encoding: %w", err)
	}

	if encoding != "UTF8" {
		slog.Warn("Database is not using UTF-8 encoding, this may cause character encoding issues",
			"current_encoding", encoding,
			"recommended", "UTF8")
	}

	if _, err := db.pool.Exec(ctx, "SET client_encoding TO 'UTF8';"); err != nil {
		return fmt.Errorf("failed to set client encoding to UTF-8: %w", err)
	}
	return nil
}
