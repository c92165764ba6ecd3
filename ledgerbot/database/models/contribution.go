package models

import (
	"time"

	"github.com/guildforge/ledgerbot/ledgerbot/economy"
	"github.com/uptrace/bun"
)

// Contribution rows are append-only.
type Contribution struct {
	bun.BaseModel `bun:"table:contributions,alias:c"`

	ID         int64     `bun:"id,pk,autoincrement"`
	GuildID    int64     `bun:"guild_id,notnull"`
	MemberID   int64     `bun:"member_id,notnull"`
	MaterialID int64     `bun:"material_id,notnull"`
	Amount     int64     `bun:"amount,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// MemberContribution is a contribution joined with its material. Points is
// derived from the material's current value when the row is read.
type MemberContribution struct {
	ID                  int64          `bun:"id"`
	MaterialName        string         `bun:"material_name"`
	MaterialDisplayName string         `bun:"material_display_name"`
	Amount              int64          `bun:"amount"`
	UnitValue           int            `bun:"unit_value"`
	CreatedAt           time.Time      `bun:"created_at"`
	Points              economy.Points `bun:"-"`
}

// ContributorTotal is one leaderboard row.
type ContributorTotal struct {
	MemberID    int64          `bun:"member_id"`
	Username    string         `bun:"username"`
	DisplayName string         `bun:"display_name"`
	Points      economy.Points `bun:"points"`
}

// MaterialTotal summarises one material across a guild.
type MaterialTotal struct {
	MaterialName  string         `bun:"material_name"`
	DisplayName   string         `bun:"display_name"`
	TotalAmount   int64          `bun:"total_amount"`
	Contributions int            `bun:"contribution_count"`
	Points        economy.Points `bun:"points"`
}
