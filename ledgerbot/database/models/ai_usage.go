package models

import (
	"time"

	"github.com/uptrace/bun"
)

// AIUsage is an audit row for one accepted AI call. DateOnly (YYYY-MM-DD) is
// the key daily quotas are counted on.
type AIUsage struct {
	bun.BaseModel `bun:"table:ai_usage,alias:au"`

	ID           int64     `bun:"id,pk,autoincrement"`
	GuildID      int64     `bun:"guild_id,notnull"`
	UserID       int64     `bun:"user_id,notnull"`
	PromptChars  int       `bun:"prompt_chars,notnull"`
	OutputTokens int       `bun:"output_tokens,notnull"`
	ModelUsed    string    `bun:"model_used,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	DateOnly     string    `bun:"date_only,notnull"`
}
