package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Material is a catalog entry. Value is points per unit scaled by 100.
type Material struct {
	bun.BaseModel `bun:"table:materials,alias:m"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Name        string    `bun:"name,notnull,unique"`
	DisplayName string    `bun:"display_name,notnull"`
	Value       int       `bun:"value,notnull,default:100"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
