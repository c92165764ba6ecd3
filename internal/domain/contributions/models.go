package contributions

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/guildforge/ledgerbot/ledgerbot/database/models"
	"github.com/guildforge/ledgerbot/ledgerbot/economy"
)

type GuildRef struct {
	ID   snowflake.ID
	Name string
}

type MemberRef struct {
	ID          snowflake.ID
	Username    string
	DisplayName string
}

// Submission is a contribution as typed by a member. Guild is nil outside a
// server.
type Submission struct {
	Guild    *GuildRef
	Member   MemberRef
	Material string
	Amount   int64
}

type Receipt struct {
	Material models.Material
	Amount   int64
	Earned   economy.Points
	Total    economy.Points
}

type Report struct {
	MemberID snowflake.ID
	Entries  []models.MemberContribution
	Total    economy.Points
}

type Board struct {
	Contributors []models.ContributorTotal
	Materials    []models.MaterialTotal
}

// ValidationError is a submission rejected before anything is written.
// Reason is safe to show to the member.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
