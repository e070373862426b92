package tournamentdb

import (
	"time"

	"github.com/uptrace/bun"
)

// TournamentRecord is one stored tournament. The aggregate lives in Data as
// JSON; ProviderID is copied out for lookups.
type TournamentRecord struct {
	bun.BaseModel `bun:"table:tournaments,alias:t"`
	Alias         string    `bun:"alias,pk,type:varchar(64)"`
	ProviderID    string    `bun:"provider_id,notnull,type:varchar(32)"`
	Data          string    `bun:"data,notnull,type:jsonb"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
