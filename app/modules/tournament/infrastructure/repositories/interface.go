package tournamentdb

import (
	"context"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	"github.com/uptrace/bun"
)

// Repository persists tournaments keyed by alias.
//
// Single-writer contract: a caller that mutates a tournament must Load it and
// Save it inside the same transaction. Load takes a row lock, so a second
// writer for the same alias blocks until the first commits or rolls back.
//
// Error semantics:
//   - ErrNotFound: no tournament with that alias
//   - ErrAliasExists: Create on an alias already stored
//   - tournamentdomain.ErrInvalidTournament: the stored blob fails strict decoding
type Repository interface {
	// Load returns the tournament and locks its row until the transaction ends.
	Load(ctx context.Context, db bun.IDB, alias string) (*tournamentdomain.Tournament, error)

	// Get returns the tournament without locking.
	Get(ctx context.Context, db bun.IDB, alias string) (*tournamentdomain.Tournament, error)

	// List returns every stored tournament ordered by alias.
	List(ctx context.Context, db bun.IDB) ([]*tournamentdomain.Tournament, error)

	// Create stores a new tournament.
	Create(ctx context.Context, db bun.IDB, t *tournamentdomain.Tournament) error

	// Save overwrites an existing tournament.
	Save(ctx context.Context, db bun.IDB, t *tournamentdomain.Tournament) error

	// Delete removes the tournament with alias.
	Delete(ctx context.Context, db bun.IDB, alias string) error
}
