package tournamentdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrNotFound is returned when no tournament has the requested alias.
	ErrNotFound = errors.New("tournament not found")
	// ErrAliasExists is returned when creating a tournament under a taken alias.
	ErrAliasExists = errors.New("tournament alias already exists")
)

const uniqueViolation = "23505"

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new tournament repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Load reads a tournament and locks its row for the rest of the transaction.
func (r *Impl) Load(ctx context.Context, db bun.IDB, alias string) (*tournamentdomain.Tournament, error) {
	return r.get(ctx, r.resolveDB(db), alias, true)
}

// Get reads a tournament without locking.
func (r *Impl) Get(ctx context.Context, db bun.IDB, alias string) (*tournamentdomain.Tournament, error) {
	return r.get(ctx, r.resolveDB(db), alias, false)
}

func (r *Impl) get(ctx context.Context, db bun.IDB, alias string, forUpdate bool) (*tournamentdomain.Tournament, error) {
	rec := new(TournamentRecord)
	q := db.NewSelect().
		Model(rec).
		Where("alias = ?", alias)
	if forUpdate {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %s: %w", alias, err)
	}
	return decode(rec)
}

// List returns every tournament ordered by alias.
func (r *Impl) List(ctx context.Context, db bun.IDB) ([]*tournamentdomain.Tournament, error) {
	db = r.resolveDB(db)
	var recs []TournamentRecord
	if err := db.NewSelect().Model(&recs).Order("alias ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}

	out := make([]*tournamentdomain.Tournament, 0, len(recs))
	for i := range recs {
		t, err := decode(&recs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Create inserts t. A taken alias yields ErrAliasExists.
func (r *Impl) Create(ctx context.Context, db bun.IDB, t *tournamentdomain.Tournament) error {
	db = r.resolveDB(db)
	rec, err := encode(t)
	if err != nil {
		return err
	}
	rec.CreatedAt = rec.UpdatedAt

	if _, err := db.NewInsert().Model(rec).Exec(ctx); err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrAliasExists, t.Alias)
		}
		return fmt.Errorf("failed to create tournament %s: %w", t.Alias, err)
	}
	return nil
}

// Save overwrites the stored document of t.
func (r *Impl) Save(ctx context.Context, db bun.IDB, t *tournamentdomain.Tournament) error {
	db = r.resolveDB(db)
	rec, err := encode(t)
	if err != nil {
		return err
	}

	result, err := db.NewUpdate().
		Model(rec).
		Column("provider_id", "data", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save tournament %s: %w", t.Alias, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the tournament stored under alias.
func (r *Impl) Delete(ctx context.Context, db bun.IDB, alias string) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*TournamentRecord)(nil)).
		Where("alias = ?", alias).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %s: %w", alias, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func encode(t *tournamentdomain.Tournament) (*TournamentRecord, error) {
	data, err := tournamentdomain.EncodeTournament(t)
	if err != nil {
		return nil, err
	}
	return &TournamentRecord{
		Alias:      t.Alias,
		ProviderID: t.ID,
		Data:       string(data),
		UpdatedAt:  time.Now().UTC(),
	}, nil
}

func decode(rec *TournamentRecord) (*tournamentdomain.Tournament, error) {
	t, err := tournamentdomain.DecodeTournament([]byte(rec.Data))
	if err != nil {
		return nil, fmt.Errorf("tournament %s: %w", rec.Alias, err)
	}
	if t.Alias != rec.Alias {
		return nil, fmt.Errorf("%w: row %s holds tournament %s", tournamentdomain.ErrInvalidTournament, rec.Alias, t.Alias)
	}
	return t, nil
}
