package infra_postgres_catalog

import (
	"context"
	"fmt"

	"github.com/humanbelnik/kinopick/internal/model"
	"github.com/jmoiron/sqlx"
)

const schema = `
	CREATE TABLE IF NOT EXISTS catalog_movies (
		id       UUID PRIMARY KEY,
		position INTEGER NOT NULL,
		title    TEXT NOT NULL,
		genres   TEXT[] NOT NULL DEFAULT '{}',
		viewed   BOOLEAN NOT NULL DEFAULT FALSE
	)
`

// Repository stores the catalog as one row per record. Row ids are regenerated on every
// save; records are addressed by title, not by id.
type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create catalog table: %w", err)
	}
	return nil
}

func (r *Repository) Load(ctx context.Context) (model.Catalog, error) {
	query := `
		SELECT id, position, title, genres, viewed
		FROM catalog_movies
		ORDER BY position
	`

	var moviesDB []MovieDB
	if err := r.db.SelectContext(ctx, &moviesDB, query); err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}

	catalog := make(model.Catalog, len(moviesDB))
	for i, movieDB := range moviesDB {
		catalog[i] = movieDB.ToDomain()
	}
	return catalog, nil
}

// Save replaces the whole table inside one transaction.
func (r *Repository) Save(ctx context.Context, c model.Catalog) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM catalog_movies`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	if len(c) > 0 {
		rows := make([]MovieDB, len(c))
		for i, rec := range c {
			rows[i] = FromDomain(i, rec)
		}

		query := `
			INSERT INTO catalog_movies (id, position, title, genres, viewed)
			VALUES (:id, :position, :title, :genres, :viewed)
		`
		if _, err = tx.NamedExecContext(ctx, query, rows); err != nil {
			return fmt.Errorf("failed to insert catalog: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}
