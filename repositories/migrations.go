package repositories

import (
	"context"
	"database/sql"
	"embed"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"

	"github.com/storefront/storefront-backend/infra"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

//go:embed vector_migrations/*.sql
var embedVectorMigrations embed.FS

type migrationParams struct {
	fileSystem embed.FS
	folderName string
}

type Migrater struct {
	pgConfig      infra.PgConfig
	withVectorAdd bool
	logger        *slog.Logger
}

// NewMigrater applies the core schema, and the pgvector schema when the knowledge base is enabled.
func NewMigrater(pgConfig infra.PgConfig, withKnowledgeBase bool, logger *slog.Logger) *Migrater {
	return &Migrater{
		pgConfig:      pgConfig,
		withVectorAdd: withKnowledgeBase,
		logger:        logger,
	}
}

func (m *Migrater) Run(ctx context.Context) error {
	db, err := m.openDb(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	folders := []migrationParams{
		{fileSystem: embedMigrations, folderName: "migrations"},
	}
	if m.withVectorAdd {
		folders = append(folders, migrationParams{
			fileSystem: embedVectorMigrations,
			folderName: "vector_migrations",
		})
	}
	for _, params := range folders {
		if err := m.runMigrationsWithFolder(ctx, db, params); err != nil {
			return errors.Wrapf(err, "error running migrations in %s", params.folderName)
		}
	}

	return m.runRiverMigrations(ctx)
}

func (m *Migrater) openDb(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", m.pgConfig.GetConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect to database")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "unable to ping database")
	}
	return db, nil
}

func (m *Migrater) runMigrationsWithFolder(ctx context.Context, db *sql.DB, params migrationParams) error {
	m.logger.InfoContext(ctx, "Migrations starting to setup DB: "+params.folderName)
	goose.SetBaseFS(params.fileSystem)
	// each folder keeps its own version table so that the vector add-on can be enabled later
	goose.SetTableName("goose_db_version_" + params.folderName)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, params.folderName, goose.WithAllowMissing())
}

func (m *Migrater) runRiverMigrations(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, m.pgConfig.GetConnectionString())
	if err != nil {
		return errors.Wrap(err, "unable to create pool for river migrations")
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return errors.Wrap(err, "unable to create river migrator")
	}
	res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil)
	if err != nil {
		return errors.Wrap(err, "unable to run river migrations")
	}
	for _, version := range res.Versions {
		m.logger.InfoContext(ctx, "applied river migration", slog.Int("version", version.Version))
	}
	return nil
}
