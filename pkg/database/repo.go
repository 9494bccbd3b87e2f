package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/navikt/nada-tablemetadata/pkg/database/gensql"
)

const (
	dialect       = "postgres"
	migrationsDir = "migrations"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type Querier interface {
	gensql.Querier
	WithTx(tx *sql.Tx) *gensql.Queries
}

type Repo struct {
	Querier Querier
	db      *sql.DB
}

// New opens the database, with query metrics hooked into the driver, and
// brings the schema up to date.
func New(dbConnDSN string, maxIdleConn, maxOpenConn int, log zerolog.Logger) (*Repo, error) {
	db, err := sql.Open(hookedDriverName, dbConnDSN)
	if err != nil {
		return nil, fmt.Errorf("open sql connection: %w", err)
	}

	db.SetMaxIdleConns(maxIdleConn)
	db.SetMaxOpenConns(maxOpenConn)

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("get schema version: %w", err)
	}

	log.Info().Int64("schema_version", version).Msg("database migrated")

	return NewFromDB(db), nil
}

// NewFromDB wraps an open database without running migrations.
func NewFromDB(db *sql.DB) *Repo {
	return &Repo{
		Querier: gensql.New(db),
		db:      db,
	}
}

// Migrate applies the embedded goose migrations.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// Migrations returns the names of the embedded migration files.
func Migrations() ([]string, error) {
	entries, err := embedMigrations.ReadDir(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	return names, nil
}

func (r *Repo) GetDB() *sql.DB {
	return r.db
}

func (r *Repo) Close() error {
	return r.db.Close()
}
