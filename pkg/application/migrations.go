package application

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

// MigrationManager collects per-module embedded schema directories and
// applies them with goose. Migration filenames are timestamp-versioned, so
// versions stay unique across modules.
type MigrationManager interface {
	RegisterSchema(fs *embed.FS, dir string)
	Run(ctx context.Context, db *sql.DB) error
}

type schemaSource struct {
	fs  *embed.FS
	dir string
}

func NewMigrationManager() MigrationManager {
	return &migrationManager{}
}

type migrationManager struct {
	sources []schemaSource
}

func (m *migrationManager) RegisterSchema(fs *embed.FS, dir string) {
	m.sources = append(m.sources, schemaSource{fs: fs, dir: dir})
}

func (m *migrationManager) Run(ctx context.Context, db *sql.DB) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	for _, source := range m.sources {
		goose.SetBaseFS(source.fs)
		if err := goose.UpContext(ctx, db, source.dir, goose.WithAllowMissing()); err != nil {
			goose.SetBaseFS(nil)
			return err
		}
	}
	goose.SetBaseFS(nil)
	return nil
}
