package data

import (
	"database/sql"

	"videomod/internal/conf"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrate applies pending schema migrations.
func RunMigrate(conf *conf.Data, db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}
	src, err := (&file.File{}).Open(conf.Database.Migrations)
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance(
		"file",
		src,
		conf.Database.Driver,
		driver,
	)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
