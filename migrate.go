package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func runMigrations(sqlDSN string) error {
	m, err := migrate.New("file://migrations", "sqlite3://"+sqlDSN)
	if err != nil {
		return fmt.Errorf("unable to setup migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Print("info: database is up to date")
			return nil
		}

		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	log.Print("info: applied migrations")

	return nil
}
