package db

import (
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/AcademiaAllegro/telegram-academia-bot/migrations"
)

// Migrate aplica las migraciones embebidas en el binario.
func Migrate(database *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(database, ".")
}
