package main

import (
	"log"

	"github.com/fatih/color"

	"clipnote-be/internal/config"
	"clipnote-be/internal/model"
	"clipnote-be/pkg/database"
)

func main() {
	cfg := config.Load()

	color.Cyan("Connecting to database...")
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Connection failed: %v", err)
		log.Fatal(err)
	}

	// gen_random_uuid() needs pgcrypto on Postgres < 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		color.Yellow("Could not ensure pgcrypto extension: %v", err)
	}

	color.Cyan("Running migrations...")
	err = db.AutoMigrate(
		&model.User{},
		&model.UserProvider{},
		&model.UserRefreshToken{},
		&model.Note{},
		&model.Clip{},
		&model.Activity{},
	)
	if err != nil {
		color.Red("Migration failed: %v", err)
		log.Fatal(err)
	}

	color.Green("Migrations completed successfully.")
}
