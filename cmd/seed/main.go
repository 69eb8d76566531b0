package main

import (
	"context"
	"log"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"clipnote-be/internal/config"
	"clipnote-be/internal/model"
	"clipnote-be/internal/repository/implementation"
	"clipnote-be/internal/repository/specification"
	"clipnote-be/pkg/database"
)

const (
	demoEmail    = "demo@clipnote.dev"
	demoPassword = "demo-password"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	color.Cyan("Connecting to database...")
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Connection failed: %v", err)
		log.Fatal(err)
	}

	users := implementation.NewUserRepository(db)
	existing, err := users.FindOne(ctx, specification.ByEmail(demoEmail))
	if err != nil {
		log.Fatal(err)
	}
	if existing != nil {
		color.Yellow("Demo user already exists, nothing to do.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	hashStr := string(hash)

	user := &model.User{
		Id:           uuid.New(),
		Email:        demoEmail,
		PasswordHash: &hashStr,
		DisplayName:  "Demo User",
	}
	if err := users.Create(ctx, user); err != nil {
		color.Red("Failed to create demo user: %v", err)
		log.Fatal(err)
	}
	color.Green("Created demo user %s", demoEmail)

	notes := implementation.NewNoteRepository(db)
	for _, text := range []string{
		"Welcome to ClipNote. This is your first note.",
		"Notes are plain text and sorted newest first.",
	} {
		if err := notes.Create(ctx, &model.Note{Id: uuid.New(), Text: text, UserId: user.Id}); err != nil {
			log.Fatal(err)
		}
	}
	color.Green("Seeded sample notes")

	clips := implementation.NewClipRepository(db)
	for _, c := range []model.Clip{
		{Url: "https://go.dev", Title: "The Go Programming Language", Note: "language home page"},
		{Url: "https://gofiber.io", Title: "https://gofiber.io", Note: ""},
	} {
		c.Id = uuid.New()
		c.UserId = user.Id
		if err := clips.Create(ctx, &c); err != nil {
			log.Fatal(err)
		}
	}
	color.Green("Seeded sample clips")

	color.Green("Seeding complete. Log in with %s / %s", demoEmail, demoPassword)
}
