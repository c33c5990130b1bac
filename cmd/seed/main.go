// Command seed provisions a demo user with a handful of sample notes so the
// app is usable right after a fresh install.
package main

import (
	"context"
	"errors"
	"log"

	"github.com/csdwebpro/notesphp/internal/config"
	"github.com/csdwebpro/notesphp/internal/db"
	"github.com/csdwebpro/notesphp/internal/model"
	"github.com/csdwebpro/notesphp/internal/repository"
	"github.com/csdwebpro/notesphp/internal/service"
)

const (
	demoUsername = "admin"
	demoEmail    = "admin@example.com"
	demoPassword = "admin123"
)

var sampleNotes = []struct {
	title    string
	content  string
	category string
}{
	{"Welcome", "This is your first note. Edit or delete it, or create your own.", "general"},
	{"Groceries", "milk, eggs, bread", "personal"},
	{"Project kickoff", "Agenda: scope, milestones, owners", "work"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(gormDB, &model.User{}, &model.Note{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	noteRepo := repository.NewNoteRepository(gormDB)
	authService := service.NewAuthService(userRepo, nil, nil)

	user, err := authService.Register(ctx, demoUsername, demoEmail, demoPassword)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			log.Printf("demo user %s already exists, nothing to do", demoEmail)
			return
		}
		log.Fatalf("create demo user: %v", err)
	}

	noteService := service.NewNoteService(noteRepo, nil)
	for _, n := range sampleNotes {
		if _, err := noteService.CreateNote(ctx, user.ID, n.title, n.content, n.category); err != nil {
			log.Fatalf("create sample note %q: %v", n.title, err)
		}
	}

	log.Printf("seeded demo user %s with %d notes", demoEmail, len(sampleNotes))
}
