package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/csdwebpro/notesphp/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/csdwebpro/notesphp/internal/auth"
	"github.com/csdwebpro/notesphp/internal/cache"
	"github.com/csdwebpro/notesphp/internal/config"
	"github.com/csdwebpro/notesphp/internal/db"
	"github.com/csdwebpro/notesphp/internal/handler"
	"github.com/csdwebpro/notesphp/internal/model"
	"github.com/csdwebpro/notesphp/internal/repository"
	"github.com/csdwebpro/notesphp/internal/router"
	"github.com/csdwebpro/notesphp/internal/service"
)

// @title Notesphp API
// @version 1.0
// @description Note-taking API with session authentication, category tagging and search.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{&model.Note{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := db.Migrate(gormDB, &model.User{}, &model.Note{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	noteRepo := repository.NewNoteRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	noteService := service.NewNoteService(noteRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	noteHandler := handler.NewNoteHandler(noteService)

	// Register routes
	router.Register(e, cfg, authHandler, noteHandler)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: http://%s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
