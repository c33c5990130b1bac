package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/csdwebpro/notesphp/internal/auth"
	"github.com/csdwebpro/notesphp/internal/config"
	"github.com/csdwebpro/notesphp/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	noteHandler *handler.NoteHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes: login and register are the only actions reachable
	// without a session.
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes require a valid JWT session.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/me", authHandler.Me)

	secured.POST("/notes", noteHandler.CreateNote)
	secured.GET("/notes", noteHandler.ListNotes)
	secured.GET("/notes/search", noteHandler.SearchNotes)
	secured.GET("/notes/categories", noteHandler.ListCategories)
	secured.GET("/notes/:id", noteHandler.GetNote)
	secured.PUT("/notes/:id", noteHandler.UpdateNote)
	secured.DELETE("/notes/:id", noteHandler.DeleteNote)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
