package handler

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/csdwebpro/notesphp/internal/auth"
	apperrors "github.com/csdwebpro/notesphp/internal/errors"
)

// sessionClaims extracts the authenticated session from the request context.
// The claims were validated by the JWT middleware; a caller-supplied user id
// is never trusted in its place.
func sessionClaims(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, apperrors.ErrAuthRequired
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, apperrors.ErrAuthRequired
	}
	return claims, nil
}
