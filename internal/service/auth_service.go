package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/csdwebpro/notesphp/internal/auth"
	apperrors "github.com/csdwebpro/notesphp/internal/errors"
	"github.com/csdwebpro/notesphp/internal/model"
	"github.com/csdwebpro/notesphp/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// An unknown email and a wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateEmail is returned when registering an already-used email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// AuthService handles registration and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new user with a bcrypt-hashed password. The plaintext is
// never stored. Username only has to be non-empty; email must be unused.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("register: %w", apperrors.ErrInvalidInput)
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageFailure("check email", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, storageFailure("create user", err)
	}

	return user, nil
}

// Login authenticates a user and returns access and refresh tokens carrying
// the session identity (user id, username, email).
func (s *authService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", nil, ErrInvalidCredentials
		}
		return "", "", nil, storageFailure("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user.ID, user.Username, user.Email)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Username, user.Email)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	session := auth.SessionData{UserID: user.ID, Username: user.Username, Email: user.Email}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, session, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.ID == "" {
		return "", ErrInvalidRefreshToken
	}

	session, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if session.UserID != claims.UserID || session.Email != claims.Email {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err = s.jwtService.GenerateAccessToken(claims.UserID, claims.Username, claims.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout invalidates a refresh token, destroying the session.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}
