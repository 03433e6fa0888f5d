package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"recipehub/internal/auth"
	apperrors "recipehub/internal/errors"
	"recipehub/internal/idalloc"
	"recipehub/internal/model"
	"recipehub/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration and token operations.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	ids        *idalloc.Allocator
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, ids *idalloc.Allocator, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		ids:        ids,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a user with a freshly allocated id and a hashed password.
func (s *authService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if err := required("username", username, "password", password); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, apperrors.ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.ids.Allocate(ctx, s.userRepo.Exists)
	if err != nil {
		return nil, fmt.Errorf("allocate user id: %w", err)
	}

	user := &model.User{
		ID:           id,
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race against a concurrent registration.
		if errors.Is(err, apperrors.ErrConflict) {
			if taken, _ := s.userRepo.ExistsByUsername(ctx, username); taken {
				return nil, apperrors.ErrUsernameTaken
			}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues an access and a refresh token.
func (s *authService) Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = authenticate(ctx, s.userRepo, username, password)
	if err != nil {
		return "", "", nil, err
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Username, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	storedUserID, storedUsername, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}
	if storedUserID != claims.UserID || storedUsername != claims.Username {
		return "", apperrors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Username)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, claims.ID)
}

// authenticate returns the user when password matches. Unknown users are
// NotFound, wrong passwords are Auth errors.
func authenticate(ctx context.Context, users repository.UserRepository, username, password string) (*model.User, error) {
	if err := required("username", username, "password", password); err != nil {
		return nil, err
	}
	user, err := users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}
