package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/auth"
)

const (
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgUserNotFound       = "User not found"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func invalidCredentials() error {
	return apperrors.NewCustomError(fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, apperrors.ErrInvalidCredentials), msgInvalidCredentials)
}

// Register creates a student account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashedPassword,
		Role:     models.RoleStudent,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.NewConflictError(msgUserExists)
		}
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("User registered")
	return s.tokenResponse(user)
}

// Login checks the credentials and signs a fresh token.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Int64("userID", user.ID).Msg("Login failed, wrong password")
		return nil, invalidCredentials()
	}

	return s.tokenResponse(user)
}

// GetProfile retrieves the user behind an authenticated request.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user information: %w", err)
	}
	return user, nil
}

// UpdateRole changes a user's role. Tokens already issued keep the old role
// claim, but the auth middleware reads the role from storage.
func (s *AuthService) UpdateRole(ctx context.Context, userID int64, role models.RoleType) (*models.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("role must be one of admin, faculty, student")
	}
	if err := s.userRepo.UpdateUserRole(ctx, userID, role); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgUserNotFound)
		}
		return nil, fmt.Errorf("error updating role: %w", err)
	}

	s.logger.Info().Int64("userID", userID).Str("role", string(role)).Msg("User role updated")
	return s.GetProfile(ctx, userID)
}

// Authenticate resolves a raw token to the stored user. Any failure is an
// invalid token from the caller's point of view.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d no longer exists", apperrors.ErrTokenInvalid, claims.UserID)
		}
		return nil, fmt.Errorf("error retrieving token user: %w", err)
	}
	return user, nil
}

// TokenTTL is the lifetime of issued tokens, used for the cookie max age.
func (s *AuthService) TokenTTL() int {
	return int(s.jwtService.TokenTTL().Seconds())
}

func (s *AuthService) tokenResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}
	return &dto.AuthResponse{User: user, Token: token}, nil
}
