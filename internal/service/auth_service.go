package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"productivity_tracker/internal/model"
	"productivity_tracker/internal/repository"
	"productivity_tracker/internal/utils"
)

var (
	ErrUserAlreadyExists  = errors.New("User already exists")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidRefresh     = errors.New("Invalid refresh token")
)

// TokenPair is the credential set issued on login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	RefreshTTL   time.Duration
}

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, TokenPair, error)
	Refresh(refreshToken string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

// Register creates a new user account. Emails are stored lowercased so the
// uniqueness check is case-insensitive.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userRole := model.RoleUser // Default role

	// Check for initial admin setup via environment variable
	initialAdminEmail := os.Getenv("INITIAL_ADMIN_EMAIL")
	if initialAdminEmail != "" && email == strings.ToLower(initialAdminEmail) {
		userRole = model.RoleAdmin
		log.Printf("INFO: User %s is being registered as ADMIN via INITIAL_ADMIN_EMAIL.", email)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         userRole,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns an access/refresh token pair
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, TokenPair{}, ErrInvalidCredentials // User not found
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, TokenPair{}, ErrInvalidCredentials // Password mismatch
	}

	access, err := s.jwtUtil.GenerateAccessToken(user.ID, user.Role, user.Name)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwtUtil.GenerateRefreshToken(user.ID, user.Role, user.Name)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return user, TokenPair{AccessToken: access, RefreshToken: refresh, RefreshTTL: s.jwtUtil.RefreshTTL()}, nil
}

// Refresh issues a fresh access token from a valid refresh token
func (s *authService) Refresh(refreshToken string) (string, error) {
	claims, err := s.jwtUtil.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefresh
	}

	access, err := s.jwtUtil.GenerateAccessToken(claims.UserID, claims.Role, claims.Name)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return access, nil
}
