package service

import (
	"context"
	"testing"
	"time"

	"productivity_tracker/internal/model"
	"productivity_tracker/internal/repository"
	"productivity_tracker/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(userRepo repository.UserRepository) AuthService {
	jwtUtil := utils.NewJWTUtil("access-secret", "refresh-secret", time.Hour, 7*24*time.Hour)
	return NewAuthService(userRepo, jwtUtil)
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	var created *model.User
	userRepo := &fakeUserRepo{
		createFn: func(_ context.Context, u *model.User) error {
			u.ID = 1
			created = u
			return nil
		},
	}
	svc := newTestAuthService(userRepo)

	user, err := svc.Register(context.Background(), "  Alice  ", " Alice@Example.COM ", "s3cret-pass")

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, model.RoleUser, created.Role)
	assert.NotEqual(t, "s3cret-pass", created.PasswordHash)
	assert.Equal(t, int64(1), user.ID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	userRepo := &fakeUserRepo{
		findByEmailFn: func(_ context.Context, _ string) (*model.User, error) {
			return &model.User{ID: 1, Email: "alice@example.com"}, nil
		},
	}
	svc := newTestAuthService(userRepo)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Register_DuplicateRace(t *testing.T) {
	// FindByEmail misses but the insert hits the unique index
	userRepo := &fakeUserRepo{
		createFn: func(_ context.Context, _ *model.User) error {
			return repository.ErrDuplicateEmail
		},
	}
	svc := newTestAuthService(userRepo)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Register_InitialAdmin(t *testing.T) {
	t.Setenv("INITIAL_ADMIN_EMAIL", "Admin@Example.com")

	var created *model.User
	userRepo := &fakeUserRepo{
		createFn: func(_ context.Context, u *model.User) error {
			created = u
			return nil
		},
	}
	svc := newTestAuthService(userRepo)

	_, err := svc.Register(context.Background(), "Admin", "admin@example.com", "s3cret-pass")

	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, created.Role)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)

	userRepo := &fakeUserRepo{
		findByEmailFn: func(_ context.Context, email string) (*model.User, error) {
			assert.Equal(t, "alice@example.com", email)
			return &model.User{ID: 1, Name: "Alice", Email: email, PasswordHash: hash, Role: model.RoleUser}, nil
		},
	}
	svc := newTestAuthService(userRepo)

	user, pair, err := svc.Login(context.Background(), "Alice@Example.COM", "s3cret-pass")

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 7*24*time.Hour, pair.RefreshTTL)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)

	userRepo := &fakeUserRepo{
		findByEmailFn: func(_ context.Context, email string) (*model.User, error) {
			if email == "alice@example.com" {
				return &model.User{ID: 1, Email: email, PasswordHash: hash}, nil
			}
			return nil, nil
		},
	}
	svc := newTestAuthService(userRepo)

	// Unknown email and wrong password produce the same error
	_, _, err = svc.Login(context.Background(), "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Refresh(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)

	userRepo := &fakeUserRepo{
		findByEmailFn: func(_ context.Context, email string) (*model.User, error) {
			return &model.User{ID: 1, Name: "Alice", Email: email, PasswordHash: hash, Role: model.RoleAdmin}, nil
		},
	}
	svc := newTestAuthService(userRepo)

	_, pair, err := svc.Login(context.Background(), "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	access, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	svc := newTestAuthService(&fakeUserRepo{})

	_, err := svc.Refresh("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	// An access token must not be usable as a refresh token
	jwtUtil := utils.NewJWTUtil("access-secret", "refresh-secret", time.Hour, time.Hour)
	access, err := jwtUtil.GenerateAccessToken(1, model.RoleUser, "Alice")
	require.NoError(t, err)

	_, err = svc.Refresh(access)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}
