package service

import (
	"context"
	"hotel-booking/config"
	"hotel-booking/internal/dto"
	"hotel-booking/internal/repository"
	"hotel-booking/pkg/logger"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) (*authService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	s := NewAuthService(config.Auth{
		SecretKey: "secret",
		Algorithm: "HS256",
		TokenTTL:  30 * time.Minute,
	}, logger.NewNop(), repo).(*authService)
	return s, repo
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	s, repo := newTestAuthService(t)
	ctx := context.Background()
	req := dto.UserAuthRequest{Email: "guest@example.com", Password: "s3cret"}

	user, err := s.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.NotEqual(t, req.Password, repo.users[1].HashedPassword)

	_, err = s.Register(ctx, req)
	assert.ErrorIs(t, err, dto.ErrUserAlreadyExists)

	token, err := s.Login(ctx, req)
	require.NoError(t, err)

	got, err := s.UserFromToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", got.Email)
}

func TestAuthService_RegisterConcurrentDuplicate(t *testing.T) {
	s, repo := newTestAuthService(t)
	// The lookup finds nobody but the insert hits the unique index.
	repo.createErr = repository.ErrEmailTaken

	_, err := s.Register(context.Background(), dto.UserAuthRequest{Email: "guest@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, dto.ErrUserAlreadyExists)
}

func TestAuthService_LoginFailures(t *testing.T) {
	s, _ := newTestAuthService(t)
	ctx := context.Background()
	_, err := s.Register(ctx, dto.UserAuthRequest{Email: "guest@example.com", Password: "s3cret"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  dto.UserAuthRequest
	}{
		{name: "wrong password", req: dto.UserAuthRequest{Email: "guest@example.com", Password: "nope"}},
		{name: "unknown email", req: dto.UserAuthRequest{Email: "nobody@example.com", Password: "s3cret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Login(ctx, tt.req)
			assert.ErrorIs(t, err, dto.ErrIncorrectEmailOrPassword)
		})
	}
}

func TestAuthService_UserFromToken(t *testing.T) {
	s, _ := newTestAuthService(t)
	ctx := context.Background()
	_, err := s.Register(ctx, dto.UserAuthRequest{Email: "guest@example.com", Password: "s3cret"})
	require.NoError(t, err)

	issued := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }
	token, err := s.issueToken(1)
	require.NoError(t, err)
	orphan, err := s.issueToken(42)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{name: "valid", token: token, now: issued.Add(29 * time.Minute)},
		{name: "expired", token: token, now: issued.Add(31 * time.Minute), wantErr: dto.ErrTokenExpired},
		{name: "absent", token: "", now: issued, wantErr: dto.ErrTokenAbsent},
		{name: "garbage", token: "not-a-jwt", now: issued, wantErr: dto.ErrIncorrectTokenFormat},
		{name: "deleted user", token: orphan, now: issued, wantErr: dto.ErrUserIsNotPresent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.now = func() time.Time { return tt.now }
			user, err := s.UserFromToken(ctx, tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(1), user.ID)
		})
	}
}
