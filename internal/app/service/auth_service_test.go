package service

import (
	"testing"
	"time"

	"github.com/ikkim/dongnegage-backend/internal/app/repository"
	"github.com/ikkim/dongnegage-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, "test-jwt-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	authService := setupAuthServiceTest(t)

	tests := []struct {
		name     string
		email    string
		password string
		userName string
		wantErr  error
	}{
		{
			name:     "정상 가입",
			email:    "test@example.com",
			password: "password123",
			userName: "Test User",
			wantErr:  nil,
		},
		{
			name:     "중복 이메일",
			email:    "test@example.com",
			password: "password456",
			userName: "Another User",
			wantErr:  ErrEmailAlreadyExists,
		},
		{
			name:     "대소문자만 다른 이메일도 중복으로 처리",
			email:    "  TEST@Example.com ",
			password: "password456",
			userName: "Another User",
			wantErr:  ErrEmailAlreadyExists,
		},
		{
			name:     "빈 이름",
			email:    "empty@example.com",
			password: "password123",
			userName: "   ",
			wantErr:  ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Register(tt.email, tt.password, tt.userName)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			require.NotNil(t, tokens)
			assert.Equal(t, "test@example.com", user.Email)
			assert.NotEmpty(t, tokens.AccessToken)
			assert.NotEmpty(t, tokens.RefreshToken)
			// 비밀번호 평문이 저장되면 안 됩니다
			assert.NotEqual(t, tt.password, user.PasswordHash)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Register("login@example.com", "password123", "Login User")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "정상 로그인",
			email:    "login@example.com",
			password: "password123",
			wantErr:  nil,
		},
		{
			name:     "이메일 대문자 입력도 허용",
			email:    "LOGIN@example.com",
			password: "password123",
			wantErr:  nil,
		},
		{
			name:     "잘못된 비밀번호",
			email:    "login@example.com",
			password: "wrongpassword",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "존재하지 않는 사용자",
			email:    "nobody@example.com",
			password: "password123",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Login(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.NotEmpty(t, tokens.AccessToken)
		})
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, _, err := authService.Register("profile@example.com", "password123", "Old Name")
	require.NoError(t, err)

	updated, err := authService.UpdateProfile(user.ID, "New Name")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)

	_, err = authService.UpdateProfile(user.ID, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = authService.UpdateProfile(9999, "Name")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
