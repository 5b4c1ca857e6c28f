package service

import (
	"testing"
	"time"

	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/internal/app/repository"
	"github.com/ikkim/dongnegage-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupResetTest(t *testing.T) (*gorm.DB, PasswordResetService, AuthService) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	resetRepo := repository.NewPasswordResetRepository(testDB)
	authService := NewAuthService(userRepo, "test-jwt-secret", 15*time.Minute, 7*24*time.Hour)

	return testDB, NewPasswordResetService(userRepo, resetRepo), authService
}

func TestPasswordResetService_FullFlow(t *testing.T) {
	_, resetService, authService := setupResetTest(t)

	_, _, err := authService.Register("reset@example.com", "oldpassword", "Reset User")
	require.NoError(t, err)

	token, err := resetService.RequestReset("reset@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := resetService.ResetPassword(token, "newpassword", "newpassword")
	require.NoError(t, err)
	require.NotNil(t, user)

	// 새 비밀번호로 로그인 가능, 옛 비밀번호는 거부
	_, _, err = authService.Login("reset@example.com", "newpassword")
	assert.NoError(t, err)
	_, _, err = authService.Login("reset@example.com", "oldpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// 같은 토큰 재사용 불가
	_, err = resetService.ResetPassword(token, "another", "another")
	assert.ErrorIs(t, err, ErrResetTokenUsed)
}

func TestPasswordResetService_RequestReset_UnknownEmail(t *testing.T) {
	_, resetService, _ := setupResetTest(t)

	// 계정 존재 여부가 드러나지 않도록 에러 없이 빈 토큰을 반환합니다
	token, err := resetService.RequestReset("nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestPasswordResetService_ResetPassword_Failures(t *testing.T) {
	testDB, resetService, authService := setupResetTest(t)

	_, _, err := authService.Register("fail@example.com", "password123", "Fail User")
	require.NoError(t, err)

	t.Run("존재하지 않는 토큰", func(t *testing.T) {
		_, err := resetService.ResetPassword("no-such-token", "newpass", "newpass")
		assert.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("비밀번호 확인 불일치", func(t *testing.T) {
		token, err := resetService.RequestReset("fail@example.com")
		require.NoError(t, err)

		_, err = resetService.ResetPassword(token, "newpass", "different")
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("만료된 토큰", func(t *testing.T) {
		token, err := resetService.RequestReset("fail@example.com")
		require.NoError(t, err)

		// 만료 시각을 과거로 되돌립니다
		err = testDB.Model(&model.PasswordReset{}).
			Where("token = ?", token).
			Update("expires_at", time.Now().Add(-time.Minute)).Error
		require.NoError(t, err)

		_, err = resetService.ResetPassword(token, "newpass", "newpass")
		assert.ErrorIs(t, err, ErrResetTokenExpired)
	})
}

func TestPasswordResetService_PurgeExpired(t *testing.T) {
	testDB, resetService, authService := setupResetTest(t)

	_, _, err := authService.Register("purge@example.com", "password123", "Purge User")
	require.NoError(t, err)

	token, err := resetService.RequestReset("purge@example.com")
	require.NoError(t, err)

	err = testDB.Model(&model.PasswordReset{}).
		Where("token = ?", token).
		Update("expires_at", time.Now().Add(-time.Hour)).Error
	require.NoError(t, err)

	deleted, err := resetService.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
