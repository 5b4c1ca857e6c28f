package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/internal/app/repository"
	"github.com/ikkim/dongnegage-backend/pkg/logger"
	"github.com/ikkim/dongnegage-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidResetToken = errors.New("invalid reset token")
	ErrResetTokenExpired = errors.New("reset token expired")
	ErrResetTokenUsed    = errors.New("reset token already used")
	ErrPasswordMismatch  = errors.New("passwords do not match")
)

// 재설정 토큰 유효기간
const resetTokenTTL = time.Hour

type PasswordResetService interface {
	RequestReset(email string) (string, error)
	ResetPassword(token, password, passwordConfirm string) (*model.User, error)
	PurgeExpired() (int64, error)
}

type passwordResetService struct {
	userRepo  repository.UserRepository
	resetRepo repository.PasswordResetRepository
}

func NewPasswordResetService(
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
) PasswordResetService {
	return &passwordResetService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
	}
}

// RequestReset은 재설정 토큰을 발급합니다. 계정 존재 여부 노출을 막기 위해
// 등록되지 않은 이메일이어도 에러 대신 빈 토큰을 반환합니다.
func (s *passwordResetService) RequestReset(email string) (string, error) {
	email = normalizeEmail(email)

	logger.Info("Password reset requested", map[string]interface{}{
		"email": email,
	})

	_, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Password reset requested for unknown email", map[string]interface{}{
				"email": email,
			})
			return "", nil
		}
		return "", err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		logger.Error("Failed to generate reset token", err, nil)
		return "", err
	}
	token := hex.EncodeToString(buf)

	reset := &model.PasswordReset{
		Email:     email,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.resetRepo.Create(reset); err != nil {
		return "", err
	}

	logger.Info("Password reset token issued", map[string]interface{}{
		"email":      email,
		"expires_at": reset.ExpiresAt,
	})
	return token, nil
}

func (s *passwordResetService) ResetPassword(token, password, passwordConfirm string) (*model.User, error) {
	if password == "" || password != passwordConfirm {
		return nil, ErrPasswordMismatch
	}

	reset, err := s.resetRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidResetToken
		}
		return nil, err
	}

	if reset.Used {
		return nil, ErrResetTokenUsed
	}
	if time.Now().After(reset.ExpiresAt) {
		return nil, ErrResetTokenExpired
	}

	user, err := s.userRepo.FindByEmail(reset.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidResetToken
		}
		return nil, err
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash new password", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}

	user.PasswordHash = hashedPassword
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if err := s.resetRepo.MarkAsUsed(reset.ID); err != nil {
		return nil, err
	}

	logger.Info("Password reset completed", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

// PurgeExpired는 만료되었거나 사용된 토큰을 정리합니다 (스케줄러에서 호출)
func (s *passwordResetService) PurgeExpired() (int64, error) {
	return s.resetRepo.DeleteExpired()
}
