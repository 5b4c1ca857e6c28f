package scheduler

import (
	"github.com/ikkim/dongnegage-backend/internal/app/service"
	"github.com/ikkim/dongnegage-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ResetCleanupScheduler 만료된 비밀번호 재설정 토큰 정리 스케줄러
type ResetCleanupScheduler struct {
	cron         *cron.Cron
	resetService service.PasswordResetService
}

// NewResetCleanupScheduler 재설정 토큰 정리 스케줄러 생성
func NewResetCleanupScheduler(resetService service.PasswordResetService) *ResetCleanupScheduler {
	return &ResetCleanupScheduler{
		cron:         cron.New(),
		resetService: resetService,
	}
}

// Start 스케줄러 시작
func (s *ResetCleanupScheduler) Start() error {
	// 매일 새벽 4시에 만료/사용된 토큰 삭제
	_, err := s.cron.AddFunc("0 4 * * *", func() {
		logger.Info("Starting scheduled password reset token cleanup", nil)

		deleted, err := s.resetService.PurgeExpired()
		if err != nil {
			logger.Error("Failed to purge expired reset tokens", err)
			return
		}

		logger.Info("Password reset token cleanup completed", map[string]interface{}{
			"deleted": deleted,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for reset token cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Reset token cleanup scheduler started (daily at 4:00 AM)", nil)

	return nil
}

// Stop 스케줄러 중지
func (s *ResetCleanupScheduler) Stop() {
	logger.Info("Stopping reset token cleanup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Reset token cleanup scheduler stopped", nil)
}
