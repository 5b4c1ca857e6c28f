package repository

import (
	"time"

	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/pkg/logger"
	"gorm.io/gorm"
)

type PasswordResetRepository interface {
	Create(reset *model.PasswordReset) error
	FindByToken(token string) (*model.PasswordReset, error)
	MarkAsUsed(id uint) error
	DeleteExpired() (int64, error)
}

type passwordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(reset *model.PasswordReset) error {
	logger.Debug("Creating password reset token", map[string]interface{}{
		"email": reset.Email,
	})

	if err := r.db.Create(reset).Error; err != nil {
		logger.Error("Failed to create password reset token", err, map[string]interface{}{
			"email": reset.Email,
		})
		return err
	}
	return nil
}

func (r *passwordResetRepository) FindByToken(token string) (*model.PasswordReset, error) {
	var reset model.PasswordReset
	if err := r.db.Where("token = ?", token).First(&reset).Error; err != nil {
		logger.Error("Failed to find password reset token", err)
		return nil, err
	}
	return &reset, nil
}

func (r *passwordResetRepository) MarkAsUsed(id uint) error {
	err := r.db.Model(&model.PasswordReset{}).
		Where("id = ?", id).
		Update("used", true).Error
	if err != nil {
		logger.Error("Failed to mark password reset token as used", err, map[string]interface{}{
			"reset_id": id,
		})
		return err
	}
	return nil
}

// DeleteExpired는 만료됐거나 사용된 토큰을 일괄 삭제하고 삭제 건수를 반환합니다
func (r *passwordResetRepository) DeleteExpired() (int64, error) {
	res := r.db.Where("expires_at < ? OR used = ?", time.Now(), true).
		Delete(&model.PasswordReset{})
	if res.Error != nil {
		logger.Error("Failed to delete expired password reset tokens", res.Error)
		return 0, res.Error
	}

	logger.Debug("Expired password reset tokens deleted", map[string]interface{}{
		"count": res.RowsAffected,
	})
	return res.RowsAffected, nil
}
