package repository

import (
	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HeartRepository interface {
	Toggle(userID, storeID uint) (bool, error)
	ListStoreIDs(userID uint) ([]uint, error)
	FindHeartedStores(userID uint) ([]model.Store, error)
}

type heartRepository struct {
	db *gorm.DB
}

func NewHeartRepository(db *gorm.DB) HeartRepository {
	return &heartRepository{db: db}
}

// Toggle은 찜을 단일 조건부 구문으로 뒤집습니다. 기존 찜의 삭제가 한 행도
// 지우지 못했을 때만 새로 추가하며, 동시 요청으로 인한 중복 삽입은
// 복합 유니크 인덱스와 ON CONFLICT DO NOTHING이 막습니다.
// 반환값은 토글 후의 찜 여부입니다.
func (r *heartRepository) Toggle(userID, storeID uint) (bool, error) {
	logger.Debug("Toggling heart", map[string]interface{}{
		"user_id":  userID,
		"store_id": storeID,
	})

	res := r.db.Where("user_id = ? AND store_id = ?", userID, storeID).
		Delete(&model.StoreHeart{})
	if res.Error != nil {
		logger.Error("Failed to remove heart", res.Error, map[string]interface{}{
			"user_id":  userID,
			"store_id": storeID,
		})
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		logger.Debug("Heart removed", map[string]interface{}{
			"user_id":  userID,
			"store_id": storeID,
		})
		return false, nil
	}

	heart := model.StoreHeart{UserID: userID, StoreID: storeID}
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&heart).Error
	if err != nil {
		logger.Error("Failed to add heart", err, map[string]interface{}{
			"user_id":  userID,
			"store_id": storeID,
		})
		return false, err
	}

	logger.Debug("Heart added", map[string]interface{}{
		"user_id":  userID,
		"store_id": storeID,
	})
	return true, nil
}

func (r *heartRepository) ListStoreIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.StoreHeart{}).
		Where("user_id = ?", userID).
		Pluck("store_id", &ids).Error
	if err != nil {
		logger.Error("Failed to list hearted store IDs", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return ids, nil
}

func (r *heartRepository) FindHeartedStores(userID uint) ([]model.Store, error) {
	logger.Debug("Finding hearted stores", map[string]interface{}{
		"user_id": userID,
	})

	var stores []model.Store
	err := r.db.Model(&model.Store{}).
		Joins("JOIN store_hearts ON store_hearts.store_id = stores.id").
		Where("store_hearts.user_id = ?", userID).
		Order("store_hearts.created_at DESC").
		Find(&stores).Error
	if err != nil {
		logger.Error("Failed to find hearted stores", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Hearted stores found", map[string]interface{}{
		"user_id": userID,
		"count":   len(stores),
	})
	return stores, nil
}
