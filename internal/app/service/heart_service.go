package service

import (
	"errors"

	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/internal/app/repository"
	"github.com/ikkim/dongnegage-backend/pkg/logger"
	"gorm.io/gorm"
)

// ToggleResult는 토글 후의 찜 여부와 사용자의 전체 찜 목록입니다
type ToggleResult struct {
	Hearted  bool   `json:"hearted"`
	StoreIDs []uint `json:"store_ids"`
}

type HeartService interface {
	Toggle(userID, storeID uint) (*ToggleResult, error)
	ListHearts(userID uint) ([]model.Store, error)
	HeartedStoreIDs(userID uint) ([]uint, error)
}

type heartService struct {
	heartRepo repository.HeartRepository
	storeRepo repository.StoreRepository
}

func NewHeartService(
	heartRepo repository.HeartRepository,
	storeRepo repository.StoreRepository,
) HeartService {
	return &heartService{
		heartRepo: heartRepo,
		storeRepo: storeRepo,
	}
}

func (s *heartService) Toggle(userID, storeID uint) (*ToggleResult, error) {
	// 존재하지 않는 매장에 대한 찜은 거부합니다
	if _, err := s.storeRepo.FindByID(storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	hearted, err := s.heartRepo.Toggle(userID, storeID)
	if err != nil {
		return nil, err
	}

	ids, err := s.heartRepo.ListStoreIDs(userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}

	logger.Info("Heart toggled", map[string]interface{}{
		"user_id":  userID,
		"store_id": storeID,
		"hearted":  hearted,
	})
	return &ToggleResult{Hearted: hearted, StoreIDs: ids}, nil
}

func (s *heartService) ListHearts(userID uint) ([]model.Store, error) {
	stores, err := s.heartRepo.FindHeartedStores(userID)
	if err != nil {
		return nil, err
	}
	if stores == nil {
		stores = []model.Store{}
	}
	return stores, nil
}

func (s *heartService) HeartedStoreIDs(userID uint) ([]uint, error) {
	ids, err := s.heartRepo.ListStoreIDs(userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}
