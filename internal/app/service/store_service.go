package service

import (
	"errors"
	"strings"

	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/internal/app/repository"
	"github.com/ikkim/dongnegage-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrStoreNotFound     = errors.New("store not found")
	ErrStoreAccessDenied = errors.New("store access denied")
)

// 매장 목록 기본 페이지 크기
const defaultStorePageSize = 4

// 검색 결과 최대 건수
const searchResultLimit = 5

type CreateStoreInput struct {
	Name        string
	Description string
	Tags        []string
	PhotoURL    string
}

type UpdateStoreInput struct {
	Name        *string
	Description *string
	Tags        *[]string
	PhotoURL    *string
}

// StorePage는 페이지네이션 메타데이터를 포함한 매장 목록입니다
type StorePage struct {
	Stores []model.Store `json:"stores"`
	Page   int           `json:"page"`
	Pages  int           `json:"pages"`
	Total  int64         `json:"total"`
}

type StoreService interface {
	Create(userID uint, input CreateStoreInput) (*model.Store, error)
	Update(userID, storeID uint, input UpdateStoreInput) (*model.Store, error)
	Delete(userID, storeID uint) error
	List(page, limit int, search, tag string) (*StorePage, error)
	GetByID(id uint) (*model.Store, error)
	GetBySlug(slug string) (*model.Store, error)
	Search(query string) ([]model.Store, error)
}

type storeService struct {
	storeRepo repository.StoreRepository
}

func NewStoreService(storeRepo repository.StoreRepository) StoreService {
	return &storeService{storeRepo: storeRepo}
}

// normalizeTags는 태그별 공백을 제거하고 빈 태그와 중복을 걸러냅니다
func normalizeTags(tags []string) model.StringArray {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tags))
	out := make(model.StringArray, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (s *storeService) Create(userID uint, input CreateStoreInput) (*model.Store, error) {
	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	if name == "" || description == "" {
		return nil, ErrValidation
	}

	store := &model.Store{
		UserID:      userID,
		Name:        name,
		Description: description,
		Tags:        normalizeTags(input.Tags),
		PhotoURL:    input.PhotoURL,
	}

	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}

	logger.Info("Store created", map[string]interface{}{
		"store_id": store.ID,
		"slug":     store.Slug,
		"user_id":  userID,
	})
	return store, nil
}

func (s *storeService) Update(userID, storeID uint, input UpdateStoreInput) (*model.Store, error) {
	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	// 작성자 본인만 수정할 수 있습니다
	if store.UserID != userID {
		logger.Warn("Store update denied: not the owner", map[string]interface{}{
			"store_id": storeID,
			"owner_id": store.UserID,
			"user_id":  userID,
		})
		return nil, ErrStoreAccessDenied
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrValidation
		}
		store.Name = name
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, ErrValidation
		}
		store.Description = description
	}
	if input.Tags != nil {
		store.Tags = normalizeTags(*input.Tags)
	}
	if input.PhotoURL != nil {
		store.PhotoURL = *input.PhotoURL
	}

	if err := s.storeRepo.Update(store); err != nil {
		return nil, err
	}

	logger.Info("Store updated", map[string]interface{}{
		"store_id": store.ID,
		"slug":     store.Slug,
	})
	return store, nil
}

func (s *storeService) Delete(userID, storeID uint) error {
	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoreNotFound
		}
		return err
	}

	if store.UserID != userID {
		return ErrStoreAccessDenied
	}

	return s.storeRepo.Delete(storeID)
}

func (s *storeService) List(page, limit int, search, tag string) (*StorePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultStorePageSize
	}

	filter := repository.StoreFilter{
		Search: strings.TrimSpace(search),
		Tag:    strings.TrimSpace(tag),
		Offset: (page - 1) * limit,
		Limit:  limit,
	}

	stores, total, err := s.storeRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	// 범위를 벗어난 페이지는 에러 대신 빈 목록을 돌려줍니다
	return &StorePage{
		Stores: stores,
		Page:   page,
		Pages:  pages,
		Total:  total,
	}, nil
}

func (s *storeService) GetByID(id uint) (*model.Store, error) {
	store, err := s.storeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return store, nil
}

func (s *storeService) GetBySlug(slug string) (*model.Store, error) {
	store, err := s.storeRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return store, nil
}

func (s *storeService) Search(query string) ([]model.Store, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Store{}, nil
	}
	return s.storeRepo.Search(query, searchResultLimit)
}
