package service

import (
	"errors"
	"strings"

	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/internal/app/repository"
	"github.com/ikkim/dongnegage-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// 리뷰 목록 기본 페이지 크기
const defaultReviewPageSize = 4

// ReviewPage는 페이지네이션 메타데이터를 포함한 리뷰 목록입니다
type ReviewPage struct {
	Reviews []model.Review `json:"reviews"`
	Page    int            `json:"page"`
	Pages   int            `json:"pages"`
	Total   int64          `json:"total"`
}

type ReviewService interface {
	Create(userID, storeID uint, rating int, content string) (*model.Review, error)
	ListByStore(storeID uint, page, limit int) (*ReviewPage, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	storeRepo  repository.StoreRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	storeRepo repository.StoreRepository,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		storeRepo:  storeRepo,
	}
}

func (s *reviewService) Create(userID, storeID uint, rating int, content string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.storeRepo.FindByID(storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	review := &model.Review{
		StoreID: storeID,
		UserID:  userID,
		Rating:  rating,
		Content: strings.TrimSpace(content),
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id": review.ID,
		"store_id":  storeID,
		"user_id":   userID,
		"rating":    rating,
	})
	return review, nil
}

func (s *reviewService) ListByStore(storeID uint, page, limit int) (*ReviewPage, error) {
	if _, err := s.storeRepo.FindByID(storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultReviewPageSize
	}

	reviews, total, err := s.reviewRepo.FindByStoreID(storeID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return &ReviewPage{
		Reviews: reviews,
		Page:    page,
		Pages:   pages,
		Total:   total,
	}, nil
}
