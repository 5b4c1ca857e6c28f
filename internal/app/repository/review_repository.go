package repository

import (
	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/pkg/logger"
	"gorm.io/gorm"
)

// RatingRow는 랭킹 집계용 (매장 ID, 평점) 한 쌍입니다
type RatingRow struct {
	StoreID uint
	Rating  int
}

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByStoreID(storeID uint, offset, limit int) ([]model.Review, int64, error)
	RatingsByStoreIDs(storeIDs []uint) ([]RatingRow, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"store_id": review.StoreID,
		"user_id":  review.UserID,
		"rating":   review.Rating,
	})

	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"store_id": review.StoreID,
			"user_id":  review.UserID,
		})
		return err
	}

	logger.Debug("Review created in database", map[string]interface{}{
		"review_id": review.ID,
		"store_id":  review.StoreID,
	})
	return nil
}

func (r *reviewRepository) FindByStoreID(storeID uint, offset, limit int) ([]model.Review, int64, error) {
	logger.Debug("Finding reviews by store ID", map[string]interface{}{
		"store_id": storeID,
		"offset":   offset,
		"limit":    limit,
	})

	query := r.db.Model(&model.Review{}).Where("store_id = ?", storeID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count reviews", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, 0, err
	}

	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var reviews []model.Review
	err := query.Preload("User").Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find reviews", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, 0, err
	}

	logger.Debug("Reviews found", map[string]interface{}{
		"store_id": storeID,
		"count":    len(reviews),
		"total":    total,
	})
	return reviews, total, nil
}

// RatingsByStoreIDs는 매장 ID 목록에 속한 전체 평점을 한 번의 쿼리로 가져옵니다
func (r *reviewRepository) RatingsByStoreIDs(storeIDs []uint) ([]RatingRow, error) {
	if len(storeIDs) == 0 {
		return nil, nil
	}

	logger.Debug("Fetching ratings for stores", map[string]interface{}{
		"store_count": len(storeIDs),
	})

	var rows []RatingRow
	err := r.db.Model(&model.Review{}).
		Select("store_id", "rating").
		Where("store_id IN ?", storeIDs).
		Find(&rows).Error
	if err != nil {
		logger.Error("Failed to fetch ratings for stores", err, map[string]interface{}{
			"store_count": len(storeIDs),
		})
		return nil, err
	}

	logger.Debug("Ratings fetched", map[string]interface{}{
		"rating_count": len(rows),
	})
	return rows, nil
}
