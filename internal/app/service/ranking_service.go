package service

import (
	"sort"

	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/internal/app/repository"
	"github.com/ikkim/dongnegage-backend/pkg/logger"
)

// 랭킹에 들어가기 위한 최소 리뷰 수
const minReviewsForRanking = 2

// 랭킹 최대 매장 수
const topStoreLimit = 10

// TopStore는 평균 평점이 계산된 랭킹 항목입니다
type TopStore struct {
	Store         model.Store `json:"store"`
	AverageRating float64     `json:"average_rating"`
	ReviewCount   int         `json:"review_count"`
}

type RankingService interface {
	TopStores() ([]TopStore, error)
}

type rankingService struct {
	storeRepo  repository.StoreRepository
	reviewRepo repository.ReviewRepository
}

func NewRankingService(
	storeRepo repository.StoreRepository,
	reviewRepo repository.ReviewRepository,
) RankingService {
	return &rankingService{
		storeRepo:  storeRepo,
		reviewRepo: reviewRepo,
	}
}

// TopStores는 리뷰가 2건 이상인 매장을 평균 평점 내림차순으로 최대 10곳
// 반환합니다. 평점 합산은 매장별 리뷰를 한 번의 쿼리로 모아 계산합니다.
func (s *rankingService) TopStores() ([]TopStore, error) {
	stores, _, err := s.storeRepo.FindAll(repository.StoreFilter{})
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return []TopStore{}, nil
	}

	ids := make([]uint, len(stores))
	byID := make(map[uint]*model.Store, len(stores))
	for i := range stores {
		ids[i] = stores[i].ID
		byID[stores[i].ID] = &stores[i]
	}

	rows, err := s.reviewRepo.RatingsByStoreIDs(ids)
	if err != nil {
		return nil, err
	}

	sums := make(map[uint]int)
	counts := make(map[uint]int)
	for _, row := range rows {
		sums[row.StoreID] += row.Rating
		counts[row.StoreID]++
	}

	ranked := make([]TopStore, 0, len(counts))
	for id, count := range counts {
		if count < minReviewsForRanking {
			continue
		}
		store, ok := byID[id]
		if !ok {
			continue
		}
		ranked = append(ranked, TopStore{
			Store:         *store,
			AverageRating: float64(sums[id]) / float64(count),
			ReviewCount:   count,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].AverageRating != ranked[j].AverageRating {
			return ranked[i].AverageRating > ranked[j].AverageRating
		}
		// 동률은 매장 ID 오름차순으로 고정해 순서를 안정화합니다
		return ranked[i].Store.ID < ranked[j].Store.ID
	})

	if len(ranked) > topStoreLimit {
		ranked = ranked[:topStoreLimit]
	}

	logger.Debug("Top stores computed", map[string]interface{}{
		"count": len(ranked),
	})
	return ranked, nil
}
