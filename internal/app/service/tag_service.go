package service

import (
	"sort"
	"strings"

	"github.com/ikkim/dongnegage-backend/internal/app/repository"
	"github.com/ikkim/dongnegage-backend/pkg/logger"
)

// TagCount는 태그와 해당 태그를 가진 매장 수입니다
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type TagService interface {
	ListTags() ([]TagCount, error)
	StoresByTag(tag string, page, limit int) (*StorePage, error)
}

type tagService struct {
	storeRepo repository.StoreRepository
	storeSvc  StoreService
}

func NewTagService(storeRepo repository.StoreRepository, storeSvc StoreService) TagService {
	return &tagService{
		storeRepo: storeRepo,
		storeSvc:  storeSvc,
	}
}

// ListTags는 전체 매장의 태그 히스토그램을 반환합니다.
// 한 매장이 같은 태그를 중복으로 가져도 한 번만 셉니다.
// 정렬은 매장 수 내림차순, 동률이면 태그명 오름차순입니다.
func (s *tagService) ListTags() ([]TagCount, error) {
	rows, err := s.storeRepo.ListTagSets()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, row := range rows {
		seen := make(map[string]struct{}, len(row.Tags))
		for _, tag := range row.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			counts[tag]++
		}
	}

	result := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		result = append(result, TagCount{Tag: tag, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Tag < result[j].Tag
	})

	logger.Debug("Tag histogram computed", map[string]interface{}{
		"tag_count": len(result),
	})
	return result, nil
}

func (s *tagService) StoresByTag(tag string, page, limit int) (*StorePage, error) {
	return s.storeSvc.List(page, limit, "", tag)
}
