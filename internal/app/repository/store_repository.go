package repository

import (
	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/pkg/logger"
	"gorm.io/gorm"
)

type StoreFilter struct {
	Search string // 매장명 부분 일치
	Tag    string // 태그 정확 일치
	Offset int
	Limit  int
}

// TagSetRow는 태그 히스토그램 계산에 필요한 최소 컬럼만 담습니다
type TagSetRow struct {
	ID   uint
	Tags model.StringArray
}

type StoreRepository interface {
	Create(store *model.Store) error
	BulkCreate(stores []model.Store, batchSize int) error
	Update(store *model.Store) error
	Delete(id uint) error
	FindAll(filter StoreFilter) ([]model.Store, int64, error)
	FindByID(id uint) (*model.Store, error)
	FindBySlug(slug string) (*model.Store, error)
	Search(query string, limit int) ([]model.Store, error)
	ListTagSets() ([]TagSetRow, error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(store *model.Store) error {
	logger.Debug("Creating store in database", map[string]interface{}{
		"name":    store.Name,
		"user_id": store.UserID,
	})

	if err := r.db.Create(store).Error; err != nil {
		logger.Error("Failed to create store in database", err, map[string]interface{}{
			"name":    store.Name,
			"user_id": store.UserID,
		})
		return err
	}

	logger.Debug("Store created in database", map[string]interface{}{
		"store_id": store.ID,
		"slug":     store.Slug,
		"user_id":  store.UserID,
	})
	return nil
}

// BulkCreate는 대량 시드 데이터를 배치 단위로 삽입합니다.
// 각 매장의 slug는 생성 훅에서 채워집니다.
func (r *storeRepository) BulkCreate(stores []model.Store, batchSize int) error {
	logger.Info("Bulk creating stores", map[string]interface{}{
		"count":      len(stores),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(stores, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create stores", err, map[string]interface{}{
			"count": len(stores),
		})
		return err
	}
	return nil
}

func (r *storeRepository) Update(store *model.Store) error {
	logger.Debug("Updating store in database", map[string]interface{}{
		"store_id": store.ID,
		"name":     store.Name,
	})

	if err := r.db.Save(store).Error; err != nil {
		logger.Error("Failed to update store in database", err, map[string]interface{}{
			"store_id": store.ID,
			"name":     store.Name,
		})
		return err
	}

	logger.Debug("Store updated in database", map[string]interface{}{
		"store_id": store.ID,
		"slug":     store.Slug,
	})
	return nil
}

func (r *storeRepository) Delete(id uint) error {
	logger.Debug("Deleting store from database", map[string]interface{}{
		"store_id": id,
	})

	if err := r.db.Delete(&model.Store{}, id).Error; err != nil {
		logger.Error("Failed to delete store from database", err, map[string]interface{}{
			"store_id": id,
		})
		return err
	}

	logger.Debug("Store deleted from database", map[string]interface{}{
		"store_id": id,
	})
	return nil
}

func (r *storeRepository) FindAll(filter StoreFilter) ([]model.Store, int64, error) {
	logger.Debug("Finding stores", map[string]interface{}{
		"search": filter.Search,
		"tag":    filter.Tag,
		"offset": filter.Offset,
		"limit":  filter.Limit,
	})

	query := r.db.Model(&model.Store{})

	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Tag != "" {
		// 태그는 JSON 배열 텍스트로 저장되므로 따옴표 포함 부분 일치로 찾습니다
		query = query.Where(`tags LIKE ?`, `%"`+filter.Tag+`"%`)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count stores", err, nil)
		return nil, 0, err
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var stores []model.Store
	if err := query.Order("created_at DESC").Find(&stores).Error; err != nil {
		logger.Error("Failed to find stores", err, map[string]interface{}{
			"search": filter.Search,
			"tag":    filter.Tag,
		})
		return nil, 0, err
	}

	logger.Debug("Stores found", map[string]interface{}{
		"count": len(stores),
		"total": total,
	})
	return stores, total, nil
}

func (r *storeRepository) FindByID(id uint) (*model.Store, error) {
	logger.Debug("Finding store by ID", map[string]interface{}{
		"store_id": id,
	})

	var store model.Store
	if err := r.db.First(&store, id).Error; err != nil {
		logger.Error("Failed to find store", err, map[string]interface{}{
			"store_id": id,
		})
		return nil, err
	}

	logger.Debug("Store found", map[string]interface{}{
		"store_id": store.ID,
		"name":     store.Name,
	})
	return &store, nil
}

func (r *storeRepository) FindBySlug(slug string) (*model.Store, error) {
	logger.Debug("Finding store by slug", map[string]interface{}{
		"slug": slug,
	})

	var store model.Store
	err := r.db.Preload("User").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("slug = ?", slug).
		First(&store).Error
	if err != nil {
		logger.Error("Failed to find store by slug", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}

	logger.Debug("Store found by slug", map[string]interface{}{
		"store_id": store.ID,
		"slug":     store.Slug,
	})
	return &store, nil
}

// Search는 이름/소개 텍스트 일치로 매장을 찾고 저장소 레벨에서 관련도 순으로
// 정렬합니다 (이름 일치가 소개 일치보다 높은 점수)
func (r *storeRepository) Search(query string, limit int) ([]model.Store, error) {
	logger.Debug("Searching stores", map[string]interface{}{
		"query": query,
		"limit": limit,
	})

	like := "%" + query + "%"

	var stores []model.Store
	err := r.db.Model(&model.Store{}).
		Select("stores.*, (CASE WHEN name LIKE ? THEN 2 ELSE 0 END) + (CASE WHEN description LIKE ? THEN 1 ELSE 0 END) AS score", like, like).
		Where("name LIKE ? OR description LIKE ?", like, like).
		Order("score DESC, created_at DESC").
		Limit(limit).
		Find(&stores).Error
	if err != nil {
		logger.Error("Failed to search stores", err, map[string]interface{}{
			"query": query,
		})
		return nil, err
	}

	logger.Debug("Stores searched", map[string]interface{}{
		"query": query,
		"count": len(stores),
	})
	return stores, nil
}

// ListTagSets는 전체 매장의 (id, tags) 목록을 반환합니다.
// 히스토그램 집계는 서비스 레이어에서 수행합니다.
func (r *storeRepository) ListTagSets() ([]TagSetRow, error) {
	logger.Debug("Listing tag sets for all stores")

	var stores []model.Store
	if err := r.db.Select("id", "tags").Find(&stores).Error; err != nil {
		logger.Error("Failed to list tag sets", err)
		return nil, err
	}

	rows := make([]TagSetRow, len(stores))
	for i, store := range stores {
		rows[i] = TagSetRow{ID: store.ID, Tags: store.Tags}
	}

	logger.Debug("Tag sets listed", map[string]interface{}{
		"count": len(rows),
	})
	return rows, nil
}
