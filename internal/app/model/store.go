package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

// StringArray는 TEXT 컬럼에 JSON 배열로 저장되는 커스텀 타입
// (PostgreSQL과 SQLite 테스트 DB에서 동일하게 동작)
type StringArray []string

// Value는 database/sql/driver.Valuer 인터페이스 구현
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan은 database/sql.Scanner 인터페이스 구현
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("failed to scan StringArray")
	}
}

type Store struct {
	ID          uint        `gorm:"primarykey" json:"id"`           // 고유 매장 ID
	UserID      uint        `gorm:"not null;index" json:"user_id"`  // 작성자 ID
	User        User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"author,omitempty"`
	Name        string      `gorm:"not null" json:"name"`           // 매장명
	Slug        string      `gorm:"uniqueIndex" json:"slug"`        // URL용 고유 식별자 (SEO)
	Description string      `gorm:"type:text;not null" json:"description"` // 매장 소개
	Tags        StringArray `gorm:"type:text" json:"tags"`          // 태그 목록
	PhotoURL    string      `json:"photo_url"`                      // 매장 이미지

	CreatedAt time.Time      `json:"created_at"`     // 생성 시각
	UpdatedAt time.Time      `json:"updated_at"`     // 수정 시각
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 삭제 시각(소프트 삭제)

	Reviews []Review `gorm:"foreignKey:StoreID" json:"reviews,omitempty"` // 리뷰 목록
}

func (Store) TableName() string {
	return "stores"
}

// StoreHeart 매장 찜 모델 (사용자별 찜 집합의 원소 하나)
type StoreHeart struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	StoreID uint `gorm:"not null;index:idx_store_user_heart,unique" json:"store_id"` // 매장 ID
	UserID  uint `gorm:"not null;index:idx_store_user_heart,unique" json:"user_id"`  // 사용자 ID

	Store Store `gorm:"foreignKey:StoreID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}

func (StoreHeart) TableName() string {
	return "store_hearts"
}

// generateSlug는 매장명으로 URL용 slug를 생성합니다
func generateSlug(name string) string {
	slug := name

	// 특수문자 제거 (한글, 영문, 숫자, 하이픈만 허용)
	reg := regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	slug = reg.ReplaceAllString(slug, "-")

	// 연속된 하이픈을 하나로
	reg = regexp.MustCompile(`-+`)
	slug = reg.ReplaceAllString(slug, "-")

	// 앞뒤 하이픈 제거
	slug = strings.Trim(slug, "-")

	// 소문자로 변환 (영문만)
	slug = strings.ToLower(slug)

	return slug
}

// assignUniqueSlug는 baseSlug에 빈 자리가 나올 때까지 숫자 접미사를 붙입니다.
// excludeID가 0이 아니면 해당 매장 자신은 중복 체크에서 제외합니다.
// slug 컬럼의 유니크 인덱스가 최종 안전장치 역할을 합니다.
func assignUniqueSlug(tx *gorm.DB, baseSlug string, excludeID uint) (string, error) {
	slug := baseSlug
	counter := 1
	for {
		query := tx.Model(&Store{}).Where("slug = ?", slug)
		if excludeID != 0 {
			query = query.Where("id != ?", excludeID)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}

		if count == 0 {
			return slug, nil
		}

		counter++
		slug = fmt.Sprintf("%s-%d", baseSlug, counter)
	}
}

// BeforeCreate는 매장 생성 전에 slug를 자동 생성합니다
func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.Slug == "" {
		slug, err := assignUniqueSlug(tx, generateSlug(s.Name), 0)
		if err != nil {
			return err
		}
		s.Slug = slug
	}
	return nil
}

// BeforeUpdate는 매장 수정 시 이름이 변경된 경우에만 slug를 재생성합니다.
// 이름과 무관한 수정에서는 기존 URL이 유지됩니다.
func (s *Store) BeforeUpdate(tx *gorm.DB) error {
	var oldStore Store
	if err := tx.First(&oldStore, s.ID).Error; err != nil {
		return err
	}

	if s.Name != oldStore.Name {
		slug, err := assignUniqueSlug(tx, generateSlug(s.Name), s.ID)
		if err != nil {
			return err
		}
		s.Slug = slug
	}
	return nil
}
