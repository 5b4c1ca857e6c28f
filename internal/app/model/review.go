package model

import (
	"time"

	"gorm.io/gorm"
)

// Review 매장 리뷰 모델
// 랭킹 파이프라인에서는 rating만 읽어서 사용합니다
type Review struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	StoreID uint   `gorm:"not null;index" json:"store_id"`            // 매장 ID
	Store   Store  `gorm:"foreignKey:StoreID" json:"store,omitempty"` // 매장 정보
	UserID  uint   `gorm:"not null;index" json:"user_id"`             // 작성자 ID
	User    User   `gorm:"foreignKey:UserID" json:"user,omitempty"`   // 작성자 정보
	Rating  int    `gorm:"not null" json:"rating"`                    // 평점 (1-5)
	Content string `gorm:"type:text" json:"content"`                  // 리뷰 내용
}

func (Review) TableName() string {
	return "reviews"
}
