package model

import (
	"crypto/md5"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`              // 사용자 ID
	Email        string         `gorm:"uniqueIndex;not null" json:"email"` // 이메일 (소문자 저장)
	PasswordHash string         `gorm:"not null" json:"-"`                 // 비밀번호 해시
	Name         string         `gorm:"not null" json:"name"`              // 이름
	CreatedAt    time.Time      `json:"created_at"`                        // 생성 시각
	UpdatedAt    time.Time      `json:"updated_at"`                        // 수정 시각
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                    // 삭제 시각(소프트 삭제)

	Stores []Store      `gorm:"foreignKey:UserID" json:"stores,omitempty"` // 등록한 매장 목록
	Hearts []StoreHeart `gorm:"foreignKey:UserID" json:"-"`                // 찜한 매장 목록
}

func (User) TableName() string {
	return "users"
}

// GravatarURL은 이메일의 md5 해시로 그라바타 프로필 이미지 URL을 만듭니다
// DB에는 저장하지 않음
func (u *User) GravatarURL() string {
	hash := md5.Sum([]byte(u.Email))
	return fmt.Sprintf("https://gravatar.com/avatar/%x?s=200", hash)
}
