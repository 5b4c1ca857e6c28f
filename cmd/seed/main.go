package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ikkim/dongnegage-backend/config"
	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/internal/app/repository"
	"github.com/ikkim/dongnegage-backend/internal/db"
	"github.com/ikkim/dongnegage-backend/pkg/util"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// 시드 데이터를 소유할 기본 계정
const (
	seedUserEmail    = "seed@dongnegage.local"
	seedUserName     = "동네가게"
	seedUserPassword = "seed-password-change-me"
)

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// 시드 소유자 계정 준비
	userRepo := repository.NewUserRepository(db.GetDB())
	owner, err := ensureSeedUser(userRepo)
	if err != nil {
		log.Fatal("Failed to prepare seed user:", err)
	}

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	stores, err := readStoresFromXLSX(filePath, owner.ID)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total stores to import: %d\n", len(stores))

	// 사용자 확인
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	// 배치로 저장
	storeRepo := repository.NewStoreRepository(db.GetDB())
	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := storeRepo.BulkCreate(stores, batchSize); err != nil {
		log.Fatal("Failed to bulk create stores:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total stores imported: %d\n", len(stores))
}

// ensureSeedUser는 시드 매장을 소유할 계정을 찾거나 생성합니다
func ensureSeedUser(userRepo repository.UserRepository) (*model.User, error) {
	user, err := userRepo.FindByEmail(seedUserEmail)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := util.HashPassword(seedUserPassword)
	if err != nil {
		return nil, err
	}

	user = &model.User{
		Email:        seedUserEmail,
		PasswordHash: hashed,
		Name:         seedUserName,
	}
	if err := userRepo.Create(user); err != nil {
		return nil, err
	}

	fmt.Printf("Created seed user: %s\n", seedUserEmail)
	return user, nil
}

// readStoresFromXLSX는 첫 시트에서 매장 데이터를 읽습니다.
// 컬럼 순서: 매장명 | 소개 | 태그(쉼표 구분) | 사진 URL
func readStoresFromXLSX(filePath string, ownerID uint) ([]model.Store, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var stores []model.Store
	seen := make(map[string]bool) // 매장명 중복 제거용
	skippedCount := 0

	// 첫 행은 헤더이므로 스킵
	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 2 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		description := strings.TrimSpace(row[1])
		if name == "" || description == "" {
			skippedCount++
			continue
		}
		if seen[name] {
			skippedCount++
			continue
		}
		seen[name] = true

		var tags model.StringArray
		if len(row) > 2 {
			for _, tag := range strings.Split(row[2], ",") {
				tag = strings.TrimSpace(tag)
				if tag != "" {
					tags = append(tags, tag)
				}
			}
		}

		var photoURL string
		if len(row) > 3 {
			photoURL = strings.TrimSpace(row[3])
		}

		stores = append(stores, model.Store{
			UserID:      ownerID,
			Name:        name,
			Description: description,
			Tags:        tags,
			PhotoURL:    photoURL,
		})
	}

	if skippedCount > 0 {
		fmt.Printf("Skipped rows: %d\n", skippedCount)
	}

	return stores, nil
}
