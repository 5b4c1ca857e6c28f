package service

import (
	"fmt"
	"testing"

	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/internal/app/repository"
	"github.com/ikkim/dongnegage-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRankingTest(t *testing.T) (*gorm.DB, RankingService, *model.User) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := &model.User{Email: "ranker@example.com", PasswordHash: "hashed", Name: "리뷰어"}
	require.NoError(t, testDB.Create(user).Error)

	svc := NewRankingService(
		repository.NewStoreRepository(testDB),
		repository.NewReviewRepository(testDB),
	)
	return testDB, svc, user
}

func createStoreWithRatings(t *testing.T, testDB *gorm.DB, user *model.User, name string, ratings []int) *model.Store {
	t.Helper()

	store := &model.Store{UserID: user.ID, Name: name, Description: "d"}
	require.NoError(t, testDB.Create(store).Error)
	for _, rating := range ratings {
		review := &model.Review{StoreID: store.ID, UserID: user.ID, Rating: rating, Content: "리뷰"}
		require.NoError(t, testDB.Create(review).Error)
	}
	return store
}

func TestRankingService_TopStores(t *testing.T) {
	testDB, svc, user := setupRankingTest(t)

	// A: 리뷰 2건 평균 4.5, B: 리뷰 1건(제외), C: 리뷰 3건 평균 3.0
	storeA := createStoreWithRatings(t, testDB, user, "Store A", []int{4, 5})
	createStoreWithRatings(t, testDB, user, "Store B", []int{5})
	storeC := createStoreWithRatings(t, testDB, user, "Store C", []int{3, 3, 3})

	ranked, err := svc.TopStores()
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, storeA.ID, ranked[0].Store.ID)
	assert.InDelta(t, 4.5, ranked[0].AverageRating, 0.0001)
	assert.Equal(t, 2, ranked[0].ReviewCount)

	assert.Equal(t, storeC.ID, ranked[1].Store.ID)
	assert.InDelta(t, 3.0, ranked[1].AverageRating, 0.0001)
	assert.Equal(t, 3, ranked[1].ReviewCount)
}

func TestRankingService_TopStores_LimitsToTen(t *testing.T) {
	testDB, svc, user := setupRankingTest(t)

	for i := 0; i < 12; i++ {
		createStoreWithRatings(t, testDB, user, fmt.Sprintf("Store %d", i), []int{4, 4})
	}

	ranked, err := svc.TopStores()
	require.NoError(t, err)
	assert.Len(t, ranked, 10)
}

func TestRankingService_TopStores_Empty(t *testing.T) {
	testDB, svc, user := setupRankingTest(t)

	// 리뷰가 1건뿐인 매장만 있으면 랭킹은 비어 있습니다
	createStoreWithRatings(t, testDB, user, "Lonely Store", []int{5})

	ranked, err := svc.TopStores()
	require.NoError(t, err)
	assert.Empty(t, ranked)
}
