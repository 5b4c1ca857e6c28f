package repository

import (
	"testing"

	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepository_RatingsByStoreIDs(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := &model.User{Email: "reviewer@example.com", PasswordHash: "hashed", Name: "리뷰어"}
	require.NoError(t, testDB.Create(user).Error)

	storeA := &model.Store{UserID: user.ID, Name: "Store A", Description: "d"}
	storeB := &model.Store{UserID: user.ID, Name: "Store B", Description: "d"}
	require.NoError(t, testDB.Create(storeA).Error)
	require.NoError(t, testDB.Create(storeB).Error)

	repo := NewReviewRepository(testDB)
	for _, rating := range []int{4, 5} {
		require.NoError(t, repo.Create(&model.Review{
			StoreID: storeA.ID, UserID: user.ID, Rating: rating, Content: "리뷰",
		}))
	}
	require.NoError(t, repo.Create(&model.Review{
		StoreID: storeB.ID, UserID: user.ID, Rating: 3, Content: "리뷰",
	}))

	rows, err := repo.RatingsByStoreIDs([]uint{storeA.ID, storeB.ID})
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	byStore := map[uint][]int{}
	for _, row := range rows {
		byStore[row.StoreID] = append(byStore[row.StoreID], row.Rating)
	}
	assert.ElementsMatch(t, []int{4, 5}, byStore[storeA.ID])
	assert.ElementsMatch(t, []int{3}, byStore[storeB.ID])

	// 빈 입력은 쿼리 없이 빈 결과
	rows, err = repo.RatingsByStoreIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReviewRepository_FindByStoreID(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := &model.User{Email: "pager@example.com", PasswordHash: "hashed", Name: "리뷰어"}
	require.NoError(t, testDB.Create(user).Error)

	store := &model.Store{UserID: user.ID, Name: "Paged Store", Description: "d"}
	require.NoError(t, testDB.Create(store).Error)

	repo := NewReviewRepository(testDB)
	for i := 0; i < 6; i++ {
		require.NoError(t, repo.Create(&model.Review{
			StoreID: store.ID, UserID: user.ID, Rating: 5, Content: "리뷰",
		}))
	}

	reviews, total, err := repo.FindByStoreID(store.ID, 0, 4)
	require.NoError(t, err)
	assert.Len(t, reviews, 4)
	assert.Equal(t, int64(6), total)

	reviews, total, err = repo.FindByStoreID(store.ID, 4, 4)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.Equal(t, int64(6), total)
}
