package service

import (
	"testing"

	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/internal/app/repository"
	"github.com/ikkim/dongnegage-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReviewServiceTest(t *testing.T) (ReviewService, *model.User, *model.Store) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := &model.User{Email: "critic@example.com", PasswordHash: "hashed", Name: "리뷰어"}
	require.NoError(t, testDB.Create(user).Error)

	store := &model.Store{UserID: user.ID, Name: "Reviewed", Description: "d"}
	require.NoError(t, testDB.Create(store).Error)

	svc := NewReviewService(
		repository.NewReviewRepository(testDB),
		repository.NewStoreRepository(testDB),
	)
	return svc, user, store
}

func TestReviewService_Create(t *testing.T) {
	svc, user, store := setupReviewServiceTest(t)

	tests := []struct {
		name    string
		storeID uint
		rating  int
		wantErr error
	}{
		{name: "정상 리뷰", storeID: store.ID, rating: 4, wantErr: nil},
		{name: "평점 최소값", storeID: store.ID, rating: 1, wantErr: nil},
		{name: "평점 최대값", storeID: store.ID, rating: 5, wantErr: nil},
		{name: "평점 0", storeID: store.ID, rating: 0, wantErr: ErrInvalidRating},
		{name: "평점 6", storeID: store.ID, rating: 6, wantErr: ErrInvalidRating},
		{name: "없는 매장", storeID: 9999, rating: 3, wantErr: ErrStoreNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review, err := svc.Create(user.ID, tt.storeID, tt.rating, "  좋아요  ")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.rating, review.Rating)
			assert.Equal(t, "좋아요", review.Content)
		})
	}
}

func TestReviewService_ListByStore(t *testing.T) {
	svc, user, store := setupReviewServiceTest(t)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(user.ID, store.ID, 4, "리뷰")
		require.NoError(t, err)
	}

	page, err := svc.ListByStore(store.ID, 1, 4)
	require.NoError(t, err)
	assert.Len(t, page.Reviews, 4)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 2, page.Pages)

	_, err = svc.ListByStore(9999, 1, 4)
	assert.ErrorIs(t, err, ErrStoreNotFound)
}
