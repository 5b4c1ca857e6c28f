package repository

import (
	"testing"

	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupHeartTest(t *testing.T) (*gorm.DB, HeartRepository, *model.User, *model.Store) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := &model.User{
		Email:        "hearter@example.com",
		PasswordHash: "hashed",
		Name:         "단골손님",
	}
	require.NoError(t, testDB.Create(user).Error)

	store := &model.Store{
		UserID:      user.ID,
		Name:        "Heart Target",
		Description: "desc",
	}
	require.NoError(t, testDB.Create(store).Error)

	return testDB, NewHeartRepository(testDB), user, store
}

func TestHeartRepository_Toggle(t *testing.T) {
	_, repo, user, store := setupHeartTest(t)

	// 첫 토글은 찜 추가
	hearted, err := repo.Toggle(user.ID, store.ID)
	require.NoError(t, err)
	assert.True(t, hearted)

	ids, err := repo.ListStoreIDs(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{store.ID}, ids)

	// 두 번째 토글은 찜 해제
	hearted, err = repo.Toggle(user.ID, store.ID)
	require.NoError(t, err)
	assert.False(t, hearted)

	ids, err = repo.ListStoreIDs(user.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// 세 번째 토글로 다시 찜 상태로 돌아옵니다
	hearted, err = repo.Toggle(user.ID, store.ID)
	require.NoError(t, err)
	assert.True(t, hearted)
}

func TestHeartRepository_Toggle_PerUserIndependent(t *testing.T) {
	testDB, repo, user, store := setupHeartTest(t)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hashed",
		Name:         "다른손님",
	}
	require.NoError(t, testDB.Create(other).Error)

	_, err := repo.Toggle(user.ID, store.ID)
	require.NoError(t, err)
	_, err = repo.Toggle(other.ID, store.ID)
	require.NoError(t, err)

	// 한 사용자의 찜 해제가 다른 사용자의 찜에 영향을 주면 안 됩니다
	hearted, err := repo.Toggle(user.ID, store.ID)
	require.NoError(t, err)
	assert.False(t, hearted)

	ids, err := repo.ListStoreIDs(other.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{store.ID}, ids)
}

func TestHeartRepository_FindHeartedStores(t *testing.T) {
	testDB, repo, user, store := setupHeartTest(t)

	second := &model.Store{
		UserID:      user.ID,
		Name:        "Second Store",
		Description: "desc",
	}
	require.NoError(t, testDB.Create(second).Error)

	_, err := repo.Toggle(user.ID, store.ID)
	require.NoError(t, err)
	_, err = repo.Toggle(user.ID, second.ID)
	require.NoError(t, err)

	stores, err := repo.FindHeartedStores(user.ID)
	require.NoError(t, err)
	assert.Len(t, stores, 2)
}
