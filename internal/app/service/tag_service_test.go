package service

import (
	"testing"

	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/internal/app/repository"
	"github.com/ikkim/dongnegage-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTagTest(t *testing.T) (*gorm.DB, TagService, *model.User) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := &model.User{Email: "tagger@example.com", PasswordHash: "hashed", Name: "사장님"}
	require.NoError(t, testDB.Create(user).Error)

	storeRepo := repository.NewStoreRepository(testDB)
	storeSvc := NewStoreService(storeRepo)
	return testDB, NewTagService(storeRepo, storeSvc), user
}

func createTaggedStore(t *testing.T, testDB *gorm.DB, user *model.User, name string, tags []string) {
	t.Helper()

	store := &model.Store{
		UserID:      user.ID,
		Name:        name,
		Description: "d",
		Tags:        model.StringArray(tags),
	}
	require.NoError(t, testDB.Create(store).Error)
}

func TestTagService_ListTags(t *testing.T) {
	testDB, svc, user := setupTagTest(t)

	createTaggedStore(t, testDB, user, "A", []string{"카페", "디저트"})
	createTaggedStore(t, testDB, user, "B", []string{"카페"})
	createTaggedStore(t, testDB, user, "C", []string{"식당", "디저트"})
	createTaggedStore(t, testDB, user, "D", nil)

	tags, err := svc.ListTags()
	require.NoError(t, err)
	require.Len(t, tags, 3)

	// 매장 수 내림차순, 동률은 태그명 오름차순
	assert.Equal(t, TagCount{Tag: "디저트", Count: 2}, tags[0])
	assert.Equal(t, TagCount{Tag: "카페", Count: 2}, tags[1])
	assert.Equal(t, TagCount{Tag: "식당", Count: 1}, tags[2])
}

func TestTagService_ListTags_CountsStoreOncePerTag(t *testing.T) {
	testDB, svc, user := setupTagTest(t)

	// 같은 태그가 중복 저장돼 있어도 매장당 한 번만 셉니다
	createTaggedStore(t, testDB, user, "A", []string{"카페", "카페"})

	tags, err := svc.ListTags()
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, 1, tags[0].Count)
}

func TestTagService_ListTags_Empty(t *testing.T) {
	_, svc, _ := setupTagTest(t)

	tags, err := svc.ListTags()
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagService_StoresByTag(t *testing.T) {
	testDB, svc, user := setupTagTest(t)

	createTaggedStore(t, testDB, user, "A", []string{"카페"})
	createTaggedStore(t, testDB, user, "B", []string{"식당"})

	page, err := svc.StoresByTag("카페", 1, 4)
	require.NoError(t, err)
	require.Len(t, page.Stores, 1)
	assert.Equal(t, "A", page.Stores[0].Name)
}
