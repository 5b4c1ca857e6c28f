package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/dongnegage-backend/internal/app/model"
	"github.com/ikkim/dongnegage-backend/internal/app/repository"
	"github.com/ikkim/dongnegage-backend/internal/app/service"
	"github.com/ikkim/dongnegage-backend/internal/db"
	"github.com/ikkim/dongnegage-backend/internal/middleware"
	"github.com/ikkim/dongnegage-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type storeTestEnv struct {
	router *gin.Engine
	db     *gorm.DB
	user   *model.User
	token  string
}

func setupStoreControllerTest(t *testing.T) *storeTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := &model.User{Email: "owner@example.com", PasswordHash: "hashed", Name: "사장님"}
	require.NoError(t, testDB.Create(user).Error)

	tokens, err := util.GenerateTokenPair(user.ID, user.Email, "test-secret", 15*time.Minute, time.Hour)
	require.NoError(t, err)

	storeRepo := repository.NewStoreRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)
	heartRepo := repository.NewHeartRepository(testDB)

	storeService := service.NewStoreService(storeRepo)
	rankingService := service.NewRankingService(storeRepo, reviewRepo)
	heartService := service.NewHeartService(heartRepo, storeRepo)
	reviewService := service.NewReviewService(reviewRepo, storeRepo)

	storeCtrl := NewStoreController(storeService, rankingService, heartService)
	reviewCtrl := NewReviewController(reviewService)
	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()
	router.GET("/stores", storeCtrl.List)
	router.GET("/stores/top", storeCtrl.Top)
	router.GET("/stores/search", storeCtrl.Search)
	router.GET("/stores/slug/:slug", storeCtrl.GetBySlug)
	router.GET("/stores/:id", storeCtrl.GetByID)
	router.POST("/stores", authMiddleware.Authenticate(), storeCtrl.Create)
	router.PUT("/stores/:id", authMiddleware.Authenticate(), storeCtrl.Update)
	router.DELETE("/stores/:id", authMiddleware.Authenticate(), storeCtrl.Delete)
	router.POST("/stores/:id/reviews", authMiddleware.Authenticate(), reviewCtrl.Create)
	router.GET("/stores/:id/reviews", reviewCtrl.ListByStore)

	return &storeTestEnv{
		router: router,
		db:     testDB,
		user:   user,
		token:  tokens.AccessToken,
	}
}

func (env *storeTestEnv) request(method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+env.token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestStoreController_Create(t *testing.T) {
	env := setupStoreControllerTest(t)

	t.Run("정상 생성", func(t *testing.T) {
		w := env.request("POST", "/stores", CreateStoreRequest{
			Name:        "Candy Shop",
			Description: "sweets",
			Tags:        []string{"디저트"},
		}, true)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"slug":"candy-shop"`)
	})

	t.Run("인증 없이 거부", func(t *testing.T) {
		w := env.request("POST", "/stores", CreateStoreRequest{
			Name:        "No Auth",
			Description: "desc",
		}, false)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("필수 필드 누락", func(t *testing.T) {
		w := env.request("POST", "/stores", gin.H{"name": "Only Name"}, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStoreController_GetBySlug(t *testing.T) {
	env := setupStoreControllerTest(t)

	w := env.request("POST", "/stores", CreateStoreRequest{
		Name:        "Slug Store",
		Description: "desc",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request("GET", "/stores/slug/slug-store", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Slug Store")

	w = env.request("GET", "/stores/slug/missing", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "STORE_NOT_FOUND")
}

func TestStoreController_Update_OwnerOnly(t *testing.T) {
	env := setupStoreControllerTest(t)

	w := env.request("POST", "/stores", CreateStoreRequest{
		Name:        "Mine",
		Description: "desc",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var createResp struct {
		Store model.Store `json:"store"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))

	// 다른 사용자의 토큰으로 수정 시도
	other := &model.User{Email: "other@example.com", PasswordHash: "hashed", Name: "남"}
	require.NoError(t, env.db.Create(other).Error)
	otherTokens, err := util.GenerateTokenPair(other.ID, other.Email, "test-secret", 15*time.Minute, time.Hour)
	require.NoError(t, err)

	newName := "Stolen"
	data, _ := json.Marshal(UpdateStoreRequest{Name: &newName})
	req := httptest.NewRequest("PUT", fmt.Sprintf("/stores/%d", createResp.Store.ID), bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+otherTokens.AccessToken)
	w2 := httptest.NewRecorder()
	env.router.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusForbidden, w2.Code)
	assert.Contains(t, w2.Body.String(), "AUTHZ_OWNER_ONLY")

	// 소유자는 수정 가능
	w3 := env.request("PUT", fmt.Sprintf("/stores/%d", createResp.Store.ID), UpdateStoreRequest{Name: &newName}, true)
	assert.Equal(t, http.StatusOK, w3.Code)
	assert.Contains(t, w3.Body.String(), `"slug":"stolen"`)
}

func TestStoreController_List_Pagination(t *testing.T) {
	env := setupStoreControllerTest(t)

	for i := 0; i < 6; i++ {
		w := env.request("POST", "/stores", CreateStoreRequest{
			Name:        fmt.Sprintf("Store %d", i),
			Description: "desc",
		}, true)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.request("GET", "/stores?page=2&limit=4", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp service.StorePage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Stores, 2)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 2, resp.Pages)
	assert.Equal(t, int64(6), resp.Total)
}

func TestStoreController_TopStores(t *testing.T) {
	env := setupStoreControllerTest(t)

	w := env.request("POST", "/stores", CreateStoreRequest{
		Name:        "Rated Store",
		Description: "desc",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var createResp struct {
		Store model.Store `json:"store"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))

	// 리뷰 1건이면 랭킹 제외
	w = env.request("POST", fmt.Sprintf("/stores/%d/reviews", createResp.Store.ID), CreateReviewRequest{
		Rating: 5, Content: "좋아요",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request("GET", "/stores/top", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Rated Store")

	// 리뷰 2건째부터 랭킹 포함
	w = env.request("POST", fmt.Sprintf("/stores/%d/reviews", createResp.Store.ID), CreateReviewRequest{
		Rating: 4, Content: "또 좋아요",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request("GET", "/stores/top", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rated Store")
	assert.Contains(t, w.Body.String(), `"average_rating":4.5`)
}

func TestReviewController_InvalidRating(t *testing.T) {
	env := setupStoreControllerTest(t)

	w := env.request("POST", "/stores", CreateStoreRequest{
		Name:        "Review Target",
		Description: "desc",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var createResp struct {
		Store model.Store `json:"store"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))

	w = env.request("POST", fmt.Sprintf("/stores/%d/reviews", createResp.Store.ID), gin.H{
		"rating": 6, "content": "너무 좋아요",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "REVIEW_INVALID_RATING")
}
