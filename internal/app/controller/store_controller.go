package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/dongnegage-backend/internal/app/service"
	apperrors "github.com/ikkim/dongnegage-backend/internal/errors"
	"github.com/ikkim/dongnegage-backend/internal/middleware"
)

type StoreController struct {
	storeService   service.StoreService
	rankingService service.RankingService
	heartService   service.HeartService
}

func NewStoreController(
	storeService service.StoreService,
	rankingService service.RankingService,
	heartService service.HeartService,
) *StoreController {
	return &StoreController{
		storeService:   storeService,
		rankingService: rankingService,
		heartService:   heartService,
	}
}

type CreateStoreRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Tags        []string `json:"tags"`
	PhotoURL    string   `json:"photo_url"`
}

type UpdateStoreRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	PhotoURL    *string   `json:"photo_url"`
}

// parseIDParam은 URL 경로의 :id를 uint로 변환합니다
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 ID 형식입니다")
		return 0, false
	}
	return uint(id), true
}

// List returns a paginated store listing
// GET /api/v1/stores?page=1&limit=4&search=&tag=
func (ctrl *StoreController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))

	result, err := ctrl.storeService.List(page, limit, c.Query("search"), c.Query("tag"))
	if err != nil {
		log.Error("Failed to list stores", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Top returns the top-rated stores
// GET /api/v1/stores/top
func (ctrl *StoreController) Top(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ranked, err := ctrl.rankingService.TopStores()
	if err != nil {
		log.Error("Failed to compute top stores", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": ranked})
}

// Search returns stores matching a text query
// GET /api/v1/stores/search?q=
func (ctrl *StoreController) Search(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stores, err := ctrl.storeService.Search(c.Query("q"))
	if err != nil {
		log.Error("Store search failed", err, map[string]interface{}{
			"query": c.Query("q"),
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// GetBySlug returns a single store page payload
// GET /api/v1/stores/slug/:slug
func (ctrl *StoreController) GetBySlug(c *gin.Context) {
	store, err := ctrl.storeService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "매장을 찾을 수 없습니다")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": store})
}

// GetByID returns a single store by numeric ID
// GET /api/v1/stores/:id
func (ctrl *StoreController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	store, err := ctrl.storeService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "매장을 찾을 수 없습니다")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": store})
}

// Create registers a new store
// POST /api/v1/stores
func (ctrl *StoreController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	store, err := ctrl.storeService.Create(userID, service.CreateStoreInput{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "매장명과 소개를 입력해주세요")
			return
		}
		log.Error("Store creation failed", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create store")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "매장이 등록되었습니다",
		"store":   store,
	})
}

// Update modifies an existing store (owner only)
// PUT /api/v1/stores/:id
func (ctrl *StoreController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	store, err := ctrl.storeService.Update(userID, id, service.UpdateStoreInput{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			apperrors.NotFound(c, apperrors.StoreNotFound, "매장을 찾을 수 없습니다")
		case errors.Is(err, service.ErrStoreAccessDenied):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "본인이 등록한 매장만 수정할 수 있습니다")
		case errors.Is(err, service.ErrValidation):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		default:
			log.Error("Store update failed", err, map[string]interface{}{
				"store_id": id,
				"user_id":  userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update store")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "매장 정보가 수정되었습니다",
		"store":   store,
	})
}

// Delete removes a store (owner only)
// DELETE /api/v1/stores/:id
func (ctrl *StoreController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.storeService.Delete(userID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			apperrors.NotFound(c, apperrors.StoreNotFound, "매장을 찾을 수 없습니다")
		case errors.Is(err, service.ErrStoreAccessDenied):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "본인이 등록한 매장만 삭제할 수 있습니다")
		default:
			log.Error("Store deletion failed", err, map[string]interface{}{
				"store_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete store")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "매장이 삭제되었습니다"})
}
