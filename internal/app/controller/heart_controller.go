package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/dongnegage-backend/internal/app/service"
	apperrors "github.com/ikkim/dongnegage-backend/internal/errors"
	"github.com/ikkim/dongnegage-backend/internal/middleware"
)

type HeartController struct {
	heartService service.HeartService
}

func NewHeartController(heartService service.HeartService) *HeartController {
	return &HeartController{heartService: heartService}
}

// Toggle flips the heart state for a store
// POST /api/v1/stores/:id/heart
func (ctrl *HeartController) Toggle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	storeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := ctrl.heartService.Toggle(userID, storeID)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "매장을 찾을 수 없습니다")
			return
		}
		log.Error("Heart toggle failed", err, map[string]interface{}{
			"store_id": storeID,
			"user_id":  userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListHearts returns the stores the current user has hearted
// GET /api/v1/hearts
func (ctrl *HeartController) ListHearts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	stores, err := ctrl.heartService.ListHearts(userID)
	if err != nil {
		log.Error("Failed to list hearted stores", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": stores})
}
