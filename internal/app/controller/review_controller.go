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

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Content string `json:"content"`
}

// Create adds a review to a store
// POST /api/v1/stores/:id/reviews
func (ctrl *ReviewController) Create(c *gin.Context) {
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

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "평점은 1에서 5 사이여야 합니다")
		return
	}

	review, err := ctrl.reviewService.Create(userID, storeID, req.Rating, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			apperrors.NotFound(c, apperrors.StoreNotFound, "매장을 찾을 수 없습니다")
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "평점은 1에서 5 사이여야 합니다")
		default:
			log.Error("Review creation failed", err, map[string]interface{}{
				"store_id": storeID,
				"user_id":  userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create review")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "리뷰가 등록되었습니다",
		"review":  review,
	})
}

// ListByStore returns reviews for a store
// GET /api/v1/stores/:id/reviews
func (ctrl *ReviewController) ListByStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	storeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))

	result, err := ctrl.reviewService.ListByStore(storeID, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "매장을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to list reviews", err, map[string]interface{}{
			"store_id": storeID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, result)
}
