package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/dongnegage-backend/internal/app/service"
	apperrors "github.com/ikkim/dongnegage-backend/internal/errors"
	"github.com/ikkim/dongnegage-backend/internal/middleware"
)

type TagController struct {
	tagService service.TagService
}

func NewTagController(tagService service.TagService) *TagController {
	return &TagController{tagService: tagService}
}

// ListTags returns the tag histogram
// GET /api/v1/tags
func (ctrl *TagController) ListTags(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tags, err := ctrl.tagService.ListTags()
	if err != nil {
		log.Error("Failed to compute tag histogram", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// StoresByTag returns the tag histogram plus the stores carrying a given tag.
// The tag page renders both the tag list and the filtered stores in one view.
// GET /api/v1/tags/:tag
func (ctrl *TagController) StoresByTag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))
	tag := c.Param("tag")

	tags, err := ctrl.tagService.ListTags()
	if err != nil {
		log.Error("Failed to compute tag histogram", err, map[string]interface{}{
			"tag": tag,
		})
		apperrors.InternalError(c, "")
		return
	}

	result, err := ctrl.tagService.StoresByTag(tag, page, limit)
	if err != nil {
		log.Error("Failed to list stores by tag", err, map[string]interface{}{
			"tag": tag,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tag":    tag,
		"tags":   tags,
		"stores": result.Stores,
		"page":   result.Page,
		"pages":  result.Pages,
		"total":  result.Total,
	})
}
