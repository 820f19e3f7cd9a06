package categories

import (
	"errors"
	"net/http"
	"strconv"

	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/security"

	"github.com/gin-gonic/gin"
)

type CategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	ParentID    *int    `json:"parent_id" binding:"omitempty,gte=1"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	ParentID    *int    `json:"parent_id" binding:"omitempty,gte=1"`
	IsActive    *bool   `json:"is_active"`
}

type CategoryHandler struct {
	Repository *CategoryRepository
}

func NewCategoryHandler(r *CategoryRepository) *CategoryHandler {
	return &CategoryHandler{Repository: r}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/categories", h.GetCategories)
	router.GET("/categories/stats/all", h.GetCategoryStats)
	router.GET("/categories/:id", h.GetCategory)
	router.POST("/categories", security.Authorize("manager"), h.CreateCategory)
	router.PUT("/categories/:id", security.Authorize("manager"), h.UpdateCategory)
	router.DELETE("/categories/:id", security.Authorize("admin"), h.DeleteCategory)
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.Repository.GetCategories()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve categories", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategoryStats(c *gin.Context) {
	stats, err := h.Repository.GetCategoryStats()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve category stats", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	category, err := h.Repository.GetCategory(categoryID)
	if err != nil {
		h.respondWithError(c, err, "Unable to retrieve category")
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	exists, err := h.Repository.ActiveNameExists(req.Name, 0)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	if exists {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Category with this name already exists"})
		return
	}

	category, err := h.Repository.PersistCategory(req)
	if err != nil {
		var uniqueErr *custom_error.UniqueViolationError
		if errors.As(err, &uniqueErr) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Category with this name already exists"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if req.Name != nil {
		conflict, err := h.Repository.ActiveNameExists(*req.Name, categoryID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}
		if conflict {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Category with this name already exists"})
			return
		}
	}

	category, err := h.Repository.UpdateCategory(categoryID, req)
	if err != nil {
		h.respondWithError(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := h.Repository.DeactivateCategory(categoryID); err != nil {
		h.respondWithError(c, err, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

func (h *CategoryHandler) respondWithError(c *gin.Context, err error, fallback string) {
	var notFound *custom_error.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
}
