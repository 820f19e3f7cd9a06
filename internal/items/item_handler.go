package items

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/security"
	"stockroom/pkg/warehouse"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	Repository *ItemRepository
	Service    *ItemService
}

func NewItemHandler(r *ItemRepository, s *ItemService) *ItemHandler {
	return &ItemHandler{
		Repository: r,
		Service:    s,
	}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/items", h.GetItems)
	router.GET("/items/warehouse/data", h.GetWarehouseData)
	router.GET("/items/:id", h.GetItem)
	router.POST("/items", security.Authorize("manager"), h.CreateItem)
	router.PUT("/items/:id", security.Authorize("manager"), h.UpdateItem)
	router.DELETE("/items/:id", security.Authorize("admin"), h.DeleteItem)
	router.POST("/items/:id/withdraw", h.WithdrawItem)
	router.PUT("/items/:id/location", security.Authorize("manager"), h.UpdateItemLocation)
}

func (h *ItemHandler) GetItems(c *gin.Context) {
	query := ItemListQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Location: c.Query("location"),
	}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	query.Normalize()

	if rawFilters := c.Query("filters"); rawFilters != "" {
		// Invalid filter JSON is ignored rather than rejected.
		_ = json.Unmarshal([]byte(rawFilters), &query.Filters)
	}

	items, total, err := h.Repository.GetItems(query)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve items", "details": err.Error()})
		return
	}

	pages := total / query.Limit
	if total%query.Limit > 0 {
		pages++
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"pagination": gin.H{
			"page":  query.Page,
			"limit": query.Limit,
			"total": total,
			"pages": pages,
		},
	})
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, err := h.Repository.GetItem(itemID)
	if err != nil {
		respondWithError(c, err, "Unable to retrieve item")
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item, err := h.Repository.PersistItem(req)
	if err != nil {
		var fkErr *custom_error.ForeignKeyViolationError
		if errors.As(err, &fkErr) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item, err := h.Repository.UpdateItem(itemID, req)
	if err != nil {
		respondWithError(c, err, "Failed to update item")
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	if err := h.Repository.DeleteItem(itemID); err != nil {
		respondWithError(c, err, "Failed to delete item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

func (h *ItemHandler) WithdrawItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item, err := h.Service.WithdrawSingle(itemID, req.Quantity, req.Purpose, req.UserName)
	if err != nil {
		respondWithError(c, err, "Failed to withdraw item")
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) UpdateItemLocation(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item, err := h.Repository.UpdateLocation(itemID, req.Location)
	if err != nil {
		respondWithError(c, err, "Failed to update item location")
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) GetWarehouseData(c *gin.Context) {
	items, err := h.Repository.GetLocatedItems()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve warehouse data", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, warehouse.ProjectGrid(items))
}

// respondWithError maps typed domain failures to HTTP statuses.
func respondWithError(c *gin.Context, err error, fallback string) {
	var notFound *custom_error.NotFoundError
	var insufficient *custom_error.InsufficientStockError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient quantity"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}
