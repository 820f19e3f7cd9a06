package transactions

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// TransactionListQuery is the filter set of the paginated ledger listing.
type TransactionListQuery struct {
	Type     string
	UserName string
	Search   string
	Page     int
	Limit    int
}

func (q *TransactionListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
}

func (q TransactionListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type TransactionHandler struct {
	Repository *TransactionRepository
}

func NewTransactionHandler(r *TransactionRepository) *TransactionHandler {
	return &TransactionHandler{Repository: r}
}

func (h *TransactionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/transactions", h.GetTransactions)
	router.GET("/transactions/stats", h.GetStats)
	router.GET("/items/:id/transactions", h.GetItemTransactions)
}

func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	query := TransactionListQuery{
		Type:     c.Query("type"),
		UserName: c.Query("user_name"),
		Search:   c.Query("search"),
	}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	query.Normalize()

	entries, total, err := h.Repository.List(query)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve transactions", "details": err.Error()})
		return
	}

	pages := total / query.Limit
	if total%query.Limit > 0 {
		pages++
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": entries,
		"pagination": gin.H{
			"page":  query.Page,
			"limit": query.Limit,
			"total": total,
			"pages": pages,
		},
	})
}

func (h *TransactionHandler) GetStats(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days parameter"})
		return
	}

	stats, err := h.Repository.Stats(days)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to compute transaction stats", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *TransactionHandler) GetItemTransactions(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	entries, err := h.Repository.ListForItem(itemID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve item transactions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": entries})
}
