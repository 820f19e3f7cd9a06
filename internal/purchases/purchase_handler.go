package purchases

import (
	"errors"
	"net/http"
	"strconv"

	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/metadata"
	"stockroom/pkg/security"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	Repository *PurchaseRepository
	Service    *PurchaseService
}

func NewPurchaseHandler(r *PurchaseRepository, s *PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		Repository: r,
		Service:    s,
	}
}

func (h *PurchaseHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/purchase-requests", h.GetPurchaseRequests)
	router.GET("/purchase-requests/:id", h.GetPurchaseRequest)
	router.POST("/purchase-requests", security.Authorize("manager"), h.CreatePurchaseRequest)
	router.PATCH("/purchase-requests/:id/status", security.Authorize("manager"), h.UpdateStatus)
	router.POST("/purchase-requests/:id/complete", security.Authorize("manager"), h.CompletePurchaseRequest)
	router.DELETE("/purchase-requests/:id", security.Authorize("admin"), h.DeletePurchaseRequest)
}

func (h *PurchaseHandler) GetPurchaseRequests(c *gin.Context) {
	query := PurchaseListQuery{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	query.Normalize()

	requests, total, err := h.Repository.List(query)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve purchase requests", "details": err.Error()})
		return
	}

	pages := total / query.Limit
	if total%query.Limit > 0 {
		pages++
	}

	c.JSON(http.StatusOK, gin.H{
		"purchase_requests": requests,
		"pagination": gin.H{
			"page":  query.Page,
			"limit": query.Limit,
			"total": total,
			"pages": pages,
		},
	})
}

func (h *PurchaseHandler) GetPurchaseRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase request ID"})
		return
	}

	request, err := h.Repository.Get(requestID)
	if err != nil {
		respondWithError(c, err, "Unable to retrieve purchase request")
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *PurchaseHandler) CreatePurchaseRequest(c *gin.Context) {
	var req PurchaseRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	request, err := h.Repository.Create(req)
	if err != nil {
		respondWithError(c, err, "Failed to create purchase request")
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *PurchaseHandler) UpdateStatus(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase request ID"})
		return
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	status, err := metadata.NewRequestStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, err := h.Repository.Get(requestID)
	if err != nil {
		respondWithError(c, err, "Unable to retrieve purchase request")
		return
	}
	if current.Status.IsTerminal() {
		c.JSON(http.StatusConflict, gin.H{"error": "Purchase request is already " + string(current.Status)})
		return
	}

	request, err := h.Repository.UpdateStatus(requestID, status)
	if err != nil {
		respondWithError(c, err, "Failed to update purchase request status")
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *PurchaseHandler) CompletePurchaseRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase request ID"})
		return
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	completion, err := h.Service.Complete(requestID, req)
	if err != nil {
		respondWithError(c, err, "Failed to complete purchase request")
		return
	}

	c.JSON(http.StatusOK, completion)
}

func (h *PurchaseHandler) DeletePurchaseRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase request ID"})
		return
	}

	if err := h.Repository.Delete(requestID); err != nil {
		respondWithError(c, err, "Failed to delete purchase request")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Purchase request deleted successfully"})
}

func respondWithError(c *gin.Context, err error, fallback string) {
	var notFound *custom_error.NotFoundError
	var invalidState *custom_error.InvalidStateError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &invalidState):
		c.JSON(http.StatusConflict, gin.H{"error": invalidState.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}
