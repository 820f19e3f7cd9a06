package presets

import (
	"errors"
	"net/http"
	"strconv"

	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/security"

	"github.com/gin-gonic/gin"
)

type PresetHandler struct {
	Repository *PresetRepository
	Service    *PresetService
}

func NewPresetHandler(r *PresetRepository, s *PresetService) *PresetHandler {
	return &PresetHandler{
		Repository: r,
		Service:    s,
	}
}

func (h *PresetHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/presets", h.GetPresets)
	router.GET("/presets/:id", h.GetPreset)
	router.POST("/presets", security.Authorize("manager"), h.CreatePreset)
	router.PUT("/presets/:id", security.Authorize("manager"), h.UpdatePreset)
	router.DELETE("/presets/:id", security.Authorize("admin"), h.DeletePreset)
	router.GET("/presets/:id/check", h.CheckAvailability)
	router.POST("/presets/:id/withdraw", h.WithdrawPreset)
}

func (h *PresetHandler) GetPresets(c *gin.Context) {
	presets, err := h.Repository.GetPresets()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve presets", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, presets)
}

func (h *PresetHandler) GetPreset(c *gin.Context) {
	presetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preset ID"})
		return
	}

	preset, err := h.Repository.GetPreset(presetID)
	if err != nil {
		h.respondWithError(c, err, "Unable to retrieve preset")
		return
	}

	c.JSON(http.StatusOK, preset)
}

func (h *PresetHandler) CreatePreset(c *gin.Context) {
	var req PresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	preset, err := h.Repository.CreatePreset(req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create preset"})
		return
	}

	c.JSON(http.StatusCreated, preset)
}

func (h *PresetHandler) UpdatePreset(c *gin.Context) {
	presetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preset ID"})
		return
	}

	var req UpdatePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	preset, err := h.Repository.UpdatePreset(presetID, req)
	if err != nil {
		h.respondWithError(c, err, "Failed to update preset")
		return
	}

	c.JSON(http.StatusOK, preset)
}

func (h *PresetHandler) DeletePreset(c *gin.Context) {
	presetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preset ID"})
		return
	}

	if err := h.Repository.DeletePreset(presetID); err != nil {
		h.respondWithError(c, err, "Failed to delete preset")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Preset deleted successfully"})
}

func (h *PresetHandler) CheckAvailability(c *gin.Context) {
	presetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preset ID"})
		return
	}

	availability, err := h.Repository.CheckAvailability(presetID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check preset availability", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, availability)
}

func (h *PresetHandler) WithdrawPreset(c *gin.Context) {
	presetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preset ID"})
		return
	}

	var req MassWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	results, err := h.Service.WithdrawPreset(presetID, req.UserName, req.Purpose)
	if err != nil {
		h.respondWithError(c, err, "Failed to withdraw from preset")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Preset withdrawal completed",
		"results": results,
	})
}

func (h *PresetHandler) respondWithError(c *gin.Context, err error, fallback string) {
	var notFound *custom_error.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
}
