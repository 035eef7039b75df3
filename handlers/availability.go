package handlers

import (
	"net/http"

	"brokerbook/models"
	"brokerbook/utils"

	"github.com/gin-gonic/gin"
)

// GetBrokerAvailability handles GET /api/brokers/:id/availability.
func (h *HandlerBundle) GetBrokerAvailability(c *gin.Context) {
	wa, err := h.Availability.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wa)
}

// SaveMyAvailability handles PUT /api/brokers/me/availability.
func (h *HandlerBundle) SaveMyAvailability(c *gin.Context) {
	var wa models.WeeklyAvailability
	if err := c.ShouldBindJSON(&wa); err != nil {
		utils.JSONCodeError(c, http.StatusBadRequest, "invalid_request", "Invalid input", err.Error())
		return
	}

	me := actingUserID(c)
	saved, err := h.Availability.Save(c.Request.Context(), me, me, wa)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}
