package handlers

import (
	"net/http"
	"strconv"

	"brokerbook/models"
	"brokerbook/utils"

	"github.com/gin-gonic/gin"
)

// GetBrokerSlots handles GET /api/brokers/:id/slots?days=N.
// A broker with no calendar simply has no slots, so this never returns 5xx
// for store trouble.
func (h *HandlerBundle) GetBrokerSlots(c *gin.Context) {
	brokerID := c.Param("id")

	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.JSONCodeError(c, http.StatusBadRequest, "invalid_request", "days must be a non-negative integer", raw)
			return
		}
		days = n
	}

	slots := h.Slots.ComputeAvailableSlots(c.Request.Context(), brokerID, days)
	if slots == nil {
		slots = []models.AvailableSlot{}
	}
	c.JSON(http.StatusOK, gin.H{
		"brokerId": brokerID,
		"slots":    slots,
		"days":     models.GroupByDate(slots),
	})
}
