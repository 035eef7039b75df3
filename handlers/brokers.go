package handlers

import (
	"net/http"

	"brokerbook/models"
	"brokerbook/utils"

	"github.com/gin-gonic/gin"
)

// SearchBrokers handles GET /api/brokers?city=&specialty=&limit=.
func (h *HandlerBundle) SearchBrokers(c *gin.Context) {
	var q models.BrokerSearch
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.JSONCodeError(c, http.StatusBadRequest, "invalid_request", "Invalid query", err.Error())
		return
	}

	results, err := h.Brokers.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	if results == nil {
		results = []models.BrokerSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"brokers": results})
}

func (h *HandlerBundle) GetBroker(c *gin.Context) {
	b, err := h.Brokers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpsertMyProfile handles PUT /api/brokers/me.
func (h *HandlerBundle) UpsertMyProfile(c *gin.Context) {
	var b models.Broker
	if err := c.ShouldBindJSON(&b); err != nil {
		utils.JSONCodeError(c, http.StatusBadRequest, "invalid_request", "Invalid input", err.Error())
		return
	}

	saved, err := h.Brokers.Upsert(c.Request.Context(), actingUserID(c), b)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}
