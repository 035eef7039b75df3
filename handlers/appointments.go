package handlers

import (
	"net/http"

	"brokerbook/models"
	"brokerbook/utils"

	"github.com/gin-gonic/gin"
)

// BookAppointment handles POST /api/appointments.
func (h *HandlerBundle) BookAppointment(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONCodeError(c, http.StatusBadRequest, "invalid_request", "Invalid input", err.Error())
		return
	}

	appt, err := h.Booking.Book(c.Request.Context(), actingUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (h *HandlerBundle) ConfirmAppointment(c *gin.Context) {
	appt, err := h.Booking.Confirm(c.Request.Context(), actingUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *HandlerBundle) CancelAppointment(c *gin.Context) {
	appt, err := h.Booking.Cancel(c.Request.Context(), actingUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListMyBrokerAppointments handles GET /api/brokers/me/appointments?from=&to=.
func (h *HandlerBundle) ListMyBrokerAppointments(c *gin.Context) {
	appts, err := h.Booking.ListForBroker(c.Request.Context(), actingUserID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

func (h *HandlerBundle) ListMyAppointments(c *gin.Context) {
	appts, err := h.Booking.ListForClient(c.Request.Context(), actingUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
