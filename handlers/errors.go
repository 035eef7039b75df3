package handlers

import (
	"errors"
	"net/http"
	"strings"

	"brokerbook/services/availability"
	"brokerbook/services/booking"
	"brokerbook/services/broker"
	"brokerbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var bookingStatus = map[string]int{
	booking.CodeNotFound:          http.StatusNotFound,
	booking.CodeForbidden:         http.StatusForbidden,
	booking.CodeInvalidRequest:    http.StatusBadRequest,
	booking.CodeSlotUnavailable:   http.StatusConflict,
	booking.CodeSlotTaken:         http.StatusConflict,
	booking.CodeInvalidTransition: http.StatusConflict,
}

// respondError maps a service error onto an HTTP status and error body.
func respondError(c *gin.Context, err error) {
	var be *booking.Error
	if errors.As(err, &be) {
		status, ok := bookingStatus[be.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		utils.JSONCodeError(c, status, be.Code, be.Message, "")
		return
	}

	var ve *availability.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.JSONCodeError(c, http.StatusBadRequest, "invalid_request", "Invalid availability", strings.Join(ve.Problems, "; "))
	case errors.Is(err, availability.ErrForbidden), errors.Is(err, broker.ErrForbidden):
		utils.JSONCodeError(c, http.StatusForbidden, "forbidden", err.Error(), "")
	case errors.Is(err, broker.ErrNotFound):
		utils.JSONCodeError(c, http.StatusNotFound, "not_found", err.Error(), "")
	case errors.Is(err, broker.ErrInvalid):
		utils.JSONCodeError(c, http.StatusBadRequest, "invalid_request", err.Error(), "")
	default:
		getLogger(c).Error("request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// actingUserID is the uid set by the auth middleware, or "" on public routes.
func actingUserID(c *gin.Context) string {
	return c.GetString("userID")
}
