package booking

import (
	"strings"
	"time"

	"brokerbook/models"
	"brokerbook/services/scheduling"
)

func validateRequest(req models.BookingRequest) error {
	var problems []string
	if req.BrokerID == "" {
		problems = append(problems, "brokerId is required")
	}
	if _, err := time.Parse(models.DateLayout, req.Date); err != nil {
		problems = append(problems, "date must be YYYY-MM-DD")
	}
	if _, err := scheduling.ParseClock(req.StartTime); err != nil {
		problems = append(problems, "startTime must be HH:mm")
	}
	if strings.TrimSpace(req.ClientName) == "" {
		problems = append(problems, "clientName is required")
	}
	if !strings.Contains(req.ClientEmail, "@") {
		problems = append(problems, "clientEmail is invalid")
	}
	if len(problems) > 0 {
		return newError(CodeInvalidRequest, "%s", strings.Join(problems, "; "))
	}
	return nil
}

// transitions lists the statuses each status may move to.
var transitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCancelled},
}

// sourcesOf returns every status that may move to next.
func sourcesOf(next models.AppointmentStatus) []models.AppointmentStatus {
	var out []models.AppointmentStatus
	for from, tos := range transitions {
		for _, to := range tos {
			if to == next {
				out = append(out, from)
			}
		}
	}
	return out
}

func canTransition(from, to models.AppointmentStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
