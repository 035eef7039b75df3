// File: brokerbook/handlers/bundle.go
package handlers

import (
	"brokerbook/services/availability"
	"brokerbook/services/booking"
	"brokerbook/services/broker"
	"brokerbook/services/scheduling"
)

// HandlerBundle groups the services the HTTP endpoints call into.
type HandlerBundle struct {
	Slots        scheduling.SlotGenerator
	Availability availability.AvailabilityService
	Booking      booking.BookingService
	Brokers      broker.BrokerService
}
