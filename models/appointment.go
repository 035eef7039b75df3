package models

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a client's booking against a broker's calendar.
type Appointment struct {
	ID          string            `bson:"id" json:"id" firestore:"id"`
	BrokerID    string            `bson:"brokerId" json:"brokerId" firestore:"brokerId"`
	ClientID    string            `bson:"clientId" json:"clientId" firestore:"clientId"`
	ClientName  string            `bson:"clientName" json:"clientName" firestore:"clientName"`
	ClientEmail string            `bson:"clientEmail" json:"clientEmail" firestore:"clientEmail"`
	ClientPhone string            `bson:"clientPhone" json:"clientPhone" firestore:"clientPhone"`
	Date        string            `bson:"date" json:"date" firestore:"date"`                // "YYYY-MM-DD"
	StartTime   string            `bson:"startTime" json:"startTime" firestore:"startTime"` // "HH:mm"
	EndTime     string            `bson:"endTime" json:"endTime" firestore:"endTime"`       // "HH:mm"
	Status      AppointmentStatus `bson:"status" json:"status" firestore:"status"`
	Title       string            `bson:"title" json:"title" firestore:"title"`
	Notes       string            `bson:"notes,omitempty" json:"notes,omitempty" firestore:"notes,omitempty"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time         `bson:"updatedAt" json:"updatedAt" firestore:"updatedAt"`
	CancelledAt *time.Time        `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty" firestore:"cancelledAt,omitempty"`
	CancelledBy string            `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty" firestore:"cancelledBy,omitempty"`
}

// Active reports whether the appointment still occupies its slot.
func (a Appointment) Active() bool {
	return a.Status != StatusCancelled
}

// BookingRequest is the client payload for booking a slot.
type BookingRequest struct {
	BrokerID    string `json:"brokerId" binding:"required"`
	Date        string `json:"date" binding:"required"`      // "YYYY-MM-DD"
	StartTime   string `json:"startTime" binding:"required"` // "HH:mm"
	ClientName  string `json:"clientName" binding:"required"`
	ClientEmail string `json:"clientEmail" binding:"required,email"`
	ClientPhone string `json:"clientPhone"`
	Title       string `json:"title"`
	Notes       string `json:"notes"`
}
