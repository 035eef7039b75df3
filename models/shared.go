package models

// ReminderPayload is the asynq payload of an appointment reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	Target        string `json:"target"` // "client" or "broker"
	RecipientID   string `json:"recipientId"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	FireDate      string `json:"fireDate"`
}

// Identity is the verified caller of a request.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"` // "broker" or "client"
}

const (
	RoleBroker = "broker"
	RoleClient = "client"
)
