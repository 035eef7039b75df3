// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"time"

	"brokerbook/database"
	"brokerbook/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
)

// StatusChange describes a conditional status transition.
type StatusChange struct {
	From []models.AppointmentStatus // current status must be one of these
	To   models.AppointmentStatus
	By   string
	At   time.Time
}

type AppointmentRepository interface {
	// Create inserts a new appointment. An active appointment already holding
	// the same broker, date and start time yields database.ErrDuplicate.
	Create(ctx context.Context, a *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// ListByBrokerInRange returns every appointment of the broker whose date is
	// in [fromDate, toDate], both "YYYY-MM-DD", regardless of status.
	ListByBrokerInRange(ctx context.Context, brokerID, fromDate, toDate string) ([]models.Appointment, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Appointment, error)
	// UpdateStatus applies the change only if the stored status is in change.From,
	// otherwise database.ErrConflict.
	UpdateStatus(ctx context.Context, id string, change StatusChange) (*models.Appointment, error)
}

var tracer = otel.Tracer("brokerbook/database/appointment")

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &mongoAppointmentRepo{
		coll: database.MongoDatabase().Collection("appointments"),
	}
}
