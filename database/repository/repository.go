package repository

import (
	"brokerbook/config"
	"brokerbook/database"
	appointmentRepo "brokerbook/database/repository/appointment"
	availabilityRepo "brokerbook/database/repository/availability"
	brokerRepo "brokerbook/database/repository/broker"
)

// Re-export the repository interfaces.
type (
	AvailabilityRepository = availabilityRepo.AvailabilityRepository
	AppointmentRepository  = appointmentRepo.AppointmentRepository
	BrokerRepository       = brokerRepo.BrokerRepository
)

// Set bundles the repositories of the configured backend.
type Set struct {
	Availability AvailabilityRepository
	Appointments AppointmentRepository
	Brokers      BrokerRepository
}

// NewSet builds repositories for STORE_BACKEND. The matching client
// (database.MongoClient or database.FirestoreClient) must be initialized.
func NewSet() Set {
	if config.UseFirestore() {
		c := database.FirestoreClient
		return Set{
			Availability: availabilityRepo.NewFirestoreAvailabilityRepo(c),
			Appointments: appointmentRepo.NewFirestoreAppointmentRepo(c),
			Brokers:      brokerRepo.NewFirestoreBrokerRepo(c),
		}
	}
	return Set{
		Availability: availabilityRepo.NewMongoAvailabilityRepo(),
		Appointments: appointmentRepo.NewMongoAppointmentRepo(),
		Brokers:      brokerRepo.NewMongoBrokerRepo(),
	}
}

// EnsureIndexes creates indexes for every repository that owns them.
func (s Set) EnsureIndexes() error {
	for _, r := range []interface{}{s.Availability, s.Appointments, s.Brokers} {
		if ix, ok := r.(database.Indexer); ok {
			if err := ix.EnsureIndexes(); err != nil {
				return err
			}
		}
	}
	return nil
}
