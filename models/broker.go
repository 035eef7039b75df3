package models

import "time"

// Broker is the public profile of a broker. ID is the identity-provider uid.
type Broker struct {
	ID            string    `bson:"id" json:"id" firestore:"id"`
	Name          string    `bson:"name" json:"name" firestore:"name"`
	Email         string    `bson:"email" json:"email" firestore:"email"`
	Phone         string    `bson:"phone,omitempty" json:"phone,omitempty" firestore:"phone,omitempty"`
	Company       string    `bson:"company,omitempty" json:"company,omitempty" firestore:"company,omitempty"`
	City          string    `bson:"city" json:"city" firestore:"city"`
	Specialties   []string  `bson:"specialties" json:"specialties" firestore:"specialties"`
	Bio           string    `bson:"bio,omitempty" json:"bio,omitempty" firestore:"bio,omitempty"`
	LicenseNumber string    `bson:"licenseNumber,omitempty" json:"licenseNumber,omitempty" firestore:"licenseNumber,omitempty"`
	Active        bool      `bson:"active" json:"active" firestore:"active"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt" firestore:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt" firestore:"updatedAt"`
}

// BrokerSearch holds equality filters for listing brokers.
type BrokerSearch struct {
	City      string `form:"city"`
	Specialty string `form:"specialty"`
	Limit     int    `form:"limit"`
}

// BrokerSummary is a search hit with the broker's next open slot, if any.
type BrokerSummary struct {
	Broker        Broker         `json:"broker"`
	NextAvailable *AvailableSlot `json:"nextAvailable,omitempty"`
}
