// Command seed fills the configured store with demo brokers and weekly
// calendars and prints development tokens for AUTH_PROVIDER=jwt.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"brokerbook/config"
	"brokerbook/database"
	"brokerbook/database/repository"
	"brokerbook/models"
	"brokerbook/utils"
)

// candidateRanges are realistic office blocks a broker may open.
var candidateRanges = []models.TimeSlot{
	{Start: "08:00", End: "11:00"},
	{Start: "09:00", End: "12:30"},
	{Start: "13:00", End: "15:00"},
	{Start: "14:00", End: "18:00"},
	{Start: "18:30", End: "20:00"},
}

var (
	cities      = []string{"Lisbon", "Porto", "Madrid", "Barcelona"}
	specialties = []string{"residential", "commercial", "mortgage", "rentals", "luxury"}
)

func main() {
	config.LoadConfig()
	if config.UseFirestore() {
		database.InitFirestore()
	} else {
		database.InitDB()
	}
	repos := repository.NewSet()
	if err := repos.EnsureIndexes(); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	const brokersPerCity = 3
	counter := 1
	for _, city := range cities {
		for i := 0; i < brokersPerCity; i++ {
			id := fmt.Sprintf("broker-%d", counter)
			now := time.Now().UTC()

			b := &models.Broker{
				ID:          id,
				Name:        fmt.Sprintf("%s Broker %d", city, counter),
				Email:       fmt.Sprintf("broker_%d@example.com", counter),
				Phone:       fmt.Sprintf("900000%04d", counter),
				City:        city,
				Specialties: pick(rng, specialties, 2),
				Active:      true,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := repos.Brokers.Upsert(ctx, b); err != nil {
				log.Fatalf("Failed to upsert broker %s: %v", id, err)
			}

			wa := &models.WeeklyAvailability{BrokerID: id, UpdatedAt: now}
			for _, wd := range models.Weekdays {
				day := models.DayAvailability{TimeSlots: []models.TimeSlot{}}
				// Weekdays open; weekends only sometimes.
				if (wd != time.Saturday && wd != time.Sunday) || rng.Intn(4) == 0 {
					day.Enabled = true
					day.TimeSlots = append(day.TimeSlots, candidateRanges[rng.Intn(len(candidateRanges))])
				}
				wa.SetDay(wd, day)
			}
			if err := repos.Availability.Upsert(ctx, wa); err != nil {
				log.Fatalf("Failed to upsert availability for %s: %v", id, err)
			}

			printToken(id, b.Email, b.Name, models.RoleBroker)
			counter++
		}
	}
	printToken("client-1", "client_1@example.com", "Demo Client", models.RoleClient)
	fmt.Printf("Seeded %d brokers\n", counter-1)
}

func pick(rng *rand.Rand, from []string, n int) []string {
	idx := rng.Perm(len(from))
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, from[i])
	}
	return out
}

func printToken(uid, email, name, role string) {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		return
	}
	tok, err := utils.GenerateToken([]byte(secret), utils.TokenClaims{Subject: uid, Email: email, Name: name, Role: role}, 30*24*time.Hour)
	if err != nil {
		log.Printf("token for %s: %v", uid, err)
		return
	}
	fmt.Printf("%-10s %-10s %s\n", role, uid, tok)
}
