package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"stayloop/config"
	"stayloop/pkg/hash"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	digest, err := hash.New(cfg.BcryptCost).Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var ownerID int64
	err = db.QueryRow(`
		INSERT INTO users (username, password_hash, first_name, last_name, email)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username) DO UPDATE SET updated_at = now()
		RETURNING id
	`, "demoHost", digest, "Demo", "Host", "demo.host@example.com").Scan(&ownerID)
	if err != nil {
		log.Fatalf("failed to seed host: %v", err)
	}
	fmt.Printf("seeded user: id=%d username=demoHost password=%s\n", ownerID, password)

	var renterID int64
	err = db.QueryRow(`
		INSERT INTO users (username, password_hash, first_name, last_name, email)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username) DO UPDATE SET updated_at = now()
		RETURNING id
	`, "demoGuest", digest, "Demo", "Guest", "demo.guest@example.com").Scan(&renterID)
	if err != nil {
		log.Fatalf("failed to seed guest: %v", err)
	}
	fmt.Printf("seeded user: id=%d username=demoGuest password=%s\n", renterID, password)

	var listingID int64
	err = db.QueryRow(`
		INSERT INTO listings (owner_id, name, description, price, street, city, zip, genre)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, ownerID, "Canal View Loft", "Bright loft overlooking the canal", 120.0,
		"Prinsengracht 100", "Amsterdam", "1015", "loft").Scan(&listingID)
	if err != nil {
		log.Fatalf("failed to seed listing: %v", err)
	}
	fmt.Printf("seeded listing: id=%d owner=%d\n", listingID, ownerID)

	var bookingID int64
	err = db.QueryRow(`
		INSERT INTO bookings (owner_id, renter_id, listing_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, ownerID, renterID, listingID).Scan(&bookingID)
	if err != nil {
		log.Fatalf("failed to seed booking: %v", err)
	}
	fmt.Printf("seeded booking: id=%d\n", bookingID)

	var convID int64
	err = db.QueryRow(`
		INSERT INTO conversations (renter_id, owner_id, listing_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, renterID, ownerID, listingID).Scan(&convID)
	if err != nil {
		log.Fatalf("failed to seed conversation: %v", err)
	}
	fmt.Printf("seeded conversation: id=%d\n", convID)
}
