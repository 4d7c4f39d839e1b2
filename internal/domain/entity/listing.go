package entity

import "time"

// Listing is a rentable space owned by exactly one user. Read-only from the
// account core; the listings module owns its writes.
type Listing struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Street      string    `json:"street"`
	City        string    `json:"city"`
	Zip         string    `json:"zip"`
	Genre       string    `json:"genre"`
	CreatedAt   time.Time `json:"created_at"`
}
