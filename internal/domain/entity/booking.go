package entity

import "time"

// Booking associates a renter with a listing.
type Booking struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	RenterID  int64     `json:"renter_id"`
	ListingID int64     `json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}
