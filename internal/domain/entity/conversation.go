package entity

// Conversation links a renter and an owner over a listing.
type Conversation struct {
	ID        int64 `json:"id"`
	RenterID  int64 `json:"renter_id"`
	OwnerID   int64 `json:"owner_id"`
	ListingID int64 `json:"listing_id"`
}
