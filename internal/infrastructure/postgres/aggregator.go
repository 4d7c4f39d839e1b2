package postgres

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"stayloop/internal/domain/entity"
)

// Aggregator attaches a user's listings, bookings, and conversations to the
// user record. The three reads are independent and run concurrently; this is
// a point-in-time composite view, so no transaction is taken.
type Aggregator struct {
	db DB
}

func NewAggregator(db DB) *Aggregator {
	return &Aggregator{db: db}
}

// Attach loads the related rows for u, each ordered by ascending id. Empty
// result sets yield empty slices, not an error.
func (a *Aggregator) Attach(ctx context.Context, u *entity.User) error {
	g, ctx := errgroup.WithContext(ctx)

	var (
		listings      []entity.Listing
		bookings      []entity.Booking
		conversations []entity.Conversation
	)
	g.Go(func() error {
		var err error
		listings, err = a.listingsByOwner(ctx, u.ID)
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = a.bookingsByRenter(ctx, u.ID)
		return err
	})
	g.Go(func() error {
		var err error
		conversations, err = a.conversationsByParticipant(ctx, u.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	u.Listings = listings
	u.Bookings = bookings
	u.Conversations = conversations
	return nil
}

func (a *Aggregator) listingsByOwner(ctx context.Context, ownerID int64) ([]entity.Listing, error) {
	rows, err := a.db.Query(ctx, `
		SELECT id, owner_id, name, description, price, street, city, zip, genre, created_at
		FROM listings
		WHERE owner_id = $1
		ORDER BY id ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	listings := make([]entity.Listing, 0)
	for rows.Next() {
		var l entity.Listing
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.Name, &l.Description, &l.Price,
			&l.Street, &l.City, &l.Zip, &l.Genre, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (a *Aggregator) bookingsByRenter(ctx context.Context, renterID int64) ([]entity.Booking, error) {
	rows, err := a.db.Query(ctx, `
		SELECT id, owner_id, renter_id, listing_id, created_at
		FROM bookings
		WHERE renter_id = $1
		ORDER BY id ASC
	`, renterID)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]entity.Booking, 0)
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.RenterID, &b.ListingID, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (a *Aggregator) conversationsByParticipant(ctx context.Context, userID int64) ([]entity.Conversation, error) {
	rows, err := a.db.Query(ctx, `
		SELECT id, renter_id, owner_id, listing_id
		FROM conversations
		WHERE owner_id = $1 OR renter_id = $1
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	defer rows.Close()

	conversations := make([]entity.Conversation, 0)
	for rows.Next() {
		var c entity.Conversation
		if err := rows.Scan(&c.ID, &c.RenterID, &c.OwnerID, &c.ListingID); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}
