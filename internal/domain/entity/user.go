package entity

import "time"

// User is the aggregate root for the account domain.
// Password holds the bcrypt hash and never leaves the repository boundary;
// every read path returns the public projection with the hash stripped.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated only by the full-profile read; empty slices, not nil,
	// so the JSON rendering is stable.
	Listings      []Listing      `json:"listings,omitempty"`
	Bookings      []Booking      `json:"bookings,omitempty"`
	Conversations []Conversation `json:"conversations,omitempty"`
}

// Public returns a copy with the password hash removed.
func (u User) Public() User {
	u.Password = ""
	return u
}

// RegisterParams holds the fields required to create an account.
type RegisterParams struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// UpdateUserParams holds the mutable account fields. All fields are pointers
// so callers set only what changes; the repository builds the SQL from the
// fields that are present, in declaration order.
type UpdateUserParams struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

// Empty reports whether no field is set.
func (p UpdateUserParams) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Password == nil
}
