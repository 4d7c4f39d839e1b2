// Package hash wraps bcrypt credential hashing behind a small component so
// the work factor is injected from config instead of read from a global.
package hash

import "golang.org/x/crypto/bcrypt"

// Hasher hashes and verifies passwords with a fixed bcrypt cost.
type Hasher struct {
	cost int
}

// New returns a Hasher with the given cost. Costs outside bcrypt's supported
// range fall back to the library default.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted digest of plain. A fresh salt is generated per call,
// so two hashes of the same input differ.
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches digest. A wrong password or a
// malformed digest both return false; Verify never panics.
func (h *Hasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
