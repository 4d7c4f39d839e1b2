package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h := New(bcrypt.MinCost)

	digest, err := h.Hash("s3cret-pw")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "s3cret-pw", digest)

	assert.True(t, h.Verify("s3cret-pw", digest))
	assert.False(t, h.Verify("wrong-pw", digest))
}

func TestHashFreshSaltPerCall(t *testing.T) {
	h := New(bcrypt.MinCost)

	a, err := h.Hash("same-input")
	require.NoError(t, err)
	b, err := h.Hash("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("same-input", a))
	assert.True(t, h.Verify("same-input", b))
}

func TestVerifyMalformedDigest(t *testing.T) {
	h := New(bcrypt.MinCost)

	assert.False(t, h.Verify("anything", "not-a-bcrypt-digest"))
	assert.False(t, h.Verify("anything", ""))
}

func TestNewClampsCost(t *testing.T) {
	digest, err := New(-1).Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
