package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnauthorized, KindOf(Unauthorized("invalid credentials")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("user not found")))
	assert.Equal(t, Kind(""), KindOf(errors.New("connection refused")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("update user: %w", Validation("no fields to update"))
	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Unauthorized("invalid credentials"), http.StatusUnauthorized},
		{BadRequest("username already taken"), http.StatusBadRequest},
		{Validation("no fields to update"), http.StatusBadRequest},
		{NotFound("user not found"), http.StatusNotFound},
		{errors.New("dial tcp: refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err), "error: %v", tt.err)
	}
}

func TestMessagePassesThrough(t *testing.T) {
	err := BadRequest("username already taken")
	assert.EqualError(t, err, "username already taken")
}
