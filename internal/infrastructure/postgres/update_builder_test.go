package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayloop/pkg/apperr"
)

func TestBuildSetClause(t *testing.T) {
	set, args, err := BuildSetClause([]Assignment{
		{Field: "firstname", Value: "Ada"},
		{Field: "email", Value: "ada@example.com"},
	}, userColumns, 1)

	require.NoError(t, err)
	assert.Equal(t, "first_name = $1, email = $2", set)
	assert.Equal(t, []any{"Ada", "ada@example.com"}, args)
}

func TestBuildSetClause_TranslatesPasswordColumn(t *testing.T) {
	set, args, err := BuildSetClause([]Assignment{
		{Field: "password", Value: "$2a$10$digest"},
	}, userColumns, 1)

	require.NoError(t, err)
	assert.Equal(t, "password_hash = $1", set)
	assert.Equal(t, []any{"$2a$10$digest"}, args)
}

func TestBuildSetClause_PreservesInputOrder(t *testing.T) {
	set, _, err := BuildSetClause([]Assignment{
		{Field: "email", Value: "x@example.com"},
		{Field: "lastname", Value: "Lovelace"},
		{Field: "firstname", Value: "Ada"},
	}, userColumns, 1)

	require.NoError(t, err)
	assert.Equal(t, "email = $1, last_name = $2, first_name = $3", set)
}

func TestBuildSetClause_StartIndex(t *testing.T) {
	set, args, err := BuildSetClause([]Assignment{
		{Field: "email", Value: "x@example.com"},
		{Field: "firstname", Value: "Ada"},
	}, userColumns, 3)

	require.NoError(t, err)
	assert.Equal(t, "email = $3, first_name = $4", set)
	assert.Len(t, args, 2)
}

func TestBuildSetClause_EmptyInputRejected(t *testing.T) {
	_, _, err := BuildSetClause(nil, userColumns, 1)

	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestBuildSetClause_UntranslatedFieldPassesThrough(t *testing.T) {
	set, _, err := BuildSetClause([]Assignment{
		{Field: "email", Value: "x@example.com"},
	}, userColumns, 1)

	require.NoError(t, err)
	assert.Equal(t, "email = $1", set)
}
