package postgres

import (
	"strconv"
	"strings"

	"stayloop/pkg/apperr"
)

// Assignment pairs a logical field name with its new value. Order is
// preserved through to the generated SQL.
type Assignment struct {
	Field string
	Value any
}

// userColumns translates logical field names to physical columns. Fields not
// listed here pass through unchanged.
var userColumns = map[string]string{
	"firstname": "first_name",
	"lastname":  "last_name",
	"password":  "password_hash",
}

// BuildSetClause assembles a parameterized SET clause from the given
// assignments. Placeholders are numbered from startIdx so the caller can
// append further parameters (the WHERE id). Values are always bound; only
// column names from the translation table or the assignment fields are
// interpolated. An empty assignment list is a validation error, never a
// silent no-op.
func BuildSetClause(assigns []Assignment, translate map[string]string, startIdx int) (string, []any, error) {
	if len(assigns) == 0 {
		return "", nil, apperr.Validation("no fields to update")
	}

	frags := make([]string, 0, len(assigns))
	args := make([]any, 0, len(assigns))
	for i, a := range assigns {
		col := a.Field
		if translated, ok := translate[a.Field]; ok {
			col = translated
		}
		frags = append(frags, col+" = $"+strconv.Itoa(startIdx+i))
		args = append(args, a.Value)
	}
	return strings.Join(frags, ", "), args, nil
}
